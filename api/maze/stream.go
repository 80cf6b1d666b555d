package mazeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/api/identity"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

const streamWriteTimeout = 3 * time.Second

// stream upgrades to a websocket and forwards the caller's generation events until
// either side closes.
func (mc *MazeController) stream(ctx *gin.Context) {
	ownerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(ctx.Writer, ctx.Request, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("stream upgrade for %s: %s", ownerID, err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	events := mc.events.Subscribe()
	defer mc.events.Unsubscribe(events)

	// The stream is write only; CloseRead handles control frames and cancels on close.
	readCtx := conn.CloseRead(ctx.Request.Context())
	mc.logger.Info(fmt.Sprintf("stream opened for %s", ownerID))

	for {
		select {
		case <-readCtx.Done():
			mc.logger.Info(fmt.Sprintf("stream closed for %s", ownerID))
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.OwnerID != ownerID {
				continue
			}

			writeCtx, cancel := context.WithTimeout(readCtx, streamWriteTimeout)
			err := wsjson.Write(writeCtx, conn, e)
			cancel()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					mc.logger.Warning(fmt.Sprintf("stream write for %s: %s", ownerID, err))
				}
				return
			}
		}
	}
}
