package mazeapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/service"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamForwardsOwnEvents(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/mazes/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	layoutID := uuid.New()
	// The subscription is made after the upgrade, so keep publishing until the
	// client sees something.
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.events.Publish(service.Event{Type: service.EventRoomPlaced, LayoutID: uuid.New(), OwnerID: uuid.New()})
				f.events.Publish(service.Event{Type: service.EventCompleted, LayoutID: layoutID, OwnerID: f.owner})
			}
		}
	}()

	var e service.Event
	require.NoError(t, wsjson.Read(ctx, conn, &e))
	assert.Equal(t, service.EventCompleted, e.Type)
	assert.Equal(t, layoutID, e.LayoutID)
	assert.Equal(t, f.owner, e.OwnerID)
}
