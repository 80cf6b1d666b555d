// Package mazeapi exposes layout generation over HTTP.
package mazeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-backrooms/api/identity"
	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/maze"
	"github.com/beka-birhanu/vinom-backrooms/service"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	formatJSON  = "json"
	formatPB    = "pb"
	formatASCII = "ascii"

	protobufContentType = "application/x-protobuf"
)

// LayoutEncoder encodes a layout for the pb format.
type LayoutEncoder interface {
	MarshalLayout(*dmn.Layout) ([]byte, error)
}

// EventSource hands out generation event subscriptions.
type EventSource interface {
	Subscribe() chan service.Event
	Unsubscribe(chan service.Event)
}

// Config holds the collaborators of a MazeController.
type Config struct {
	Generator i.LayoutGenerator
	Queue     i.JobQueue
	Events    EventSource
	Encoder   LayoutEncoder
	Logger    i.Logger
	BaseURL   string // Prefix of the layout URLs returned for queued jobs
}

// MazeController serves layout generation, lookup and the live event stream.
type MazeController struct {
	generator i.LayoutGenerator
	queue     i.JobQueue
	events    EventSource
	encoder   LayoutEncoder
	logger    i.Logger
	baseURL   string
}

// NewMazeController creates a MazeController.
func NewMazeController(c Config) (*MazeController, error) {
	if c.Generator == nil || c.Queue == nil || c.Events == nil || c.Encoder == nil || c.Logger == nil {
		return nil, errors.New("generator, queue, events, encoder and logger are required")
	}
	return &MazeController{
		generator: c.Generator,
		queue:     c.Queue,
		events:    c.Events,
		encoder:   c.Encoder,
		logger:    c.Logger,
		baseURL:   c.BaseURL,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/jobs", mc.enqueue)
		mazes.GET("", mc.list)
		mazes.GET("/stream", mc.stream)
		mazes.GET("/:ID", mc.layout)
	}
}

// generate carves a layout synchronously and returns it.
func (mc *MazeController) generate(ctx *gin.Context) {
	ownerID, req, ok := mc.bindRequest(ctx)
	if !ok {
		return
	}

	layout, err := mc.generator.Generate(ctx.Request.Context(), ownerID, req.toService())
	if err != nil {
		mc.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, layout)
}

// enqueue defers the generation to the job queue.
func (mc *MazeController) enqueue(ctx *gin.Context) {
	ownerID, req, ok := mc.bindRequest(ctx)
	if !ok {
		return
	}

	jobID, err := mc.queue.Enqueue(ctx.Request.Context(), ownerID, req.toService())
	if isRequestError(err) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		mc.logger.Error(fmt.Sprintf("enqueueing generation for %s: %s", ownerID, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while queueing generation"})
		return
	}

	ctx.JSON(http.StatusAccepted, &JobResponse{
		JobID:     jobID,
		LayoutURL: fmt.Sprintf("%s/mazes/%s", mc.baseURL, jobID),
	})
}

// layout returns one of the caller's layouts as JSON, protobuf or an ASCII preview.
func (mc *MazeController) layout(ctx *gin.Context) {
	ownerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid layout id"})
		return
	}

	layout, err := mc.generator.Layout(ctx.Request.Context(), id)
	if err == nil && layout.OwnerID != ownerID {
		err = dmn.ErrLayoutNotFound
	}
	if err != nil {
		mc.writeError(ctx, err)
		return
	}

	switch ctx.DefaultQuery("format", formatJSON) {
	case formatJSON:
		ctx.JSON(http.StatusOK, layout)
	case formatPB:
		b, err := mc.encoder.MarshalLayout(layout)
		if err != nil {
			mc.writeError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, protobufContentType, b)
	case formatASCII:
		ctx.String(http.StatusOK, "%s", layout.Preview)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, pb or ascii"})
	}
}

// list returns summaries of the caller's recent layouts.
func (mc *MazeController) list(ctx *gin.Context) {
	ownerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	layouts, err := mc.generator.Layouts(ctx.Request.Context(), ownerID)
	if err != nil {
		mc.writeError(ctx, err)
		return
	}

	summaries := make([]LayoutSummary, 0, len(layouts))
	for _, l := range layouts {
		summaries = append(summaries, toSummary(l))
	}
	ctx.JSON(http.StatusOK, summaries)
}

// bindRequest reads the caller and the optional request body. It writes the error
// response itself and reports whether handling should continue.
func (mc *MazeController) bindRequest(ctx *gin.Context) (uuid.UUID, GenerateRequest, bool) {
	var req GenerateRequest

	ownerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, req, false
	}

	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, req, false
	}
	return ownerID, req, true
}

func (mc *MazeController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrLayoutNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isRequestError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		mc.logger.Error(fmt.Sprintf("%s %s: %s", ctx.Request.Method, ctx.FullPath(), err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isRequestError(err error) bool {
	for _, target := range []error{
		maze.ErrInvalidDimensions,
		maze.ErrGridTooSmall,
		maze.ErrNoPrefabs,
		maze.ErrInvalidEntryExit,
		service.ErrMazeTooLarge,
		service.ErrUnknownCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
