package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/google/uuid"
)

// GenerateRequest describes a layout to generate. Zero values fall back to the service defaults.
type GenerateRequest struct {
	ID        uuid.UUID           `json:"id"` // Layout ID to save under; random when nil
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	RoomXSize float64             `json:"room_x_size"`
	RoomZSize float64             `json:"room_z_size"`
	Seed      int64               `json:"seed"` // 0 picks a random seed, which is stored on the layout
	Entry     *dmn.Point          `json:"entry,omitempty"`
	Exit      *dmn.Point          `json:"exit,omitempty"`
	Pools     map[string][]string `json:"pools,omitempty"` // Per category prefab overrides
}

// LayoutGenerator generates layouts and looks them up.
type LayoutGenerator interface {
	Generate(ctx context.Context, ownerID uuid.UUID, req GenerateRequest) (*dmn.Layout, error)
	Layout(ctx context.Context, id uuid.UUID) (*dmn.Layout, error)
	Layouts(ctx context.Context, ownerID uuid.UUID) ([]*dmn.Layout, error)
}

// RequestValidator rejects requests that could never generate, before they are queued.
type RequestValidator interface {
	Validate(req GenerateRequest) error
}

// Logger is the logging interface shared by services.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
