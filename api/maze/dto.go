package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/google/uuid"
)

// GenerateRequest is the body of a generate or enqueue call. Every field is optional.
type GenerateRequest struct {
	Width     int                 `json:"width" binding:"gte=0"`
	Height    int                 `json:"height" binding:"gte=0"`
	RoomXSize float64             `json:"room_x_size" binding:"gte=0"`
	RoomZSize float64             `json:"room_z_size" binding:"gte=0"`
	Seed      int64               `json:"seed"`
	Entry     *dmn.Point          `json:"entry"`
	Exit      *dmn.Point          `json:"exit"`
	Pools     map[string][]string `json:"pools"`
}

func (r GenerateRequest) toService() i.GenerateRequest {
	return i.GenerateRequest{
		Width:     r.Width,
		Height:    r.Height,
		RoomXSize: r.RoomXSize,
		RoomZSize: r.RoomZSize,
		Seed:      r.Seed,
		Entry:     r.Entry,
		Exit:      r.Exit,
		Pools:     r.Pools,
	}
}

// JobResponse is returned when a generation is queued.
type JobResponse struct {
	JobID     uuid.UUID `json:"job_id"`
	LayoutURL string    `json:"layout_url"`
}

// LayoutSummary is one entry of a layout listing.
type LayoutSummary struct {
	ID          uuid.UUID `json:"id"`
	Seed        int64     `json:"seed"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Entry       dmn.Point `json:"entry"`
	Exit        dmn.Point `json:"exit"`
	ExitReached bool      `json:"exit_reached"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSummary(l *dmn.Layout) LayoutSummary {
	return LayoutSummary{
		ID:          l.ID,
		Seed:        l.Seed,
		Width:       l.Width,
		Height:      l.Height,
		Entry:       l.Entry,
		Exit:        l.Exit,
		ExitReached: l.ExitReached,
		CreatedAt:   l.CreatedAt,
	}
}
