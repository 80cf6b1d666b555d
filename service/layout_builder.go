package service

import (
	"errors"
	"fmt"
	"regexp"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/maze"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/google/uuid"
)

var (
	prefabPattern = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)

	ErrInvalidPrefab = errors.New("invalid prefab reference")
)

// layoutBuilder is the spawn collaborator of a single run. Each spawned room gets a
// fresh UUID as its handle and is announced on the broker.
type layoutBuilder struct {
	layoutID uuid.UUID
	ownerID  uuid.UUID
	events   *Broker
	logger   i.Logger
}

var (
	_ maze.Spawner    = &layoutBuilder{}
	_ maze.ExitMarker = &layoutBuilder{}
)

// Spawn implements maze.Spawner.
func (b *layoutBuilder) Spawn(prefab maze.Prefab, position maze.Vector) (maze.Handle, error) {
	if !prefabPattern.MatchString(string(prefab)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefab, prefab)
	}

	id := uuid.New()
	pos := toPosition(position)
	b.events.Publish(Event{
		Type:     EventRoomPlaced,
		LayoutID: b.layoutID,
		OwnerID:  b.ownerID,
		RoomID:   id,
		Prefab:   string(prefab),
		Position: &pos,
	})
	return id, nil
}

// MarkExit implements maze.ExitMarker.
func (b *layoutBuilder) MarkExit(cell maze.Cell, position maze.Vector) {
	p, pos := toPoint(cell), toPosition(position)
	b.logger.Info(fmt.Sprintf("exit placed at %s for layout %s", cell, b.layoutID))
	b.events.Publish(Event{
		Type:     EventExitMarked,
		LayoutID: b.layoutID,
		OwnerID:  b.ownerID,
		Cell:     &p,
		Position: &pos,
	})
}

// toLayout converts a finished run into its persisted form.
func toLayout(id, ownerID uuid.UUID, cfg maze.Config, result *maze.Result, route []maze.Cell) *dmn.Layout {
	layout := &dmn.Layout{
		ID:          id,
		OwnerID:     ownerID,
		Seed:        result.Seed,
		Width:       result.Width,
		Height:      result.Height,
		RoomXSize:   cfg.RoomXSize,
		RoomZSize:   cfg.RoomZSize,
		Entry:       toPoint(result.Entry),
		Exit:        toPoint(result.Exit),
		ExitReached: result.ExitReached,
		ExitPath:    toPoints(result.ExitPath),
		Route:       toPoints(route),
		Rooms:       make([]dmn.Room, 0, len(result.Rooms)),
		Passages:    make([]dmn.Passage, 0, len(result.Passages)),
		Skipped:     toPoints(result.Skipped),
		Failed:      toPoints(result.Failed),
		Preview:     result.String(),
	}

	for _, p := range result.Rooms {
		roomID, _ := p.Handle.(uuid.UUID)
		layout.Rooms = append(layout.Rooms, dmn.Room{
			ID:       roomID,
			Cell:     toPoint(p.Cell),
			Category: p.Category.String(),
			Prefab:   string(p.Prefab),
			Position: toPosition(p.Position),
		})
	}
	for _, p := range result.Passages {
		layout.Passages = append(layout.Passages, dmn.Passage{From: toPoint(p.From), To: toPoint(p.To)})
	}
	return layout
}

func toPoint(c maze.Cell) dmn.Point {
	return dmn.Point{X: c.X, Y: c.Y}
}

func toPoints(cells []maze.Cell) []dmn.Point {
	points := make([]dmn.Point, 0, len(cells))
	for _, c := range cells {
		points = append(points, toPoint(c))
	}
	return points
}

func toPosition(v maze.Vector) dmn.Position {
	return dmn.Position{X: v.X, Y: v.Y, Z: v.Z}
}
