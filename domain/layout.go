// Package domain holds the persisted models of the layout service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Point is a grid coordinate pair.
type Point struct {
	X int `bson:"x" json:"x"`
	Y int `bson:"y" json:"y"`
}

// Position is a world-space room origin.
type Position struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
	Z float64 `bson:"z" json:"z"`
}

// Room is a room instance placed in a layout. Its ID is the spawn handle.
type Room struct {
	ID       uuid.UUID `bson:"_id" json:"id"`
	Cell     Point     `bson:"cell" json:"cell"`
	Category string    `bson:"category" json:"category"`
	Prefab   string    `bson:"prefab" json:"prefab"`
	Position Position  `bson:"position" json:"position"`
}

// Passage is a carved connection between two neighboring cells.
type Passage struct {
	From Point `bson:"from" json:"from"`
	To   Point `bson:"to" json:"to"`
}

// Layout is a generated maze together with its placed rooms.
type Layout struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	OwnerID     uuid.UUID `bson:"ownerId" json:"owner_id"`
	Seed        int64     `bson:"seed" json:"seed"`
	Width       int       `bson:"width" json:"width"`
	Height      int       `bson:"height" json:"height"`
	RoomXSize   float64   `bson:"roomXSize" json:"room_x_size"`
	RoomZSize   float64   `bson:"roomZSize" json:"room_z_size"`
	Entry       Point     `bson:"entry" json:"entry"`
	Exit        Point     `bson:"exit" json:"exit"`
	ExitReached bool      `bson:"exitReached" json:"exit_reached"`
	ExitPath    []Point   `bson:"exitPath" json:"exit_path"`
	Route       []Point   `bson:"route" json:"route"`
	Rooms       []Room    `bson:"rooms" json:"rooms"`
	Passages    []Passage `bson:"passages" json:"passages"`
	Skipped     []Point   `bson:"skipped" json:"skipped"`
	Failed      []Point   `bson:"failed" json:"failed"`
	Preview     string    `bson:"preview" json:"preview"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}

// RoomAt returns the room placed at the cell.
func (l *Layout) RoomAt(p Point) (Room, bool) {
	for _, r := range l.Rooms {
		if r.Cell == p {
			return r, true
		}
	}
	return Room{}, false
}
