// Package pb encodes layouts in the protobuf wire format so game clients can load
// them without a JSON parser.
//
// The message shapes, in .proto terms:
//
//	message Point    { int64 x = 1; int64 y = 2; }
//	message Position { double x = 1; double y = 2; double z = 3; }
//	message Passage  { Point from = 1; Point to = 2; }
//	message Room     { bytes id = 1; Point cell = 2; string category = 3; string prefab = 4; Position position = 5; }
//	message Layout {
//	  bytes id = 1; bytes owner_id = 2; int64 seed = 3; int64 width = 4; int64 height = 5;
//	  double room_x_size = 6; double room_z_size = 7; Point entry = 8; Point exit = 9;
//	  bool exit_reached = 10; repeated Point exit_path = 11; repeated Room rooms = 12;
//	  repeated Passage passages = 13; repeated Point skipped = 14; repeated Point failed = 15;
//	  int64 created_at = 16; repeated Point route = 17; string preview = 18;
//	}
package pb

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrNilLayout = errors.New("nil layout")
	ErrWireType  = errors.New("unexpected wire type")
	ErrUUIDSize  = errors.New("uuid field must be 16 bytes")
)

const (
	layoutID protowire.Number = iota + 1
	layoutOwnerID
	layoutSeed
	layoutWidth
	layoutHeight
	layoutRoomXSize
	layoutRoomZSize
	layoutEntry
	layoutExit
	layoutExitReached
	layoutExitPath
	layoutRooms
	layoutPassages
	layoutSkipped
	layoutFailed
	layoutCreatedAt
	layoutRoute
	layoutPreview
)

const (
	roomID protowire.Number = iota + 1
	roomCell
	roomCategory
	roomPrefab
	roomPosition
)

// Protobuf is the layout codec served on format=pb.
type Protobuf struct{}

// MarshalLayout encodes the layout.
func (Protobuf) MarshalLayout(l *dmn.Layout) ([]byte, error) {
	if l == nil {
		return nil, ErrNilLayout
	}

	var b []byte
	b = appendUUID(b, layoutID, l.ID)
	b = appendUUID(b, layoutOwnerID, l.OwnerID)
	b = appendInt(b, layoutSeed, l.Seed)
	b = appendInt(b, layoutWidth, int64(l.Width))
	b = appendInt(b, layoutHeight, int64(l.Height))
	b = appendDouble(b, layoutRoomXSize, l.RoomXSize)
	b = appendDouble(b, layoutRoomZSize, l.RoomZSize)
	b = appendMessage(b, layoutEntry, encodePoint(l.Entry))
	b = appendMessage(b, layoutExit, encodePoint(l.Exit))
	b = protowire.AppendTag(b, layoutExitReached, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(l.ExitReached))
	b = appendPoints(b, layoutExitPath, l.ExitPath)
	for _, r := range l.Rooms {
		b = appendMessage(b, layoutRooms, encodeRoom(r))
	}
	for _, p := range l.Passages {
		b = appendMessage(b, layoutPassages, encodePassage(p))
	}
	b = appendPoints(b, layoutSkipped, l.Skipped)
	b = appendPoints(b, layoutFailed, l.Failed)
	if !l.CreatedAt.IsZero() {
		b = appendInt(b, layoutCreatedAt, l.CreatedAt.UnixNano())
	}
	b = appendPoints(b, layoutRoute, l.Route)
	if l.Preview != "" {
		b = protowire.AppendTag(b, layoutPreview, protowire.BytesType)
		b = protowire.AppendString(b, l.Preview)
	}
	return b, nil
}

// UnmarshalLayout decodes a layout. Unknown fields are skipped.
func (Protobuf) UnmarshalLayout(b []byte) (*dmn.Layout, error) {
	l := &dmn.Layout{}
	err := consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case layoutID:
			return consumeUUID(typ, b, &l.ID)
		case layoutOwnerID:
			return consumeUUID(typ, b, &l.OwnerID)
		case layoutSeed:
			return consumeInt(typ, b, &l.Seed)
		case layoutWidth:
			return consumeInt(typ, b, &l.Width)
		case layoutHeight:
			return consumeInt(typ, b, &l.Height)
		case layoutRoomXSize:
			return consumeDouble(typ, b, &l.RoomXSize)
		case layoutRoomZSize:
			return consumeDouble(typ, b, &l.RoomZSize)
		case layoutEntry:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePoint(m, &l.Entry) })
		case layoutExit:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePoint(m, &l.Exit) })
		case layoutExitReached:
			var v int64
			n, err := consumeInt(typ, b, &v)
			l.ExitReached = v != 0
			return n, err
		case layoutExitPath:
			return consumeEmbedded(typ, b, pointInto(&l.ExitPath))
		case layoutRooms:
			return consumeEmbedded(typ, b, func(m []byte) error {
				var r dmn.Room
				if err := decodeRoom(m, &r); err != nil {
					return err
				}
				l.Rooms = append(l.Rooms, r)
				return nil
			})
		case layoutPassages:
			return consumeEmbedded(typ, b, func(m []byte) error {
				var p dmn.Passage
				if err := decodePassage(m, &p); err != nil {
					return err
				}
				l.Passages = append(l.Passages, p)
				return nil
			})
		case layoutSkipped:
			return consumeEmbedded(typ, b, pointInto(&l.Skipped))
		case layoutFailed:
			return consumeEmbedded(typ, b, pointInto(&l.Failed))
		case layoutCreatedAt:
			var nanos int64
			n, err := consumeInt(typ, b, &nanos)
			l.CreatedAt = time.Unix(0, nanos).UTC()
			return n, err
		case layoutRoute:
			return consumeEmbedded(typ, b, pointInto(&l.Route))
		case layoutPreview:
			return consumeString(typ, b, &l.Preview)
		}
		return 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	return l, nil
}

func encodePoint(p dmn.Point) []byte {
	var b []byte
	b = appendInt(b, 1, int64(p.X))
	b = appendInt(b, 2, int64(p.Y))
	return b
}

func decodePoint(b []byte, p *dmn.Point) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt(typ, b, &p.X)
		case 2:
			return consumeInt(typ, b, &p.Y)
		}
		return 0, nil
	})
}

func appendPoints(b []byte, num protowire.Number, points []dmn.Point) []byte {
	for _, p := range points {
		b = appendMessage(b, num, encodePoint(p))
	}
	return b
}

func pointInto(dst *[]dmn.Point) func([]byte) error {
	return func(m []byte) error {
		var p dmn.Point
		if err := decodePoint(m, &p); err != nil {
			return err
		}
		*dst = append(*dst, p)
		return nil
	}
}

func encodePosition(p dmn.Position) []byte {
	var b []byte
	b = appendDouble(b, 1, p.X)
	b = appendDouble(b, 2, p.Y)
	b = appendDouble(b, 3, p.Z)
	return b
}

func decodePosition(b []byte, p *dmn.Position) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &p.X)
		case 2:
			return consumeDouble(typ, b, &p.Y)
		case 3:
			return consumeDouble(typ, b, &p.Z)
		}
		return 0, nil
	})
}

func encodePassage(p dmn.Passage) []byte {
	var b []byte
	b = appendMessage(b, 1, encodePoint(p.From))
	b = appendMessage(b, 2, encodePoint(p.To))
	return b
}

func decodePassage(b []byte, p *dmn.Passage) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePoint(m, &p.From) })
		case 2:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePoint(m, &p.To) })
		}
		return 0, nil
	})
}

func encodeRoom(r dmn.Room) []byte {
	var b []byte
	b = appendUUID(b, roomID, r.ID)
	b = appendMessage(b, roomCell, encodePoint(r.Cell))
	b = protowire.AppendTag(b, roomCategory, protowire.BytesType)
	b = protowire.AppendString(b, r.Category)
	b = protowire.AppendTag(b, roomPrefab, protowire.BytesType)
	b = protowire.AppendString(b, r.Prefab)
	b = appendMessage(b, roomPosition, encodePosition(r.Position))
	return b
}

func decodeRoom(b []byte, r *dmn.Room) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case roomID:
			return consumeUUID(typ, b, &r.ID)
		case roomCell:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePoint(m, &r.Cell) })
		case roomCategory:
			return consumeString(typ, b, &r.Category)
		case roomPrefab:
			return consumeString(typ, b, &r.Prefab)
		case roomPosition:
			return consumeEmbedded(typ, b, func(m []byte) error { return decodePosition(m, &r.Position) })
		}
		return 0, nil
	})
}
