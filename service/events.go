package service

import (
	"sync"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/google/uuid"
)

// Event types published while a layout is generated.
const (
	EventRoomPlaced = "room_placed"
	EventExitMarked = "exit_marked"
	EventCompleted  = "completed"
	EventFailed     = "failed"
)

const subscriberBuffer = 256

// Event reports generation progress to subscribers.
type Event struct {
	Type     string        `json:"type"`
	LayoutID uuid.UUID     `json:"layout_id"`
	OwnerID  uuid.UUID     `json:"owner_id"`
	RoomID   uuid.UUID     `json:"room_id,omitempty"`
	Prefab   string        `json:"prefab,omitempty"`
	Cell     *dmn.Point    `json:"cell,omitempty"`
	Position *dmn.Position `json:"position,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Broker fans events out to subscribers. Slow subscribers miss events instead of
// blocking generation.
type Broker struct {
	subscribers map[chan Event]struct{}
	sync.RWMutex
}

// NewBroker creates a broker with no subscribers.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[chan Event]struct{})}
}

// Subscribe returns a channel receiving every event published from now on.
func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.Lock()
	b.subscribers[ch] = struct{}{}
	b.Unlock()
	return ch
}

// Unsubscribe removes and closes the channel.
func (b *Broker) Unsubscribe(ch chan Event) {
	b.Lock()
	defer b.Unlock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Publish delivers the event to every subscriber with room in its buffer.
func (b *Broker) Publish(e Event) {
	b.RLock()
	defer b.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}
