package ptr

import "github.com/google/uuid"

// Event types for pointer lifecycle notifications.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventShared
	EventWeakAttached
	EventPromoted
	EventResourceDestroyed
	EventBlockFreed
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventShared:
		return "shared"
	case EventWeakAttached:
		return "weak_attached"
	case EventPromoted:
		return "promoted"
	case EventResourceDestroyed:
		return "resource_destroyed"
	case EventBlockFreed:
		return "block_freed"
	default:
		return "unknown"
	}
}

// Event records one control-block transition. Shared and Weak hold the
// counter values after the transition.
type Event struct {
	Block  uuid.UUID
	Type   EventType
	Shared uint
	Weak   uint
}

// Observer receives notifications about pointer lifecycle events.
type Observer interface {
	OnPointerEvent(Event)
}

// The observer list is package state, unguarded like everything else here:
// subscribe and unsubscribe from the same goroutine the pointers live on.
var observers []Observer

// Subscribe adds an observer for lifecycle events.
func Subscribe(o Observer) {
	observers = append(observers, o)
}

// Unsubscribe removes an observer.
func Unsubscribe(o Observer) {
	for i, obs := range observers {
		if obs == o {
			observers = append(observers[:i], observers[i+1:]...)
			return
		}
	}
}

func emit(c *control, t EventType) {
	if len(observers) == 0 {
		return
	}
	e := Event{
		Block:  c.id,
		Type:   t,
		Shared: c.shared,
		Weak:   c.weak,
	}
	for _, o := range observers {
		o.OnPointerEvent(e)
	}
}
