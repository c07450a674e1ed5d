// Package event handles notification of data changes without direct
// dependency between the data manager and its observers.
package event

import (
	"sync"

	"go.uber.org/zap"
)

// EventType represents the type of event
type EventType int

const (
	UserAdded EventType = iota
	UserSelected
	UserDeleted
	UserLoggedOut
	ListAdded
	ListUpdated
	ListDeleted
	ItemsReplaced
	ItemMoved
	SnapshotImported
)

// String returns the event type name for logging.
func (t EventType) String() string {
	switch t {
	case UserAdded:
		return "UserAdded"
	case UserSelected:
		return "UserSelected"
	case UserDeleted:
		return "UserDeleted"
	case UserLoggedOut:
		return "UserLoggedOut"
	case ListAdded:
		return "ListAdded"
	case ListUpdated:
		return "ListUpdated"
	case ListDeleted:
		return "ListDeleted"
	case ItemsReplaced:
		return "ItemsReplaced"
	case ItemMoved:
		return "ItemMoved"
	case SnapshotImported:
		return "SnapshotImported"
	default:
		return "Unknown"
	}
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *zap.SugaredLogger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *zap.SugaredLogger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// publishing goroutine; a panicking handler is recovered and logged so one
// observer cannot take down the session.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, handler := range em.subscribers[event.Type] {
		func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					em.logger.Errorw("Panic in event handler",
						"event", event.Type.String(), "panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
