package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDirListed    Type = "dir.listed"
	TypeDirCreated   Type = "dir.created"
	TypeItemRenamed  Type = "item.renamed"
	TypeItemsMoved   Type = "items.moved"
	TypeItemsTrashed Type = "items.trashed"
	TypeUndoApplied  Type = "undo.applied"
	TypeRootsChanged Type = "roots.changed"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

func New(eventType Type, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
