package domain

import "context"

// Event is an audit record of a completed mutation.
type Event struct {
	Type    string
	Payload map[string]any
}

type EventBus interface {
	Publish(ctx context.Context, e Event)
}
