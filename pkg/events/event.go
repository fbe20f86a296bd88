package events

import "time"

// Event is implemented by every message that crosses the dispatch bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DISPATCH_REQUESTED").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeDispatchRequested = "DISPATCH_REQUESTED"
	TypeDispatchCompleted = "DISPATCH_COMPLETED"
)

// DispatchRequested queues one share-message run. Targets are already
// expanded from the requested mode, so the consumer renders without knowing
// the mode grammar.
type DispatchRequested struct {
	JobID       string    `json:"job_id"`
	Mode        string    `json:"mode"`
	Date        string    `json:"date"`
	Targets     []string  `json:"targets"`
	RequestedAt time.Time `json:"requested_at"`
}

func (e DispatchRequested) EventType() string {
	return TypeDispatchRequested
}

func (e DispatchRequested) Timestamp() time.Time {
	return e.RequestedAt
}

// DispatchedMessage is one rendered message inside a completed run.
type DispatchedMessage struct {
	Target string `json:"target"`
	Text   string `json:"text"`
	Chars  int    `json:"chars"`
}

// DispatchCompleted announces a finished run with its rendered messages.
// Sender automations subscribe to this to deliver the texts.
type DispatchCompleted struct {
	JobID       string              `json:"job_id"`
	Mode        string              `json:"mode"`
	Date        string              `json:"date"`
	Messages    []DispatchedMessage `json:"messages"`
	CompletedAt time.Time           `json:"completed_at"`
}

func (e DispatchCompleted) EventType() string {
	return TypeDispatchCompleted
}

func (e DispatchCompleted) Timestamp() time.Time {
	return e.CompletedAt
}
