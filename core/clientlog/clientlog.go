package clientlog

import "time"

// Entry is one log line reported by the browser client. Entries are
// relayed into the server log so frontend failures show up next to
// backend ones.
type Entry struct {
	Level     string            `json:"level" validate:"required,oneof=debug info warn error"`
	Message   string            `json:"message" validate:"required,max=2000"`
	Timestamp time.Time         `json:"timestamp"`
	Context   map[string]string `json:"context"`
}

type Batch struct {
	Entries []Entry `json:"entries" validate:"required,min=1,max=50,dive"`
}
