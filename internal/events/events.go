package events

import (
	"encoding/json"
	"time"
)

// Event types published over the SSE stream.
const (
	TypeProgramCreated   = "program_created"
	TypeProgramDeleted   = "program_deleted"
	TypeProgramsImported = "programs_imported"
	TypeConfigUpdated    = "config_updated"
	TypePing             = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Make serializes an event envelope for the SSE stream.
func Make(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
