package serve

import (
	"encoding/json"

	"github.com/rcsb/molpreset/pkg/motif"
	"github.com/rcsb/molpreset/pkg/types"
)

// Request is one incoming NDJSON (or websocket) message.
type Request struct {
	// ID correlates the response; the server generates one when the
	// client leaves it empty.
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"` // "resolve" | "motif_query" | "export" | "close"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ResolvePayload asks for a preset plan. Params is the wire form
// consumed by preset.UnmarshalParams ({"kind": ..., ...}).
type ResolvePayload struct {
	EntryID string          `json:"entry_id"`
	Params  json.RawMessage `json:"params"`
}

// MotifQueryPayload asks for a motif search query.
type MotifQueryPayload struct {
	EntryID string         `json:"entry_id"`
	Targets []types.Target `json:"targets"`
}

// MotifQueryData is the motif_query response body. Query is null
// when the submission was rejected (empty, oversized, or mixed-entry
// picks); Aborted then carries the reason.
type MotifQueryData struct {
	Query   *motif.Query `json:"query,omitempty"`
	Aborted string       `json:"aborted,omitempty"`
}

// ExportPayload asks for filtered entry files.
type ExportPayload struct {
	EntryIDs []string `json:"entry_ids"`
}

// ExportData is the export response body. Data is base64 on the wire
// (encoding/json []byte behavior).
type ExportData struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// Response is one outgoing message.
type Response struct {
	ID      string          `json:"id,omitempty"`
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | request type | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the body of the "ready" hello.
type ReadyData struct {
	Version string `json:"version"`
}
