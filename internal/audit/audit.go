// Package audit records each normalization pass: when it ran, what
// triggered it, and the data-quality diagnostics it produced. The graph
// data itself is never stored here.
package audit

import (
	"time"
)

// Actor identifies what triggered a load pass.
type Actor string

const (
	ActorCLI    Actor = "cli"
	ActorAPI    Actor = "api"
	ActorSystem Actor = "system"
)

// Action describes what kind of pass ran.
type Action string

const (
	ActionLoaded   Action = "snapshot_loaded"
	ActionReloaded Action = "snapshot_reloaded"
)

// Pass is one recorded normalization pass.
type Pass struct {
	ID              string       `json:"id"`
	Timestamp       time.Time    `json:"timestamp"`
	Actor           Actor        `json:"actor"`
	Action          Action       `json:"action"`
	Source          string       `json:"source"` // snapshot path or glob
	TeamCount       int          `json:"team_count"`
	UserCount       int          `json:"user_count"`
	DiagnosticCount int          `json:"diagnostic_count"`
	Diagnostics     []Diagnostic `json:"diagnostics,omitempty"`
}

// Diagnostic is a persisted copy of a soft data-quality finding from
// one pass.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Field   string `json:"field"`
	Ref     string `json:"ref"`
}
