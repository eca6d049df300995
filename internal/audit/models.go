package audit

import "time"

// Event is emitted from closure orchestration to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	Action         Action    `json:"action"`
	OrganizationID string    `json:"organizationId"`
	ArchiveID      string    `json:"archiveId,omitempty"`
	ActorID        string    `json:"actorId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

type Action string

const (
	ActionClosurePreviewed Action = "closure_previewed"
	ActionClosureRefused   Action = "closure_refused"
	ActionClosureInitiated Action = "closure_initiated"
	ActionArchivePurged    Action = "archive_purged"
)
