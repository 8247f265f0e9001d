// Package audit keeps an append-only trail of administrative changes to the
// catalog and to user privileges.
package audit

import "time"

// Action describes what was done.
type Action string

const (
	ActionAdminGranted    Action = "admin_granted"
	ActionAdminRevoked    Action = "admin_revoked"
	ActionUserCreated     Action = "user_created"
	ActionMovieCreated    Action = "movie_created"
	ActionMovieUpdated    Action = "movie_updated"
	ActionMovieDeleted    Action = "movie_deleted"
	ActionDatasetImported Action = "dataset_imported"
)

// ActorCLI names changes made from the command line rather than a session.
const ActorCLI = "cli"

// Entry is a single audit trail record. ActorID is zero for CLI changes.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ActorID   int64     `json:"actor_id,omitempty"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
}
