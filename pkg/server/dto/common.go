package dto

import (
	"errors"
	"strings"

	"github.com/growthmesh/refgraph/pkg/types"
)

// Result represents a generic API result
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// AnalyzeRequest asks for an analysis of a referral network. The rows
// may be supplied inline; when both slices are empty the server pulls
// the snapshot from its configured source instead.
type AnalyzeRequest struct {
	GroupID  string             `json:"group_id" binding:"required"`
	Users    []types.UserRow    `json:"users,omitempty"`
	Contacts []types.ContactRow `json:"contacts,omitempty"`
}

// Validate performs validation on AnalyzeRequest
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.GroupID) == "" {
		return errors.New("group_id cannot be empty")
	}
	return nil
}

// Inline reports whether the request carries its own snapshot rows.
func (r *AnalyzeRequest) Inline() bool {
	return len(r.Users) > 0 || len(r.Contacts) > 0
}

// Snapshot assembles the inline rows into a snapshot.
func (r *AnalyzeRequest) Snapshot() *types.Snapshot {
	return &types.Snapshot{Users: r.Users, Contacts: r.Contacts}
}

// AnalyzeResponse wraps a finished analysis payload.
type AnalyzeResponse struct {
	Success bool                   `json:"success"`
	GroupID string                 `json:"group_id"`
	Payload *types.AnalysisPayload `json:"payload"`
}
