// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Success    bool            `json:"success"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Query filters audit entries. Zero fields do not filter.
type Query struct {
	From     time.Time
	To       time.Time
	Actor    string
	Resource string
	Size     int
}
