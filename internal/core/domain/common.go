package domain

import "time"

// AuditFields holds standard timestamp information for domain entities.
// Both fields are server-assigned; callers never supply them.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
