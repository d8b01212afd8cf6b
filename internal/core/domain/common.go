package domain

import "time"

// AuditFields records who created and last touched an entity. The by-fields
// hold user IDs, or a job name for records written by background jobs.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
