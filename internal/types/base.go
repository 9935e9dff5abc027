package types

import "time"

// BaseModel carries the audit timestamps shared by persisted records.
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
