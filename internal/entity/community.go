package entity

import "time"

// Community is the tenant boundary. Every other table is keyed by its ID
// first so a whole tenant can be deleted range-wise.
type Community struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	DisplayName string
}
