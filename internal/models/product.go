package models

import "time"

// Product is a catalog item redeemable for loyalty points.
// The catalog is read-only from this service's point of view.
type Product struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	CostInPoints int64     `gorm:"not null" json:"cost_in_points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
