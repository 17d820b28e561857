package models

import (
	"time"

	"github.com/google/uuid"
)

type SubUser struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	ShopName           string     `json:"shop_name" db:"shop_name"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"` // Never serialize in JSON
	MobileNo           string     `json:"mobile_no" db:"mobile_no"`
	DiscountPercentage float64    `json:"discount_percentage" db:"discount_percentage"`
	City               *string    `json:"city" db:"city"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	DistributorID      *uuid.UUID `json:"distributor_id" db:"distributor_id"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
