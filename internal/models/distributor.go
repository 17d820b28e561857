package models

import (
	"time"

	"github.com/google/uuid"
)

type Distributor struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ShopName     string     `json:"shop_name" db:"shop_name"`
	Address      string     `json:"address" db:"address"`
	Email        *string    `json:"email" db:"email"`
	MobileNo     string     `json:"mobile_no" db:"mobile_no"`
	OTPCode      *string    `json:"-" db:"otp_code"` // Never serialize in JSON
	OTPCreatedAt *time.Time `json:"-" db:"otp_created_at"`
	EndDate      time.Time  `json:"end_date" db:"end_date"`
	Brands       []Brand    `json:"brands,omitempty" db:"-"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// HasOTP reports whether a passcode is currently on file. A code without an
// issuance timestamp is never valid for login.
func (d *Distributor) HasOTP() bool {
	return d.OTPCode != nil && d.OTPCreatedAt != nil
}
