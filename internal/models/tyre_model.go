package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tyre construction types
const (
	TyreTypeRadial      = "radial"
	TyreTypeNylon       = "nylon"
	TyreTypeNotSelected = "not_selected"
)

type TyreModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Width     string    `json:"width" db:"width"`
	Ratio     string    `json:"ratio" db:"ratio"`
	Rim       string    `json:"rim" db:"rim"`
	TyreType  string    `json:"tyre_type" db:"tyre_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SizeLabel renders the trade designation, e.g. 195/55R16 for radial construction.
func (t *TyreModel) SizeLabel() string {
	if t.TyreType == TyreTypeRadial {
		return fmt.Sprintf("%s/%sR%s", t.Width, t.Ratio, t.Rim)
	}
	return fmt.Sprintf("%s/%s/%s", t.Width, t.Ratio, t.Rim)
}

// ValidTyreType reports whether the given construction type is one of the
// supported enum values.
func ValidTyreType(t string) bool {
	switch t {
	case TyreTypeRadial, TyreTypeNylon, TyreTypeNotSelected:
		return true
	}
	return false
}
