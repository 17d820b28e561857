package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TyrePattern struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TyreModelID uuid.UUID       `json:"tyre_model_id" db:"tyre_model_id"`
	BrandID     *uuid.UUID      `json:"brand_id" db:"brand_id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	ImageObject *string         `json:"-" db:"image_object"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PatternView is the API representation of a pattern: the price is the
// caller-specific final price, and the image is exposed as a presigned URL
// rather than the raw object key.
type PatternView struct {
	ID          uuid.UUID       `json:"id"`
	TyreModelID uuid.UUID       `json:"tyre_model_id"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url,omitempty"`
}
