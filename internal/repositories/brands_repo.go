package repositories

import (
	"context"

	"github.com/google/uuid"

	"tyremart/internal/models"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	GetByCode(ctx context.Context, code string) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Brand, error)
}

type brandRepo struct {
	db Database
}

func NewBrandRepository(db Database) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, brand.ID, brand.Code, brand.Name)
	return translateError(err)
}

func (r *brandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM brands
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Code, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return brand, nil
}

func (r *brandRepo) GetByCode(ctx context.Context, code string) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM brands
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&brand.ID, &brand.Code, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	query := `
		UPDATE brands
		SET code = $1, name = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, brand.Code, brand.Name, brand.ID)
	return translateError(err)
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM brands WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *brandRepo) List(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	query := `
		SELECT id, code, name, created_at, updated_at
		FROM brands
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Code, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}
