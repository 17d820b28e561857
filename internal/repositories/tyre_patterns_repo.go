package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tyremart/internal/models"
)

// PatternFilter narrows a pattern listing. BrandIDs only applies when
// ScopeToBrands is set; an empty scoped set matches nothing.
type PatternFilter struct {
	Width         string
	Ratio         string
	Rim           string
	TyreModelID   *uuid.UUID
	ScopeToBrands bool
	BrandIDs      []uuid.UUID
	Limit         int
	Offset        int
}

type TyrePatternRepository interface {
	Create(ctx context.Context, pattern *models.TyrePattern) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TyrePattern, error)
	Update(ctx context.Context, pattern *models.TyrePattern) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PatternFilter) ([]*models.TyrePattern, error)
	SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error
}

type tyrePatternRepo struct {
	db Database
}

func NewTyrePatternRepository(db Database) TyrePatternRepository {
	return &tyrePatternRepo{db: db}
}

const patternColumns = `p.id, p.tyre_model_id, p.brand_id, p.name, p.price, p.stock, p.image_object, p.created_at, p.updated_at`

func scanPattern(row interface{ Scan(dest ...any) error }) (*models.TyrePattern, error) {
	p := &models.TyrePattern{}
	err := row.Scan(&p.ID, &p.TyreModelID, &p.BrandID, &p.Name, &p.Price, &p.Stock, &p.ImageObject, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *tyrePatternRepo) Create(ctx context.Context, pattern *models.TyrePattern) error {
	query := `
		INSERT INTO tyre_patterns (id, tyre_model_id, brand_id, name, price, stock, image_object, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, pattern.ID, pattern.TyreModelID, pattern.BrandID, pattern.Name, pattern.Price, pattern.Stock, pattern.ImageObject)
	return translateError(err)
}

func (r *tyrePatternRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TyrePattern, error) {
	query := `SELECT ` + patternColumns + ` FROM tyre_patterns p WHERE p.id = $1`
	return scanPattern(r.db.QueryRow(ctx, query, id))
}

func (r *tyrePatternRepo) Update(ctx context.Context, pattern *models.TyrePattern) error {
	query := `
		UPDATE tyre_patterns
		SET tyre_model_id = $1, brand_id = $2, name = $3, price = $4, stock = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, pattern.TyreModelID, pattern.BrandID, pattern.Name, pattern.Price, pattern.Stock, pattern.ID)
	return translateError(err)
}

func (r *tyrePatternRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tyre_patterns WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *tyrePatternRepo) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	query := `UPDATE tyre_patterns SET image_object = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, objectName, id)
	return translateError(err)
}

func (r *tyrePatternRepo) List(ctx context.Context, filter PatternFilter) ([]*models.TyrePattern, error) {
	if filter.ScopeToBrands && len(filter.BrandIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + patternColumns + ` FROM tyre_patterns p JOIN tyre_models t ON t.id = p.tyre_model_id WHERE 1=1`
	args := []any{}

	if filter.Width != "" {
		args = append(args, filter.Width)
		query += fmt.Sprintf(" AND t.width = $%d", len(args))
	}
	if filter.Ratio != "" {
		args = append(args, filter.Ratio)
		query += fmt.Sprintf(" AND t.ratio = $%d", len(args))
	}
	if filter.Rim != "" {
		args = append(args, filter.Rim)
		query += fmt.Sprintf(" AND t.rim = $%d", len(args))
	}
	if filter.TyreModelID != nil {
		args = append(args, *filter.TyreModelID)
		query += fmt.Sprintf(" AND p.tyre_model_id = $%d", len(args))
	}
	if filter.ScopeToBrands {
		args = append(args, filter.BrandIDs)
		query += fmt.Sprintf(" AND p.brand_id = ANY($%d)", len(args))
	}

	limit, offset := filter.Limit, filter.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var patterns []*models.TyrePattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}
