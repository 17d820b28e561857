package repositories

import (
	"context"

	"github.com/google/uuid"

	"tyremart/internal/models"
)

type TyreModelRepository interface {
	Create(ctx context.Context, tyreModel *models.TyreModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TyreModel, error)
	Update(ctx context.Context, tyreModel *models.TyreModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.TyreModel, error)
}

type tyreModelRepo struct {
	db Database
}

func NewTyreModelRepository(db Database) TyreModelRepository {
	return &tyreModelRepo{db: db}
}

func (r *tyreModelRepo) Create(ctx context.Context, tyreModel *models.TyreModel) error {
	query := `
		INSERT INTO tyre_models (id, width, ratio, rim, tyre_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tyreModel.ID, tyreModel.Width, tyreModel.Ratio, tyreModel.Rim, tyreModel.TyreType)
	return translateError(err)
}

func (r *tyreModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TyreModel, error) {
	tyreModel := &models.TyreModel{}
	query := `
		SELECT id, width, ratio, rim, tyre_type, created_at, updated_at
		FROM tyre_models
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tyreModel.ID, &tyreModel.Width, &tyreModel.Ratio, &tyreModel.Rim, &tyreModel.TyreType, &tyreModel.CreatedAt, &tyreModel.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return tyreModel, nil
}

func (r *tyreModelRepo) Update(ctx context.Context, tyreModel *models.TyreModel) error {
	query := `
		UPDATE tyre_models
		SET width = $1, ratio = $2, rim = $3, tyre_type = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, tyreModel.Width, tyreModel.Ratio, tyreModel.Rim, tyreModel.TyreType, tyreModel.ID)
	return translateError(err)
}

// Delete removes the size model; its patterns cascade at the schema level.
func (r *tyreModelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tyre_models WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *tyreModelRepo) List(ctx context.Context, limit, offset int) ([]*models.TyreModel, error) {
	query := `
		SELECT id, width, ratio, rim, tyre_type, created_at, updated_at
		FROM tyre_models
		ORDER BY width, ratio, rim
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var tyreModels []*models.TyreModel
	for rows.Next() {
		tyreModel := &models.TyreModel{}
		if err := rows.Scan(&tyreModel.ID, &tyreModel.Width, &tyreModel.Ratio, &tyreModel.Rim, &tyreModel.TyreType, &tyreModel.CreatedAt, &tyreModel.UpdatedAt); err != nil {
			return nil, err
		}
		tyreModels = append(tyreModels, tyreModel)
	}
	return tyreModels, rows.Err()
}
