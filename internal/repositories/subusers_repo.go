package repositories

import (
	"context"

	"github.com/google/uuid"

	"tyremart/internal/models"
)

type SubUserRepository interface {
	Create(ctx context.Context, subuser *models.SubUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error)
	GetByEmail(ctx context.Context, email string) (*models.SubUser, error)
	Update(ctx context.Context, subuser *models.SubUser) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type subUserRepo struct {
	db Database
}

func NewSubUserRepository(db Database) SubUserRepository {
	return &subUserRepo{db: db}
}

const subUserColumns = `id, shop_name, email, password_hash, mobile_no, discount_percentage, city, is_active, distributor_id, created_at, updated_at`

func scanSubUser(row interface{ Scan(dest ...any) error }) (*models.SubUser, error) {
	s := &models.SubUser{}
	err := row.Scan(&s.ID, &s.ShopName, &s.Email, &s.PasswordHash, &s.MobileNo, &s.DiscountPercentage, &s.City, &s.IsActive, &s.DistributorID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

func (r *subUserRepo) Create(ctx context.Context, subuser *models.SubUser) error {
	query := `
		INSERT INTO subusers (id, shop_name, email, password_hash, mobile_no, discount_percentage, city, is_active, distributor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, subuser.ID, subuser.ShopName, subuser.Email, subuser.PasswordHash, subuser.MobileNo, subuser.DiscountPercentage, subuser.City, subuser.IsActive, subuser.DistributorID)
	return translateError(err)
}

func (r *subUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SubUser, error) {
	query := `SELECT ` + subUserColumns + ` FROM subusers WHERE id = $1`
	return scanSubUser(r.db.QueryRow(ctx, query, id))
}

func (r *subUserRepo) GetByEmail(ctx context.Context, email string) (*models.SubUser, error) {
	query := `SELECT ` + subUserColumns + ` FROM subusers WHERE email = $1`
	return scanSubUser(r.db.QueryRow(ctx, query, email))
}

func (r *subUserRepo) Update(ctx context.Context, subuser *models.SubUser) error {
	query := `
		UPDATE subusers
		SET shop_name = $1, email = $2, mobile_no = $3, discount_percentage = $4, city = $5, is_active = $6, distributor_id = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, subuser.ShopName, subuser.Email, subuser.MobileNo, subuser.DiscountPercentage, subuser.City, subuser.IsActive, subuser.DistributorID, subuser.ID)
	return translateError(err)
}

func (r *subUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subusers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *subUserRepo) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]*models.SubUser, error) {
	query := `SELECT ` + subUserColumns + ` FROM subusers WHERE distributor_id = $1 AND is_active = TRUE ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var subusers []*models.SubUser
	for rows.Next() {
		s, err := scanSubUser(rows)
		if err != nil {
			return nil, err
		}
		subusers = append(subusers, s)
	}
	return subusers, rows.Err()
}

func (r *subUserRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE subusers SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, passwordHash, id)
	return translateError(err)
}
