package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tyremart/internal/models"
)

type DistributorRepository interface {
	Create(ctx context.Context, distributor *models.Distributor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Distributor, error)
	GetByEmail(ctx context.Context, email string) (*models.Distributor, error)
	GetByMobile(ctx context.Context, mobileNo string) (*models.Distributor, error)
	Update(ctx context.Context, distributor *models.Distributor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Distributor, error)

	// OTP state. SetOTP overwrites any prior unconsumed code; ClearOTP returns
	// the record to the no-code-issued state.
	SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error
	ClearOTP(ctx context.Context, id uuid.UUID) error

	// Brand assignments (many-to-many).
	ListBrands(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error)
	AssignBrands(ctx context.Context, distributorID uuid.UUID, brandIDs []uuid.UUID) error
}

type distributorRepo struct {
	db Database
}

func NewDistributorRepository(db Database) DistributorRepository {
	return &distributorRepo{db: db}
}

const distributorColumns = `id, shop_name, address, email, mobile_no, otp_code, otp_created_at, end_date, created_at, updated_at`

func scanDistributor(row interface{ Scan(dest ...any) error }) (*models.Distributor, error) {
	d := &models.Distributor{}
	err := row.Scan(&d.ID, &d.ShopName, &d.Address, &d.Email, &d.MobileNo, &d.OTPCode, &d.OTPCreatedAt, &d.EndDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return d, nil
}

func (r *distributorRepo) Create(ctx context.Context, distributor *models.Distributor) error {
	query := `
		INSERT INTO distributors (id, shop_name, address, email, mobile_no, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, distributor.ID, distributor.ShopName, distributor.Address, distributor.Email, distributor.MobileNo, distributor.EndDate)
	return translateError(err)
}

func (r *distributorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors WHERE id = $1`
	return scanDistributor(r.db.QueryRow(ctx, query, id))
}

func (r *distributorRepo) GetByEmail(ctx context.Context, email string) (*models.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors WHERE email = $1`
	return scanDistributor(r.db.QueryRow(ctx, query, email))
}

func (r *distributorRepo) GetByMobile(ctx context.Context, mobileNo string) (*models.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors WHERE mobile_no = $1`
	return scanDistributor(r.db.QueryRow(ctx, query, mobileNo))
}

func (r *distributorRepo) Update(ctx context.Context, distributor *models.Distributor) error {
	query := `
		UPDATE distributors
		SET shop_name = $1, address = $2, email = $3, mobile_no = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, distributor.ShopName, distributor.Address, distributor.Email, distributor.MobileNo, distributor.EndDate, distributor.ID)
	return translateError(err)
}

// Delete removes the distributor. Subusers cascade at the schema level
// (ON DELETE CASCADE on subusers.distributor_id).
func (r *distributorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM distributors WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *distributorRepo) List(ctx context.Context, limit, offset int) ([]*models.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var distributors []*models.Distributor
	for rows.Next() {
		d, err := scanDistributor(rows)
		if err != nil {
			return nil, err
		}
		distributors = append(distributors, d)
	}
	return distributors, rows.Err()
}

func (r *distributorRepo) SetOTP(ctx context.Context, id uuid.UUID, code string, issuedAt time.Time) error {
	query := `
		UPDATE distributors
		SET otp_code = $1, otp_created_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, code, issuedAt, id)
	return translateError(err)
}

func (r *distributorRepo) ClearOTP(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE distributors
		SET otp_code = NULL, otp_created_at = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

func (r *distributorRepo) ListBrands(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error) {
	query := `
		SELECT b.id, b.code, b.name, b.created_at, b.updated_at
		FROM brands b
		JOIN distributor_brands db ON db.brand_id = b.id
		WHERE db.distributor_id = $1
		ORDER BY b.name
	`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Code, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

// AssignBrands replaces the distributor's allowed brand set.
func (r *distributorRepo) AssignBrands(ctx context.Context, distributorID uuid.UUID, brandIDs []uuid.UUID) error {
	deleteQuery := `DELETE FROM distributor_brands WHERE distributor_id = $1`
	if _, err := r.db.Exec(ctx, deleteQuery, distributorID); err != nil {
		return translateError(err)
	}
	insertQuery := `INSERT INTO distributor_brands (distributor_id, brand_id) VALUES ($1, $2)`
	for _, brandID := range brandIDs {
		if _, err := r.db.Exec(ctx, insertQuery, distributorID, brandID); err != nil {
			return translateError(err)
		}
	}
	return nil
}
