package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

// accountRow is the storage shape; clinician-only columns are nullable and
// materialize as a profile only for clinician accounts.
type accountRow struct {
	ID             uuid.UUID      `db:"id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Role           string         `db:"role"`
	LicenseNumber  sql.NullString `db:"license_number"`
	Specialization sql.NullString `db:"specialization"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

func (row *accountRow) toModel() *model.Account {
	account := &model.Account{
		Base: model.Base{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			DeletedAt: row.DeletedAt,
		},
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         model.AccountRole(row.Role),
	}
	if account.Role == model.RoleClinician {
		account.Clinician = &model.ClinicianProfile{
			LicenseNumber:  row.LicenseNumber.String,
			Specialization: row.Specialization.String,
		}
	}
	return account
}

func clinicianColumns(account *model.Account) (license, specialization sql.NullString) {
	if account.Clinician != nil {
		license = sql.NullString{String: account.Clinician.LicenseNumber, Valid: true}
		specialization = sql.NullString{String: account.Clinician.Specialization, Valid: true}
	}
	return license, specialization
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, first_name, last_name, email, password_hash,
			role, license_number, specialization, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	license, specialization := clinicianColumns(account)

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.Role,
		license,
		specialization,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return apperrors.Storage("create account", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash,
			   role, license_number, specialization, created_at, updated_at, deleted_at
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL
	`
	var row accountRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, apperrors.Storage("get account", err)
	}
	return row.toModel(), nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash,
			   role, license_number, specialization, created_at, updated_at, deleted_at
		FROM accounts
		WHERE email = $1 AND deleted_at IS NULL
	`
	var row accountRow
	err := r.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, apperrors.Storage("get account by email", err)
	}
	return row.toModel(), nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET first_name = $1, last_name = $2, email = $3, password_hash = $4,
			license_number = $5, specialization = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`
	account.UpdatedAt = time.Now()
	license, specialization := clinicianColumns(account)

	result, err := r.db.ExecContext(ctx, query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		license,
		specialization,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return apperrors.Storage("update account", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("update account", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

// Delete marks the account deleted. Rows are never hard-deleted in normal operation.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accounts
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return apperrors.Storage("delete account", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("delete account", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]*model.Account, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash,
			   role, license_number, specialization, created_at, updated_at, deleted_at
		FROM accounts
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var rows []accountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.Storage("list accounts", err)
	}

	accounts := make([]*model.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, rows[i].toModel())
	}
	return accounts, nil
}
