package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/address/model"
	"shop-backend/pkg/database"
)

const addressColumns = `id, user_id, country_id, state_or_province_id, contact_name, phone,
	address_line1, address_line2, zip_code, is_default, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{
		pool: pool,
	}
}

func scanAddress(row pgx.Row, addr *model.Address) error {
	return row.Scan(
		&addr.ID, &addr.UserID, &addr.CountryID, &addr.StateOrProvinceID,
		&addr.ContactName, &addr.Phone, &addr.AddressLine1, &addr.AddressLine2,
		&addr.ZipCode, &addr.IsDefault, &addr.CreatedAt, &addr.UpdatedAt,
	)
}

// clearDefault bỏ cờ default của user, trừ keepID
func clearDefault(ctx context.Context, tx pgx.Tx, userID, keepID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE user_addresses SET is_default = false, updated_at = NOW()
		WHERE user_id = $1 AND id <> $2 AND is_default = true AND is_deleted = false
	`, userID, keepID)
	return err
}

// Create inserts a new address; IsDefault thì chạy chung transaction với clearDefault
func (r *postgresRepository) Create(ctx context.Context, addr *model.Address) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if addr.IsDefault {
			if err := clearDefault(ctx, tx, addr.UserID, uuid.Nil); err != nil {
				return err
			}
		}
		query := `
			INSERT INTO user_addresses
			(user_id, country_id, state_or_province_id, contact_name, phone, address_line1, address_line2,
			 zip_code, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`
		return tx.QueryRow(ctx, query,
			addr.UserID, addr.CountryID, addr.StateOrProvinceID, addr.ContactName, addr.Phone,
			addr.AddressLine1, addr.AddressLine2, addr.ZipCode, addr.IsDefault,
		).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)
	})
	if err != nil {
		return model.NewCreateAddressError(err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, addr *model.Address) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if addr.IsDefault {
			if err := clearDefault(ctx, tx, addr.UserID, addr.ID); err != nil {
				return err
			}
		}
		query := `
			UPDATE user_addresses
			SET country_id = $3, state_or_province_id = $4, contact_name = $5, phone = $6,
				address_line1 = $7, address_line2 = $8, zip_code = $9, is_default = $10, updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND is_deleted = false
			RETURNING updated_at
		`
		return tx.QueryRow(ctx, query,
			addr.ID, addr.UserID, addr.CountryID, addr.StateOrProvinceID, addr.ContactName, addr.Phone,
			addr.AddressLine1, addr.AddressLine2, addr.ZipCode, addr.IsDefault,
		).Scan(&addr.UpdatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewAddressNotFound()
	}
	if err != nil {
		return model.NewUpdateAddressError(err)
	}
	return nil
}

// GetByID retrieves an address by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM user_addresses WHERE id = $1 AND is_deleted = false`

	var addr model.Address
	if err := scanAddress(r.pool.QueryRow(ctx, query, id), &addr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAddressNotFound()
		}
		return nil, fmt.Errorf("get address %s: %w", id, err)
	}
	return &addr, nil
}

// ListByUser retrieves all addresses for a user, default trước
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM user_addresses
		WHERE user_id = $1 AND is_deleted = false
		ORDER BY is_default DESC, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var addr model.Address
		if err := scanAddress(rows, &addr); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_addresses SET is_deleted = true, is_default = false, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
	`, id)
	if err != nil {
		return model.NewDeleteAddressError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAddressNotFound()
	}
	return nil
}

func (r *postgresRepository) IsProvinceReferenced(ctx context.Context, provinceID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_addresses WHERE state_or_province_id = $1 AND is_deleted = false)`,
		provinceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check address references for province %d: %w", provinceID, err)
	}
	return exists, nil
}

func (r *postgresRepository) IsCountryReferenced(ctx context.Context, countryID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_addresses WHERE country_id = $1 AND is_deleted = false)`,
		countryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check address references for country %d: %w", countryID, err)
	}
	return exists, nil
}
