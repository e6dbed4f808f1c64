package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Execer is the subset of pgxpool.Pool / pgx.Tx used by EnsureSchema.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// schemaStatements tạo bảng và index nếu chưa có.
// Sibling uniqueness chỉ áp dụng cho row chưa xóa (partial index).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(450) NOT NULL,
		numeric_iso_code INT NULL,
		two_letter_iso_code VARCHAR(2) NULL,
		three_letter_iso_code VARCHAR(3) NULL,
		display_order INT NOT NULL DEFAULT 0,
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		is_billing_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		is_shipping_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		is_city_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		is_district_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_countries_two_letter
		ON countries (two_letter_iso_code) WHERE NOT is_deleted AND two_letter_iso_code IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_countries_three_letter
		ON countries (three_letter_iso_code) WHERE NOT is_deleted AND three_letter_iso_code IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_countries_numeric
		ON countries (numeric_iso_code) WHERE NOT is_deleted AND numeric_iso_code IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS state_or_provinces (
		id BIGSERIAL PRIMARY KEY,
		country_id BIGINT NOT NULL REFERENCES countries(id),
		parent_id BIGINT NULL REFERENCES state_or_provinces(id),
		name VARCHAR(450) NOT NULL,
		code VARCHAR(450) NULL,
		display_order INT NOT NULL DEFAULT 0,
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		level SMALLINT NOT NULL DEFAULT 0 CHECK (level BETWEEN 0 AND 3),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (parent_id IS NULL OR parent_id <> id),
		CHECK ((level = 0) = (parent_id IS NULL))
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_state_or_provinces_sibling_name
		ON state_or_provinces (country_id, COALESCE(parent_id, 0), name) WHERE NOT is_deleted`,
	`CREATE INDEX IF NOT EXISTS idx_state_or_provinces_parent
		ON state_or_provinces (parent_id) WHERE NOT is_deleted`,
	`CREATE INDEX IF NOT EXISTS idx_state_or_provinces_country_order
		ON state_or_provinces (country_id, display_order, name) WHERE NOT is_deleted`,

	`CREATE TABLE IF NOT EXISTS user_addresses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		country_id BIGINT NOT NULL REFERENCES countries(id),
		state_or_province_id BIGINT NOT NULL REFERENCES state_or_provinces(id),
		contact_name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		address_line1 VARCHAR(450) NOT NULL,
		address_line2 VARCHAR(450) NULL,
		zip_code VARCHAR(20) NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_addresses_user ON user_addresses (user_id) WHERE NOT is_deleted`,
	`CREATE INDEX IF NOT EXISTS idx_user_addresses_location
		ON user_addresses (state_or_province_id) WHERE NOT is_deleted`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_addresses_default
		ON user_addresses (user_id) WHERE is_default AND NOT is_deleted`,

	`CREATE TABLE IF NOT EXISTS brands (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(450) NOT NULL,
		slug VARCHAR(450) NOT NULL,
		description TEXT NULL,
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_brands_slug ON brands (slug) WHERE NOT is_deleted`,

	`CREATE TABLE IF NOT EXISTS feedbacks (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NULL,
		contact VARCHAR(450) NULL,
		content VARCHAR(450) NOT NULL,
		type SMALLINT NOT NULL DEFAULT 0,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema chạy các CREATE ... IF NOT EXISTS theo thứ tự.
func EnsureSchema(ctx context.Context, db Execer) error {
	for i, stmt := range schemaStatements {
		log.Debug().Int("idx", i).Msg("schema_exec")
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	log.Info().Int("statements", len(schemaStatements)).Msg("schema ensured")
	return nil
}
