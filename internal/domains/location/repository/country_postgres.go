package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/shared/utils"
)

const pgUniqueViolation = "23505"

const countryColumns = `id, name, numeric_iso_code, two_letter_iso_code, three_letter_iso_code,
	display_order, is_published, is_billing_enabled, is_shipping_enabled,
	is_city_enabled, is_district_enabled, created_at, updated_at`

type postgresCountryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCountryRepository(pool *pgxpool.Pool) CountryRepository {
	return &postgresCountryRepository{pool: pool}
}

func scanCountry(row pgx.Row, c *model.Country) error {
	return row.Scan(
		&c.ID, &c.Name, &c.NumericIsoCode, &c.TwoLetterIsoCode, &c.ThreeLetterIsoCode,
		&c.DisplayOrder, &c.IsPublished, &c.IsBillingEnabled, &c.IsShippingEnabled,
		&c.IsCityEnabled, &c.IsDistrictEnabled, &c.CreatedAt, &c.UpdatedAt,
	)
}

// mapCountryConstraint đổi unique violation của 3 index ISO sang domain error
func mapCountryConstraint(err error, c *model.Country) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "uniq_countries_numeric":
		return model.NewDuplicateCountryCode(FieldNumericIsoCode, fmt.Sprint(deref(c.NumericIsoCode)))
	case "uniq_countries_three_letter":
		return model.NewDuplicateCountryCode(FieldThreeLetterIsoCode, deref(c.ThreeLetterIsoCode))
	default:
		return model.NewDuplicateCountryCode(FieldTwoLetterIsoCode, deref(c.TwoLetterIsoCode))
	}
}

func (r *postgresCountryRepository) Create(ctx context.Context, c *model.Country) (int64, error) {
	query := `
		INSERT INTO countries (name, numeric_iso_code, two_letter_iso_code, three_letter_iso_code,
			display_order, is_published, is_billing_enabled, is_shipping_enabled,
			is_city_enabled, is_district_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.NumericIsoCode, c.TwoLetterIsoCode, c.ThreeLetterIsoCode,
		c.DisplayOrder, c.IsPublished, c.IsBillingEnabled, c.IsShippingEnabled,
		c.IsCityEnabled, c.IsDistrictEnabled,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert country: %w", mapCountryConstraint(err, c))
	}
	return c.ID, nil
}

func (r *postgresCountryRepository) Update(ctx context.Context, c *model.Country) error {
	query := `
		UPDATE countries
		SET name = $2, numeric_iso_code = $3, two_letter_iso_code = $4, three_letter_iso_code = $5,
			display_order = $6, is_published = $7, is_billing_enabled = $8, is_shipping_enabled = $9,
			is_city_enabled = $10, is_district_enabled = $11, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.NumericIsoCode, c.TwoLetterIsoCode, c.ThreeLetterIsoCode,
		c.DisplayOrder, c.IsPublished, c.IsBillingEnabled, c.IsShippingEnabled,
		c.IsCityEnabled, c.IsDistrictEnabled,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewCountryNotFound(c.ID)
	}
	if err != nil {
		return fmt.Errorf("update country %d: %w", c.ID, mapCountryConstraint(err, c))
	}
	return nil
}

func (r *postgresCountryRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = $1 AND is_deleted = false`

	var c model.Country
	if err := scanCountry(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewCountryNotFound(id)
		}
		return nil, fmt.Errorf("get country %d: %w", id, err)
	}
	return &c, nil
}

func (r *postgresCountryRepository) List(ctx context.Context, req model.CountryQueryRequest) ([]model.CountryResponse, int64, error) {
	var where utils.WhereBuilder
	where.AddRaw("c.is_deleted = false")
	if req.Search.Name != "" {
		where.Add("c.name ILIKE $%d", utils.ContainsPattern(req.Search.Name))
	}
	whereSQL, args := where.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM countries c `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count countries: %w", err)
	}

	limit := where.NextArg(req.Limit)
	offset := where.NextArg(req.Offset())
	_, args = where.SQL()

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.numeric_iso_code, c.two_letter_iso_code, c.three_letter_iso_code,
			c.display_order, c.is_published, c.is_billing_enabled, c.is_shipping_enabled,
			c.is_city_enabled, c.is_district_enabled, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM state_or_provinces s WHERE s.country_id = c.id AND s.is_deleted = false)
		FROM countries c
		%s
		ORDER BY c.display_order, c.name
		LIMIT %s OFFSET %s
	`, whereSQL, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	items := []model.CountryResponse{}
	for rows.Next() {
		var item model.CountryResponse
		c := &item.Country
		if err := rows.Scan(
			&c.ID, &c.Name, &c.NumericIsoCode, &c.TwoLetterIsoCode, &c.ThreeLetterIsoCode,
			&c.DisplayOrder, &c.IsPublished, &c.IsBillingEnabled, &c.IsShippingEnabled,
			&c.IsCityEnabled, &c.IsDistrictEnabled, &c.CreatedAt, &c.UpdatedAt,
			&item.StateOrProvinceCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan country: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate countries: %w", err)
	}
	return items, total, nil
}

func (r *postgresCountryRepository) ListAll(ctx context.Context) ([]model.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE is_deleted = false ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all countries: %w", err)
	}
	defer rows.Close()

	countries := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := scanCountry(rows, &c); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *postgresCountryRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE countries SET is_deleted = true, updated_at = NOW() WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete country %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewCountryNotFound(id)
	}
	return nil
}

func (r *postgresCountryRepository) IsoCodeExists(ctx context.Context, field string, value any, excludeID int64) (bool, error) {
	if !validIsoField(field) {
		return false, fmt.Errorf("unknown iso field %q", field)
	}
	query := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM countries WHERE %s = $1 AND id <> $2 AND is_deleted = false)`, field)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", field, err)
	}
	return exists, nil
}

func (r *postgresCountryRepository) CountProvinces(ctx context.Context, countryID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM state_or_provinces WHERE country_id = $1 AND is_deleted = false`, countryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count provinces of country %d: %w", countryID, err)
	}
	return n, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
