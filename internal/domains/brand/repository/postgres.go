package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/brand/model"
	"shop-backend/internal/shared/utils"
)

const brandColumns = `id, name, slug, description, is_published, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanBrand(row pgx.Row, b *model.Brand) error {
	return row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.IsPublished, &b.CreatedAt, &b.UpdatedAt)
}

// mapSlugConflict: uniq_brands_slug violation → BRAND_SLUG_ALREADY_EXISTS
func mapSlugConflict(err error, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.NewDuplicateSlug(slug)
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Brand) error {
	query := `
		INSERT INTO brands (name, slug, description, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, b.Name, b.Slug, b.Description, b.IsPublished).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert brand: %w", mapSlugConflict(err, b.Slug))
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Brand) error {
	query := `
		UPDATE brands SET name = $2, slug = $3, description = $4, is_published = $5, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query, b.ID, b.Name, b.Slug, b.Description, b.IsPublished).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewBrandNotFound(b.ID)
	}
	if err != nil {
		return fmt.Errorf("update brand %d: %w", b.ID, mapSlugConflict(err, b.Slug))
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1 AND is_deleted = false`
	var b model.Brand
	if err := scanBrand(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBrandNotFound(id)
		}
		return nil, fmt.Errorf("get brand %d: %w", id, err)
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, req model.BrandQueryRequest) ([]model.Brand, int64, error) {
	var where utils.WhereBuilder
	where.AddRaw("is_deleted = false")
	if req.Search.Name != "" {
		where.Add("name ILIKE $%d", utils.ContainsPattern(req.Search.Name))
	}
	if req.Search.IsPublished != nil {
		where.Add("is_published = $%d", *req.Search.IsPublished)
	}
	clause, args := where.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM brands `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count brands: %w", err)
	}

	limit := where.NextArg(req.Limit)
	offset := where.NextArg(req.Offset())
	_, args = where.SQL()
	query := fmt.Sprintf(`SELECT %s FROM brands %s ORDER BY name, id LIMIT %s OFFSET %s`,
		brandColumns, clause, limit, offset)

	brands, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]model.Brand, error) {
	return r.query(ctx, `SELECT `+brandColumns+` FROM brands
		WHERE is_deleted = false AND is_published = true ORDER BY name, id`)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...any) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM brands WHERE slug = $1 AND id <> $2 AND is_deleted = false)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check brand slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE brands SET is_deleted = true, updated_at = NOW() WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete brand %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewBrandNotFound(id)
	}
	return nil
}
