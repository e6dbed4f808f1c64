package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/shared/utils"
)

const provinceColumns = `s.id, s.country_id, s.parent_id, s.name, s.code, s.display_order,
	s.is_published, s.level, s.created_at, s.updated_at`

type postgresProvinceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProvinceRepository(pool *pgxpool.Pool) ProvinceRepository {
	return &postgresProvinceRepository{pool: pool}
}

func scanProvince(row pgx.Row, p *model.Province, extra ...any) error {
	dest := []any{
		&p.ID, &p.CountryID, &p.ParentID, &p.Name, &p.Code, &p.DisplayOrder,
		&p.IsPublished, &p.Level, &p.CreatedAt, &p.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// mapProvinceConstraint: partial unique index (country_id, parent, name) -> DuplicateSibling
func mapProvinceConstraint(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return model.NewDuplicateSibling(name)
	}
	return err
}

func (r *postgresProvinceRepository) Create(ctx context.Context, p *model.Province) (int64, error) {
	query := `
		INSERT INTO state_or_provinces (country_id, parent_id, name, code, display_order, is_published, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.CountryID, p.ParentID, p.Name, p.Code, p.DisplayOrder, p.IsPublished, int16(p.Level),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert province: %w", mapProvinceConstraint(err, p.Name))
	}
	return p.ID, nil
}

func (r *postgresProvinceRepository) Update(ctx context.Context, p *model.Province) error {
	query := `
		UPDATE state_or_provinces
		SET parent_id = $2, name = $3, code = $4, display_order = $5, is_published = $6, level = $7, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.ID, p.ParentID, p.Name, p.Code, p.DisplayOrder, p.IsPublished, int16(p.Level),
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewProvinceNotFound(p.ID)
	}
	if err != nil {
		return fmt.Errorf("update province %d: %w", p.ID, mapProvinceConstraint(err, p.Name))
	}
	return nil
}

func (r *postgresProvinceRepository) GetByID(ctx context.Context, id int64) (*model.Province, error) {
	query := `SELECT ` + provinceColumns + ` FROM state_or_provinces s WHERE s.id = $1 AND s.is_deleted = false`

	var p model.Province
	if err := scanProvince(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProvinceNotFound(id)
		}
		return nil, fmt.Errorf("get province %d: %w", id, err)
	}
	return &p, nil
}

func (r *postgresProvinceRepository) GetDetail(ctx context.Context, id int64) (*model.ProvinceResponse, error) {
	query := `
		SELECT ` + provinceColumns + `, parent.name
		FROM state_or_provinces s
		LEFT JOIN state_or_provinces parent ON parent.id = s.parent_id
		WHERE s.id = $1 AND s.is_deleted = false
	`
	var res model.ProvinceResponse
	if err := scanProvince(r.pool.QueryRow(ctx, query, id), &res.Province, &res.ParentName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProvinceNotFound(id)
		}
		return nil, fmt.Errorf("get province detail %d: %w", id, err)
	}
	res.LevelName = res.Level.String()
	return &res, nil
}

func (r *postgresProvinceRepository) ListByCountry(ctx context.Context, countryID int64) ([]model.Province, error) {
	query := `
		SELECT ` + provinceColumns + `
		FROM state_or_provinces s
		WHERE s.country_id = $1 AND s.is_deleted = false
		ORDER BY s.display_order, s.name, s.id
	`
	rows, err := r.pool.Query(ctx, query, countryID)
	if err != nil {
		return nil, fmt.Errorf("list provinces of country %d: %w", countryID, err)
	}
	defer rows.Close()

	nodes := []model.Province{}
	for rows.Next() {
		var p model.Province
		if err := scanProvince(rows, &p); err != nil {
			return nil, fmt.Errorf("scan province: %w", err)
		}
		nodes = append(nodes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provinces: %w", err)
	}
	return nodes, nil
}

func (r *postgresProvinceRepository) List(ctx context.Context, countryID int64, req model.ProvinceQueryRequest) ([]model.ProvinceResponse, int64, error) {
	var where utils.WhereBuilder
	where.AddRaw("s.is_deleted = false")
	where.Add("s.country_id = $%d", countryID)
	if req.Search.Name != "" {
		where.Add("s.name ILIKE $%d", utils.ContainsPattern(req.Search.Name))
	}
	if req.Search.Code != "" {
		where.Add("s.code ILIKE $%d", utils.ContainsPattern(req.Search.Code))
	}
	if req.Search.ParentID != nil {
		where.Add("s.parent_id = $%d", *req.Search.ParentID)
	}
	if len(req.Search.Levels) > 0 {
		levels := make([]int64, len(req.Search.Levels))
		for i, l := range req.Search.Levels {
			levels[i] = int64(l)
		}
		where.Add("s.level = ANY($%d)", pq.Array(levels))
	}
	whereSQL, args := where.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM state_or_provinces s `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count provinces: %w", err)
	}

	limit := where.NextArg(req.Limit)
	offset := where.NextArg(req.Offset())
	_, args = where.SQL()

	query := fmt.Sprintf(`
		SELECT %s, parent.name
		FROM state_or_provinces s
		LEFT JOIN state_or_provinces parent ON parent.id = s.parent_id
		%s
		ORDER BY s.display_order, s.name, s.id
		LIMIT %s OFFSET %s
	`, provinceColumns, whereSQL, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	items := []model.ProvinceResponse{}
	for rows.Next() {
		var item model.ProvinceResponse
		if err := scanProvince(rows, &item.Province, &item.ParentName); err != nil {
			return nil, 0, fmt.Errorf("scan province: %w", err)
		}
		item.LevelName = item.Level.String()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate provinces: %w", err)
	}
	return items, total, nil
}

func (r *postgresProvinceRepository) SiblingExists(ctx context.Context, countryID int64, parentID *int64, name string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM state_or_provinces
			WHERE country_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND name = $3
				AND id <> $4 AND is_deleted = false
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, countryID, parentID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sibling %q: %w", name, err)
	}
	return exists, nil
}

func (r *postgresProvinceRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM state_or_provinces WHERE parent_id = $1 AND is_deleted = false)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check children of %d: %w", id, err)
	}
	return exists, nil
}

func (r *postgresProvinceRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE state_or_provinces SET is_deleted = true, updated_at = NOW() WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete province %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewProvinceNotFound(id)
	}
	return nil
}
