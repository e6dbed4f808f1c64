package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/feedback/model"
	"shop-backend/internal/shared/utils"
)

type Repository interface {
	Create(ctx context.Context, f *model.Feedback) error
	List(ctx context.Context, req model.FeedbackQueryRequest) ([]model.Feedback, int64, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ========================================
// POSTGRES
// ========================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, f *model.Feedback) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedbacks (user_id, contact, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, f.UserID, f.Contact, f.Content, int16(f.Type)).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, req model.FeedbackQueryRequest) ([]model.Feedback, int64, error) {
	var where utils.WhereBuilder
	where.AddRaw("is_deleted = false")
	if req.Search.Content != "" {
		where.Add("content ILIKE $%d", utils.ContainsPattern(req.Search.Content))
	}
	if req.Search.Type != nil {
		where.Add("type = $%d", int16(*req.Search.Type))
	}
	clause, args := where.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedbacks `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedbacks: %w", err)
	}

	limit := where.NextArg(req.Limit)
	offset := where.NextArg(req.Offset())
	_, args = where.SQL()
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, user_id, contact, content, type, created_at, updated_at
		FROM feedbacks %s
		ORDER BY created_at DESC, id DESC
		LIMIT %s OFFSET %s`, clause, limit, offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	items := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		var t int16
		if err := rows.Scan(&f.ID, &f.UserID, &f.Contact, &f.Content, &t, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan feedback: %w", err)
		}
		f.Type = model.FeedbackType(t)
		items = append(items, f)
	}
	return items, total, rows.Err()
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE feedbacks SET is_deleted = true, updated_at = NOW() WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete feedback %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewFeedbackNotFound(id)
	}
	return nil
}

// ========================================
// MEMORY
// ========================================

type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []*model.Feedback
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, f *model.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = r.nextID
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	stored := *f
	r.items = append(r.items, &stored)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, req model.FeedbackQueryRequest) ([]model.Feedback, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	content := strings.ToLower(req.Search.Content)
	all := []model.Feedback{}
	for _, f := range r.items {
		if f.IsDeleted {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(f.Content), content) {
			continue
		}
		if req.Search.Type != nil && f.Type != *req.Search.Type {
			continue
		}
		all = append(all, *f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := req.Offset()
	if start >= len(all) {
		return []model.Feedback{}, total, nil
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ID == id && !f.IsDeleted {
			f.IsDeleted = true
			f.UpdatedAt = time.Now()
			return nil
		}
	}
	return model.NewFeedbackNotFound(id)
}
