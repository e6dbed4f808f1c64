package model

import "time"

type Brand struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BrandItem là phần public của brand (GET /brands, được cache)
type BrandItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (b *Brand) ToItem() BrandItem {
	return BrandItem{ID: b.ID, Name: b.Name, Slug: b.Slug}
}
