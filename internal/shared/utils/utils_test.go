package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := map[string]string{
		"Nguyễn Nhật Ánh":   "nguyen-nhat-anh",
		"  Đà Nẵng  ":       "da-nang",
		"Apple & Co.":       "apple-co",
		"multi   space--x":  "multi-space-x",
		"ĐƯỜNG Láng":        "duong-lang",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%a\%b\_c%`, ContainsPattern(" a%b_c "))
}

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	sql, args := w.SQL()
	assert.Empty(t, sql)
	assert.Empty(t, args)

	w.AddRaw("is_deleted = false")
	w.Add("country_id = $%d", int64(7))
	w.Add("name ILIKE $%d", "%x%")
	limit := w.NextArg(20)

	sql, args = w.SQL()
	assert.Equal(t, "WHERE is_deleted = false AND country_id = $1 AND name ILIKE $2", sql)
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{int64(7), "%x%", 20}, args)
}
