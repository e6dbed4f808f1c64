package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// ContainsPattern build pattern cho ILIKE '%...%', escape % _ và \.
func ContainsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// WhereBuilder gom điều kiện WHERE và placeholder $n theo thứ tự.
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add thêm clause dạng "name ILIKE $%d"; %d được thay bằng index của arg.
func (w *WhereBuilder) Add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

// AddRaw thêm clause không có tham số (vd: "is_deleted = false").
func (w *WhereBuilder) AddRaw(clause string) {
	w.clauses = append(w.clauses, clause)
}

// SQL trả về "WHERE ..." (hoặc rỗng) cùng args.
func (w *WhereBuilder) SQL() (string, []any) {
	if len(w.clauses) == 0 {
		return "", w.args
	}
	return "WHERE " + JoinWithAnd(w.clauses), w.args
}

// NextArg trả về placeholder kế tiếp, dùng cho LIMIT/OFFSET sau WHERE.
func (w *WhereBuilder) NextArg(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}
