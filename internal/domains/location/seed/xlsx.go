package seed

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cột của sheet seed. Hàng đầu tiên là header và bị bỏ qua.
// Ô trống ở cột cha nghĩa là dùng lại giá trị của hàng trên (kiểu merged cell).
const (
	colProvince = iota
	colCity
	colDistrict
)

// ParseXLSX đọc sheet (rỗng = sheet đầu tiên) với các cột Province | City | District.
func ParseXLSX(r io.Reader, sheet string) ([]Region, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	b := newTreeBuilder()
	var province, city string
	for i, row := range rows[1:] {
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		if v := cell(colProvince); v != "" {
			province, city = v, ""
		}
		if v := cell(colCity); v != "" {
			city = v
		}
		district := cell(colDistrict)

		if province == "" {
			if city != "" || district != "" {
				return nil, fmt.Errorf("row %d: city/district without province", i+2)
			}
			continue
		}
		if district != "" && city == "" {
			return nil, fmt.Errorf("row %d: district %q without city", i+2, district)
		}

		b.add(province, city, district)
	}
	return b.regions(), nil
}

// treeBuilder gom các hàng phẳng thành cây, giữ thứ tự xuất hiện.
type treeBuilder struct {
	roots []*node
	index map[string]*node
}

type node struct {
	name     string
	children []*node
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{index: make(map[string]*node)}
}

func (b *treeBuilder) child(parent *node, key, name string) *node {
	if n, ok := b.index[key]; ok {
		return n
	}
	n := &node{name: name}
	b.index[key] = n
	if parent == nil {
		b.roots = append(b.roots, n)
	} else {
		parent.children = append(parent.children, n)
	}
	return n
}

func (b *treeBuilder) add(names ...string) {
	var parent *node
	key := ""
	for _, name := range names {
		if name == "" {
			return
		}
		key += "\x00" + name
		parent = b.child(parent, key, name)
	}
}

func (b *treeBuilder) regions() []Region {
	return toRegions(b.roots)
}

func toRegions(nodes []*node) []Region {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Region, 0, len(nodes))
	for i, n := range nodes {
		out = append(out, Region{
			Name:         n.name,
			DisplayOrder: i,
			Children:     toRegions(n.children),
		})
	}
	return out
}
