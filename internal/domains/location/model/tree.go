package model

// ProvinceTree là snapshot cây của một country: arena các node theo id,
// parent trỏ bằng id, children được index khi build.
// Struct này được lưu nguyên vào cache (JSON) nên chỉ dùng field exported.
type ProvinceTree struct {
	CountryID int64             `json:"country_id"`
	Nodes     []Province        `json:"nodes"`
	Roots     []int64           `json:"roots"`
	Children  map[int64][]int64 `json:"children"`

	index map[int64]int
}

// TreeNode là một node đã render (đệ quy) cho API.
type TreeNode struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Code     *string     `json:"code,omitempty"`
	Level    Level       `json:"level"`
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree index nodes trong một lượt. nodes phải đã sắp theo display order, name
// (thứ tự của ListByCountry); thứ tự đó được giữ cho roots và children.
// Node có parent không nằm trong nodes bị bỏ khỏi Roots/Children nhưng vẫn tra được bằng Get.
func BuildTree(countryID int64, nodes []Province) *ProvinceTree {
	t := &ProvinceTree{
		CountryID: countryID,
		Nodes:     nodes,
		Roots:     []int64{},
		Children:  make(map[int64][]int64),
	}
	t.reindex()

	for _, n := range nodes {
		if n.ParentID == nil {
			t.Roots = append(t.Roots, n.ID)
			continue
		}
		if _, ok := t.index[*n.ParentID]; ok {
			t.Children[*n.ParentID] = append(t.Children[*n.ParentID], n.ID)
		}
	}
	return t
}

func (t *ProvinceTree) reindex() {
	t.index = make(map[int64]int, len(t.Nodes))
	for i := range t.Nodes {
		t.index[t.Nodes[i].ID] = i
	}
}

// Get trả về node theo id. Gọi được trên tree vừa decode từ cache.
func (t *ProvinceTree) Get(id int64) (*Province, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.Nodes[i], true
}

// Len là số node trong snapshot.
func (t *ProvinceTree) Len() int { return len(t.Nodes) }

// ByLevel lọc node theo level, giữ thứ tự của snapshot.
func (t *ProvinceTree) ByLevel(level Level) []ProvinceItem {
	items := []ProvinceItem{}
	for _, n := range t.Nodes {
		if n.Level == level {
			items = append(items, ProvinceItem{ID: n.ID, ParentID: n.ParentID, Name: n.Name, Level: n.Level})
		}
	}
	return items
}

// Ancestors trả về chuỗi từ gốc xuống tới id (bao gồm id).
// Dừng khi gặp parent không có trong snapshot.
func (t *ProvinceTree) Ancestors(id int64) []Province {
	var chain []Province
	seen := make(map[int64]bool)
	for cur, ok := t.Get(id); ok && !seen[cur.ID]; {
		seen[cur.ID] = true
		chain = append(chain, *cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = t.Get(*cur.ParentID)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Render dựng cây lồng nhau từ roots. maxDepth = 2 cho province+city,
// 3 cho province/city/district; maxDepth <= 0 là không giới hạn.
func (t *ProvinceTree) Render(maxDepth int) []*TreeNode {
	out := make([]*TreeNode, 0, len(t.Roots))
	for _, id := range t.Roots {
		if n := t.render(id, 1, maxDepth); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (t *ProvinceTree) render(id int64, depth, maxDepth int) *TreeNode {
	p, ok := t.Get(id)
	if !ok {
		return nil
	}
	node := &TreeNode{ID: p.ID, Name: p.Name, Code: p.Code, Level: p.Level}
	if maxDepth > 0 && depth >= maxDepth {
		return node
	}
	for _, childID := range t.Children[id] {
		if child := t.render(childID, depth+1, maxDepth); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}
