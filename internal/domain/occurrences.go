package domain

// Occurrences 记录 term -> 命中文件路径列表。
//
// 约束：
// - 每一次命中追加一次路径（同一文件命中 3 次 => 3 条相同路径）
// - Terms() 的顺序是“首次命中”的顺序，保证报告输出可复现
type Occurrences struct {
	order []string
	paths map[string][]string
}

func NewOccurrences() *Occurrences {
	return &Occurrences{paths: make(map[string][]string, 64)}
}

// Add 为 term 追加 n 次 path；n<=0 时不做任何事（不会产生空桶）。
func (o *Occurrences) Add(term, path string, n int) {
	if n <= 0 {
		return
	}
	cur, ok := o.paths[term]
	if !ok {
		o.order = append(o.order, term)
	}
	for i := 0; i < n; i++ {
		cur = append(cur, path)
	}
	o.paths[term] = cur
}

// Terms 返回至少命中一次的 term（首次命中顺序）。
func (o *Occurrences) Terms() []string {
	return append([]string(nil), o.order...)
}

// Paths 返回 term 的命中路径（副本）。
func (o *Occurrences) Paths(term string) []string {
	return append([]string(nil), o.paths[term]...)
}

func (o *Occurrences) Count(term string) int {
	return len(o.paths[term])
}

func (o *Occurrences) Has(term string) bool {
	_, ok := o.paths[term]
	return ok
}

// Len 返回命中过的 term 个数。
func (o *Occurrences) Len() int {
	return len(o.order)
}
