package app

import (
	"github.com/John-Robertt/uniqgrep/internal/domain"
)

// Unique 从完整的命中表中取出总命中次数恰好为 1 的 term。
// 输出顺序沿用 occ 的首次命中顺序。
func Unique(occ *domain.Occurrences) []domain.UniqueTerm {
	out := make([]domain.UniqueTerm, 0, 16)
	for _, t := range occ.Terms() {
		paths := occ.Paths(t)
		if len(paths) != 1 {
			continue
		}
		out = append(out, domain.UniqueTerm{Term: t, File: paths[0]})
	}
	return out
}

// Counts 返回每个命中过的 term 的总次数（首次命中顺序）。
func Counts(occ *domain.Occurrences) []domain.TermCount {
	out := make([]domain.TermCount, 0, occ.Len())
	for _, t := range occ.Terms() {
		out = append(out, domain.TermCount{Term: t, Count: occ.Count(t)})
	}
	return out
}

// NotFound 返回一次都没有命中的 term（按输入顺序，去重）。
func NotFound(terms []string, occ *domain.Occurrences) []string {
	out := make([]string, 0, 16)
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		if seen[t] || occ.Has(t) {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
