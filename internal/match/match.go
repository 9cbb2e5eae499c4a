// Package match 实现检索词的字面量计数。
//
// 匹配语义固定：区分大小写、按字面量（正则元字符不具特殊含义）、不重叠。
package match

import (
	"strings"

	"github.com/John-Robertt/uniqgrep/internal/domain"
)

// Count 返回 term 在 content 中不重叠出现的次数。
// 空 term 恒为 0（strings.Count 对空串会返回 rune 数+1，这里不沿用该语义）。
func Count(content, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(content, term)
}

// Hit 是一次“某 term 在某文件中命中 N 次”的结果。
type Hit struct {
	Term  string
	Path  string
	Count int
}

// Counter 把逐文件的计数累积到 domain.Occurrences 中。
//
// terms 按输入原样保存（包括重复行）：重复的 term 每一行都会单独计数，
// 命中会累积到同一个桶，因此重复出现在列表里的 term 不可能是“唯一”的。
type Counter struct {
	terms []string
	occ   *domain.Occurrences
}

func NewCounter(terms []string) *Counter {
	return &Counter{
		terms: append([]string(nil), terms...),
		occ:   domain.NewOccurrences(),
	}
}

// Feed 对一个文件的完整内容做计数，返回本文件的命中（按 terms 顺序，每行一条）。
func (c *Counter) Feed(path, content string) []Hit {
	var hits []Hit
	for _, t := range c.terms {
		n := Count(content, t)
		if n == 0 {
			continue
		}
		c.occ.Add(t, path, n)
		hits = append(hits, Hit{Term: t, Path: path, Count: n})
	}
	return hits
}

// Occurrences 返回累积结果。调用方在全部 Feed 完成后再做过滤。
func (c *Counter) Occurrences() *domain.Occurrences {
	return c.occ
}
