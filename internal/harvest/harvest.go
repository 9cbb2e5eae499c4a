// Package harvest 从 HTML 文件中收集候选检索词（class 记号与 id 值）。
//
// 这只用于生成检索词列表；计数本身始终是纯文本的字面量匹配。
package harvest

import (
	"bytes"
	"errors"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/uniqgrep/internal/scan"
)

// DefaultExtensions 是收集时解析的文件类型。
var DefaultExtensions = []string{".html"}

var errInvalidUTF8 = errors.New("invalid UTF-8")

// FromHTML 解析一段 HTML，返回其中出现的 class 记号与 id 值（文档顺序，去重）。
func FromHTML(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, 32)
	seen := make(map[string]bool, 32)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	doc.Find("[id], [class]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			add(strings.TrimSpace(id))
		}
		if cls, ok := s.Attr("class"); ok {
			for _, c := range strings.Fields(cls) {
				add(c)
			}
		}
	})
	return out, nil
}

// Options 控制 Collect 的遍历范围，零值字段使用默认值。
type Options struct {
	Extensions  []string
	ExcludeDirs []string

	OnPrune func(dir string)
	// OnSkip 在文件无法读取/解析时调用；收集继续。
	OnSkip func(path string, err error)
}

// Result 是一次收集的结果。
type Result struct {
	// Terms 已排序、去重。
	Terms   []string
	Files   int
	Skipped int
}

// Collect 遍历 root 下的 HTML 文件（node_modules 等目录同样被排除），合并所有候选词。
func Collect(root string, opts Options) (Result, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	files, err := scan.Walk(root, scan.Options{
		Extensions:  exts,
		ExcludeDirs: opts.ExcludeDirs,
		OnPrune:     opts.OnPrune,
		OnWalkError: opts.OnSkip,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{Files: len(files)}
	set := make(map[string]bool, 256)
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err == nil && !utf8.Valid(b) {
			err = errInvalidUTF8
		}
		var found []string
		if err == nil {
			found, err = FromHTML(b)
		}
		if err != nil {
			res.Skipped++
			if opts.OnSkip != nil {
				opts.OnSkip(path, err)
			}
			continue
		}
		for _, t := range found {
			set[t] = true
		}
	}

	res.Terms = make([]string, 0, len(set))
	for t := range set {
		res.Terms = append(res.Terms, t)
	}
	sort.Strings(res.Terms)
	return res, nil
}

// Format 把检索词渲染为检索词文件格式（一行一个）。
func Format(terms []string) []byte {
	var buf bytes.Buffer
	for _, t := range terms {
		buf.WriteString(t)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
