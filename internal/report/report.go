// Package report 渲染并写出“只出现一次的检索词”报告文件。
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/John-Robertt/uniqgrep/internal/domain"
	"github.com/John-Robertt/uniqgrep/internal/infra/fsx"
)

const (
	LangJA = "ja"
	LangEN = "en"
)

// SeparatorWidth 是每个条目之后分隔线的宽度。
const SeparatorWidth = 50

// Labels 是报告中的本地化文本。结构（term 行、file 行、分隔线）不随语言变化。
type Labels struct {
	Term  string
	File  string
	Empty string
}

var labels = map[string]Labels{
	LangJA: {
		Term:  "検索語: ",
		File:  "ファイル: ",
		Empty: "1回だけ出現する検索語は見つかりませんでした。",
	},
	LangEN: {
		Term:  "Term: ",
		File:  "File: ",
		Empty: "No term occurring exactly once was found.",
	},
}

// LabelsFor 返回 lang 对应的文本；未知语言回退到日语。
func LabelsFor(lang string) Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[LangJA]
}

// ValidLang 判断 lang 是否受支持。
func ValidLang(lang string) bool {
	_, ok := labels[lang]
	return ok
}

// Render 生成报告内容（UTF-8，LF 换行）。
// unique 为空时只有一行“未找到”的说明。
func Render(unique []domain.UniqueTerm, lang string) []byte {
	l := LabelsFor(lang)

	var buf bytes.Buffer
	if len(unique) == 0 {
		buf.WriteString(l.Empty)
		buf.WriteByte('\n')
		return buf.Bytes()
	}

	sep := strings.Repeat("-", SeparatorWidth)
	for _, u := range unique {
		fmt.Fprintf(&buf, "%s%s\n", l.Term, u.Term)
		fmt.Fprintf(&buf, "%s%s\n", l.File, u.File)
		buf.WriteString(sep)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write 渲染并原子写入 path（已存在则覆盖）。
func Write(path string, unique []domain.UniqueTerm, lang string) error {
	if err := fsx.WriteFile(path, Render(unique, lang)); err != nil {
		return fmt.Errorf("写入报告 %q 失败：%w", path, err)
	}
	return nil
}
