package domain

import (
	"time"
)

const (
	// SkipReasonDecode 表示文件不是合法的 UTF-8 文本。
	SkipReasonDecode = "decode"
	// SkipReasonRead 表示读取文件时发生的其他 I/O 错误。
	SkipReasonRead = "read"
	// SkipReasonWalk 表示目录无法遍历（其内容全部跳过）。
	SkipReasonWalk = "walk"
)

// RunReport 是一次运行的完整结果（--json 输出的结构）。
// 报告文件（report.txt 一类）只使用其中的 Unique。
type RunReport struct {
	Root      string `json:"root"`
	TermsFile string `json:"terms_file"`
	Output    string `json:"output"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// FilesExamined 是遍历到的目标扩展名文件数（含被跳过的文件）。
	FilesExamined int `json:"files_examined"`
	// TermCount 是输入检索词的行数（重复行分别计数）。
	TermCount int `json:"term_count"`

	Summary ReportSummary `json:"summary"`

	Counts   []TermCount   `json:"counts"`
	NotFound []string      `json:"not_found"`
	Unique   []UniqueTerm  `json:"unique"`
	Skipped  []SkippedFile `json:"skipped"`
}

type ReportSummary struct {
	FilesExamined int `json:"files_examined"`
	FilesSkipped  int `json:"files_skipped"`
	Terms         int `json:"terms"`
	Hit           int `json:"hit"`
	NotFound      int `json:"not_found"`
	Unique        int `json:"unique"`
}

// TermCount 是某个 term 在整棵树中的总命中次数。
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// UniqueTerm 是总命中次数恰好为 1 的 term 及其所在文件。
type UniqueTerm struct {
	Term string `json:"term"`
	File string `json:"file"`
}

type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC
// 2) nil 切片归一为空切片（JSON 输出 [] 而不是 null）
// 3) summary 由各列表计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Counts == nil {
		r.Counts = []TermCount{}
	}
	if r.NotFound == nil {
		r.NotFound = []string{}
	}
	if r.Unique == nil {
		r.Unique = []UniqueTerm{}
	}
	if r.Skipped == nil {
		r.Skipped = []SkippedFile{}
	}

	r.Summary = ReportSummary{
		FilesExamined: r.FilesExamined,
		FilesSkipped:  len(r.Skipped),
		Terms:         r.TermCount,
		Hit:           len(r.Counts),
		NotFound:      len(r.NotFound),
		Unique:        len(r.Unique),
	}
}
