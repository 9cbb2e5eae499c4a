package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/John-Robertt/uniqgrep/internal/app"
	"github.com/John-Robertt/uniqgrep/internal/config"
	"github.com/John-Robertt/uniqgrep/internal/domain"
	"github.com/John-Robertt/uniqgrep/internal/match"
	"github.com/John-Robertt/uniqgrep/internal/report"
	"github.com/John-Robertt/uniqgrep/internal/scan"
	"github.com/John-Robertt/uniqgrep/internal/terms"
)

// 测试可替换：模拟读取失败。
var readFile = os.ReadFile

// SkipError 描述一次可恢复的跳过：文件（或目录）不计入任何命中，扫描继续。
type SkipError struct {
	Path   string
	Reason string // domain.SkipReasonDecode / SkipReasonRead / SkipReasonWalk
	Err    error
}

func (e *SkipError) Error() string {
	switch e.Reason {
	case domain.SkipReasonDecode:
		return fmt.Sprintf("スキップ: %s - エンコーディングエラー", e.Path)
	default:
		return fmt.Sprintf("エラー: %s - %v", e.Path, e.Err)
	}
}

func (e *SkipError) Unwrap() error { return e.Err }

// Execute 执行一次完整的运行：校验输入 → 读取检索词 → 遍历 → 计数 → 过滤 → 写报告。
//
// 返回的 error 只有两类：启动前置条件失败（*config.Error，此时不做任何扫描），
// 以及 ctx 取消/报告写入失败。单个文件的失败只会进入 RunReport.Skipped。
func Execute(ctx context.Context, eff config.EffectiveConfig, obs Observer) (domain.RunReport, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	obs.OnStart(eff)

	rr := domain.RunReport{
		Root:      eff.Root,
		TermsFile: eff.TermsFile,
		Output:    eff.Output,
		StartedAt: time.Now().UTC(),
	}
	finish := func(err error) (domain.RunReport, error) {
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr, err
	}

	if err := config.CheckInputs(eff); err != nil {
		return finish(err)
	}

	termList, err := terms.Load(eff.TermsFile)
	if err != nil {
		return finish(&config.Error{Code: config.ErrCodeTermsInvalid, Path: eff.TermsFile, Err: err})
	}
	rr.TermCount = len(termList)

	skip := func(e *SkipError) {
		rr.Skipped = append(rr.Skipped, domain.SkippedFile{Path: e.Path, Reason: e.Reason, Error: errString(e.Err)})
		obs.OnSkip(e)
	}

	scanStarted := time.Now()
	pruned := 0
	files, err := scan.Walk(eff.Root, scan.Options{
		Extensions:  eff.Extensions,
		ExcludeDirs: eff.ExcludeDirs,
		OnPrune: func(dir string) {
			pruned++
			obs.OnPrune(dir)
		},
		OnWalkError: func(path string, err error) {
			skip(&SkipError{Path: path, Reason: domain.SkipReasonWalk, Err: err})
		},
	})
	if err != nil {
		return finish(fmt.Errorf("走査に失敗しました: %w", err))
	}
	rr.FilesExamined = len(files)
	obs.OnPhaseDone("scan", map[string]any{
		"files":  len(files),
		"pruned": pruned,
	}, time.Since(scanStarted))

	// 第一阶段：完整建立命中表。
	countStarted := time.Now()
	counter := match.NewCounter(termList)
	hits := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		obs.OnFile(path)

		b, err := readFile(path)
		if err != nil {
			skip(&SkipError{Path: path, Reason: domain.SkipReasonRead, Err: err})
			continue
		}
		if !utf8.Valid(b) {
			skip(&SkipError{Path: path, Reason: domain.SkipReasonDecode, Err: errInvalidUTF8})
			continue
		}

		for _, h := range counter.Feed(path, string(b)) {
			hits += h.Count
			obs.OnHit(h)
		}
	}
	obs.OnPhaseDone("count", map[string]any{
		"files":   len(files),
		"skipped": len(rr.Skipped),
		"hits":    hits,
	}, time.Since(countStarted))

	// 第二阶段：过滤。
	reduceStarted := time.Now()
	occ := counter.Occurrences()
	rr.Counts = app.Counts(occ)
	rr.NotFound = app.NotFound(termList, occ)
	rr.Unique = app.Unique(occ)
	obs.OnPhaseDone("reduce", map[string]any{
		"hit":       len(rr.Counts),
		"not_found": len(rr.NotFound),
		"unique":    len(rr.Unique),
	}, time.Since(reduceStarted))

	writeStarted := time.Now()
	if err := report.Write(eff.Output, rr.Unique, eff.Lang); err != nil {
		return finish(err)
	}
	obs.OnPhaseDone("write", map[string]any{
		"output": eff.Output,
		"unique": len(rr.Unique),
	}, time.Since(writeStarted))

	return finish(nil)
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
