package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/John-Robertt/uniqgrep/internal/app/run"
	"github.com/John-Robertt/uniqgrep/internal/config"
	"github.com/John-Robertt/uniqgrep/internal/domain"
	"github.com/John-Robertt/uniqgrep/internal/logger"
	"github.com/John-Robertt/uniqgrep/internal/match"
)

var _ run.Observer = (*consoleObserver)(nil)

// consoleObserver 把 run 层的事件写成控制台日志（stderr）。
type consoleObserver struct {
	log *logger.ConsoleLogger
}

func newConsoleObserver(log *logger.ConsoleLogger) *consoleObserver {
	return &consoleObserver{log: log}
}

func (o *consoleObserver) OnStart(eff config.EffectiveConfig) {
	cfg := eff.ConfigFile
	if cfg == "" {
		cfg = "(なし)"
	}
	o.log.Debugf("設定: root=%s terms=%s output=%s", eff.Root, eff.TermsFile, eff.Output)
	o.log.Debugf("設定: extensions=%s exclude_dirs=%s lang=%s config=%s",
		formatList(eff.Extensions), formatList(eff.ExcludeDirs), eff.Lang, cfg,
	)
}

func (o *consoleObserver) OnPrune(dir string) {
	o.log.Infof("%s フォルダをスキップします: %s", filepath.Base(dir), dir)
}

func (o *consoleObserver) OnFile(path string) {
	o.log.Debugf("ファイル検索中: %s", path)
}

func (o *consoleObserver) OnHit(hit match.Hit) {
	o.log.Infof("ヒット: '%s' がファイル '%s' に %d回見つかりました", hit.Term, hit.Path, hit.Count)
}

func (o *consoleObserver) OnSkip(err *run.SkipError) {
	o.log.Warnf("%s", err.Error())
}

func (o *consoleObserver) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	o.log.Debugf("%s: %s (%s)", name, formatFields(fields), formatShortDuration(dur))
}

// emitSummary 输出运行摘要（全部 info 级别）。
func emitSummary(log *logger.ConsoleLogger, rr domain.RunReport) {
	log.Infof("===== 検索結果サマリー =====")
	log.Infof("検査したファイル数: %d", rr.FilesExamined)
	if n := len(rr.Skipped); n > 0 {
		log.Infof("スキップしたファイル数: %d", n)
	}
	log.Infof("検索語の総数: %d", rr.TermCount)

	log.Infof("各検索語の出現回数:")
	for _, c := range rr.Counts {
		log.Infof("'%s': %d回", c.Term, c.Count)
	}

	if len(rr.NotFound) > 0 {
		log.Infof("見つからなかった検索語:")
		for _, t := range rr.NotFound {
			log.Infof("'%s'", t)
		}
	}

	if len(rr.Unique) > 0 {
		log.Infof("%d個の一意の検索語が見つかりました。結果は%sに保存されました。", len(rr.Unique), rr.Output)
		return
	}
	log.Infof("1回だけ出現する検索語は見つかりませんでした。")
}

func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

func formatList(xs []string) string {
	return "[" + strings.Join(xs, ", ") + "]"
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
