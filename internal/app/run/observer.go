package run

import (
	"time"

	"github.com/John-Robertt/uniqgrep/internal/config"
	"github.com/John-Robertt/uniqgrep/internal/match"
)

// Observer 用于把“进度/诊断信息”从核心执行流程中解耦出来。
//
// 约束：run 包只负责发事件，不做任何输出（stdout 留给 --json）。
// 所有事件都在调用 Execute 的 goroutine 上按顺序发出。
type Observer interface {
	// OnStart 在 Execute 开始时调用（校验输入之前）。
	OnStart(eff config.EffectiveConfig)
	// OnPrune 在整个被排除的目录（node_modules 等）被跳过时调用。
	OnPrune(dir string)
	// OnFile 在开始读取某个目标文件前调用。
	OnFile(path string)
	// OnHit 在某个 term 于某文件中命中（>=1 次）时调用。
	OnHit(hit match.Hit)
	// OnSkip 在某个文件/目录因解码或读取失败被跳过时调用。
	OnSkip(err *SkipError)
	// OnPhaseDone 在阶段（scan/count/reduce/write）结束时调用。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
}

type nopObserver struct{}

func (nopObserver) OnStart(config.EffectiveConfig) {}
func (nopObserver) OnPrune(string) {}
func (nopObserver) OnFile(string) {}
func (nopObserver) OnHit(match.Hit) {}
func (nopObserver) OnSkip(*SkipError) {}
func (nopObserver) OnPhaseDone(string, map[string]any, time.Duration) {}
