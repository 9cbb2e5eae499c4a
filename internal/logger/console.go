// Package logger 提供带级别、时间戳的控制台日志（写 stderr，不污染 stdout）。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level 是日志级别；数值越大越严重。
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var levelNames = map[string]Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// ParseLevel 解析级别名（大小写不敏感）。
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

func ValidColorMode(s string) bool {
	switch s {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ConsoleLogger 以 "[HH:MM:SS] [LEVEL] message" 格式输出。
// 可被多个 goroutine 同时调用。
type ConsoleLogger struct {
	writer      io.Writer
	level       Level
	colorOutput bool
	now         func() time.Time

	mu sync.Mutex
}

// NewConsoleLogger 创建 logger。
// level 非法时回退到 info；writer 为 nil 时丢弃所有输出。
// colorMode: auto（终端且未设置 NO_COLOR 时着色）| always | never。
func NewConsoleLogger(w io.Writer, level string, colorMode string) *ConsoleLogger {
	lv, ok := ParseLevel(level)
	if !ok {
		lv = LevelInfo
	}
	return &ConsoleLogger{
		writer:      w,
		level:       lv,
		colorOutput: ShouldColor(w, colorMode),
		now:         time.Now,
	}
}

// ShouldColor 根据 colorMode 与 writer 是否为终端决定是否输出 ANSI 颜色。
func ShouldColor(w io.Writer, colorMode string) bool {
	switch colorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled 判断 level 级别的消息是否会被输出。
func (l *ConsoleLogger) Enabled(level Level) bool {
	return l != nil && l.writer != nil && level >= l.level
}

func (l *ConsoleLogger) Tracef(format string, args ...any) {
	l.logf(LevelTrace, format, args...)
}

func (l *ConsoleLogger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

func (l *ConsoleLogger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

func (l *ConsoleLogger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, format, args...)
}

func (l *ConsoleLogger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}

func (l *ConsoleLogger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().Format("15:04:05")
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, l.tag(level), msg)
}

func (l *ConsoleLogger) tag(level Level) string {
	name, attr := levelTag(level)
	if !l.colorOutput {
		return name
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(name)
}

func levelTag(level Level) (string, color.Attribute) {
	switch level {
	case LevelTrace:
		return "TRACE", color.FgHiBlack
	case LevelDebug:
		return "DEBUG", color.FgCyan
	case LevelWarn:
		return "WARN", color.FgYellow
	case LevelError:
		return "ERROR", color.FgRed
	default:
		return "INFO", color.FgGreen
	}
}
