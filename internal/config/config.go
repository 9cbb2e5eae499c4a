package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/uniqgrep/internal/logger"
	"github.com/John-Robertt/uniqgrep/internal/report"
	"github.com/John-Robertt/uniqgrep/internal/scan"
)

const (
	// ErrCodeUsage 表示位置参数个数不对。
	ErrCodeUsage = "usage"
	// ErrCodeRootNotDir 表示扫描根目录不存在或不是目录。
	ErrCodeRootNotDir = "root_not_dir"
	// ErrCodeTermsNotFile 表示检索词文件不存在或不是普通文件。
	ErrCodeTermsNotFile = "terms_not_file"
	// ErrCodeTermsInvalid 表示检索词文件无法读取或不是 UTF-8。
	ErrCodeTermsInvalid = "terms_invalid"
	// ErrCodeNotFound 表示 --config 指定的文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

// FileName 是在当前目录自动发现的配置文件名（可选）。
const FileName = "uniqgrep.yaml"

const (
	DefaultLogLevel = "info"
	DefaultColor    = logger.ColorAuto
	DefaultLang     = report.LangJA
)

// CLIArgs 是命令行给出的输入，并保留“是否显式指定”的信息，
// 使 --log-level=info 之类的显式值也能覆盖配置文件。
type CLIArgs struct {
	Root      string
	TermsFile string
	Output    string

	ConfigPath string

	LogLevel    string
	LogLevelSet bool

	Lang    string
	LangSet bool

	Color    string
	ColorSet bool
}

// FileConfig 对应 uniqgrep.yaml 的结构。
type FileConfig struct {
	LogLevel   string   `yaml:"log_level"`
	Color      string   `yaml:"color"`
	Lang       string   `yaml:"lang"`
	Extensions []string `yaml:"extensions"`
	// ExcludeDirs 为 nil 表示使用默认值（node_modules）；显式写 [] 表示不排除任何目录。
	ExcludeDirs *[]string `yaml:"exclude_dirs"`
}

// EffectiveConfig 是合并并规范化后的最终配置。
//
// Root/TermsFile/Output 保持用户给出的形式：报告中的文件路径以 Root 为前缀拼接。
type EffectiveConfig struct {
	Root      string
	TermsFile string
	Output    string

	// ConfigFile 是实际读取的配置文件；未读取任何文件时为空。
	ConfigFile string

	LogLevel string
	Color    string
	Lang     string

	Extensions  []string
	ExcludeDirs []string
}

// Error 是启动阶段的结构化错误（带 code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeUsage:
		return fmt.Sprintf("引数エラー: %v", e.Err)
	case ErrCodeRootNotDir:
		return fmt.Sprintf("エラー: フォルダ '%s' が存在しません", e.Path)
	case ErrCodeTermsNotFile:
		return fmt.Sprintf("エラー: 検索語ファイル '%s' が存在しません", e.Path)
	case ErrCodeTermsInvalid:
		return fmt.Sprintf("エラー: 検索語ファイル '%s' を読み込めません: %v", e.Path, e.Err)
	case ErrCodeNotFound:
		return fmt.Sprintf("エラー: 設定ファイル '%s' が存在しません", e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("エラー: 設定ファイル '%s' が無効です: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("エラー: 設定ファイル '%s' が無効です", e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取配置文件并与 CLI 参数合并。
//
// 发现规则：
// 1) 指定了 --config：必须存在
// 2) 否则读取 <cwd>/uniqgrep.yaml（可选）
//
// 覆盖优先级：CLI > 配置文件 > 内置默认值。
// 这里不检查 Root/TermsFile 是否存在，见 CheckInputs。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	var (
		cfgPath string
		fc      FileConfig
		exists  bool
		err     error
	)

	if p := strings.TrimSpace(cli.ConfigPath); p != "" {
		cfgPath = p
		if !filepath.IsAbs(cfgPath) {
			cfgPath = filepath.Join(cwd, cfgPath)
		}
		fc, exists, err = readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		if !exists {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
	} else {
		cfgPath = filepath.Join(cwd, FileName)
		fc, exists, err = readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}

	eff, err := merge(cli, fc)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if exists {
		eff.ConfigFile = cfgPath
	}
	return eff, nil
}

func merge(cli CLIArgs, fc FileConfig) (EffectiveConfig, error) {
	eff := EffectiveConfig{
		Root:      cli.Root,
		TermsFile: cli.TermsFile,
		Output:    cli.Output,
	}

	eff.LogLevel = pick(cli.LogLevelSet, cli.LogLevel, fc.LogLevel, DefaultLogLevel)
	eff.LogLevel = strings.ToLower(strings.TrimSpace(eff.LogLevel))
	if _, ok := logger.ParseLevel(eff.LogLevel); !ok {
		return EffectiveConfig{}, fmt.Errorf("log_level は trace|debug|info|warn|error のいずれかです: %q", eff.LogLevel)
	}

	eff.Color = pick(cli.ColorSet, cli.Color, fc.Color, DefaultColor)
	if !logger.ValidColorMode(eff.Color) {
		return EffectiveConfig{}, fmt.Errorf("color は auto|always|never のいずれかです: %q", eff.Color)
	}

	eff.Lang = pick(cli.LangSet, cli.Lang, fc.Lang, DefaultLang)
	if !report.ValidLang(eff.Lang) {
		return EffectiveConfig{}, fmt.Errorf("lang は ja|en のいずれかです: %q", eff.Lang)
	}

	exts, err := normalizeExtensions(fc.Extensions)
	if err != nil {
		return EffectiveConfig{}, err
	}
	eff.Extensions = exts

	if fc.ExcludeDirs == nil {
		eff.ExcludeDirs = append([]string{}, scan.DefaultExcludeDirs...)
	} else {
		eff.ExcludeDirs = make([]string, 0, len(*fc.ExcludeDirs))
		for _, d := range *fc.ExcludeDirs {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			if strings.ContainsAny(d, `/\`) {
				return EffectiveConfig{}, fmt.Errorf("exclude_dirs にはディレクトリ名のみ指定できます: %q", d)
			}
			eff.ExcludeDirs = append(eff.ExcludeDirs, d)
		}
	}

	return eff, nil
}

// pick 实现 CLI > 配置文件 > 默认值。
func pick(cliSet bool, cliVal, fileVal, def string) string {
	if cliSet {
		return cliVal
	}
	if strings.TrimSpace(fileVal) != "" {
		return strings.TrimSpace(fileVal)
	}
	return def
}

func normalizeExtensions(in []string) ([]string, error) {
	if len(in) == 0 {
		return append([]string{}, scan.DefaultExtensions...), nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, ext := range in {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return nil, fmt.Errorf("extensions に空の値があります")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out, nil
}

// CheckInputs 校验启动前置条件：根目录必须是目录，检索词文件必须是普通文件。
// 任一不满足即返回 *Error，调用方应在扫描前终止。
func CheckInputs(eff EffectiveConfig) error {
	if err := CheckRootDir(eff.Root); err != nil {
		return err
	}
	fi, err := os.Stat(eff.TermsFile)
	if err != nil || !fi.Mode().IsRegular() {
		if err == nil {
			err = fmt.Errorf("not a regular file")
		}
		return &Error{Code: ErrCodeTermsNotFile, Path: eff.TermsFile, Err: err}
	}
	return nil
}

// CheckRootDir 校验 root 存在且是目录。
func CheckRootDir(root string) error {
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return &Error{Code: ErrCodeRootNotDir, Path: root, Err: err}
	}
	return nil
}

// readFileConfig 读取并解析 YAML 配置文件；未知字段视为错误。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			// 空文件：等价于没有任何设置。
			return FileConfig{}, true, nil
		}
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
