package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// DefaultExtensions 是默认的目标扩展名（区分大小写的后缀匹配）。
	DefaultExtensions = []string{".html", ".css", ".js"}
	// DefaultExcludeDirs 是默认排除的目录名（任意深度，按目录名精确匹配）。
	DefaultExcludeDirs = []string{"node_modules"}
)

// Options 控制遍历范围。零值字段回退到默认值。
type Options struct {
	Extensions  []string
	ExcludeDirs []string

	// OnPrune 在整棵子目录被排除时调用（path 为该目录的路径）。
	OnPrune func(path string)
	// OnWalkError 在 root 以下某个路径不可访问时调用；遍历继续。
	OnWalkError func(path string, err error)
}

// Walk 遍历 root，返回所有目标文件的路径（filepath.Join(root, ...) 形式）。
//
// 规则：
// - 名称与 ExcludeDirs 中任一项相同的子目录整体跳过（root 自身不参与判断）
// - 文件名以 Extensions 中任一项结尾（区分大小写）才算目标文件
// - 指向目录的符号链接不跟随、也不当作文件；无法解析的符号链接照常返回，由读取阶段报告
// - root 本身是符号链接时会跟随进入，返回的路径仍以 root 为前缀
//
// 输出顺序即 filepath.WalkDir 的词法顺序，同一棵树多次调用结果一致。
// 只有 root 本身不可访问才返回错误。
func Walk(root string, opts Options) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	excludeDirs := opts.ExcludeDirs
	if excludeDirs == nil {
		excludeDirs = DefaultExcludeDirs
	}
	excluded := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		d = strings.TrimSpace(d)
		if d != "" {
			excluded[d] = true
		}
	}

	// WalkDir 对 root 使用 Lstat；末尾加分隔符可让链接目录被当作目录展开。
	walkRoot := root
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	files := make([]string, 0, 128)
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			if opts.OnWalkError != nil {
				opts.OnWalkError(path, walkErr)
			}
			// 不可读的目录：跳过其内容，继续其他分支。
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != walkRoot && excluded[d.Name()] {
				if opts.OnPrune != nil {
					opts.OnPrune(path)
				}
				return filepath.SkipDir
			}
			return nil
		}

		if !HasTargetExt(d.Name(), exts) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// 解析失败（悬空链接、无权限）时仍作为目标文件返回，读取时会失败并被记录。
			if fi, err := os.Stat(path); err == nil && fi.IsDir() {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// HasTargetExt 判断 name 是否以 exts 中任一后缀结尾（区分大小写）。
func HasTargetExt(name string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
