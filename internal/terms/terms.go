package terms

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Load 读取检索词文件：一行一个（\n、\r\n、单独的 \r 都算换行），去除首尾空白，忽略空行。
//
// 重复行会被保留（由 match.Counter 分别计数）。
// 文件必须是合法的 UTF-8；否则返回错误（与扫描文件不同，检索词文件无法“跳过”）。
func Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse 与 Load 相同，但直接处理内存中的内容。
func Parse(b []byte) ([]string, error) {
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("检索词文件不是合法的 UTF-8 文本")
	}

	out := make([]string, 0, 64)
	sc := bufio.NewScanner(bytes.NewReader(b))
	// 单行上限放宽到 1MiB：检索词一般很短，但不应因超长行直接失败。
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(scanLines)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanLines 与 bufio.ScanLines 类似，但单独的 '\r' 也视为行结束。
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r'：需要看下一个字节才能判断是否为 "\r\n"。
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
