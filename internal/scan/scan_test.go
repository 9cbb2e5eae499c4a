package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalk_PruneNodeModulesAtAnyDepth(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "node_modules", "lib", "x.js"))
	touch(t, filepath.Join(root, "src", "node_modules", "y.css"))
	touch(t, filepath.Join(root, "src", "app.js"))

	var pruned []string
	got, err := Walk(root, Options{OnPrune: func(p string) { pruned = append(pruned, p) }})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(root, "src", "app.js") {
		t.Fatalf("期望只剩 src/app.js，实际 %v", got)
	}
	if len(pruned) != 2 {
		t.Fatalf("期望排除 2 个 node_modules，实际 %v", pruned)
	}
}

func TestWalk_ExtensionFilter(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "index.html"))
	touch(t, filepath.Join(root, "style.css"))
	touch(t, filepath.Join(root, "a.js"))
	touch(t, filepath.Join(root, "data.json"))
	touch(t, filepath.Join(root, "readme.md"))
	touch(t, filepath.Join(root, "UPPER.JS"))

	got, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	want := []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "index.html"),
		filepath.Join(root, "style.css"),
	}
	if len(got) != len(want) {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("第 %d 项：期望 %q，实际 %q", i, want[i], got[i])
		}
	}
}

func TestWalk_RootNamedNodeModulesIsScanned(t *testing.T) {
	root := filepath.Join(t.TempDir(), "node_modules")
	touch(t, filepath.Join(root, "a.js"))

	got, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("root 自身不应被排除：%v", got)
	}
}

func TestWalk_CustomOptions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "vendor", "v.ts"))
	touch(t, filepath.Join(root, "node_modules", "n.ts"))
	touch(t, filepath.Join(root, "a.ts"))
	touch(t, filepath.Join(root, "b.js"))

	got, err := Walk(root, Options{Extensions: []string{".ts"}, ExcludeDirs: []string{"vendor"}})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	want := []string{filepath.Join(root, "a.ts"), filepath.Join(root, "node_modules", "n.ts")}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), Options{})
	if err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
}

func TestHasTargetExt(t *testing.T) {
	exts := DefaultExtensions
	cases := map[string]bool{
		"a.js":       true,
		"a.min.js":   true,
		".css":       true,
		"a.json":     false,
		"a.JS":       false,
		"page.htm":   false,
		"page.xhtml": false,
	}
	for name, want := range cases {
		if got := HasTargetExt(name, exts); got != want {
			t.Fatalf("HasTargetExt(%q)=%v，期望 %v", name, got, want)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}

func TestWalk_SymlinkRootIsFollowed(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "real")
	touch(t, filepath.Join(realDir, "a.js"))
	touch(t, filepath.Join(realDir, "node_modules", "x.js"))
	link := filepath.Join(dir, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("无法创建符号链接：%v", err)
	}

	got, err := Walk(link, Options{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(link, "a.js") {
		t.Fatalf("期望 [%s]，实际 %v", filepath.Join(link, "a.js"), got)
	}
}

func TestWalk_DanglingSymlinkIsReturned(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.js"))
	touch(t, filepath.Join(root, "dir", "x.txt"))
	if err := os.Symlink(filepath.Join(root, "gone.js"), filepath.Join(root, "b.js")); err != nil {
		t.Skipf("无法创建符号链接：%v", err)
	}
	// 指向目录的链接仍然忽略。
	if err := os.Symlink(filepath.Join(root, "dir"), filepath.Join(root, "c.js")); err != nil {
		t.Skipf("无法创建符号链接：%v", err)
	}

	got, err := Walk(root, Options{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	want := []string{filepath.Join(root, "a.js"), filepath.Join(root, "b.js")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
}
