package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname='x'\n[run]\nmain='main.em'\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindRoot = %q, %v, %v", got, ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}

	if _, ok, err := FindManifest(t.TempDir()); ok || err != nil {
		t.Errorf("empty dir: ok=%v err=%v", ok, err)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid", "[package]\nname = 'demo'\n[run]\nmain = 'main.em'\neager_logic = true\njobs = 2\n[vars]\nlimit = 3\nlabel = 'x'\nverbose = false\n", ""},
		{"bad toml", "[package\n", "failed to parse TOML"},
		{"no name", "[package]\n[run]\nmain = 'main.em'\n", "missing [package].name"},
		{"blank main", "[package]\nname = 'demo'\n[run]\nmain = ' '\n", "missing [run].main"},
		{"negative jobs", "[package]\nname = 'demo'\n[run]\nmain = 'main.em'\njobs = -1\n", "[run].jobs must not be negative"},
		{"unknown key", "[package]\nname = 'demo'\nversion = '1'\n[run]\nmain = 'main.em'\n", "unknown key package.version"},
		{"array var", "[package]\nname = 'demo'\n[run]\nmain = 'main.em'\n[vars]\nxs = [1, 2]\n", "[vars].xs must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			m, err := LoadFile(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if m.Config.Package.Name != "demo" || !m.Config.Run.EagerLogic || m.Config.Run.Jobs != 2 {
					t.Errorf("config = %+v", m.Config)
				}
				if got := strings.Join(m.VarNames(), ","); got != "label,limit,verbose" {
					t.Errorf("vars = %s", got)
				}
				if v, ok := m.Config.Vars["limit"].(int64); !ok || v != 3 {
					t.Errorf("limit = %#v", m.Config.Vars["limit"])
				}
				return
			}
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("error %v is not a ManifestError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMainPath(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root}

	m.Config.Run.Main = "main.em"
	if _, _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("missing main: %v", err)
	}

	writeFile(t, filepath.Join(root, "main.em"), "x = 1;")
	if p, isDir, err := m.MainPath(); err != nil || isDir || p != filepath.Join(root, "main.em") {
		t.Errorf("file main: %q %v %v", p, isDir, err)
	}

	writeFile(t, filepath.Join(root, "scripts", "a.em"), "x = 1;")
	m.Config.Run.Main = "scripts"
	if _, isDir, err := m.MainPath(); err != nil || !isDir {
		t.Errorf("dir main: %v %v", isDir, err)
	}

	writeFile(t, filepath.Join(root, "notes.txt"), "")
	m.Config.Run.Main = "notes.txt"
	if _, _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "must be a .em file") {
		t.Errorf("wrong extension: %v", err)
	}
}

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	created, err := Scaffold(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %v", created)
	}

	m, err := LoadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatalf("scaffolded manifest does not load: %v", err)
	}
	if m.Config.Package.Name != "hello" || m.Config.Vars["name"] != "hello" {
		t.Errorf("config = %+v", m.Config)
	}
	if _, isDir, err := m.MainPath(); err != nil || isDir {
		t.Errorf("main: %v %v", isDir, err)
	}

	if _, err := Scaffold(dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second scaffold: %v", err)
	}
}
