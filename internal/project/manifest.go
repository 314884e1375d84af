package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ScriptExt is the extension of ember source files.
const ScriptExt = ".em"

// Config mirrors ember.toml.
type Config struct {
	Package PackageConfig  `toml:"package"`
	Run     RunConfig      `toml:"run"`
	Vars    map[string]any `toml:"vars"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	// Main is a script or a directory of scripts, relative to the manifest.
	Main       string `toml:"main"`
	EagerLogic bool   `toml:"eager_logic"`
	// Jobs bounds directory runs; 0 means one per CPU.
	Jobs int `toml:"jobs"`
}

// Manifest is a decoded ember.toml and where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// ManifestError reports an unreadable or invalid manifest.
type ManifestError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return e.Path + ": " + e.Msg
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Load finds and decodes the manifest above startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(manifestPath)
	return m, true, err
}

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ManifestError{Path: path, Msg: "failed to parse TOML", Err: err}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, &ManifestError{Path: path, Msg: "missing [package].name"}
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return nil, &ManifestError{Path: path, Msg: "missing [run].main"}
	}
	if cfg.Run.Jobs < 0 {
		return nil, &ManifestError{Path: path, Msg: fmt.Sprintf("[run].jobs must not be negative, got %d", cfg.Run.Jobs)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ManifestError{Path: path, Msg: "unknown key " + undecoded[0].String()}
	}
	for _, name := range sortedKeys(cfg.Vars) {
		switch cfg.Vars[name].(type) {
		case int64, float64, string, bool:
		default:
			return nil, &ManifestError{Path: path, Msg: fmt.Sprintf("[vars].%s must be a number, string or bool", name)}
		}
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// MainPath resolves [run].main against the manifest directory and reports
// whether it names a directory.
func (m *Manifest) MainPath() (path string, isDir bool, err error) {
	path = filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Run.Main)))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, &ManifestError{Path: m.Path, Msg: "[run].main path does not exist: " + path}
		}
		return "", false, &ManifestError{Path: m.Path, Msg: "failed to stat [run].main", Err: err}
	}
	if info.IsDir() {
		return path, true, nil
	}
	if filepath.Ext(path) != ScriptExt {
		return "", false, &ManifestError{Path: m.Path, Msg: "[run].main must be a " + ScriptExt + " file or directory"}
	}
	return path, false, nil
}

// VarNames returns the preset variable names in sorted order.
func (m *Manifest) VarNames() []string { return sortedKeys(m.Config.Vars) }

func sortedKeys(vars map[string]any) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
