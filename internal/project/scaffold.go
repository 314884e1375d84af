package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const mainTemplate = `greeting = 'hello, ' + name;
print(greeting);
if (len(name) > 3) {
  print('that is a long name');
}
`

// Scaffold writes ember.toml and main.em into dir, creating dir when
// missing. It refuses to overwrite an existing manifest and returns the
// created paths.
func Scaffold(dir string) ([]string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "ember-project"
	}
	cfg := Config{
		Package: PackageConfig{Name: name},
		Run:     RunConfig{Main: "main" + ScriptExt},
		Vars:    map[string]any{"name": name},
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, []byte(sb.String()), 0o600); err != nil {
		return nil, err
	}
	created := []string{manifestPath}

	mainPath := filepath.Join(dir, "main"+ScriptExt)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(mainTemplate), 0o600); err != nil {
			return created, err
		}
		created = append(created, mainPath)
	}
	return created, nil
}
