package recipes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"recipe-nutrition/internal/models"
)

// Library is a directory of recipe sources.
type Library struct {
	dir    string
	ext    string
	parser *Parser
	logger *zap.Logger
}

func NewLibrary(dir, ext string, parser *Parser, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Library{dir: dir, ext: ext, parser: parser, logger: logger}
}

func (l *Library) Dir() string {
	return l.dir
}

// Init creates the directory and seeds it with the built-in recipes when it
// does not exist yet. An existing directory is left untouched.
func (l *Library) Init() (bool, error) {
	if _, err := os.Stat(l.dir); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat recipe directory: %w", err)
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create recipe directory: %w", err)
	}

	for _, b := range builtins {
		path := filepath.Join(l.dir, b.File)
		if err := os.WriteFile(path, []byte(b.Content()), 0o644); err != nil {
			return false, fmt.Errorf("failed to write built-in recipe %s: %w", b.File, err)
		}
	}

	l.logger.Info("Seeded recipe directory", zap.String("dir", l.dir), zap.Int("recipes", len(builtins)))
	return true, nil
}

// List returns recipe file names in lexical order.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list recipe directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.ext) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// Load parses the named recipe file from the library directory.
func (l *Library) Load(name string) (*models.Recipe, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: %s", models.ErrSourceNotFound, name)
	}
	return l.parser.ParseFile(filepath.Join(l.dir, name))
}
