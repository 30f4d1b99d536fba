package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
)

const (
	// EnvDotfilesRoot overrides source tree discovery.
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// DefaultDotfilesDir is the directory name looked up under the XDG config home.
	DefaultDotfilesDir = "dotfiles"

	// HiddenDotfilesDir is the fallback directory name under $HOME.
	HiddenDotfilesDir = ".dotfiles"
)

// LocateSourceRoot finds the source tree. It never guesses: a candidate must
// exist as a directory.
func LocateSourceRoot() (string, error) {
	var candidates []string

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		candidates = append(candidates, ExpandHome(root))
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	if configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, DefaultDotfilesDir))
	}

	if home, err := GetHomeDirectory(); err == nil {
		candidates = append(candidates, filepath.Join(home, HiddenDotfilesDir))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}

	return "", errors.New(errors.ErrSourceNotFound, "no dotfiles source tree found").
		WithDetail("candidates", candidates)
}

// RequireCategories fails with ErrCategoryMissing when any of the given
// category directories is absent.
func (l *Layout) RequireCategories(fs filesystem.FS, categories ...Category) error {
	for _, c := range categories {
		dir := l.CategoryDir(c)
		info, err := fs.Stat(dir)
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrCategoryMissing, "missing %s directory in %s", c, l.SourceRoot).
				WithDetail("path", dir)
		}
	}
	return nil
}
