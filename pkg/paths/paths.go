package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Category is one of the recognized root directories of the source tree.
type Category string

const (
	Configs Category = "Configs"
	Hooks   Category = "Hooks"
	Secrets Category = "Secrets"
)

// Categories lists the root categories in classification order.
var Categories = []Category{Configs, Hooks, Secrets}

// RootGroup is the Configs group deployed under the filesystem root instead of $HOME.
const RootGroup = "Root"

// SourceUnit is a path inside the source tree together with the group owning it.
type SourceUnit struct {
	Path      string
	GroupPath string
	GroupName string
	Category  Category
}

// Layout resolves every location the engines need. It is immutable after New.
type Layout struct {
	// SourceRoot is the directory holding Configs, Hooks and Secrets.
	SourceRoot string
	// Home is where regular groups deploy.
	Home string
	// FSRoot is where the Root group deploys. Defaults to "/".
	FSRoot string
	// GOOS selects platform groups. Defaults to runtime.GOOS.
	GOOS string
}

// New builds a Layout for sourceRoot and home. An empty home falls back to
// the user's home directory.
func New(sourceRoot, home string) (*Layout, error) {
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "empty source root")
	}
	if home == "" {
		h, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		home = h
	}

	absRoot, err := filepath.Abs(ExpandHome(sourceRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for source root")
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for home")
	}

	return &Layout{
		SourceRoot: absRoot,
		Home:       absHome,
		FSRoot:     string(filepath.Separator),
		GOOS:       runtime.GOOS,
	}, nil
}

func (l *Layout) fsRoot() string {
	if l.FSRoot == "" {
		return string(filepath.Separator)
	}
	return l.FSRoot
}

func (l *Layout) goos() string {
	if l.GOOS == "" {
		return runtime.GOOS
	}
	return l.GOOS
}

// CategoryDir returns <SourceRoot>/<category>.
func (l *Layout) CategoryDir(c Category) string {
	return filepath.Join(l.SourceRoot, string(c))
}

// ConfigsDir returns <SourceRoot>/Configs.
func (l *Layout) ConfigsDir() string { return l.CategoryDir(Configs) }

// HooksDir returns <SourceRoot>/Hooks.
func (l *Layout) HooksDir() string { return l.CategoryDir(Hooks) }

// SecretsDir returns <SourceRoot>/Secrets.
func (l *Layout) SecretsDir() string { return l.CategoryDir(Secrets) }

// GroupDir returns <SourceRoot>/<category>/<group>.
func (l *Layout) GroupDir(c Category, group string) string {
	return filepath.Join(l.CategoryDir(c), group)
}

// Classify determines the category and group owning path. It fails with
// ErrNotInSourceTree unless path lies strictly inside a category directory.
func (l *Layout) Classify(path string) (SourceUnit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SourceUnit{}, errors.Wrapf(err, errors.ErrNotInSourceTree, "cannot resolve %s", path)
	}

	for _, c := range Categories {
		root := l.CategoryDir(c)
		rel, ok := relInside(root, abs)
		if !ok {
			continue
		}
		group := strings.SplitN(rel, string(filepath.Separator), 2)[0]
		return SourceUnit{
			Path:      abs,
			GroupPath: filepath.Join(root, group),
			GroupName: group,
			Category:  c,
		}, nil
	}

	return SourceUnit{}, errors.Newf(errors.ErrNotInSourceTree, "%s is not inside the source tree", path).
		WithDetail("path", path).
		WithDetail("source_root", l.SourceRoot)
}

// TargetsRoot reports whether groupPath is the Root group of Configs (or lies beneath it).
func (l *Layout) TargetsRoot(groupPath string) bool {
	rel, ok := relInside(l.ConfigsDir(), filepath.Clean(groupPath))
	if !ok {
		return false
	}
	return strings.SplitN(rel, string(filepath.Separator), 2)[0] == RootGroup
}

// DeployBase returns the directory a group's files are re-rooted at.
func (l *Layout) DeployBase(groupPath string) string {
	if l.TargetsRoot(groupPath) {
		return l.fsRoot()
	}
	return l.Home
}

// ToTargetPath strips <category>/<group>/ from the unit path and re-roots the
// remainder at the filesystem root for the Root group, or at $HOME otherwise.
func (l *Layout) ToTargetPath(unit SourceUnit) string {
	base := l.DeployBase(unit.GroupPath)
	rel, err := filepath.Rel(unit.GroupPath, unit.Path)
	if err != nil || rel == "." {
		return base
	}
	return filepath.Join(base, rel)
}

// ToSourcePath is the inverse of ToTargetPath for a known group.
func (l *Layout) ToSourcePath(c Category, group, target string) (string, error) {
	groupPath := l.GroupDir(c, group)
	base := l.DeployBase(groupPath)
	abs := filepath.Clean(target)

	if abs == base {
		return groupPath, nil
	}
	rel, ok := relInside(base, abs)
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not under the deployment base %s of group %s", target, base, group)
	}
	return filepath.Join(groupPath, rel), nil
}

// relInside returns path relative to root when path is strictly inside root.
func relInside(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsWithin reports whether path equals dir or lies beneath it. Both are
// compared lexically; callers canonicalize first when links matter.
func IsWithin(dir, path string) bool {
	if filepath.Clean(dir) == filepath.Clean(path) {
		return true
	}
	_, ok := relInside(filepath.Clean(dir), filepath.Clean(path))
	return ok
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// GetHomeDirectory returns the user's home directory, preferring $HOME.
func GetHomeDirectory() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get home directory")
	}
	return homeDir, nil
}
