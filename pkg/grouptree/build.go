package grouptree

import (
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
)

// Build mirrors a category directory into a tree. Each directory directly
// under the category root is a group; everything beneath it inherits that
// group. Symlinks inside the source tree are recorded but never followed.
func Build(fs filesystem.FS, layout *paths.Layout, category paths.Category) (*Tree, error) {
	logger := logging.GetLogger("grouptree")
	root := layout.CategoryDir(category)

	info, err := fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrCategoryMissing, "missing %s directory in %s", category, layout.SourceRoot).
			WithDetail("path", root)
	}

	t := New(root)
	t.Insert("", root)

	var walk func(dir, group string) error
	walk = func(dir, group string) error {
		entries, err := fs.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to read %s", dir)
		}
		for _, entry := range entries {
			p := filepath.Join(dir, entry.Name())
			g := group
			if dir == root {
				if !entry.IsDir() {
					logger.Debug().Str("path", p).Msg("Ignoring non-directory entry at category root")
					continue
				}
				g = entry.Name()
			}
			t.Insert(g, p)
			if entry.IsDir() {
				if err := walk(p, g); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return nil, err
	}

	logger.Trace().
		Str("category", string(category)).
		Int("nodes", t.Len()).
		Strs("groups", t.Groups()).
		Msg("Built group tree")
	return t, nil
}

// Files returns the non-directory paths owned by group, sorted. Directories
// are structure only; links are created per file.
func Files(fs filesystem.FS, t *Tree, group string) ([]string, bool) {
	all, ok := t.SubtreeForGroup(group)
	if !ok {
		return nil, false
	}
	files := make([]string, 0, len(all))
	for _, p := range all {
		info, err := fs.Lstat(p)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, p)
	}
	return files, true
}
