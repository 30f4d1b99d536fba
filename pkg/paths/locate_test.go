package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireCategories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Configs"), 0755))

	l := &paths.Layout{SourceRoot: root, Home: t.TempDir()}
	fs := filesystem.NewOS()

	assert.NoError(t, l.RequireCategories(fs, paths.Configs))

	err := l.RequireCategories(fs, paths.Configs, paths.Hooks)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCategoryMissing))
	assert.Equal(t, errors.ExitCategoryMissing, errors.ExitCode(err))
}
