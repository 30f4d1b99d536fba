package confirmations

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleDialog_DeclinesWithoutTerminal(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()

	d := &ConsoleDialog{in: f}
	ok, err := d.Confirm("Overwrite?", []string{"/home/u/.zshrc"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatic(t *testing.T) {
	s := &Static{Answer: true}
	ok, err := s.Confirm("title", []string{"a"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, s.Asked, 1)
	assert.Equal(t, "title", s.Asked[0].Title)

	failing := &Static{Err: errors.New("closed")}
	_, err = failing.Confirm("title", nil)
	assert.Error(t, err)
}

var _ Confirmer = (*ConsoleDialog)(nil)
var _ Confirmer = (*Static)(nil)
