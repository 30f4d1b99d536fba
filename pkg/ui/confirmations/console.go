// Package confirmations asks the user to approve destructive operations.
package confirmations

import (
	"os"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer approves or declines one batch of items.
type Confirmer interface {
	Confirm(title string, items []string) (bool, error)
}

// ConsoleDialog prompts on the terminal.
type ConsoleDialog struct {
	in *os.File
}

// NewConsoleDialog creates a dialog reading from stdin.
func NewConsoleDialog() *ConsoleDialog {
	return &ConsoleDialog{in: os.Stdin}
}

// Confirm lists the items and asks a single yes/no question. Without a
// terminal on stdin nobody can answer, so the request is declined.
func (d *ConsoleDialog) Confirm(title string, items []string) (bool, error) {
	logger := logging.GetLogger("confirmations")

	fd := d.in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		logger.Warn().Str("title", title).Msg("stdin is not a terminal, declining confirmation")
		return false, nil
	}

	if len(items) > 0 {
		bullets := make([]pterm.BulletListItem, 0, len(items))
		for _, item := range items {
			bullets = append(bullets, pterm.BulletListItem{Level: 0, Text: item})
		}
		if err := pterm.DefaultBulletList.WithItems(bullets).Render(); err != nil {
			return false, err
		}
	}

	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(title)
}

// Static answers every request with a fixed decision and records what it was asked.
type Static struct {
	Answer bool
	Err    error
	Asked  []Request
}

// Request is one recorded confirmation request.
type Request struct {
	Title string
	Items []string
}

// Confirm implements Confirmer.
func (s *Static) Confirm(title string, items []string) (bool, error) {
	s.Asked = append(s.Asked, Request{Title: title, Items: items})
	return s.Answer, s.Err
}
