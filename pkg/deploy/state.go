package deploy

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// State is a step of a group deployment.
type State int

const (
	Initialize State = iota
	PreHook
	Symlink
	PostHook
)

// States lists every state in execution order.
var States = []State{Initialize, PreHook, Symlink, PostHook}

// ErrTerminalState is returned when advancing past PostHook.
var ErrTerminalState = errors.New(errors.ErrInvalidInput, "deployment already finished")

// String returns the state name.
func (s State) String() string {
	switch s {
	case Initialize:
		return "initialize"
	case PreHook:
		return "pre-hook"
	case Symlink:
		return "symlink"
	case PostHook:
		return "post-hook"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no state follows s.
func (s State) IsTerminal() bool {
	return s == PostHook
}

// Next returns the state after s. It is defined for every state; PostHook and
// unknown values yield ErrTerminalState.
func (s State) Next() (State, error) {
	switch s {
	case Initialize:
		return PreHook, nil
	case PreHook:
		return Symlink, nil
	case Symlink:
		return PostHook, nil
	default:
		return s, ErrTerminalState
	}
}
