// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, code matching and exit code mapping

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "group_not_found",
			code:    errors.ErrGroupNotFound,
			message: "group vim not found",
			wantStr: "[GROUP_NOT_FOUND] group vim not found",
		},
		{
			name:    "target_conflict",
			code:    errors.ErrTargetConflict,
			message: "target exists",
			wantStr: "[TARGET_CONFLICT] target exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrLinkIO, "cannot link %s to %s", "a", "b")
	if err.Message != "cannot link a to b" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrUnlinkIO, "remove failed")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}
		wantStr := "[UNLINK_IO] remove failed: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTargetConflict, "conflict").
		WithDetail("target", "/home/u/.zshrc").
		WithDetail("group", "zsh")

	details := errors.GetErrorDetails(err)
	if details["target"] != "/home/u/.zshrc" || details["group"] != "zsh" {
		t.Errorf("unexpected details: %v", details)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrGroupNotFound, "error 1")
	err2 := errors.New(errors.ErrGroupNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match same code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotInSourceTree, "x"), errors.ErrNotInSourceTree, true},
		{"different_code", errors.New(errors.ErrNotInSourceTree, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrLinkIO, "denied"), errors.ErrLinkIO, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrLinkIO, false},
		{"nil_error", nil, errors.ErrLinkIO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errors.ExitOK},
		{"source_not_found", errors.New(errors.ErrSourceNotFound, "x"), 2},
		{"category_missing", errors.New(errors.ErrCategoryMissing, "x"), 3},
		{"file_not_found", errors.New(errors.ErrFileNotFound, "x"), 4},
		{"encryption", errors.New(errors.ErrEncryption, "x"), 5},
		{"decryption", errors.New(errors.ErrDecryption, "x"), 6},
		{"wrapped_source_not_found", errors.Wrap(errors.New(errors.ErrSourceNotFound, "x"), errors.ErrSourceNotFound, "y"), 2},
		{"other", stderrors.New("boom"), errors.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
