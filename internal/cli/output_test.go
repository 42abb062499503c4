package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitFailure, "operation rejected")
	assert.Equal(t, "operation rejected", err.Error())
	assert.Equal(t, ExitFailure, GetExitCode(err))

	inner := errors.New("disk full")
	wrapped := WrapExitError(ExitCommandError, "save failed", inner)
	assert.Equal(t, "save failed: disk full", wrapped.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))

	// Wrapped ExitErrors still carry their code
	err := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "bad config"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOutputFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	err := f.Print(map[string]int{"total": 3}, func(w io.Writer) error {
		t.Fatal("text renderer must not run for json")
		return nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 3}`, buf.String())
}

func TestOutputFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	err := f.Print(nil, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "total 3")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "total 3\n", buf.String())
}
