package reporterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesPath(t *testing.T) {
	err := Config("json-dir", "option is required")
	assert.Equal(t, "configuration error: option is required (json-dir)", err.Error())

	wrapped := Data("features/a.json", "malformed embedded JSON", errors.New("unexpected end"))
	assert.Equal(t, "data error: malformed embedded JSON (features/a.json): unexpected end", wrapped.Error())
}

func TestKindDetectionThroughWrapping(t *testing.T) {
	base := Configf("/tmp/missing", "cannot read JSON directory")
	err := fmt.Errorf("load: %w", base)

	assert.True(t, IsConfig(err))
	assert.False(t, IsData(err))
	assert.Equal(t, ExitConfig, ExitCode(err))

	data := fmt.Errorf("aggregate: %w", Dataf("step", "bad payload"))
	assert.True(t, IsData(data))
	assert.Equal(t, ExitError, ExitCode(data))
}

func TestExitCodeDefaults(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))

	cause := errors.New("disk full")
	err := Wrap(cause, "write report")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, ExitError, ExitCode(err))
}
