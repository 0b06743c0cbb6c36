package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLoggerLevels(t *testing.T) {
	prod, err := newZapLogger("")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.DebugLevel), "production logger should not enable debug")

	debug, err := newZapLogger("debug")
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zap.DebugLevel))

	quiet, err := newZapLogger("quiet")
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.WarnLevel))
}

func TestNewLoggerUsesEnvVar(t *testing.T) {
	t.Setenv(LevelEnv, "trace")
	log, sync, err := NewLogger("")
	require.NoError(t, err)
	require.NotNil(t, sync)
	defer sync()
	assert.True(t, log.GetSink().Enabled(int(zapcore.DebugLevel)))
}

func TestConsoleWarnfWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)
	console.Warnf("JSON file with data from %s is empty or invalid", "a.json")

	assert.Equal(t, "WARNING: JSON file with data from a.json is empty or invalid\n", buf.String())
}

func TestConsoleSerializesWrites(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			console.Warnf("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "WARNING: line", line)
	}
}

func TestNilConsoleIsSafe(t *testing.T) {
	var console *Console
	assert.NotPanics(t, func() { console.Warnf("ignored") })
}
