package logs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrosebr1/pythonfintech/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInitWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.log")
	cfg := &config.LogConfig{LogLevel: "debug", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	require.NoError(t, Init(cfg, path))
	Infof("grouped %d values", 22)
	WithField("name", "sample").Warn("nothing qualified")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "grouped 22 values")
	require.Contains(t, string(data), "name=sample")
	require.NotContains(t, string(data), "\x1b[")
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	cfg := &config.LogConfig{LogLevel: "chatty", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	require.NoError(t, Init(cfg, path))
	defer Close()
	require.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestDefaultLoggerBeforeInit(t *testing.T) {
	Close()
	require.NotNil(t, log)
	Info("safe before Init")
}

func TestSetSessionTagsFileEntriesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	cfg := &config.LogConfig{LogLevel: "info", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	SetSession("before-init")
	require.NoError(t, Init(cfg, path))

	var console bytes.Buffer
	log.SetOutput(&console)

	Info("untagged")
	SetSession("3f2a")
	WithField("name", "sample").Info("tagged")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.NotContains(t, lines[0], "session=")
	require.Contains(t, lines[1], "session=3f2a")
	require.Contains(t, lines[1], "name=sample")
	require.Contains(t, lines[1], "level=info")
	require.Contains(t, lines[1], "msg=tagged")

	require.Contains(t, console.String(), "tagged")
	require.NotContains(t, console.String(), "3f2a")
}
