package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treport/internal/structures"
)

const testConfigYaml = `
trello:
  timeout: 10s
boards:
  - id: "61d77b3c650da472e3516146"
    doneColumn: "Done"
    cardTag: "[Non-WN]"
    exclude:
      nameStartsWith: ["Arc "]
recipients:
  file: "patreon_recipients.json"
logger:
  level: "info"
  mode: 0644
  dir: "%s"
cache:
  enabled: true
  size: 16
metrics:
  enabled: false
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(fmt.Sprintf(testConfigYaml, dir))
	require.NoError(t, os.WriteFile(path, yaml, 0644))
	return path
}

func setTestCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("TRELLO_API_KEY", "k")
	t.Setenv("TRELLO_API_SECRET", "s")
	t.Setenv("TRELLO_TOKEN", "t")
	t.Setenv("TRELLO_TOKEN_SECRET", "ts")
}

func defaultFlags(configPath string) *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: configPath,
		ReportsDir: "reports/",
		CacheDir:   "cache/",
	}
}

func TestNewConfigProvider_LoadsConfig(t *testing.T) {
	setTestCredentials(t)
	path := writeTestConfig(t)

	conf, err := NewConfigProvider(defaultFlags(path))
	require.NoError(t, err)

	assert.Equal(t, "TrelloActivityReporter", conf.AppName)
	assert.Equal(t, "k", conf.Trello.Credentials.APIKey)
	assert.Equal(t, "t", conf.Trello.Credentials.Token)
	assert.Equal(t, 10*time.Second, conf.Trello.Timeout)
	require.Len(t, conf.Boards, 1)
	assert.Equal(t, "Done", conf.Boards[0].DoneColumn)
	assert.Equal(t, []string{"Arc "}, conf.Boards[0].Exclude.NameStartsWith)
	assert.Nil(t, conf.TimeRange)
	assert.Equal(t, "cache/", conf.CacheDir)
	assert.Equal(t, "reports/", conf.ReportsDir)
}

func TestNewConfigProvider_MissingCredentialsFatal(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "")
	t.Setenv("TRELLO_API_SECRET", "")
	t.Setenv("TRELLO_TOKEN", "")
	t.Setenv("TRELLO_TOKEN_SECRET", "")
	path := writeTestConfig(t)

	_, err := NewConfigProvider(defaultFlags(path))
	assert.Error(t, err)
}

func TestNewConfigProvider_SecretsFileFallback(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "")
	t.Setenv("TRELLO_API_SECRET", "")
	t.Setenv("TRELLO_TOKEN", "")
	t.Setenv("TRELLO_TOKEN_SECRET", "")
	path := writeTestConfig(t)

	workDir := t.TempDir()
	env := "TRELLO_API_KEY=fk\nTRELLO_API_SECRET=fs\nTRELLO_TOKEN=ft\nTRELLO_TOKEN_SECRET=fts\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte(env), 0600))
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	conf, err := NewConfigProvider(defaultFlags(path))
	require.NoError(t, err)
	assert.Equal(t, "fk", conf.Trello.Credentials.APIKey)
	assert.Equal(t, "fts", conf.Trello.Credentials.TokenSecret)
}

func TestNewConfigProvider_MissingConfigFile(t *testing.T) {
	setTestCredentials(t)
	_, err := NewConfigProvider(defaultFlags("/nonexistent/config.yaml"))
	assert.Error(t, err)
}

func TestNewConfigProvider_TimeRange(t *testing.T) {
	setTestCredentials(t)
	path := writeTestConfig(t)

	flags := defaultFlags(path)
	flags.StartDate = "2024-01-01"
	flags.EndDate = "2024-02-29"

	conf, err := NewConfigProvider(flags)
	require.NoError(t, err)
	require.NotNil(t, conf.TimeRange)
	assert.Equal(t, "2024-01-01_to_2024-02-29", conf.TimeRange.PeriodKey())
}

func TestParseTimeRange_NoDates(t *testing.T) {
	tr, err := parseTimeRange("", "")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestParseTimeRange_OnlyOneDate(t *testing.T) {
	_, err := parseTimeRange("2024-01-01", "")
	assert.Error(t, err)

	_, err = parseTimeRange("", "2024-01-31")
	assert.Error(t, err)
}

func TestParseTimeRange_EndBeforeStart(t *testing.T) {
	_, err := parseTimeRange("2024-02-01", "2024-01-01")
	assert.Error(t, err)
}

func TestParseTimeRange_MalformedDate(t *testing.T) {
	_, err := parseTimeRange("01/02/2024", "2024-03-01")
	assert.Error(t, err)
}
