package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
transport:
  endpoint: http://localhost:3001/send
feed:
  daily_url: https://example.com/wp-json/ocmp/v1/notas-hoy
  weekly_url: https://example.com/wp-json/ocmp/v1/notas-semana
digest:
  admin_phone: "50255501234"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:superbot.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.Transport.Timeout)
	assert.Equal(t, "Superbot/1.0", cfg.Feed.UserAgent)
	assert.Equal(t, 2*time.Second, cfg.Digest.SendDelay)
	assert.Equal(t, "17:00", cfg.Digest.DailyAt)
	assert.Equal(t, "Saturday", cfg.Digest.WeeklyDay)
	assert.InDelta(t, 0.8, cfg.LLM.Temperature, 0.001)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TRANSPORT_KEY", "secret-token")
	cfg, err := Load(writeConfig(t, `
transport:
  endpoint: http://localhost:3001/send
  api_key: $TRANSPORT_KEY
feed:
  daily_url: https://example.com/hoy
  weekly_url: https://example.com/semana
digest:
  admin_phone: "50255501234"
`))
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Transport.APIKey)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			"no transport endpoint",
			`
feed:
  daily_url: https://example.com/hoy
  weekly_url: https://example.com/semana
digest:
  admin_phone: "50255501234"
`,
			"transport.endpoint is required",
		},
		{
			"no feed urls",
			`
transport:
  endpoint: http://localhost:3001/send
digest:
  admin_phone: "50255501234"
`,
			"feed.daily_url is required",
		},
		{
			"no admin phone",
			`
transport:
  endpoint: http://localhost:3001/send
feed:
  daily_url: https://example.com/hoy
  weekly_url: https://example.com/semana
`,
			"digest.admin_phone is required",
		},
		{
			"llm enabled without model",
			minimalConfig + `
llm:
  enabled: true
`,
			"llm.model is required",
		},
		{
			"bad daily time",
			minimalConfig + `
  daily_at: "25:99"
`,
			"digest.daily_at",
		},
		{
			"bad weekly day",
			minimalConfig + `
  weekly_day: "Caturday"
`,
			"digest.weekly_day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("17:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 17, Minute: 30}, c)

	_, err = ParseClock("24:00")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)

	_, err = ParseWeekday("sabado")
	assert.Error(t, err)
}
