package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/shiftreport")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/shiftreport", cfg.Storage.DataDir)
	assert.Equal(t, "/var/lib/shiftreport", cfg.Reporting.OutputDir)
	assert.Equal(t, SessionsMemory, cfg.Sessions.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, "0 1 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "", cfg.Mail.Transport())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set.
	for _, key := range []string{"STORE_BACKEND", "SQLITE_PATH", "SESSION_TTL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=sqlite\nSQLITE_PATH=/tmp/reports.db\nSESSION_TTL=30m\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/reports.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad ttl":         {"SESSION_TTL", "soon"},
		"bad redis db":    {"REDIS_DB", "zero"},
		"bad backend":     {"STORE_BACKEND", "cassandra"},
		"bad timezone":    {"TIMEZONE", "Mars/Olympus"},
		"bad provider":    {"MAIL_PROVIDER", "pigeon"},
		"mongo no uri":    {"STORE_BACKEND", "mongo"},
		"postgres no dsn": {"STORE_BACKEND", "postgres"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestMailConfig_Transport(t *testing.T) {
	assert.Equal(t, MailSendGrid, MailConfig{SendGridAPIKey: "key", SMTPHost: "smtp.local"}.Transport())
	assert.Equal(t, MailSMTP, MailConfig{SMTPHost: "smtp.local"}.Transport())
	assert.Equal(t, MailSMTP, MailConfig{Provider: MailSMTP}.Transport())
	assert.Equal(t, "desk@example.com", MailConfig{SMTPUser: "desk@example.com"}.Sender())
}

func TestValidate_Mail(t *testing.T) {
	cfg := validConfig()
	cfg.Mail = MailConfig{SMTPHost: "smtp.local", SMTPPort: 587}
	assert.Error(t, cfg.Validate(), "recipient required")

	cfg.Mail.Recipient = "boss@example.com"
	assert.NoError(t, cfg.Validate())

	cfg.Mail = MailConfig{Provider: MailSendGrid, Recipient: "boss@example.com"}
	assert.Error(t, cfg.Validate(), "api key required")
}

func TestValidate_SheetsPartial(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.SpreadsheetID = "sheet"
	assert.Error(t, cfg.Validate())

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Sheets.Enabled())
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "4000"},
		Storage:   StorageConfig{Backend: BackendFile, DataDir: "data"},
		Sessions:  SessionsConfig{Backend: SessionsMemory, TTL: time.Hour},
		Reporting: ReportingConfig{CronSchedule: "0 1 * * *", Timezone: "UTC", OutputDir: "data"},
	}
}
