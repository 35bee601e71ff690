package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Session backends.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Mail providers.
const (
	MailSMTP     = "smtp"
	MailSendGrid = "sendgrid"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Sessions  SessionsConfig
	Mail      MailConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and configures the report store.
type StorageConfig struct {
	Backend     string
	DataDir     string
	MongoURI    string
	MongoDBName string
	PostgresDSN string
	SQLitePath  string
}

// SessionsConfig selects where login tokens live.
type SessionsConfig struct {
	Backend       string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// MailConfig holds outbound mail settings. An empty Provider is resolved from
// the credentials present: SendGrid when an API key is set, SMTP when a host is.
type MailConfig struct {
	Provider       string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	From           string
	SendGridAPIKey string
	Recipient      string
}

// Transport returns the effective provider, or "" when mail is not configured.
func (m MailConfig) Transport() string {
	switch {
	case m.Provider != "":
		return m.Provider
	case m.SendGridAPIKey != "":
		return MailSendGrid
	case m.SMTPHost != "":
		return MailSMTP
	default:
		return ""
	}
}

// Sender returns the From address, falling back to the SMTP user.
func (m MailConfig) Sender() string {
	if m.From != "" {
		return m.From
	}
	return m.SMTPUser
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// Publishing is skipped when either value is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SummaryRange    string
}

// Enabled reports whether summaries should be appended to a spreadsheet.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API, used to
// push a text digest of the daily summary to the manager.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	ManagerPhone  string
}

// Enabled reports whether a digest can be delivered.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != "" && w.ManagerPhone != ""
}

// ReportingConfig holds scheduler and export settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
	OutputDir    string
}

// Location resolves the configured timezone.
func (r ReportingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment is set directly.
		_ = godotenv.Load()
	}

	dataDir := getenvWithDefault("DATA_DIR", "data")

	sessionTTL, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getenvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "4000"),
		},
		Storage: StorageConfig{
			Backend:     getenvWithDefault("STORE_BACKEND", BackendFile),
			DataDir:     dataDir,
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "shiftreport"),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
			SQLitePath:  getenvWithDefault("SQLITE_PATH", dataDir+"/shiftreport.db"),
		},
		Sessions: SessionsConfig{
			Backend:       getenvWithDefault("SESSION_BACKEND", SessionsMemory),
			TTL:           sessionTTL,
			RedisAddr:     getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       redisDB,
		},
		Mail: MailConfig{
			Provider:       os.Getenv("MAIL_PROVIDER"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       smtpPort,
			SMTPUser:       os.Getenv("SMTP_USER"),
			SMTPPassword:   os.Getenv("SMTP_PASS"),
			From:           os.Getenv("SMTP_FROM"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			Recipient:      os.Getenv("SUMMARY_RECIPIENT"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			SummaryRange:    getenvWithDefault("GOOGLE_SHEET_SUMMARY_RANGE", "Daily Summary!A:Q"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerPhone:  os.Getenv("WHATSAPP_MANAGER_PHONE"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 1 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Local"),
			OutputDir:    getenvWithDefault("REPORT_OUTPUT_DIR", dataDir),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			return errors.New("DATA_DIR must not be empty")
		}
	case BackendMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo backend")
		}
		if c.Storage.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN must be provided for the postgres backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("STORE_BACKEND %q is not supported", c.Storage.Backend)
	}

	switch c.Sessions.Backend {
	case SessionsMemory:
	case SessionsRedis:
		if c.Sessions.RedisAddr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis session backend")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND %q is not supported", c.Sessions.Backend)
	}
	if c.Sessions.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	switch c.Mail.Transport() {
	case "":
	case MailSMTP:
		if c.Mail.SMTPHost == "" || c.Mail.SMTPPort == 0 {
			return errors.New("SMTP_HOST and SMTP_PORT must be provided for smtp mail")
		}
		if c.Mail.Recipient == "" {
			return errors.New("SUMMARY_RECIPIENT must be provided when mail is configured")
		}
	case MailSendGrid:
		if c.Mail.SendGridAPIKey == "" {
			return errors.New("SENDGRID_API_KEY must be provided for sendgrid mail")
		}
		if c.Mail.Sender() == "" {
			return errors.New("SMTP_FROM must be provided for sendgrid mail")
		}
		if c.Mail.Recipient == "" {
			return errors.New("SUMMARY_RECIPIENT must be provided when mail is configured")
		}
	default:
		return fmt.Errorf("MAIL_PROVIDER %q is not supported", c.Mail.Provider)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := c.Reporting.Location(); err != nil {
		return err
	}

	if c.Reporting.OutputDir == "" {
		return errors.New("REPORT_OUTPUT_DIR must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
