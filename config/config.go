package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// CredentialsFile is where the Google service account key is expected.
	CredentialsFile = "creds.json"

	DefaultArchiveSheet = "Processed"
	DefaultSMTPHost     = "smtp.gmail.com"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrMissingSpreadsheet = errors.New("provide SPREADSHEET_ID (preferred) or SPREADSHEET_NAME")
	ErrMissingCredentials = errors.New("missing " + CredentialsFile + " (Google service account key)")
)

// Summarizer holds the language model settings. An empty Provider means no backend.
type Summarizer struct {
	Provider string
	APIKey   string
	Model    string
}

// Email holds the mail relay account. Enabled reports whether both halves are present.
type Email struct {
	User     string
	Password string
	To       string
	Host     string
}

func (e Email) Enabled() bool { return e.User != "" && e.Password != "" }

// Chat holds the Slack bot settings.
type Chat struct {
	Token     string
	ChannelID string
}

func (c Chat) Enabled() bool { return c.Token != "" && c.ChannelID != "" }

// Config is built once at startup and passed by value into every component.
type Config struct {
	SpreadsheetID   string
	SpreadsheetName string
	ArchiveSheet    string
	CredentialsFile string

	Summarizer Summarizer
	Email      Email
	Chat       Chat
}

// LoadDotEnv loads path into the process environment. A missing file is not an error
// and variables that are already set are left alone.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("unable to load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from getenv, trimming every value.
func Load(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		SpreadsheetID:   get("SPREADSHEET_ID"),
		SpreadsheetName: get("SPREADSHEET_NAME"),
		ArchiveSheet:    get("PROCESSED_SHEET"),
		CredentialsFile: CredentialsFile,
		Email: Email{
			User:     get("EMAIL_USER"),
			Password: get("EMAIL_PASS"),
			To:       get("EMAIL_TO"),
			Host:     get("SMTP_HOST"),
		},
		Chat: Chat{
			Token:     get("SLACK_BOT_TOKEN"),
			ChannelID: get("SLACK_CHANNEL_ID"),
		},
	}
	if cfg.SpreadsheetID == "" && cfg.SpreadsheetName == "" {
		return Config{}, ErrMissingSpreadsheet
	}
	if cfg.ArchiveSheet == "" {
		cfg.ArchiveSheet = DefaultArchiveSheet
	}
	if cfg.Email.To == "" {
		cfg.Email.To = cfg.Email.User
	}
	if cfg.Email.Host == "" {
		cfg.Email.Host = DefaultSMTPHost
	}

	summ, err := loadSummarizer(get)
	if err != nil {
		return Config{}, err
	}
	cfg.Summarizer = summ
	return cfg, nil
}

func loadSummarizer(get func(string) string) (Summarizer, error) {
	openaiKey := get("OPENAI_API_KEY")
	geminiKey := get("GEMINI_API_KEY")
	s := Summarizer{Model: get("SUMMARIZER_MODEL")}

	switch provider := strings.ToLower(get("SUMMARIZER_PROVIDER")); provider {
	case "":
		// OpenAI wins when both keys are present.
		if openaiKey != "" {
			s.Provider, s.APIKey = ProviderOpenAI, openaiKey
		} else if geminiKey != "" {
			s.Provider, s.APIKey = ProviderGemini, geminiKey
		}
	case ProviderOpenAI:
		s.Provider, s.APIKey = provider, openaiKey
	case ProviderGemini:
		s.Provider, s.APIKey = provider, geminiKey
	default:
		return Summarizer{}, fmt.Errorf("unknown SUMMARIZER_PROVIDER %q (want %s or %s)", provider, ProviderOpenAI, ProviderGemini)
	}
	if s.APIKey == "" {
		// No credential for the chosen provider: deterministic fallback.
		return Summarizer{Model: s.Model}, nil
	}
	return s, nil
}

// CheckCredentials fails when the service account key file is absent.
func (c Config) CheckCredentials() error {
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrMissingCredentials
		}
		return fmt.Errorf("unable to stat %s: %w", c.CredentialsFile, err)
	}
	return nil
}
