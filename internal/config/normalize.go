package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// secretOverrides collects credentials supplied through the environment, the
// way the original deployment passed them in from CI secrets.
type secretOverrides struct {
	SerpAPIKey   string `env:"SERPAPI_KEY"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	MailTo       string `env:"MAIL_TO"`
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.applySecretOverrides(); err != nil {
		return err
	}
	c.normalizeTTS()
	c.normalizeImageSearch()
	c.normalizeEmail()
	c.normalizeContent()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	if c.Paths.LedgerPath, err = expandPath(c.Paths.LedgerPath); err != nil {
		return fmt.Errorf("paths.ledger_path: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.AssetsDir, err = expandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	for name, value := range map[string]*string{
		"video.background":  &c.Video.Background,
		"video.overlay":     &c.Video.Overlay,
		"video.placeholder": &c.Video.Placeholder,
		"video.font_path":   &c.Video.FontPath,
	} {
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			*value = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*value = expanded
	}
	return nil
}

func (c *Config) applySecretOverrides() error {
	var secrets secretOverrides
	if err := env.Parse(&secrets); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}
	if c.ImageSearch.APIKey == "" {
		c.ImageSearch.APIKey = secrets.SerpAPIKey
	}
	if c.Email.Username == "" {
		c.Email.Username = secrets.SMTPUsername
	}
	if c.Email.Password == "" {
		c.Email.Password = secrets.SMTPPassword
	}
	if c.Email.From == "" {
		c.Email.From = secrets.MailFrom
	}
	if c.Email.To == "" {
		c.Email.To = secrets.MailTo
	}
	return nil
}

func (c *Config) normalizeTTS() {
	c.TTS.BaseURL = strings.TrimSpace(c.TTS.BaseURL)
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	c.TTS.Language = strings.TrimSpace(c.TTS.Language)
	if c.TTS.Language == "" {
		c.TTS.Language = defaultTTSLanguage
	}
	if c.TTS.RequestTimeout <= 0 {
		c.TTS.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeImageSearch() {
	c.ImageSearch.APIKey = strings.TrimSpace(c.ImageSearch.APIKey)
	c.ImageSearch.BaseURL = strings.TrimSpace(c.ImageSearch.BaseURL)
	if c.ImageSearch.BaseURL == "" {
		c.ImageSearch.BaseURL = defaultSearchBaseURL
	}
	if c.ImageSearch.RequestTimeout <= 0 {
		c.ImageSearch.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeEmail() {
	c.Email.Host = strings.TrimSpace(c.Email.Host)
	c.Email.From = strings.TrimSpace(c.Email.From)
	c.Email.To = strings.TrimSpace(c.Email.To)
	c.Email.Username = strings.TrimSpace(c.Email.Username)
	if c.Email.Port <= 0 {
		c.Email.Port = defaultSMTPPort
	}
	if c.Email.From == "" {
		c.Email.From = c.Email.Username
	}
}

func (c *Config) normalizeContent() {
	titles := c.Content.Titles[:0]
	for _, title := range c.Content.Titles {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			titles = append(titles, trimmed)
		}
	}
	c.Content.Titles = titles
	if len(c.Content.Titles) == 0 {
		c.Content.Titles = append([]string(nil), defaultTitles...)
	}
	c.Content.Hashtags = strings.TrimSpace(c.Content.Hashtags)
	c.Content.Outro = strings.TrimSpace(c.Content.Outro)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
