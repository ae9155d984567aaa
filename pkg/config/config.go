package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv  = "ORDERSHEET_APP_ENV"
	EnvAppPort = "ORDERSHEET_APP_PORT"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Sheet   SheetConfig
	Render  RenderConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Sheet.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Render.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERSHEET_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERSHEET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERSHEET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERSHEET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SessionConfig struct {
	CookieName string        `envconfig:"ORDERSHEET_SESSION_COOKIE" default:"ordersheet_session"`
	TTL        time.Duration `envconfig:"ORDERSHEET_SESSION_TTL" default:"12h"`
}

type SheetConfig struct {
	// DefaultTaxRate is a decimal fraction, not a percentage.
	DefaultTaxRate string `envconfig:"ORDERSHEET_SHEET_TAX_RATE" default:"0.01"`
	SeedExamples   bool   `envconfig:"ORDERSHEET_SHEET_SEED_EXAMPLES" default:"true"`
}

func (s SheetConfig) validate() error {
	rate, err := parseRate(s.DefaultTaxRate)
	if err != nil {
		return fmt.Errorf("ORDERSHEET_SHEET_TAX_RATE: %w", err)
	}
	if rate < 0 || rate > 1 {
		return fmt.Errorf("ORDERSHEET_SHEET_TAX_RATE must be within [0, 1], got %s", s.DefaultTaxRate)
	}
	return nil
}

type RenderConfig struct {
	TableWidth   int    `envconfig:"ORDERSHEET_RENDER_TABLE_WIDTH" default:"1200"`
	RowHeight    int    `envconfig:"ORDERSHEET_RENDER_ROW_HEIGHT" default:"60"`
	Margin       int    `envconfig:"ORDERSHEET_RENDER_MARGIN" default:"16"`
	ThumbnailBox int    `envconfig:"ORDERSHEET_RENDER_THUMBNAIL_BOX" default:"50"`
	FontPath     string `envconfig:"ORDERSHEET_RENDER_FONT_PATH"`
	FontSize     int    `envconfig:"ORDERSHEET_RENDER_FONT_SIZE" default:"14"`
}

func (r RenderConfig) validate() error {
	if r.TableWidth <= 0 || r.RowHeight <= 0 || r.Margin < 0 {
		return fmt.Errorf("render geometry must be positive (width=%d height=%d margin=%d)", r.TableWidth, r.RowHeight, r.Margin)
	}
	if r.ThumbnailBox <= 0 || r.ThumbnailBox > r.RowHeight {
		return fmt.Errorf("ORDERSHEET_RENDER_THUMBNAIL_BOX must fit within a row, got %d", r.ThumbnailBox)
	}
	if r.FontSize <= 0 {
		return fmt.Errorf("ORDERSHEET_RENDER_FONT_SIZE must be positive, got %d", r.FontSize)
	}
	return nil
}

func parseRate(value string) (float64, error) {
	var rate float64
	if _, err := fmt.Sscanf(strings.TrimSpace(value), "%f", &rate); err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	return rate, nil
}
