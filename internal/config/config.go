package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

const envPrefix = "APP"

var originPattern = regexp.MustCompile(`^https?://`)

type AppConfig struct {
	API    *APIConfig    `mapstructure:"api"`
	Gin    *GinConfig    `mapstructure:"gin"`
	Chart  *ChartConfig  `mapstructure:"chart"`
	Roster *RosterConfig `mapstructure:"roster"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type ChartConfig struct {
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	HistogramBins int `mapstructure:"histogram_bins"`
	// MaxConcurrent caps how many charts render at once across all requests.
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

type RosterConfig struct {
	// Path to a YAML roster. Empty means the built-in sample roster.
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("chart.width", 1000)
	v.SetDefault("chart.height", 600)
	v.SetDefault("chart.histogram_bins", 10)
	v.SetDefault("chart.max_concurrent", 2)
	v.SetDefault("roster.path", "")
}

// Load reads the YAML file at path. Every key can be overridden by an APP_
// prefixed environment variable (api.port -> APP_API_PORT), and PORT, when
// set, wins over both.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		conf.API.Port = port
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Chart, validation.Required),
		validation.Field(&c.Roster, validation.Required),
	)
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Environment, validation.Required, validation.In("development", "production", "test")),
		validation.Field(&c.Port, validation.Required, validation.Match(regexp.MustCompile(`^\d{1,5}$`))),
		validation.Field(&c.AllowedCORSDomains, validation.By(originsHaveScheme)),
	)
}

func originsHaveScheme(value interface{}) error {
	origins, _ := value.([]string)
	for _, origin := range origins {
		if origin != "*" && !originPattern.MatchString(origin) {
			return fmt.Errorf("origin %q must start with http:// or https://", origin)
		}
	}

	return nil
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (c *ChartConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Width, validation.Required, validation.Min(200), validation.Max(4000)),
		validation.Field(&c.Height, validation.Required, validation.Min(200), validation.Max(4000)),
		validation.Field(&c.HistogramBins, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.MaxConcurrent, validation.Required, validation.Min(1)),
	)
}

func (c *RosterConfig) Validate() error {
	return nil
}
