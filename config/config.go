package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// Profile holds the knobs that differ between product variants of the finder.
type Profile struct {
	RadiusMeters int  `mapstructure:"radiusMeters" validate:"gt=0,lte=50000"`
	Limit        int  `mapstructure:"limit" validate:"gt=0,lte=20"`
	Enriched     bool `mapstructure:"enriched"`
	Export       bool `mapstructure:"export"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort" validate:"required"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Google struct {
		APIKey     string `mapstructure:"apiKey"`
		GeocodeURL string `mapstructure:"geocodeURL" validate:"required,url"`
		PlacesURL  string `mapstructure:"placesURL" validate:"required,url"`
		Country    string `mapstructure:"country" validate:"required,len=2"`
	} `mapstructure:"google"`
	Providers struct {
		RequestTimeout    time.Duration `mapstructure:"requestTimeout" validate:"gt=0"`
		DetailConcurrency int           `mapstructure:"detailConcurrency" validate:"gt=0"`
	} `mapstructure:"providers"`
	Cache struct {
		TTL             time.Duration `mapstructure:"ttl" validate:"gt=0"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"cache"`
	Finder struct {
		Variant     string  `mapstructure:"variant" validate:"oneof=bulk ranked"`
		MaxZipCodes int     `mapstructure:"maxZipCodes" validate:"gt=0"`
		Bulk        Profile `mapstructure:"bulk"`
		Ranked      Profile `mapstructure:"ranked"`
	} `mapstructure:"finder"`
	Telegram struct {
		Enabled     bool          `mapstructure:"enabled"`
		Token       string        `mapstructure:"token" validate:"required_if=Enabled true"`
		PollTimeout time.Duration `mapstructure:"pollTimeout"`
	} `mapstructure:"telegram"`
	Kafka struct {
		Enabled bool     `mapstructure:"enabled"`
		Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

// ActiveProfile returns the profile selected by finder.variant.
func (c *Config) ActiveProfile() Profile {
	if c.Finder.Variant == "ranked" {
		return c.Finder.Ranked
	}
	return c.Finder.Bulk
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// GOOGLE_APIKEY, TELEGRAM_TOKEN, FINDER_VARIANT, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// Env overrides are resolved during Unmarshal, so the dotenv file named by
	// the config has to be loaded first.
	if err = LoadDotenv(v.GetString("dotenv")); err != nil {
		return Config{}, err
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err = Validate(&config); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate checks struct-level constraints on a loaded config.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadDotenv loads path into the process environment without overriding
// variables that are already set. An empty path or a missing file is not an error.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load dotenv file %s: %w", path, err)
	}
	return nil
}
