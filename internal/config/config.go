package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const (
	BackendMemory    = "memory"
	BackendDisk      = "disk"
	BackendFirestore = "firestore"
)

// Dir is the per-user directory holding config.yaml and local data.
const Dir = "~/.farum"

type Config struct {
	Mode Mode `mapstructure:"mode"`

	Port string `mapstructure:"port"`

	GCPProjectID string `mapstructure:"gcp_project"`
	GCPLocation  string `mapstructure:"gcp_location"`
	ModelName    string `mapstructure:"model_name"`

	StorageBackend string `mapstructure:"storage_backend"` // memory, disk or firestore
	DataDir        string `mapstructure:"data_dir"`
	UseMockLLM     bool   `mapstructure:"use_mock_llm"` // true = use mock even on GCP

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Timezone  string `mapstructure:"timezone"`

	location *time.Location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("port", "8080")
	v.SetDefault("gcp_project", "")
	v.SetDefault("gcp_location", "us-central1")
	v.SetDefault("model_name", "gemini-2.5-flash-lite")
	v.SetDefault("storage_backend", BackendMemory)
	v.SetDefault("data_dir", filepath.Join(Dir, "data"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("timezone", "Local")
}

// Load reads FARUM_* environment variables on top of an optional
// config.yaml. With an empty file the file is looked up in ~/.farum and
// then in the working directory.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FARUM")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := homedir.Expand(Dir); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Mode = Mode(strings.ToLower(string(cfg.Mode)))
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)

	// use_mock_llm has no fixed default: it follows the mode unless set.
	if v.IsSet("use_mock_llm") {
		cfg.UseMockLLM = v.GetBool("use_mock_llm")
	} else {
		cfg.UseMockLLM = cfg.Mode == ModeLocal
	}

	dataDir, err := homedir.Expand(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("expanding data_dir: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of settings and resolves the timezone.
func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeLocal, ModeGCP:
	default:
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeLocal, ModeGCP, c.Mode))
	}

	switch c.StorageBackend {
	case BackendMemory, BackendDisk:
	case BackendFirestore:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("FARUM_GCP_PROJECT must be set for the firestore backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage_backend %q", c.StorageBackend))
	}

	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		errs = append(errs, errors.New("FARUM_GCP_PROJECT must be set in gcp mode"))
	}
	if !c.UseMockLLM && c.GCPProjectID == "" {
		errs = append(errs, errors.New("FARUM_GCP_PROJECT must be set unless use_mock_llm is on"))
	}
	if c.StorageBackend == BackendDisk && c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must be set for the disk backend"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port must be set"))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log_format must be json or text, got %q", c.LogFormat))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	c.location = loc

	return errors.Join(errs...)
}

// Location is the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Now returns the current time in the configured timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location())
}
