package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Specification struct {
	CorpusDir        string            `yaml:"corpusDir" split_words:"true"`
	Extension        string            `yaml:"extension"`
	SortFiles        bool              `yaml:"sortFiles" split_words:"true"`
	Workers          int               `yaml:"workers"`
	EmbedBaseURL     string            `yaml:"embedBaseURL" envconfig:"EMBED_BASE_URL"`
	ThumbnailBaseURL string            `yaml:"thumbnailBaseURL" envconfig:"THUMBNAIL_BASE_URL"`
	AllowedOrigin    string            `yaml:"allowedOrigin" split_words:"true"`
	LogLevel         string            `yaml:"logLevel" split_words:"true"`
	Port             int               `yaml:"port" split_words:"true"`
	Auth             AuthSpecification `yaml:"auth"`

	flags *pflag.FlagSet `ignored:"true"`
}

type AuthSpecification struct {
	Enabled   bool          `yaml:"enabled"`
	JwtSecret string        `yaml:"jwtSecret" split_words:"true"`
	TokenTTL  time.Duration `yaml:"tokenTTL" split_words:"true"`
}

const envPrefix = "TRANSCRIPTSEARCH"

func (s *Specification) Usage() {
	fmt.Fprint(os.Stderr, s.flags.FlagUsages())
}

// Load => defaults < YAML < .env < env < flags.
// configPath may be ""; if so we auto-discover. args are the command-line
// arguments without the program name.
func Load(configPath string, fs *pflag.FlagSet, args []string) (Specification, error) {
	var cfg Specification

	// set defaults (lowest precedence)
	setDefaults(&cfg)
	bindFlags(fs, &cfg)

	// config file
	path := configPath
	if path == "" {
		path = configFromArgs(args)
	}
	if path == "" {
		if v := os.Getenv(envPrefix + "_CONFIG"); v != "" {
			path = v
		} else {
			for _, cand := range []string{
				"config/transcriptsearch.yaml",
				"config/config.yaml",
				"./transcriptsearch.yaml",
				"./config.yaml",
			} {
				if fileExists(cand) {
					path = cand
					break
				}
			}
		}
	}

	if path != "" {
		if !fileExists(path) {
			return Specification{}, fmt.Errorf("config file not found: %s", path)
		}
		if err := loadYAML(path, &cfg); err != nil {
			return Specification{}, fmt.Errorf("load yaml %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the environment
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return Specification{}, fmt.Errorf("load .env: %w", err)
		}
	}

	// env overrides config file
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Specification{}, fmt.Errorf("env override: %w", err)
	}

	// flags override everything
	if err := fs.Parse(args); err != nil {
		return Specification{}, err
	}
	applyChangedFlags(fs, &cfg)

	if err := validate(&cfg); err != nil {
		return Specification{}, err
	}
	return cfg, nil
}

func validate(cfg *Specification) error {
	if strings.TrimSpace(cfg.CorpusDir) == "" {
		return fmt.Errorf("%s_CORPUS_DIR is required (env/file/flag)", envPrefix)
	}
	if strings.TrimSpace(cfg.Extension) == "" {
		return fmt.Errorf("%s_EXTENSION must not be empty", envPrefix)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Auth.Enabled && strings.TrimSpace(cfg.Auth.JwtSecret) == "" {
		return fmt.Errorf("%s_AUTH_JWT_SECRET is required when auth is enabled", envPrefix)
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	return nil
}

// ---------- helpers ----------

func loadYAML(path string, into any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, into)
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

// configFromArgs captures --config before flags are parsed, so config
// discovery can use it.
func configFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				return args[i+1]
			}
		} else if strings.HasPrefix(a, "--config=") {
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

func bindFlags(fs *pflag.FlagSet, c *Specification) {
	fs.String("config", "", "Path to config file")

	fs.String("corpus-dir", c.CorpusDir, "Directory holding the transcript JSON files")
	fs.String("extension", c.Extension, "Extension of corpus files")
	fs.Bool("sort-files", c.SortFiles, "Scan corpus files in name order instead of directory-listing order")
	fs.Int("workers", c.Workers, "Files read concurrently per search (0 = number of CPUs, max 8)")

	fs.String("embed-base-url", c.EmbedBaseURL, "Base URL of video embeds; the source id is appended")
	fs.String("thumbnail-base-url", c.ThumbnailBaseURL, "Base URL of video thumbnails; the source id is appended")
	fs.String("allowed-origin", c.AllowedOrigin, "CORS allowed origin (* or an exact origin)")

	fs.String("log-level", c.LogLevel, "Log level (debug|info|warn|error)")
	fs.Int("port", c.Port, "API server port")

	fs.Bool("auth-enabled", c.Auth.Enabled, "Require a bearer token on search requests")
	fs.String("auth-jwt-secret", c.Auth.JwtSecret, "JWT secret for signing tokens")
	fs.Duration("auth-token-ttl", c.Auth.TokenTTL, "Lifetime of issued tokens")

	// Used later for usage/help
	// create a shallow copy of fs (so Usage can be called safely without mutating caller)
	copied := pflag.NewFlagSet("temp", pflag.ContinueOnError)
	*copied = *fs
	c.flags = copied
}

func applyChangedFlags(fs *pflag.FlagSet, c *Specification) {
	setStr := func(name string, dst *string) {
		if fs.Changed(name) {
			v, _ := fs.GetString(name)
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if fs.Changed(name) {
			v, _ := fs.GetInt(name)
			*dst = v
		}
	}
	setBool := func(name string, dst *bool) {
		if fs.Changed(name) {
			v, _ := fs.GetBool(name)
			*dst = v
		}
	}
	setDur := func(name string, dst *time.Duration) {
		if fs.Changed(name) {
			v, _ := fs.GetDuration(name)
			*dst = v
		}
	}

	// (We ignore --config here; it's for discovery.)
	setStr("corpus-dir", &c.CorpusDir)
	setStr("extension", &c.Extension)
	setBool("sort-files", &c.SortFiles)
	setInt("workers", &c.Workers)

	setStr("embed-base-url", &c.EmbedBaseURL)
	setStr("thumbnail-base-url", &c.ThumbnailBaseURL)
	setStr("allowed-origin", &c.AllowedOrigin)

	setStr("log-level", &c.LogLevel)
	setInt("port", &c.Port)

	// Auth flags
	setBool("auth-enabled", &c.Auth.Enabled)
	setStr("auth-jwt-secret", &c.Auth.JwtSecret)
	setDur("auth-token-ttl", &c.Auth.TokenTTL)
}

func setDefaults(c *Specification) {
	c.CorpusDir = "data"
	c.Extension = ".json"
	c.SortFiles = false
	c.Workers = 0
	c.EmbedBaseURL = "https://www.youtube.com/embed/"
	c.ThumbnailBaseURL = "https://img.youtube.com/vi/"
	c.AllowedOrigin = "*"
	c.LogLevel = "info"
	c.Port = 8080
	c.Auth.Enabled = false
	c.Auth.TokenTTL = 24 * time.Hour
}
