package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	// UnresolvedStrip removes leftover placeholder tokens before parsing.
	UnresolvedStrip = "strip"
	// UnresolvedFail reports leftover placeholder tokens as an error.
	UnresolvedFail = "fail"

	// SubstitutionTree substitutes inside string leaves of the parsed template.
	SubstitutionTree = "tree"
	// SubstitutionText substitutes in the raw template text and parses afterwards.
	SubstitutionText = "text"

	DefaultFallbackMediaURL = "https://localhost/ContentFiles/IdealStudioFiles/default-audio.mp3"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Redis      RedisConfig
	Templates  TemplatesConfig
	Outputs    OutputsConfig
	Conversion ConversionConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type RedisConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Address     string        `yaml:"address"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	TemplateTTL time.Duration `yaml:"template_ttl"`
}

// TemplatesConfig locates the template files on disk.
type TemplatesConfig struct {
	Root          string `yaml:"root"`
	SceneDir      string `yaml:"scene_dir"`
	XLRawDir      string `yaml:"xl_raw_dir"`
	CatalogFile   string `yaml:"catalog_file"`
	PageStyleFile string `yaml:"pagestyle_file"`
}

type OutputsConfig struct {
	Dir string `yaml:"dir"`
}

type ConversionConfig struct {
	OnUnresolvedTag  string `yaml:"on_unresolved_tag"`
	Substitution     string `yaml:"substitution"`
	FallbackMediaURL string `yaml:"fallback_media_url"`
	FillDefaults     bool   `yaml:"fill_defaults"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.body_limit_mb", 50)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.template_ttl", 600)
	v.SetDefault("templates.root", "templates")
	v.SetDefault("templates.scene_dir", "scene_templates")
	v.SetDefault("templates.xl_raw_dir", "XLSamples/RawXLTemplates")
	v.SetDefault("outputs.dir", "outputs/converted")
	v.SetDefault("conversion.on_unresolved_tag", UnresolvedStrip)
	v.SetDefault("conversion.substitution", SubstitutionTree)
	v.SetDefault("conversion.fallback_media_url", DefaultFallbackMediaURL)
	v.SetDefault("conversion.fill_defaults", true)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env cover every key.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = n
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
		cfg.Redis.Enabled = true
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if root := os.Getenv("TEMPLATES_ROOT"); root != "" {
		cfg.Templates.Root = root
	}
	if dir := os.Getenv("OUTPUTS_DIR"); dir != "" {
		cfg.Outputs.Dir = dir
	}
	if policy := os.Getenv("ON_UNRESOLVED_TAG"); policy != "" {
		cfg.Conversion.OnUnresolvedTag = policy
	}
	if mode := os.Getenv("SUBSTITUTION_MODE"); mode != "" {
		cfg.Conversion.Substitution = mode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration populated only from defaults.
// The CLI and tests use it when no config file is wanted.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("redis.enabled"),
			Address:     v.GetString("redis.address"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			TemplateTTL: v.GetDuration("redis.template_ttl") * time.Second,
		},
		Templates: TemplatesConfig{
			Root:          v.GetString("templates.root"),
			SceneDir:      v.GetString("templates.scene_dir"),
			XLRawDir:      v.GetString("templates.xl_raw_dir"),
			CatalogFile:   v.GetString("templates.catalog_file"),
			PageStyleFile: v.GetString("templates.pagestyle_file"),
		},
		Outputs: OutputsConfig{
			Dir: v.GetString("outputs.dir"),
		},
		Conversion: ConversionConfig{
			OnUnresolvedTag:  v.GetString("conversion.on_unresolved_tag"),
			Substitution:     v.GetString("conversion.substitution"),
			FallbackMediaURL: v.GetString("conversion.fallback_media_url"),
			FillDefaults:     v.GetBool("conversion.fill_defaults"),
		},
	}
}

// Validate rejects option values the conversion pipeline does not understand.
func (c *Config) Validate() error {
	switch c.Conversion.OnUnresolvedTag {
	case UnresolvedStrip, UnresolvedFail:
	default:
		return fmt.Errorf("invalid conversion.on_unresolved_tag %q: must be %q or %q",
			c.Conversion.OnUnresolvedTag, UnresolvedStrip, UnresolvedFail)
	}
	switch c.Conversion.Substitution {
	case SubstitutionTree, SubstitutionText:
	default:
		return fmt.Errorf("invalid conversion.substitution %q: must be %q or %q",
			c.Conversion.Substitution, SubstitutionTree, SubstitutionText)
	}
	if c.Conversion.FallbackMediaURL == "" {
		c.Conversion.FallbackMediaURL = DefaultFallbackMediaURL
	}
	return nil
}

// TemplatePath joins a path relative to the templates root.
func (c *Config) TemplatePath(elem ...string) string {
	return filepath.Join(append([]string{c.Templates.Root}, elem...)...)
}
