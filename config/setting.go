package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	Concurrency int    `koanf:"concurrency" validate:"required,min=1"`
	BodyLimit   int    `koanf:"body_limit" validate:"required,min=1024"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleCatalog  Module = "catalog"
	ModuleDatabase Module = "database"
	ModuleDialogue Module = "dialogue"
	ModuleS3       Module = "s3"
	ModuleServer   Module = "server"
	ModuleSession  Module = "session"
	ModuleSetting  Module = "setting"
	ModuleWebhook  Module = "webhook"
)

func (m Module) String() string { return string(m) }

// Catalog sources.
const (
	SourceXLSX  = "xlsx"
	SourceMySQL = "mysql"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type catalogConfig struct {
	Source string `koanf:"source" validate:"required,oneof=xlsx mysql"`
	Path   string `koanf:"path" validate:"required_if=Source xlsx"`
	// S3Key, when set, makes the loader download the workbook from the
	// configured bucket into Path before reading it.
	S3Key string `koanf:"s3_key"`
}

type databaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
}

type sessionConfig struct {
	Backend  string        `koanf:"backend" validate:"required,oneof=memory redis"`
	TTL      time.Duration `koanf:"ttl" validate:"min=0"`
	RedisURL string        `koanf:"redis_url" validate:"required_if=Backend redis"`
	Prefix   string        `koanf:"prefix"`
}

type config struct {
	Server   serverConfig      `koanf:"server"`
	LogLevel logLevel          `koanf:"log_level" validate:"oneof=debug info warn error fatal panic"`
	Catalog  catalogConfig     `koanf:"catalog"`
	Database databaseConfig    `koanf:"database"`
	Dns      string            `koanf:"dns"`
	S3       s3Config          `koanf:"s3"`
	Session  sessionConfig     `koanf:"session"`
	Images   map[string]string `koanf:"images"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        5000,
		Concurrency: 256 * 1024,
		BodyLimit:   64 * 1024,
		AppName:     "exam-quiz-skill",
	},
	LogLevel: Info,
	Catalog: catalogConfig{
		Source: SourceXLSX,
		Path:   "questions.xlsx",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Name:         "quiz",
		MaxIdleConns: 2,
		MaxOpenConns: 10,
		MaxLifetime:  30,
	},
	S3: s3Config{
		Region: "us-east-1",
	},
	Session: sessionConfig{
		Backend: BackendMemory,
		TTL:     6 * time.Hour,
		Prefix:  "quiz:session:",
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
	err  error
)

// Init loads defaults, the optional yaml file at path and the environment
// into Cfg. Only the first call does any work.
func Init(path string) error {
	once.Do(func() {
		err = load(path)
	})
	return err
}

func load(path string) error {
	k := koanf.New(".")
	cfg := defaultConfig

	if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !errors.Is(e, fs.ErrNotExist) {
		return fmt.Errorf("%v: read %s: %w", ModuleSetting, path, e)
	}

	// env APP_SERVER_PORT -> server.port
	if e := k.Load(env.Provider("APP_", ".", envKey), nil); e != nil {
		return fmt.Errorf("%v: read env: %w", ModuleSetting, e)
	}

	// the hosting platform only hands us PORT
	if e := k.Load(env.Provider("PORT", ".", func(s string) string {
		if s == "PORT" {
			return "server.port"
		}
		return ""
	}), nil); e != nil {
		return fmt.Errorf("%v: read env: %w", ModuleSetting, e)
	}

	if e := k.Unmarshal("", &cfg); e != nil {
		return fmt.Errorf("%v: unmarshal: %w", ModuleSetting, e)
	}

	if cfg.Dns == "" {
		cfg.Dns = buildMySQLDSN(cfg.Database)
	}

	if e := Validate(cfg); e != nil {
		return e
	}
	Cfg = cfg
	return nil
}

// envKey maps APP_SESSION_REDIS_URL to session.redis_url. The first
// underscore separates the section; top-level keys are passed through.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	switch key {
	case "log_level", "dns":
		return key
	}
	return strings.Replace(key, "_", ".", 1)
}

// Validate reports every failing field of cfg in one error.
func Validate(cfg config) error {
	validate := validator.New()
	if e := validate.Struct(cfg); e != nil {
		var errs validator.ValidationErrors
		if !errors.As(e, &errs) {
			return fmt.Errorf("%v: config validation failed: %w", ModuleSetting, e)
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%v: config validation failed:\n", ModuleSetting))
		for _, fe := range errs {
			sb.WriteString(fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.New(sb.String())
	}
	return nil
}

// Defaults returns a copy of the built-in configuration.
func Defaults() config {
	return defaultConfig
}
