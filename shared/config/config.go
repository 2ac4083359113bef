package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const envPrefix = "KUDOS"

const (
	DriverPg     = "pg"
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel string  `yaml:"log_level"`
	LogJSON  bool    `yaml:"log_json"`
	HTTP     HTTP    `yaml:"http" validate:"required"`
	Storage  Storage `yaml:"storage" validate:"required"`

	JwtTTL      time.Duration `yaml:"jwt_ttl" validate:"required"`
	CorsOrigins []string      `yaml:"cors_origins"`

	BoardNameMaxLen   int `yaml:"board_name_max_len" validate:"required,gt=0"`
	MessageTextMaxLen int `yaml:"message_text_max_len" validate:"required,gt=0"`

	// token bucket per client IP on write endpoints; zero rate disables limiting
	WriteRatePerSecond float64 `yaml:"write_rate_per_second" validate:"gte=0"`
	WriteBurst         int     `yaml:"write_burst" validate:"gte=0"`
}

type HTTP struct {
	Port          int           `yaml:"port" validate:"required,gt=0"`
	ReadTimeout   time.Duration `yaml:"read_timeout" validate:"required"`
	WriteTimeout  time.Duration `yaml:"write_timeout" validate:"required"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

type Storage struct {
	Driver        string `yaml:"driver" validate:"required,oneof=pg mongo badger"`
	MongoDatabase string `yaml:"mongo_database"`
	BadgerPath    string `yaml:"badger_path"` // empty means in-memory
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey   string `yaml:"jwt_key" split_words:"true" validate:"required"`
	Pg       Pg     `yaml:"pg"`
	MongoURI string `yaml:"mongo_uri" split_words:"true"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and private.yaml from configFolder, applies an optional
// .env file and KUDOS_* environment overrides to private settings, then validates.
func Load(configFolder string) (*Config, error) {
	var public Public
	if err := loadPath(path.Join(configFolder, "public.yaml"), &public); err != nil {
		return nil, err
	}

	var private Private
	if err := loadPath(path.Join(configFolder, "private.yaml"), &private); err != nil {
		return nil, err
	}

	if err := godotenv.Load(path.Join(configFolder, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can't load .env: %w", err)
	}
	if err := envconfig.Process(envPrefix, &private); err != nil {
		return nil, fmt.Errorf("can't apply env overrides: %w", err)
	}

	cfg := &Config{Public: public, Private: private}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func (s *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch s.Public.Storage.Driver {
	case DriverPg:
		if s.Private.Pg.Host == "" || s.Private.Pg.Dbname == "" {
			return errors.New("invalid config: pg driver needs pg.host and pg.dbname")
		}
	case DriverMongo:
		if s.Private.MongoURI == "" || s.Public.Storage.MongoDatabase == "" {
			return errors.New("invalid config: mongo driver needs mongo_uri and storage.mongo_database")
		}
	}
	return nil
}
