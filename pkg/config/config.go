// Package config loads the API server configuration from a YAML file.
//
// Values are resolved in three passes: `default` struct tags, the YAML file, then
// environment overrides for secrets. The result is validated with `validate` tags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// APIServerConfig represents the attester API server configuration
type APIServerConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Session    SessionConfig    `yaml:"session"`
	Networks   []NetworkConfig  `yaml:"networks" validate:"required,min=1,unique=Name,dive"`
	Submission SubmissionConfig `yaml:"submission"`
	Events     EventsConfig     `yaml:"events"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8081" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"3m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"3m"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"kilt_attester" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-full"`
	// ConnectTimeout bounds the retries performed while the database is starting up.
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"30s"`
}

// GetConnectionString returns a postgres URL for the database.
func (c DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// RedisConfig enables the shared challenge registry and the redis event stream.
// An empty URL keeps both in process.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// SessionConfig configures the login handshake and access tokens.
type SessionConfig struct {
	AppName string `yaml:"app_name" default:"KILT Attester"`
	// JWTSecret signs access tokens. Required, usually supplied via KILT_JWT_SECRET.
	JWTSecret    string        `yaml:"jwt_secret" validate:"required,min=32"`
	ChallengeTTL time.Duration `yaml:"challenge_ttl" default:"5m"`
	// ChallengeCapacity caps the in-memory registry. Ignored when redis is configured.
	ChallengeCapacity int    `yaml:"challenge_capacity" default:"10000"`
	DefaultRole       string `yaml:"default_role" default:"user"`
	// AppNetwork is the network the application's own DID is resolved on at startup.
	AppNetwork string `yaml:"app_network" default:"peregrine" validate:"oneof=peregrine spiritnet"`
	// KeyAgreementSeed derives the application's x25519 secret. Falls back to the
	// custodial mnemonic of AppNetwork when empty.
	KeyAgreementSeed string `yaml:"key_agreement_seed"`
}

// NetworkConfig describes one KILT network.
type NetworkConfig struct {
	Name     string `yaml:"name" validate:"required,oneof=peregrine spiritnet"`
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	// Mnemonic is the custodial secret phrase. Usually supplied via KILT_<NAME>_MNEMONIC.
	Mnemonic string `yaml:"mnemonic"`
	// AppDID is the application's own full DID on this network.
	AppDID string `yaml:"app_did" validate:"required,startswith=did:kilt:"`
	// DIDKeyURI derives the DID signing keys, appended to the mnemonic. Defaults to "//did//0".
	DIDKeyURI string `yaml:"did_key_uri" default:"//did//0"`
}

// SubmissionConfig bounds the wait for transaction inclusion.
type SubmissionConfig struct {
	Timeout          time.Duration `yaml:"timeout" default:"2m"`
	WaitFinalization bool          `yaml:"wait_finalization"`
}

// EventsConfig selects the notification publisher.
type EventsConfig struct {
	Driver string `yaml:"driver" default:"gochannel" validate:"oneof=gochannel redis"`
}

// MetricsConfig controls the /metrics endpoint, served unless disabled.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path" default:"/metrics"`
}

// secrets holds environment overrides, read with the KILT_ prefix.
type secrets struct {
	JWTSecret         string `envconfig:"JWT_SECRET"`
	DatabasePassword  string `envconfig:"DATABASE_PASSWORD"`
	RedisURL          string `envconfig:"REDIS_URL"`
	KeyAgreementSeed  string `envconfig:"KEY_AGREEMENT_SEED"`
	PeregrineMnemonic string `envconfig:"PEREGRINE_MNEMONIC"`
	SpiritnetMnemonic string `envconfig:"SPIRITNET_MNEMONIC"`
	PeregrineEndpoint string `envconfig:"PEREGRINE_ENDPOINT"`
	SpiritnetEndpoint string `envconfig:"SPIRITNET_ENDPOINT"`
}

const envPrefix = "KILT"

// LoadAPIServer loads API server configuration from file
func LoadAPIServer(configPath string) (*APIServerConfig, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseAPIServer(raw)
}

// ParseAPIServer builds the configuration from YAML bytes and the process environment.
func ParseAPIServer(raw []byte) (*APIServerConfig, error) {
	cfg := &APIServerConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	for i := range cfg.Networks {
		if err := defaults.Set(&cfg.Networks[i]); err != nil {
			return nil, fmt.Errorf("failed to apply network defaults: %w", err)
		}
	}

	if err := applySecrets(cfg); err != nil {
		return nil, err
	}

	if err := validateAPIServer(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func applySecrets(cfg *APIServerConfig) error {
	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Session.JWTSecret, s.JWTSecret)
	override(&cfg.Database.Password, s.DatabasePassword)
	override(&cfg.Redis.URL, s.RedisURL)
	override(&cfg.Session.KeyAgreementSeed, s.KeyAgreementSeed)

	for i := range cfg.Networks {
		n := &cfg.Networks[i]
		switch n.Name {
		case "peregrine":
			override(&n.Mnemonic, s.PeregrineMnemonic)
			override(&n.Endpoint, s.PeregrineEndpoint)
		case "spiritnet":
			override(&n.Mnemonic, s.SpiritnetMnemonic)
			override(&n.Endpoint, s.SpiritnetEndpoint)
		}
	}
	return nil
}

func validateAPIServer(cfg *APIServerConfig) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return err
	}
	for _, n := range cfg.Networks {
		if n.Mnemonic == "" {
			return fmt.Errorf("networks.%s: custodial mnemonic is required (env %s_%s_MNEMONIC)",
				n.Name, envPrefix, strings.ToUpper(n.Name))
		}
	}
	if _, ok := cfg.Network(cfg.Session.AppNetwork); !ok {
		return fmt.Errorf("session.app_network %q is not configured", cfg.Session.AppNetwork)
	}
	return nil
}

// Network returns the configuration for the named network.
func (c *APIServerConfig) Network(name string) (NetworkConfig, bool) {
	for _, n := range c.Networks {
		if n.Name == name {
			return n, true
		}
	}
	return NetworkConfig{}, false
}
