package shared

import (
	_ "embed"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables read by [Config.ApplyEnv]. The MONGO_INITDB_* names are
// the ones the official mongo container image already exports.
const (
	EnvMongoURI      = "MONGODB_URI"
	EnvRootUsername  = "MONGO_INITDB_ROOT_USERNAME"
	EnvRootPassword  = "MONGO_INITDB_ROOT_PASSWORD"
	EnvInitDatabase  = "MONGO_INITDB_DATABASE"
	defaultMongoPort = 27017
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Account  AccountConfig  `toml:"account"`
	Journal  JournalConfig  `toml:"journal"`
}

// DatabaseConfig contains document store connection settings.
type DatabaseConfig struct {
	RawURI             string `toml:"uri"`
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	AuthSource         string `toml:"auth_source"`
	Name               string `toml:"name"`
	UsersCollection    string `toml:"users_collection"`
	SessionsCollection string `toml:"sessions_collection"`
	ConnectTimeout     int    `toml:"connect_timeout"`
}

// AccountConfig holds the credentials and grants of the account to create.
type AccountConfig struct {
	Username string              `toml:"username"`
	Password string              `toml:"password"`
	Roles    []RoleBindingConfig `toml:"roles"`
}

// RoleBindingConfig grants Role on database DB.
type RoleBindingConfig struct {
	Role string `toml:"role"`
	DB   string `toml:"db"`
}

// JournalConfig contains settings for the local sqlite run journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// URI returns the connection string, building one from host and port when no
// explicit uri is configured.
func (d DatabaseConfig) URI() string {
	if d.RawURI != "" {
		return d.RawURI
	}

	port := d.Port
	if port == 0 {
		port = defaultMongoPort
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(port)),
		Path:   "/",
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
		if d.AuthSource != "" {
			u.RawQuery = url.Values{"authSource": {d.AuthSource}}.Encode()
		}
	}
	return u.String()
}

// Timeout returns the connect timeout as a [time.Duration].
func (d DatabaseConfig) Timeout() time.Duration {
	if d.ConnectTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.ConnectTimeout) * time.Second
}

// Validate reports missing settings that would make a seed run meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Database.RawURI == "" && c.Database.Host == "":
		return fmt.Errorf("%w: database host or uri is required", ErrInvalidConfig)
	case c.Database.Name == "":
		return fmt.Errorf("%w: database name is required", ErrInvalidConfig)
	case c.Database.UsersCollection == "" || c.Database.SessionsCollection == "":
		return fmt.Errorf("%w: collection names are required", ErrInvalidConfig)
	case c.Account.Username == "":
		return fmt.Errorf("%w: account username is required", ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides connection settings from the environment. lookup is
// usually [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvMongoURI); ok && v != "" {
		c.Database.RawURI = v
	}
	if v, ok := lookup(EnvRootUsername); ok && v != "" {
		c.Database.User = v
	}
	if v, ok := lookup(EnvRootPassword); ok && v != "" {
		c.Database.Password = v
	}
	if v, ok := lookup(EnvInitDatabase); ok && v != "" {
		c.Database.Name = v
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.Account.Roles = nil
	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Account.Roles == nil {
		config.Account.Roles = DefaultConfig().Account.Roles
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrAlreadyExists)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
