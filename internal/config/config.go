// Package config loads the wpgraph configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoHost is returned by Validate when no content host is configured.
var ErrNoHost = errors.New("config: no content host configured")

// Host drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    Server     `yaml:"server"`
	Site      Site       `yaml:"site"`
	Host      Host       `yaml:"host"`
	PostTypes []PostType `yaml:"post_types"`
	Telemetry Telemetry  `yaml:"telemetry"`
	Log       Log        `yaml:"log"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	Pretty       bool          `yaml:"pretty"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	GraphiQL     bool          `yaml:"graphiql"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type Site struct {
	URL                string `yaml:"url"`
	PermalinkStructure string `yaml:"permalink_structure"`
}

// Host selects the content host. Fixtures is read by the memory driver, DSN
// and TablePrefix by the postgres driver.
type Host struct {
	Driver      string   `yaml:"driver"`
	Fixtures    string   `yaml:"fixtures"`
	DSN         string   `yaml:"dsn"`
	TablePrefix string   `yaml:"table_prefix"`
	Taxonomies  []string `yaml:"taxonomies"`
}

// PostType declares a custom post type exposed as its own GraphQL type.
type PostType struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Telemetry configures trace export. Tracing is off when Endpoint is empty.
type Telemetry struct {
	Endpoint string `yaml:"endpoint"`
	Service  string `yaml:"service"`
	Insecure bool   `yaml:"insecure"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 1 << 20,
			GraphiQL:     true,
		},
		Site: Site{URL: "http://localhost:8080"},
		Host: Host{
			Driver:      DriverMemory,
			TablePrefix: "wp_",
		},
		Telemetry: Telemetry{Service: "wpgraph"},
		Log:       Log{Level: "info"},
	}
}

// Load decodes a YAML document over Default. Unknown keys are rejected. An
// empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads the named file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate reports configuration errors that Load cannot catch.
func (c Config) Validate() error {
	switch c.Host.Driver {
	case DriverMemory:
		if c.Host.Fixtures == "" {
			return fmt.Errorf("%w: memory driver needs host.fixtures", ErrNoHost)
		}
	case DriverPostgres:
		if c.Host.DSN == "" {
			return fmt.Errorf("%w: postgres driver needs host.dsn", ErrNoHost)
		}
	case "":
		return ErrNoHost
	default:
		return fmt.Errorf("config: unknown host driver %q", c.Host.Driver)
	}
	seen := make(map[string]bool, len(c.PostTypes))
	for i, pt := range c.PostTypes {
		name := strings.TrimSpace(pt.Name)
		if name == "" {
			return fmt.Errorf("config: post_types[%d] has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("config: post type %q listed twice", name)
		}
		seen[name] = true
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("config: server.max_body_bytes must not be negative")
	}
	return nil
}
