package config

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/scribe/http"
	"github.com/wesleyorama2/scribe/oauth"
)

// Transport kinds.
const (
	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"
)

// File is the top-level configuration file structure.
type File struct {
	// Provider holds the OAuth provider settings
	Provider Provider `yaml:"provider" json:"provider"`

	// Transport selects and tunes the connection
	Transport Transport `yaml:"transport" json:"transport"`
}

// Provider mirrors oauth.Config.
type Provider struct {
	APIKey             string            `yaml:"apiKey" json:"apiKey"`
	APISecret          string            `yaml:"apiSecret" json:"apiSecret"`
	Callback           string            `yaml:"callback,omitempty" json:"callback,omitempty"`
	Scope              string            `yaml:"scope,omitempty" json:"scope,omitempty"`
	DefaultContentType string            `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`
	Charset            string            `yaml:"charset,omitempty" json:"charset,omitempty"`
	Settings           map[string]string `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// Transport configures the connection requests are sent through.
type Transport struct {
	// Kind is "nethttp" (the default) or "fasthttp"
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Timeout is a duration string such as "30s", or whole seconds
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// FollowRedirects makes the nethttp transport follow 3xx responses
	FollowRedirects bool `yaml:"followRedirects,omitempty" json:"followRedirects,omitempty"`

	// InsecureSkipVerify disables TLS certificate verification
	InsecureSkipVerify bool `yaml:"insecureSkipVerify,omitempty" json:"insecureSkipVerify,omitempty"`
}

// LoadConfig loads a configuration file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func LoadConfig(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses configuration data. The format is taken from the
// extension of path and defaults to YAML.
func ParseConfig(data []byte, path string) (*File, error) {
	var file File

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	return &file, nil
}

// ParseDurationString parses a duration such as "30s", "2m" or "500ms".
// A bare non-negative integer is read as seconds. The empty string is zero.
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	if seconds, err := strconv.Atoi(s); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// OAuthConfig returns the provider section as an oauth.Config.
func (f *File) OAuthConfig() *oauth.Config {
	p := f.Provider
	cfg := &oauth.Config{
		APIKey:             p.APIKey,
		APISecret:          p.APISecret,
		Callback:           p.Callback,
		Scope:              p.Scope,
		DefaultContentType: p.DefaultContentType,
		Charset:            p.Charset,
	}
	if len(p.Settings) > 0 {
		cfg.Settings = make(map[string]string, len(p.Settings))
		for k, v := range p.Settings {
			cfg.Settings[k] = v
		}
	}
	return cfg
}

// Timeout returns the configured transfer timeout, or http.DefaultTimeout.
func (f *File) Timeout() (time.Duration, error) {
	d, err := ParseDurationString(f.Transport.Timeout)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return http.DefaultTimeout, nil
	}
	return d, nil
}

// Connection builds the configured transport. logger may be nil.
func (f *File) Connection(logger *slog.Logger) (oauth.Connection, error) {
	timeout, err := f.Timeout()
	if err != nil {
		return nil, fmt.Errorf("failed to parse transport timeout: %w", err)
	}

	switch strings.ToLower(f.Transport.Kind) {
	case "", TransportNetHTTP:
		options := []http.ConnectionOption{
			http.WithTimeout(timeout),
			http.WithFollowRedirects(f.Transport.FollowRedirects),
			http.WithLogger(logger),
		}
		if f.Transport.InsecureSkipVerify {
			options = append(options, http.WithInsecureSkipVerify())
		}
		return http.NewConnection(options...), nil

	case TransportFastHTTP:
		client := &fasthttp.Client{Name: "scribe"}
		if f.Transport.InsecureSkipVerify {
			client.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
		return http.NewFastConnection(
			http.WithFastClient(client),
			http.WithFastTimeout(timeout),
			http.WithFastLogger(logger),
		), nil

	default:
		return nil, fmt.Errorf("unknown transport kind %q", f.Transport.Kind)
	}
}
