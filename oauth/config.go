package oauth

// DefaultContentType is sent with any non-empty body that has no
// caller-supplied Content-Type.
const DefaultContentType = "application/x-www-form-urlencoded"

// Config carries the static settings of an OAuth provider. The request layer
// reads DefaultContentType and Charset; the other fields are held for the
// layers above it (signing, token flows) and passed through untouched.
type Config struct {
	APIKey    string
	APISecret string
	Callback  string
	Scope     string

	// DefaultContentType overrides the package DefaultContentType when set.
	DefaultContentType string

	// Charset names the encoding of body parameters and string payloads.
	// Empty means UTF-8.
	Charset string

	// Settings holds provider specific values this layer does not interpret.
	Settings map[string]string
}

// NewConfig returns a Config for the given consumer key and secret.
func NewConfig(apiKey, apiSecret string) *Config {
	return &Config{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
}

// DefaultConfig returns a Config with no credentials and default settings.
func DefaultConfig() *Config {
	return &Config{}
}

// ContentType returns the content type used for bodies without one.
func (c *Config) ContentType() string {
	if c == nil || c.DefaultContentType == "" {
		return DefaultContentType
	}
	return c.DefaultContentType
}

// Setting returns a provider specific value.
func (c *Config) Setting(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	value, ok := c.Settings[name]
	return value, ok
}

// clone returns a deep copy so a Request never shares Settings with its caller.
func (c *Config) clone() Config {
	if c == nil {
		return Config{}
	}
	out := *c
	if c.Settings != nil {
		out.Settings = make(map[string]string, len(c.Settings))
		for k, v := range c.Settings {
			out.Settings[k] = v
		}
	}
	return out
}
