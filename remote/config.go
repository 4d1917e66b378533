package remote

import "time"

// Defaults for Config.
const (
	DefaultBranch      = "main"
	DefaultDirectory   = "src/content/blog"
	DefaultBaseURL     = "https://api.github.com"
	DefaultMaxPageSize = 5
	DefaultTimeout     = 10 * time.Second
)

// Config locates the repository that holds the posts.
type Config struct {
	Owner     string
	Repo      string
	Branch    string
	Directory string
	// Token is sent as a bearer token on API calls when set.
	Token string
	// BaseURL is the API root, overridable for GitHub Enterprise and tests.
	BaseURL     string
	MaxPageSize int
	Timeout     time.Duration
}

func (c *Config) setDefaults() {
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.Directory == "" {
		c.Directory = DefaultDirectory
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = DefaultMaxPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

func (c Config) validate() error {
	var missing []string
	if c.Owner == "" {
		missing = append(missing, "owner")
	}
	if c.Repo == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
