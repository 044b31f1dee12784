package scenario

import (
	"fmt"

	"github.com/seamkit/seam"
)

// Config declares a composite boundary scope: which fakes to build and
// each fake's configuration. Any subset of the sections may be present.
type Config struct {
	Env        *EnvConfig     `yaml:"env" json:"env" toml:"env"`
	Filesystem *FSConfig      `yaml:"filesystem" json:"filesystem" toml:"filesystem"`
	HTTP       *HTTPConfig    `yaml:"http" json:"http" toml:"http"`
	Session    *SessionConfig `yaml:"session" json:"session" toml:"session"`
}

// EnvConfig mirrors fakeenv.Options with fixture-friendly types.
type EnvConfig struct {
	Vars        map[string]string `yaml:"vars" json:"vars" toml:"vars"`
	Unset       []string          `yaml:"unset" json:"unset" toml:"unset"`
	InheritReal bool              `yaml:"inherit_real" json:"inherit_real" toml:"inherit_real"`
	ClearPrefix string            `yaml:"clear_prefix" json:"clear_prefix" toml:"clear_prefix"`
}

// FSConfig seeds the virtual filesystem. Archive names a txtar file
// resolved relative to the fixture; Files is applied on top.
type FSConfig struct {
	Files   map[string]string `yaml:"files" json:"files" toml:"files"`
	Dirs    []string          `yaml:"dirs" json:"dirs" toml:"dirs"`
	Archive string            `yaml:"archive" json:"archive" toml:"archive"`

	archiveData []byte // loaded by Load alongside the fixture
}

// HTTPConfig programs the outbound fake.
type HTTPConfig struct {
	AllowPassthrough bool         `yaml:"allow_passthrough" json:"allow_passthrough" toml:"allow_passthrough"`
	Rules            []RuleConfig `yaml:"rules" json:"rules" toml:"rules"`
}

// RuleConfig is one programmed reply. URL without a scheme matches the
// request path. At most one of Body, JSON, and Error may be set; Error
// rules carry no status or headers.
type RuleConfig struct {
	Method  string            `yaml:"method" json:"method" toml:"method"`
	URL     string            `yaml:"url" json:"url" toml:"url"`
	Status  int               `yaml:"status" json:"status" toml:"status"`
	Headers map[string]string `yaml:"headers" json:"headers" toml:"headers"`
	Body    string            `yaml:"body" json:"body" toml:"body"`
	JSON    any               `yaml:"json" json:"json" toml:"json"`
	Error   string            `yaml:"error" json:"error" toml:"error"`
}

// SessionConfig seeds the session store.
type SessionConfig struct {
	Values map[string]any `yaml:"values" json:"values" toml:"values"`
}

// Validate checks the fixture, accumulating every problem into a
// seam.ValidationError rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []seam.FieldError

	if c.Env != nil && c.Env.ClearPrefix != "" && !c.Env.InheritReal {
		errs = append(errs, seam.FieldError{
			FieldPath: "env.clear_prefix",
			Code:      seam.ErrCodeInvalid,
			Message:   "clear_prefix requires inherit_real",
		})
	}

	if c.HTTP != nil {
		for i, rule := range c.HTTP.Rules {
			path := fmt.Sprintf("http.rules[%d]", i)

			if rule.Method == "" && rule.URL == "" {
				errs = append(errs, seam.FieldError{
					FieldPath: path,
					Code:      seam.ErrCodeRequired,
					Message:   "matcher needs a method or a url",
				})
			}
			if rule.Status != 0 && (rule.Status < 100 || rule.Status > 599) {
				errs = append(errs, seam.FieldError{
					FieldPath: path + ".status",
					Code:      seam.ErrCodeRange,
					Message:   fmt.Sprintf("status %d outside 100..599", rule.Status),
				})
			}

			replies := 0
			if rule.Body != "" {
				replies++
			}
			if rule.JSON != nil {
				replies++
			}
			if rule.Error != "" {
				replies++
			}
			if replies > 1 {
				errs = append(errs, seam.FieldError{
					FieldPath: path,
					Code:      seam.ErrCodeExclusive,
					Message:   "body, json and error are mutually exclusive",
				})
			}
			if rule.Error != "" && (rule.Status != 0 || len(rule.Headers) > 0) {
				errs = append(errs, seam.FieldError{
					FieldPath: path,
					Code:      seam.ErrCodeExclusive,
					Message:   "an error rule carries no status or headers",
				})
			}
		}
	}

	if len(errs) > 0 {
		return &seam.ValidationError{FieldErrors: errs}
	}
	return nil
}
