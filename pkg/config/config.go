package config

import (
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
)

// Backend names.
const (
	BackendText = "text"
	BackendRaw  = "raw"
)

// Options are the settings of a render run.
type Options struct {
	Width     int    `koanf:"width"`
	Backend   string `koanf:"backend"`
	Decorator string `koanf:"decorator"`
	Format    string `koanf:"format"`
	Verbosity int    `koanf:"verbosity"`
}

var (
	validBackends = []string{BackendText, BackendRaw}
	validFormats  = []string{"auto", "term", "text", "json", "xml"}
)

// Validate checks that every option holds a usable value.
func (o *Options) Validate() error {
	if o.Width < 1 {
		return errors.Newf(errors.ErrConfigValid, "width must be at least 1, got %d", o.Width).
			WithDetail("key", "width")
	}
	if o.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "verbosity must not be negative, got %d", o.Verbosity).
			WithDetail("key", "verbosity")
	}
	checks := []struct {
		key   string
		value string
		valid []string
	}{
		{"backend", o.Backend, validBackends},
		{"decorator", o.Decorator, textrender.DecoratorNames()},
		{"format", o.Format, validFormats},
	}
	for _, c := range checks {
		if !contains(c.valid, c.value) {
			return errors.Newf(errors.ErrConfigValid, "unknown %s %q", c.key, c.value).
				WithDetail("key", c.key).
				WithDetail("valid", c.valid)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
