package semantic

import (
	"github.com/voyagekit/cruisedesk/tools"
)

// DefaultCollection is the vector collection holding cruise documents.
const DefaultCollection = "cruises"

type Config struct {
	tools.Config
	collection string
}

type Option func(*Config)

func WithToolOption(opt tools.Option) Option {
	return func(c *Config) {
		opt(&c.Config)
	}
}

// WithCollection overrides the vector collection searched by the tool.
func WithCollection(name string) Option {
	return func(c *Config) {
		c.collection = name
	}
}
