package graph

import (
	"reflect"

	"github.com/arloliu/revive/codec"
	"github.com/arloliu/revive/compress"
	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/format"
	"github.com/arloliu/revive/internal/options"
	"github.com/arloliu/revive/resolver"
)

// DefaultPrefix is the default marker string for reference, builder, and
// type-tag keys in the flat encoding.
const DefaultPrefix = "#"

// FieldFilter decides whether a struct field or map entry enters the
// encoding at all. owner is the composite's type, name the field name or
// map key after renaming. Returning false drops the entry before the
// algorithm ever sees it.
type FieldFilter func(owner reflect.Type, name string, value any) bool

// Config carries the options shared by an Encode call and the matching
// Decode call. The prefix, codec, and compression settings must agree
// between the two sides; they are deliberately not self-describing on the
// wire.
type Config struct {
	prefix   string
	buildKey string
	valueKey string
	revive   bool
	cleanup  bool
	resolver resolver.Resolver
	filter   FieldFilter
	codec    codec.Codec
	comp     compress.Codec
}

// newConfig builds a Config from options, filling in defaults: prefix "#",
// reviving enabled, JSON codec, no compression.
func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		prefix: DefaultPrefix,
		revive: true,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.codec == nil {
		if err := cfg.setCodec(format.CodecJSON); err != nil {
			return nil, err
		}
	}
	if cfg.comp == nil {
		if err := cfg.setCompression(format.CompressionNone); err != nil {
			return nil, err
		}
	}

	cfg.buildKey = cfg.prefix + "b"
	cfg.valueKey = cfg.prefix + "v"

	return cfg, nil
}

// isReserved reports whether key collides with the configured marker keys.
func (c *Config) isReserved(key string) bool {
	return key == c.prefix || key == c.buildKey || key == c.valueKey
}

func (c *Config) setPrefix(prefix string) error {
	if prefix == "" {
		return errs.ErrInvalidPrefix
	}
	c.prefix = prefix

	return nil
}

func (c *Config) setRevive(enabled bool) {
	c.revive = enabled
}

func (c *Config) setCleanup(enabled bool) {
	c.cleanup = enabled
}

func (c *Config) setResolver(r resolver.Resolver) {
	c.resolver = r
}

func (c *Config) setFilter(filter FieldFilter) {
	c.filter = filter
}

func (c *Config) setCodec(codecType format.CodecType) error {
	fc, err := codec.CreateCodec(codecType)
	if err != nil {
		return err
	}
	c.codec = fc

	return nil
}

func (c *Config) setCompression(compressionType format.CompressionType) error {
	cc, err := compress.CreateCodec(compressionType)
	if err != nil {
		return err
	}
	c.comp = cc

	return nil
}

// Option represents a functional option for configuring encoders and
// decoders. The same option list must be given to both sides of a round
// trip.
type Option = options.Option[*Config]

// WithPrefix sets the marker string for reference, builder, and type-tag
// keys. It must not collide with legitimate field names in the encoded
// data; collisions fail encoding with ErrReservedKey.
func WithPrefix(prefix string) Option {
	return options.New(func(c *Config) error {
		return c.setPrefix(prefix)
	})
}

// WithRevive enables or disables type tagging. When disabled, no type tags
// are emitted or consulted and the round trip preserves structure, sharing,
// and cycles only; struct values decode as plain mappings. Enabled by
// default.
func WithRevive(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.setRevive(enabled)
	})
}

// WithCleanup controls tag housekeeping on decode: when reviving is
// disabled, type tags present in the data are stripped from decoded
// mappings instead of being kept as ordinary fields. Disabled by default.
func WithCleanup(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.setCleanup(enabled)
	})
}

// WithResolver sets the type-name resolver consulted for tagging on encode
// and reconstruction on decode.
func WithResolver(r resolver.Resolver) Option {
	return options.NoError(func(c *Config) {
		c.setResolver(r)
	})
}

// WithFieldFilter sets a per-field inclusion predicate applied to struct
// fields and map entries before they enter the walk.
func WithFieldFilter(filter FieldFilter) Option {
	return options.NoError(func(c *Config) {
		c.setFilter(filter)
	})
}

// WithCodec selects the flat-structure codec (JSON by default).
func WithCodec(codecType format.CodecType) Option {
	return options.New(func(c *Config) error {
		return c.setCodec(codecType)
	})
}

// WithCompression selects payload compression (none by default).
func WithCompression(compressionType format.CompressionType) Option {
	return options.New(func(c *Config) error {
		return c.setCompression(compressionType)
	})
}
