package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type encodeConfig struct {
	prefix  string
	revive  bool
	applied []string
}

func (c *encodeConfig) setPrefix(p string) error {
	if p == "" {
		return errors.New("prefix cannot be empty")
	}
	c.prefix = p
	c.applied = append(c.applied, "prefix")

	return nil
}

func (c *encodeConfig) setRevive(enabled bool) {
	c.revive = enabled
	c.applied = append(c.applied, "revive")
}

func TestApply_Order(t *testing.T) {
	cfg := &encodeConfig{}

	err := Apply(cfg,
		New(func(c *encodeConfig) error { return c.setPrefix("@") }),
		NoError(func(c *encodeConfig) { c.setRevive(true) }),
	)
	require.NoError(t, err)
	require.Equal(t, "@", cfg.prefix)
	require.True(t, cfg.revive)
	require.Equal(t, []string{"prefix", "revive"}, cfg.applied)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &encodeConfig{}

	err := Apply(cfg,
		New(func(c *encodeConfig) error { return c.setPrefix("") }),
		NoError(func(c *encodeConfig) { c.setRevive(true) }),
	)
	require.Error(t, err)
	require.False(t, cfg.revive, "options after a failing one must not apply")
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &encodeConfig{}
	require.NoError(t, Apply(cfg))
}
