package codec

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/revive/errs"
)

// YAMLCodec is a text flat-structure codec backed by gopkg.in/yaml.v3,
// useful when encoded graphs live in human-edited files.
type YAMLCodec struct{}

var _ Codec = YAMLCodec{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() YAMLCodec {
	return YAMLCodec{}
}

// Marshal encodes the tree as YAML.
func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal parses YAML into a normalized tree.
func (YAMLCodec) Unmarshal(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedEncoding, err)
	}

	return normalizeTree(v, normalizeYAMLScalar)
}

func normalizeYAMLScalar(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case time.Time:
		// The YAML resolver promotes timestamp-shaped plain scalars; the
		// wire format only ever carries them as strings.
		return t.Format(time.RFC3339Nano), nil
	default:
		return v, nil
	}
}
