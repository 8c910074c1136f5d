package revive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/format"
	"github.com/arloliu/revive/graph"
	"github.com/arloliu/revive/resolver"
)

type document struct {
	Title string
	Links []*document
}

func init() {
	MustRegister("document", document{})
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	a := &document{Title: "a"}
	b := &document{Title: "b", Links: []*document{a}}
	a.Links = []*document{b, a} // cycle plus self reference

	data, err := Marshal(a)
	require.NoError(t, err)

	out, err := Unmarshal(data)
	require.NoError(t, err)

	got, ok := out.(*document)
	require.True(t, ok)
	require.Equal(t, "a", got.Title)
	require.Same(t, got, got.Links[1])
	require.Same(t, got, got.Links[0].Links[0])
}

func TestMarshalOptionsPassThrough(t *testing.T) {
	a := &document{Title: "compressed"}

	opts := []graph.Option{graph.WithCompression(format.CompressionZstd)}
	data, err := Marshal(a, opts...)
	require.NoError(t, err)

	out, err := Unmarshal(data, opts...)
	require.NoError(t, err)
	require.Equal(t, "compressed", out.(*document).Title)

	// Mismatched options must not silently succeed.
	_, err = Unmarshal(data)
	require.Error(t, err)
}

func TestMarshalCustomResolverOverridesDefault(t *testing.T) {
	type secret struct {
		Key string
	}

	reg := resolver.NewRegistry()
	require.NoError(t, reg.Register("secret", secret{}))

	// Not in the default registry, so plain Marshal refuses it.
	_, err := Marshal(&secret{Key: "k"})
	require.ErrorIs(t, err, errs.ErrUnresolvedType)

	opts := []graph.Option{graph.WithResolver(reg)}
	data, err := Marshal(&secret{Key: "k"}, opts...)
	require.NoError(t, err)

	out, err := Unmarshal(data, opts...)
	require.NoError(t, err)
	require.Equal(t, "k", out.(*secret).Key)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	type first struct{ A int }
	type second struct{ B int }

	require.NoError(t, Register("dup-check", first{}))
	require.NoError(t, Register("dup-check", first{}), "re-registering the same pair is a no-op")
	require.ErrorIs(t, Register("dup-check", second{}), errs.ErrDuplicateName)
}

func TestFingerprintIsStable(t *testing.T) {
	data, err := Marshal(&document{Title: "fp"})
	require.NoError(t, err)

	fp := Fingerprint(data)
	require.NotZero(t, fp)
	require.Equal(t, fp, Fingerprint(data))

	other, err := Marshal(&document{Title: "fp2"})
	require.NoError(t, err)
	require.NotEqual(t, fp, Fingerprint(other))
}
