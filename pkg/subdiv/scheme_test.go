package subdiv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in   string
		want Scheme
	}{
		{"loop", Loop},
		{"Loop", Loop},
		{" butterfly ", Butterfly},
		{"kobbelt", Kobbelt},
		{"sqrt3", Kobbelt},
		{"√3", Kobbelt},
		{"catmull-clark", CatmullClark},
		{"CatmullClark", CatmullClark},
		{"cc", CatmullClark},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScheme(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseScheme("doo-sabin")
	assert.True(t, errors.Is(err, ErrUnknownScheme))
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "catmull-clark", CatmullClark.String())
	assert.Equal(t, "Scheme(7)", Scheme(7).String())
	assert.Len(t, Schemes(), 4)
}

func TestSchemeYAML(t *testing.T) {
	var doc struct {
		Scheme Scheme `yaml:"scheme"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("scheme: sqrt3\n"), &doc))
	assert.Equal(t, Kobbelt, doc.Scheme)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "scheme: kobbelt\n", string(out))

	err = yaml.Unmarshal([]byte("scheme: bogus\n"), &doc)
	assert.True(t, errors.Is(err, ErrUnknownScheme))
}
