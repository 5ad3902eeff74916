package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"33ms", 33 * time.Millisecond},
		{"1.5s", 1500 * time.Millisecond},
		{"2m", 2 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"1d", Day},
		{"2w", 2 * Week},
		{"1d12h", Day + 12*time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "5x", "d"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	type wrapper struct {
		D Duration `yaml:"d"`
	}

	in := wrapper{D: Duration(45 * time.Second)}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in.D, out.D)
}

func TestDuration_UnmarshalExtended(t *testing.T) {
	var w struct {
		D Duration `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("d: 1d6h"), &w))
	assert.Equal(t, Duration(30*time.Hour), w.D)
}
