package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		allowed   []string
		boolFlags []string
		want      []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-s", "memory"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-s", "memory"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "negative number is a value",
			args:    []string{"-lat", "-33.86", "-lng", "151.2"},
			allowed: []string{"-lat", "-lng"},
			want:    []string{"-lat", "-33.86", "-lng", "151.2"},
		},
		{
			name:    "flag followed by flag has no value",
			args:    []string{"-s", "-f", "x.db"},
			allowed: []string{"-s", "-f"},
			want:    []string{"-s", "-f", "x.db"},
		},
		{
			name:      "bool flag does not swallow next arg",
			args:      []string{"-o", "stray"},
			allowed:   []string{"-o"},
			boolFlags: []string{"-o"},
			want:      []string{"-o"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "-y"},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterArgs(tt.args, tt.allowed, tt.boolFlags...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"bin", "-s", "memory", "-config", "x.json"}
	assert.Equal(t, "x.json", jsonConfigPath())

	os.Args = []string{"bin", "-c=y.json"}
	assert.Equal(t, "y.json", jsonConfigPath())

	os.Args = []string{"bin"}
	assert.Equal(t, "", jsonConfigPath())
}
