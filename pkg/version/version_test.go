package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		server string
		min    string
		want   bool
	}{
		{server: "v1.20.2", min: "1.16.0", want: true},
		{server: "v1.16.0", min: "1.16.0", want: true},
		{server: "v1.15.9", min: "1.16.0", want: false},
		{server: "v1.20.2-gke.1", min: "1.20.0", want: true},
		{server: "v1.16.0-rc.1", min: "1.16.0", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.server+">="+tt.min, func(t *testing.T) {
			got, err := MeetsMinimum(tt.server, tt.min)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeetsMinimumBadInput(t *testing.T) {
	_, err := MeetsMinimum("not-a-version", "1.16.0")
	assert.Error(t, err)

	_, err = MeetsMinimum("v1.20.2", "not-a-version")
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GitVersion)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}
