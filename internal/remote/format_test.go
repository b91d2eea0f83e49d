package remote_test

import (
	"testing"

	"github.com/arloliu/arhttp/internal/remote"
	"github.com/stretchr/testify/assert"
)

func TestBuildPath(t *testing.T) {
	tests := []struct {
		format string
		asset  string
		want   string
	}{
		{"/%s", "foo/bar.usd", "/foo/bar.usd"},
		{"/assets/%s", "foo/bar.usd", "/assets/foo/bar.usd"},
		{"/%s", "scene.usd", "/scene.usd"},
		{"/lookup?id=%s", "id0x01", "/lookup?id=id0x01"},
		{"/100%%/%s", "a", "/100%/a"},
		{"/%s", "with space", "/with space"},
		{"/%s", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.format+"|"+tt.asset, func(t *testing.T) {
			assert.Equal(t, tt.want, remote.BuildPath(tt.format, tt.asset))
		})
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "http://cache.local:9000/scene.usd",
		remote.BuildURL("http://cache.local:9000", "/%s", "scene.usd"))
	assert.Equal(t, "http://localhost:8000/assets/foo/bar.usd",
		remote.BuildURL("http://localhost:8000", "/assets/%s", "foo/bar.usd"))
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr string
	}{
		{name: "default", format: "/%s"},
		{name: "prefixed", format: "/assets/%s"},
		{name: "query", format: "/resolve?asset=%s"},
		{name: "escaped percent", format: "/%%20/%s"},
		{name: "missing placeholder", format: "/assets", wantErr: "found 0"},
		{name: "two placeholders", format: "/%s/%s", wantErr: "found 2"},
		{name: "other verb", format: "/%d", wantErr: "unsupported verb %d"},
		{name: "width flag", format: "/%5s", wantErr: "unsupported verb %5"},
		{name: "trailing percent", format: "/%s%", wantErr: "lone '%'"},
		{name: "empty", format: "", wantErr: "found 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := remote.CheckFormat(tt.format)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
