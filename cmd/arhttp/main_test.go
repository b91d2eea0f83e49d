package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/arhttp/lookupserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lookupService(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(lookupserver.NewHandler(map[string]string{
		"id0x01": "/srv/layers/layer1.usda",
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestResolveCmd(t *testing.T) {
	ts := lookupService(t)

	t.Run("remote hit", func(t *testing.T) {
		out, _, err := execute(t, "resolve", "--server-url", ts.URL, "id0x01")
		require.NoError(t, err)
		assert.Equal(t, "id0x01\t/srv/layers/layer1.usda\n", out)
	})

	t.Run("local hit wins", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "id0x01"), []byte("local"), 0o644))

		out, _, err := execute(t, "resolve", "--server-url", ts.URL, "--search-path", dir, "id0x01")
		require.NoError(t, err)
		assert.Equal(t, "id0x01\t"+filepath.Join(dir, "id0x01")+"\n", out)
	})

	t.Run("absent exits non-zero", func(t *testing.T) {
		out, _, err := execute(t, "resolve", "--server-url", ts.URL, "id0x01", "id0x09")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 asset(s) unresolved")
		assert.Equal(t, "id0x01\t/srv/layers/layer1.usda\nid0x09\t<absent>\n", out)
	})

	t.Run("debug traces to stderr", func(t *testing.T) {
		_, errOut, err := execute(t, "resolve", "--server-url", ts.URL, "--debug", "id0x01")
		require.NoError(t, err)
		assert.Contains(t, errOut, "GET "+ts.URL+"/id0x01 Requesting...")
		assert.Contains(t, errOut, "GET "+ts.URL+"/id0x01 200 OK /srv/layers/layer1.usda")
	})

	t.Run("no trace without debug", func(t *testing.T) {
		_, errOut, err := execute(t, "resolve", "--server-url", ts.URL, "id0x01")
		require.NoError(t, err)
		assert.NotContains(t, errOut, "Requesting")
	})

	t.Run("invalid path format", func(t *testing.T) {
		_, _, err := execute(t, "resolve", "--server-url", ts.URL, "--path-format", "/assets", "id0x01")
		require.Error(t, err)
	})

	t.Run("requires an asset", func(t *testing.T) {
		_, _, err := execute(t, "resolve")
		require.Error(t, err)
	})
}

func TestConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arhttp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://cache.local:9000\n"), 0o644))

	out, _, err := execute(t, "config", "--config", path, "--path-format", "/assets/%s")
	require.NoError(t, err)
	assert.Contains(t, out, "server_url: http://cache.local:9000")
	assert.Contains(t, out, "path_format: /assets/%s")
	assert.Contains(t, out, "debug: false")
}

func TestResolveCmd_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	out, _, err := execute(t, "resolve", "--server-url", url, "scene.usd")
	require.Error(t, err)
	assert.Equal(t, "scene.usd\t<absent>\n", out)
}
