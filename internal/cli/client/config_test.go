package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	origDir := getConfigDirFunc
	origPath := getConfigPathFunc
	getConfigDirFunc = func() (string, error) { return dir, nil }
	getConfigPathFunc = func() (string, error) { return filepath.Join(dir, "config.json"), nil }
	t.Cleanup(func() {
		getConfigDirFunc = origDir
		getConfigPathFunc = origPath
	})

	return dir
}

func TestGlobalConfig_SaveLoadDelete(t *testing.T) {
	useTempConfigDir(t)

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIURL: "http://example.com:5000"}))

	loaded, err = LoadGlobalConfig()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "http://example.com:5000", loaded.APIURL)

	require.NoError(t, DeleteGlobalConfig())

	loaded, err = LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveGlobalConfig_Nil(t *testing.T) {
	assert.Error(t, SaveGlobalConfig(nil))
}

func TestGetServerSource_Cascade(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("ASKDB_API_URL", "")

	source, url := GetServerSource("")
	assert.Equal(t, SourceDefault, source)
	assert.Equal(t, defaultAPIURL, url)

	require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIURL: "http://from-config:5000"}))
	source, url = GetServerSource("")
	assert.Equal(t, SourceGlobalConfig, source)
	assert.Equal(t, "http://from-config:5000", url)

	t.Setenv("ASKDB_API_URL", "http://from-env:5000")
	source, url = GetServerSource("")
	assert.Equal(t, SourceEnvFile, source)
	assert.Equal(t, "http://from-env:5000", url)

	source, url = GetServerSource("http://from-flag:5000")
	assert.Equal(t, SourceFlag, source)
	assert.Equal(t, "http://from-flag:5000", url)
}
