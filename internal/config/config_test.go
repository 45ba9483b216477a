package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validConfig = `
logging:
  level: debug
output:
  baseUrl: https://feeds.example.com
groups:
  globo: "O Globo / Valor"
sources:
  - id: miriam
    name: "Míriam Leitão"
    url: https://valor.globo.com/m
    extractor: valor
    group: globo
  - id: wapo
    name: "Washington Post"
    url: https://washingtonpost.com
    extractor: washingtonpost
    feedFile: wapo-custom.xml
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "O Globo / Valor", cfg.Groups["globo"])
	require.Len(t, cfg.Sources, 2)

	// Derived filenames default from the id.
	assert.Equal(t, "miriam.xml", cfg.Sources[0].FeedFile)
	assert.Equal(t, "miriam.json", cfg.Sources[0].HistoryFile)
	assert.Equal(t, "wapo-custom.xml", cfg.Sources[1].FeedFile)

	// Defaults fill the rest.
	assert.Equal(t, "feeds", cfg.Output.FeedsDir)
	assert.Equal(t, 3, cfg.Run.Attempts)
	assert.Equal(t, 5*time.Second, cfg.Run.RetryDelay.Std())
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadNoPathFails(t *testing.T) {
	t.Setenv("RSSDEVALOR_CONFIG", "")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMalformedFails(t *testing.T) {
	_, err := Load(writeConfig(t, "sources: [\n"))
	assert.Error(t, err)
}

func TestLoadRejectsEmptySources(t *testing.T) {
	_, err := Load(writeConfig(t, "sources: []\n"))
	assert.ErrorContains(t, err, "no sources")
}

func TestLoadRejectsIncompleteSource(t *testing.T) {
	_, err := Load(writeConfig(t, `
sources:
  - id: broken
    name: Broken
    url: https://x
`))
	assert.ErrorContains(t, err, "missing extractor")
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := Load(writeConfig(t, `
sources:
  - {id: a, name: A, url: https://a, extractor: valor}
  - {id: a, name: B, url: https://b, extractor: valor}
`))
	assert.ErrorContains(t, err, "duplicate source id")
}

func TestDurationForms(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig+`
fetch:
  timeout: 45s
run:
  retryDelay: 10
`))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 10*time.Second, cfg.Run.RetryDelay.Std())
}

func TestInvalidDurationFails(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+`
fetch:
  timeout: soon
`))
	assert.Error(t, err)
}

func TestBaseURLEnvOverride(t *testing.T) {
	t.Setenv("RSSDEVALOR_BASE_URL", "https://override.example.com")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.Output.BaseURL)
}
