package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/config"
	"github.com/dusk-indust/digest/internal/sections"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dev\n", out.String())
}

func TestRootCommand_MissingEnvFails(t *testing.T) {
	for _, k := range []string{config.EnvClaudeAPIKey, config.EnvNWSLatitude, config.EnvNWSLongitude} {
		t.Setenv(k, "")
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dry-run", "--config", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingEnv)
}

func TestPrintChunks(t *testing.T) {
	var out bytes.Buffer
	printChunks(&out, []string{"<b>one</b>", "two"})

	text := out.String()
	assert.Contains(t, text, "DAILY DIGEST (1/2)")
	assert.Contains(t, text, "DAILY DIGEST (2/2)")
	assert.Contains(t, text, "<b>one</b>\n")
	assert.Contains(t, text, "END DIGEST")
}

func testConfig() *config.Config {
	return &config.Config{
		Settings:     config.Defaults(),
		ClaudeAPIKey: "sk-ant-test",
		Latitude:     47.6,
		Longitude:    -122.3,
	}
}

func TestBuildSearchers(t *testing.T) {
	cfg := testConfig()
	news, talk := buildSearchers(cfg, zap.NewNop())
	assert.Nil(t, news)
	assert.Nil(t, talk)

	cfg.ZAIAPIKey = "coding"
	news, talk = buildSearchers(cfg, zap.NewNop())
	assert.NotNil(t, news, "news falls back to the coding endpoint")
	assert.Same(t, news, talk)

	cfg.ZAIWebSearchAPIKey = "paid"
	news, talk = buildSearchers(cfg, zap.NewNop())
	assert.NotSame(t, news, talk)
}

func TestBuildRunner_SectionOrder(t *testing.T) {
	runner, err := buildRunner(testConfig(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		sections.NameCalendar,
		sections.NameWeather,
		sections.NameAINews,
		sections.NameTalkingPieces,
		sections.NameHistory,
	}, runner.Sections())
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"dry-run", "json"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}
	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}

func TestRootCommand_JSONRequiresDryRun(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--json", "--config", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--json requires --dry-run")
}
