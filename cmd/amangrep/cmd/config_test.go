package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/amangrep/configs"
	"github.com/Aman-CERP/amangrep/internal/config"
)

func TestConfigPath_PrintsUserConfigPath(t *testing.T) {
	xdg := isolateEnv(t)

	stdout, _, err := executeCmd(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "amangrep", "config.yaml"), strings.TrimSpace(stdout))
}

func TestConfigInit_CreatesTemplate(t *testing.T) {
	// Given: no user config
	xdg := isolateEnv(t)
	path := filepath.Join(xdg, "amangrep", "config.yaml")

	// When: running config init
	stdout, _, err := executeCmd(t, "config", "init")

	// Then: the template is written and parses to the defaults
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created user configuration")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.UserConfigTemplate, string(data))

	parsed, err := config.ReadFile(path)
	require.NoError(t, err)
	defaults := config.NewConfig()
	assert.Equal(t, defaults.Search.Workers, parsed.Search.Workers)
	assert.Equal(t, defaults.Output, parsed.Output)
	assert.Equal(t, defaults.Logging, parsed.Logging)
}

func TestConfigInit_ExistingWithoutForce_LeavesFile(t *testing.T) {
	xdg := isolateEnv(t)
	path := filepath.Join(xdg, "amangrep", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("search:\n  workers: 9\n"), 0o644))

	stdout, _, err := executeCmd(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")
	data, _ := os.ReadFile(path)
	assert.Equal(t, "search:\n  workers: 9\n", string(data))
}

func TestConfigInit_ForceUpgradesAndBacksUp(t *testing.T) {
	xdg := isolateEnv(t)
	path := filepath.Join(xdg, "amangrep", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("search:\n  workers: 9\n"), 0o644))

	stdout, _, err := executeCmd(t, "config", "init", "--force")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration upgraded")
	assert.Contains(t, stdout, "output.report_path")

	upgraded, err := config.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, upgraded.Search.Workers)
	assert.Equal(t, config.DefaultReportPath, upgraded.Output.ReportPath)

	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestConfigShow_MergedJSON(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".amangrep.yaml"), []byte("search:\n  workers: 6\n"), 0o644))

	stdout, _, err := executeCmd(t, "config", "show", "--json", root)

	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, 6, cfg.Search.Workers)
}

func TestConfigShow_DefaultsYAML(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "config", "show", "--source", "defaults")

	require.NoError(t, err)
	assert.Contains(t, stdout, "workers: 4")
	assert.Contains(t, stdout, "report_path: search_report.json")
}

func TestConfigShow_UserMissing(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "config", "show", "--source", "user")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No user configuration file found")
}

func TestConfigShow_InvalidSource(t *testing.T) {
	isolateEnv(t)

	_, _, err := executeCmd(t, "config", "show", "--source", "project")

	assert.Error(t, err)
}
