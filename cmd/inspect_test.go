package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootkit/internal/bootstrap"
	"bootkit/internal/formatting"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPhasesCommand_JSON(t *testing.T) {
	out, err := execute(t, newPhasesCmd(), "--config-path", t.TempDir(), "-o", "json")
	require.NoError(t, err)

	var report formatting.ReportView
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, bootstrap.StatusOK, report.Status)
	require.Len(t, report.Phases, len(bootstrap.Phases()))
	for i, p := range report.Phases {
		assert.Equal(t, i+1, p.Phase)
		assert.Equal(t, bootstrap.StatusOK, p.Status, p.Name)
	}
}

func TestPhasesCommand_HeadlessSkipsShellPhases(t *testing.T) {
	out, err := execute(t, newPhasesCmd(), "--config-path", t.TempDir(), "--headless", "-o", "plain", "--no-headers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(bootstrap.Phases()))
	assert.Equal(t, []string{"11", bootstrap.PhaseBindRegionManager.String(), bootstrap.StatusSkipped}, strings.Fields(lines[10])[:3])
	assert.Equal(t, []string{"12", bootstrap.PhaseInitializeShell.String(), bootstrap.StatusSkipped}, strings.Fields(lines[11])[:3])
}

func TestPhasesCommand_PrintsFailedRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalogPath: broken.yaml\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("modules: [\n"), 0644))

	out, err := execute(t, newPhasesCmd(), "--config-path", dir, "-o", "json")
	require.Error(t, err)

	var report formatting.ReportView
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, bootstrap.StatusError, report.Status)
	require.Len(t, report.Phases, 2)
	assert.Equal(t, bootstrap.PhaseCreateModuleCatalog.String(), report.Phases[1].Name)
	assert.NotEmpty(t, report.Phases[1].Error)
}

func TestPhasesCommand_InvalidOutput(t *testing.T) {
	_, err := execute(t, newPhasesCmd(), "--config-path", t.TempDir(), "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestModulesCommand(t *testing.T) {
	out, err := execute(t, newModulesCmd(), "--config-path", t.TempDir(), "-o", "json")
	require.NoError(t, err)

	var modules []formatting.ModuleView
	require.NoError(t, json.Unmarshal([]byte(out), &modules))
	require.Len(t, modules, 2)
	assert.Equal(t, "Customers", modules[0].Name)
	assert.Equal(t, "Orders", modules[1].Name)
	assert.Equal(t, []string{"Customers"}, modules[1].DependsOn)
	assert.Equal(t, "Initialized", modules[1].State)
}

func TestRegistrationsCommand(t *testing.T) {
	out, err := execute(t, newRegistrationsCmd(), "--config-path", t.TempDir(), "--headless", "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "key: RegionManager")
	assert.Contains(t, out, "key: EventAggregator")
	assert.Contains(t, out, "lifetime: transient")
}
