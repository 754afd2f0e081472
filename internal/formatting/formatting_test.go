package formatting

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootkit/internal/bootstrap"
	"bootkit/internal/container"
	"bootkit/internal/modularity"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"plain", FormatPlain, false},
		{"console", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlainTableWriter_SetHeaders(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)

	tw.SetHeaders([]string{"name", "Description", "STATUS"})

	assert.Equal(t, []string{"NAME", "DESCRIPTION", "STATUS"}, tw.headers)
	assert.Equal(t, []int{4, 11, 6}, tw.columnWidths)
}

func TestPlainTableWriter_AppendRow(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"NAME", "VALUE"})

	tw.AppendRow([]string{"short", "123"})
	tw.AppendRow([]string{"longer-name", "4567890", "dropped"})
	tw.AppendRow([]string{"only"})

	require.Len(t, tw.rows, 3)
	assert.Equal(t, []int{11, 7}, tw.columnWidths)
	assert.Equal(t, []string{"longer-name", "4567890"}, tw.rows[1])
	assert.Equal(t, []string{"only", ""}, tw.rows[2])
}

func TestPlainTableWriter_Render(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"name", "status"})
	tw.AppendRow([]string{"customers", "Initialized"})
	tw.AppendRow([]string{"orders", "NotStarted"})
	tw.Render()

	expected := "NAME        STATUS\n" +
		"customers   Initialized\n" +
		"orders      NotStarted\n"
	assert.Equal(t, expected, buf.String())
}

func TestPlainTableWriter_NoHeadersNoRows(t *testing.T) {
	var buf bytes.Buffer
	tw := NewPlainTableWriter(&buf)
	tw.SetHeaders([]string{"name"})
	tw.SetNoHeaders(true)
	tw.Render()

	assert.Empty(t, buf.String())
}

func testReport() *bootstrap.Report {
	return &bootstrap.Report{
		RunID:    uuid.MustParse("8d1e2c9a-4f7b-4a8e-9a43-7c3cbb3d5e10"),
		Status:   bootstrap.StatusError,
		Started:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration: 3 * time.Millisecond,
		Phases: []bootstrap.PhaseResult{
			{Phase: bootstrap.PhaseCreateLogger, Name: bootstrap.PhaseCreateLogger.String(), Status: bootstrap.StatusOK, Duration: time.Millisecond},
			{Phase: bootstrap.PhaseCreateModuleCatalog, Name: bootstrap.PhaseCreateModuleCatalog.String(), Status: bootstrap.StatusError, Duration: 2 * time.Millisecond, Error: "boom"},
		},
	}
}

func TestPrinter_ReportJSON(t *testing.T) {
	var buf bytes.Buffer
	view := NewReportView(testReport())

	require.NoError(t, NewPrinter(&buf, Options{Format: FormatJSON}).Print(view, view.Table()))

	var decoded ReportView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "8d1e2c9a-4f7b-4a8e-9a43-7c3cbb3d5e10", decoded.RunID)
	assert.Equal(t, "error", decoded.Status)
	require.Len(t, decoded.Phases, 2)
	assert.Equal(t, 2, decoded.Phases[1].Phase)
	assert.Equal(t, "2ms", decoded.Phases[1].Duration)
	assert.Equal(t, "boom", decoded.Phases[1].Error)
}

func TestPrinter_ReportYAML(t *testing.T) {
	var buf bytes.Buffer
	view := NewReportView(testReport())

	require.NoError(t, NewPrinter(&buf, Options{Format: FormatYAML}).Print(view, view.Table()))

	out := buf.String()
	assert.Contains(t, out, "runId: 8d1e2c9a-4f7b-4a8e-9a43-7c3cbb3d5e10")
	assert.Contains(t, out, "status: error")
	assert.Contains(t, out, "error: boom")
}

func TestPrinter_ReportTable(t *testing.T) {
	var buf bytes.Buffer
	view := NewReportView(testReport())

	require.NoError(t, NewPrinter(&buf, Options{}).Print(view, view.Table()))

	out := buf.String()
	assert.Contains(t, out, "Bootstrap 8d1e2c9a")
	assert.Contains(t, out, bootstrap.PhaseCreateModuleCatalog.String())
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "╭")
}

func TestPrinter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewPrinter(&buf, Options{Format: FormatTable}).Print(nil, Table{Headers: []string{"name"}}))

	assert.Contains(t, buf.String(), "No items found")
}

func TestPrinter_NoColorByDefault(t *testing.T) {
	var buf bytes.Buffer
	view := NewReportView(testReport())

	require.NoError(t, NewPrinter(&buf, Options{}).Print(view, view.Table()))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestModulesTable(t *testing.T) {
	views := NewModuleViews([]modularity.ModuleInfo{
		{Name: "customers"},
		{Name: "orders", Type: "orders", DependsOn: []string{"customers"}, InitializationMode: modularity.OnDemand, State: modularity.StateInitialized},
	})

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, Options{Format: FormatPlain}).Print(views, ModulesTable(views)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Equal(t, []string{"customers", "customers", "WhenAvailable", "NotStarted", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"orders", "orders", "OnDemand", "Initialized", "customers"}, strings.Fields(lines[2]))
}

func TestRegistrationsTable(t *testing.T) {
	regs := []container.Registration{
		{Key: container.KeyLogger, Implementation: "Facade", Lifetime: container.Singleton, Instance: struct{}{}},
		{Key: "region.adapter.Selector", Implementation: "Selector", Lifetime: container.Transient, Capability: "region.adapter"},
	}

	views := NewRegistrationViews(regs)
	tbl := RegistrationsTable(views)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{string(container.KeyLogger), "Facade", "instance", "-"}, tbl.Rows[0])
	assert.Equal(t, []string{"region.adapter.Selector", "Selector", "transient", "region.adapter"}, tbl.Rows[1])
	assert.True(t, views[0].Instance)
	assert.Equal(t, "2 registrations", tbl.Footer)
}
