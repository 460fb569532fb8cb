package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/core"
	"lager/internal/importer"
	"lager/internal/inspect"
	"lager/internal/store"
)

func sampleReport() *inspect.Report {
	return &inspect.Report{
		Database: "data/inventory.db",
		Tables:   []string{"department_mappings", "items", "logs", "settings"},
		ItemColumns: []core.Column{
			{Name: "barcode", Type: "TEXT", PrimaryKey: true},
			{Name: "name", Type: "TEXT", NotNull: true},
		},
		ItemCount:          2,
		SampleItems:        []core.Item{{Barcode: "A100", Name: "Gauze Pad"}, {Barcode: "A300", Name: "Surgical Tape Wide"}},
		LogCount:           7,
		Settings:           map[string]string{"trigger_barcode": "SCAN_START", "alert_threshold_hours": "24"},
		DepartmentMappings: map[string]string{"ORTX": "Ortopedi"},
	}
}

func TestHumanFormatReport(t *testing.T) {
	out, err := humanFormatter{}.FormatReport(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, ""+
		"📋 Tables in database: [department_mappings items logs settings]\n"+
		"🔧 Items table structure: [(barcode, TEXT) (name, TEXT)]\n"+
		"📦 Number of items in database: 2\n"+
		"🔍 Sample items:\n"+
		"  - A100: Gauze Pad\n"+
		"  - A300: Surgical Tape Wide\n"+
		"📊 Number of logs in database: 7\n"+
		"⚙️ Settings: {alert_threshold_hours: 24, trigger_barcode: SCAN_START}\n"+
		"🏥 Department mappings: {ORTX: Ortopedi}\n"+
		"✅ Database inspection completed successfully!\n", out)
}

func TestHumanFormatReportCheckedOut(t *testing.T) {
	r := sampleReport()
	r.CheckedOut = []core.DepartmentStat{{Department: "Ortopedi", CheckedOut: 2}, {Department: "Unknown", CheckedOut: 1}}
	r.CheckedOutTotal = 3

	out, err := humanFormatter{}.FormatReport(r)
	require.NoError(t, err)
	assert.Contains(t, out, ""+
		"📊 Number of logs in database: 7\n"+
		"📤 Items checked out: 3\n"+
		"  - Ortopedi: 2\n"+
		"  - Unknown: 1\n"+
		"⚙️ Settings:")
}

func TestHumanFormatReportNil(t *testing.T) {
	out, err := humanFormatter{}.FormatReport(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHumanFormatImport(t *testing.T) {
	res := &importer.Result{
		Parsed:     3,
		Applied:    3,
		TotalItems: 2,
		Sample:     []core.Item{{Barcode: "A100", Name: "Gauze Pad"}},
	}
	out, err := humanFormatter{}.FormatImport(res)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"✅ Successfully imported 3 items! Total items in database: 2\n"+
		"🔍 Sample imported items:\n"+
		"  - A100: Gauze Pad\n", out)
}

func TestHumanFormatImportDryRun(t *testing.T) {
	out, err := humanFormatter{}.FormatImport(&importer.Result{DryRun: true, Parsed: 4, TotalItems: 9})
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 4 items would be imported. Total items in database: 9")
	assert.Contains(t, out, "Current sample items:")
}

func TestHumanFormatLookups(t *testing.T) {
	out, err := humanFormatter{}.FormatLookups([]inspect.Lookup{
		{Barcode: "ORTX1", Known: true, Department: "Ortopedi", DisplayName: "SAW (ORTX1)"},
		{Barcode: "Z1", DisplayName: "Z1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "✅ SAW (ORTX1): Ortopedi\n❌ Z1: Unknown\n", out)
}

func TestHumanFormatBootstrap(t *testing.T) {
	out, err := humanFormatter{}.FormatBootstrap("inv.db", &store.BootstrapResult{SeededMappings: 3, SeededSettings: 4})
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Schema ready at inv.db")
	assert.Contains(t, out, "Seeded department mappings: 3")
	assert.Contains(t, out, "Seeded settings: 4")
}
