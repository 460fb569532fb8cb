package output

import (
	"fmt"
	"strings"

	"lager/internal/core"
	"lager/internal/importer"
	"lager/internal/inspect"
	"lager/internal/store"
)

type humanFormatter struct{}

// FormatReport formats an inspection report one fact per line.
// Example output:
//
//	📋 Tables in database: [department_mappings items logs settings]
//	🔧 Items table structure: [(barcode, TEXT) (name, TEXT)]
//	📦 Number of items in database: 2
//	🔍 Sample items:
//	  - A100: Gauze Pad
func (humanFormatter) FormatReport(r *inspect.Report) (string, error) {
	if r == nil {
		return "", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Tables in database: [%s]\n", strings.Join(r.Tables, " "))
	fmt.Fprintf(&sb, "🔧 Items table structure: [%s]\n", formatColumns(r.ItemColumns))
	fmt.Fprintf(&sb, "📦 Number of items in database: %d\n", r.ItemCount)
	sb.WriteString("🔍 Sample items:\n")
	writeItems(&sb, r.SampleItems)
	fmt.Fprintf(&sb, "📊 Number of logs in database: %d\n", r.LogCount)
	if len(r.CheckedOut) > 0 {
		fmt.Fprintf(&sb, "📤 Items checked out: %d\n", r.CheckedOutTotal)
		for _, st := range r.CheckedOut {
			fmt.Fprintf(&sb, "  - %s: %d\n", st.Department, st.CheckedOut)
		}
	}
	fmt.Fprintf(&sb, "⚙️ Settings: %s\n", formatMap(r.Settings))
	fmt.Fprintf(&sb, "🏥 Department mappings: %s\n", formatMap(r.DepartmentMappings))
	sb.WriteString("✅ Database inspection completed successfully!\n")
	return sb.String(), nil
}

// FormatImport formats the outcome of an import together with the read-back sample.
func (humanFormatter) FormatImport(res *importer.Result) (string, error) {
	if res == nil {
		return "", nil
	}

	var sb strings.Builder
	if res.DryRun {
		fmt.Fprintf(&sb, "ℹ️ Dry run: %d items would be imported. Total items in database: %d\n", res.Parsed, res.TotalItems)
		sb.WriteString("🔍 Current sample items:\n")
	} else {
		fmt.Fprintf(&sb, "✅ Successfully imported %d items! Total items in database: %d\n", res.Applied, res.TotalItems)
		sb.WriteString("🔍 Sample imported items:\n")
	}
	writeItems(&sb, res.Sample)
	return sb.String(), nil
}

// FormatLookups formats one line per looked-up barcode.
func (humanFormatter) FormatLookups(lookups []inspect.Lookup) (string, error) {
	var sb strings.Builder
	for _, l := range lookups {
		glyph := "✅"
		if !l.Known {
			glyph = "❌"
		}
		dept := l.Department
		if dept == "" {
			dept = "Unknown"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", glyph, l.DisplayName, dept)
	}
	return sb.String(), nil
}

// FormatBootstrap formats the result of schema creation.
func (humanFormatter) FormatBootstrap(database string, res *store.BootstrapResult) (string, error) {
	if res == nil {
		return "", nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Schema ready at %s\n", database)
	fmt.Fprintf(&sb, "🏥 Seeded department mappings: %d\n", res.SeededMappings)
	fmt.Fprintf(&sb, "⚙️ Seeded settings: %d\n", res.SeededSettings)
	return sb.String(), nil
}

func formatColumns(cols []core.Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("(%s, %s)", c.Name, c.Type)
	}
	return strings.Join(parts, " ")
}

func formatMap(m map[string]string) string {
	keys := sortedKeys(m)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func writeItems(sb *strings.Builder, items []core.Item) {
	for _, it := range items {
		fmt.Fprintf(sb, "  - %s: %s\n", it.Barcode, it.Name)
	}
}
