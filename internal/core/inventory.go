// Package core contains the inventory domain types shared by every lager command:
// catalogue items, table columns, settings, department mappings and the dialects
// the store can talk to.
package core

import (
	"strings"
)

// Dialect identifies a supported storage backend.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

// SupportedDialects returns a slice of all supported dialect values.
func SupportedDialects() []Dialect {
	return []Dialect{
		DialectSQLite,
		DialectMySQL,
	}
}

// ParseDialect returns the dialect matching s, ignoring case and surrounding spaces.
// An empty string selects SQLite.
func ParseDialect(s string) (Dialect, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DialectSQLite, true
	}
	for _, d := range SupportedDialects() {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Item is one catalogue entry. Barcode is the upsert key.
type Item struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
}

// DisplayName renders the item the way scan screens show it: "NAME (BARCODE)".
func (i Item) DisplayName() string {
	if i.Name == "" {
		return strings.ToUpper(i.Barcode)
	}
	return strings.ToUpper(i.Name) + " (" + strings.ToUpper(i.Barcode) + ")"
}

// Column describes one column of an introspected table.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"notNull,omitempty"`
	PrimaryKey bool   `json:"primaryKey,omitempty"`
}

// Setting is a global key/value configuration entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DepartmentMapping maps a barcode prefix to a department label.
type DepartmentMapping struct {
	Prefix     string `json:"prefix"`
	Department string `json:"department"`
}

// DepartmentStat counts the items a department currently has checked out.
type DepartmentStat struct {
	Department string `json:"department"`
	CheckedOut int64  `json:"checkedOut"`
}

// UnknownDepartment labels log rows that carry no department.
const UnknownDepartment = "Unknown"

// LogColumns are the logs columns the checkout statistics read.
var LogColumns = []string{"timestamp", "barcode", "action", "department"}

// Table names the inventory store is built around.
const (
	TableItems              = "items"
	TableLogs               = "logs"
	TableSettings           = "settings"
	TableDepartmentMappings = "department_mappings"
)

// DefaultSampleLimit bounds preview reads of the items table. It is also the
// largest sample any command returns.
const DefaultSampleLimit = 10

// ClampSampleLimit keeps n within 1..DefaultSampleLimit; non-positive values
// select the default.
func ClampSampleLimit(n int) int {
	if n <= 0 || n > DefaultSampleLimit {
		return DefaultSampleLimit
	}
	return n
}

// DefaultDepartmentMappings are seeded into an empty department_mappings table.
func DefaultDepartmentMappings() []DepartmentMapping {
	return []DepartmentMapping{
		{Prefix: "KÄKX", Department: "Käkkirurgi"},
		{Prefix: "ORTX", Department: "Ortopedi"},
		{Prefix: "NEURX", Department: "Neurokirurgi"},
	}
}

// DefaultSettings are inserted on bootstrap without overwriting existing keys.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: "auto_export_enabled", Value: "false"},
		{Key: "export_path", Value: ""},
		{Key: "alert_threshold_hours", Value: "24"},
		{Key: "trigger_barcode", Value: "SCAN_START"},
	}
}

// ResolveDepartment returns the department whose prefix is the longest prefix of
// barcode. Prefixes match regardless of letter case, as scanners may emit either.
func ResolveDepartment(mappings []DepartmentMapping, barcode string) (string, bool) {
	best := -1
	dept := ""
	for _, m := range mappings {
		if m.Prefix == "" || !hasPrefixFold(barcode, m.Prefix) {
			continue
		}
		if len(m.Prefix) > best {
			best = len(m.Prefix)
			dept = m.Department
		}
	}
	return dept, best >= 0
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// SettingsMap folds settings into a map; a later duplicate key overwrites an earlier one.
func SettingsMap(settings []Setting) map[string]string {
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.Key] = s.Value
	}
	return m
}

// DepartmentMap folds mappings into a map; a later duplicate prefix overwrites an earlier one.
func DepartmentMap(mappings []DepartmentMapping) map[string]string {
	m := make(map[string]string, len(mappings))
	for _, d := range mappings {
		m[d.Prefix] = d.Department
	}
	return m
}
