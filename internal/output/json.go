package output

import (
	"encoding/json"

	"lager/internal/importer"
	"lager/internal/inspect"
	"lager/internal/store"
)

type jsonFormatter struct{}

type reportPayload struct {
	Format string `json:"format"`
	*inspect.Report
}

type importSummary struct {
	Parsed     int   `json:"parsed"`
	Skipped    int   `json:"skipped"`
	Applied    int   `json:"applied"`
	TotalItems int64 `json:"totalItems"`
}

type importPayload struct {
	Format  string        `json:"format"`
	Summary importSummary `json:"summary"`
	*importer.Result
}

type lookupPayload struct {
	Format  string           `json:"format"`
	Results []inspect.Lookup `json:"results"`
}

type bootstrapPayload struct {
	Format         string `json:"format"`
	Database       string `json:"database"`
	SeededMappings int    `json:"seededMappings"`
	SeededSettings int    `json:"seededSettings"`
}

// jsonPayload lists the documents marshalJSON accepts.
type jsonPayload interface {
	reportPayload | importPayload | lookupPayload | bootstrapPayload
}

func (jsonFormatter) FormatReport(r *inspect.Report) (string, error) {
	if r == nil {
		r = &inspect.Report{}
	}
	return marshalJSON(reportPayload{Format: string(FormatJSON), Report: r})
}

func (jsonFormatter) FormatImport(res *importer.Result) (string, error) {
	if res == nil {
		res = &importer.Result{}
	}
	payload := importPayload{
		Format: string(FormatJSON),
		Summary: importSummary{
			Parsed:     res.Parsed,
			Skipped:    len(res.Skipped),
			Applied:    res.Applied,
			TotalItems: res.TotalItems,
		},
		Result: res,
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatLookups(lookups []inspect.Lookup) (string, error) {
	if lookups == nil {
		lookups = []inspect.Lookup{}
	}
	return marshalJSON(lookupPayload{Format: string(FormatJSON), Results: lookups})
}

func (jsonFormatter) FormatBootstrap(database string, res *store.BootstrapResult) (string, error) {
	payload := bootstrapPayload{Format: string(FormatJSON), Database: database}
	if res != nil {
		payload.SeededMappings = res.SeededMappings
		payload.SeededSettings = res.SeededSettings
	}
	return marshalJSON(payload)
}

func marshalJSON[T jsonPayload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
