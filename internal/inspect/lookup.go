package inspect

import (
	"context"
	"strings"

	"lager/internal/core"
	"lager/internal/store"
)

// Lookup is what the database knows about a single barcode.
type Lookup struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name,omitempty"`
	Known       bool   `json:"known"`
	Department  string `json:"department,omitempty"`
	DisplayName string `json:"displayName"`
}

// LookupBarcodes resolves each barcode to its item name and to the department
// owning the longest matching prefix. A barcode not stored as given is retried in
// upper case, the form scanners and the import files use.
func LookupBarcodes(ctx context.Context, loc store.Location, barcodes []string) ([]Lookup, error) {
	s, err := store.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	mappings, err := s.DepartmentMappings(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Lookup, 0, len(barcodes))
	for _, bc := range barcodes {
		bc = strings.TrimSpace(bc)
		if bc == "" {
			continue
		}
		name, known, err := s.ItemName(ctx, bc)
		if err != nil {
			return nil, err
		}
		if upper := strings.ToUpper(bc); !known && upper != bc {
			name, known, err = s.ItemName(ctx, upper)
			if err != nil {
				return nil, err
			}
			if known {
				bc = upper
			}
		}
		dept, _ := core.ResolveDepartment(mappings, bc)
		out = append(out, Lookup{
			Barcode:     bc,
			Name:        name,
			Known:       known,
			Department:  dept,
			DisplayName: core.Item{Barcode: bc, Name: name}.DisplayName(),
		})
	}
	return out, nil
}
