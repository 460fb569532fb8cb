package output

import (
	"errors"
	"fmt"
	"strings"

	"lager/internal/core"
)

// ErrorLine renders err as a single console status line.
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	var nf *core.FileNotFoundError
	var se *core.StorageError
	switch {
	case errors.As(err, &nf):
		return fmt.Sprintf("❌ %s not found at %s", capitalize(nf.Kind), nf.Path)
	case errors.As(err, &se):
		return fmt.Sprintf("❌ Storage error (%s): %v", se.Op, se.Err)
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
