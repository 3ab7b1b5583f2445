package workbook

import (
	"fmt"
	"strings"
)

// ErrorKind classifies structural import failures.
type ErrorKind string

const (
	KindUnsupportedExtension ErrorKind = "unsupported_extension"
	KindUnreadable           ErrorKind = "unreadable"
	KindNoHeader             ErrorKind = "no_header"
	KindNoMatchedColumns     ErrorKind = "no_matched_columns"
)

// StructuralError reports a workbook that cannot be imported at all.
type StructuralError struct {
	Kind     ErrorKind
	Messages []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("workbook: %s: %s", e.Kind, strings.Join(e.Messages, "; "))
}
