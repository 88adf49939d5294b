package corpus

import "fmt"

// FormatError indicates a required field was missing or malformed in the
// source table. It names the document and field so a bad row can be found
// without re-running with extra logging.
type FormatError struct {
	ID     string
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("document %q: field %q: %s", e.ID, e.Field, e.Reason)
}

// DateError indicates a last-amended date that could not be parsed after
// cleaning.
type DateError struct {
	ID    string
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("document %q: unparseable date %q", e.ID, e.Value)
}
