package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure of a pipeline run wraps exactly one of these.
var (
	ErrStructuralParse       = errors.New("structural parse error")
	ErrRowValidation         = errors.New("row validation error")
	ErrUnresolvableReference = errors.New("unresolvable reference")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrBatchWrite            = errors.New("batch write failed")
)

// Causes carried inside an Error.
var (
	ErrMissingHeader     = errors.New("missing header row")
	ErrInvalidEncoding   = errors.New("invalid text encoding")
	ErrDuplicateHeader   = errors.New("duplicate header column")
	ErrTooManyRows       = errors.New("too many rows")
	ErrNoData            = errors.New("no data rows")
	ErrRequired          = errors.New("required value is empty")
	ErrUnsupportedValue  = errors.New("unsupported value")
	ErrNotInteger        = errors.New("not an integer")
	ErrNegative          = errors.New("negative value")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrDuplicateInUpload = errors.New("key repeats within the upload")
	ErrDuplicateExisting = errors.New("key already exists")
	ErrUnknownKind       = errors.New("unknown entity kind")
)

var kindNames = map[error]string{
	ErrStructuralParse:       "structural_parse",
	ErrRowValidation:         "row_validation",
	ErrUnresolvableReference: "unresolvable_reference",
	ErrDuplicateKey:          "duplicate_key",
	ErrBatchWrite:            "batch_write",
}

// Error describes why a run failed and where.
// Row is the 1-based data row (0 when the failure is not tied to a row),
// Batch the 1-based batch index for write failures.
type Error struct {
	Kind  error
	Row   int
	Field string
	Key   string
	Batch int
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, ": key %q", e.Key)
	}
	if e.Batch > 0 {
		fmt.Fprintf(&b, ": batch %d", e.Batch)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind carried by err, or nil if err did not come
// from a pipeline stage.
func KindOf(err error) error {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return nil
}

// KindName returns a stable snake_case name for the kind carried by err,
// "internal" for anything else and "" for nil.
func KindName(err error) string {
	if err == nil {
		return ""
	}
	if name, ok := kindNames[KindOf(err)]; ok {
		return name
	}
	return "internal"
}

func rowError(kind error, row int, field string, cause error) *Error {
	return &Error{Kind: kind, Row: row, Field: field, Err: cause}
}
