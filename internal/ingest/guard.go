package ingest

import "fmt"

// DuplicateGuard rejects rows whose unique key was already seen earlier in
// the same upload or is already stored for the tenant.
type DuplicateGuard struct {
	field    string
	seen     map[string]int
	existing map[string]struct{}
}

// NewDuplicateGuard builds a guard for the key column field. existing holds
// keys already stored for the tenant.
func NewDuplicateGuard(field string, existing []string) *DuplicateGuard {
	g := &DuplicateGuard{
		field:    field,
		seen:     make(map[string]int),
		existing: make(map[string]struct{}, len(existing)),
	}
	for _, k := range existing {
		g.existing[k] = struct{}{}
	}
	return g
}

// Check must be called for rows in file order. It fails on the first row
// that repeats a key.
func (g *DuplicateGuard) Check(row int, key string) error {
	if first, ok := g.seen[key]; ok {
		return &Error{
			Kind:  ErrDuplicateKey,
			Row:   row,
			Field: g.field,
			Key:   key,
			Err:   fmt.Errorf("%w (first at row %d)", ErrDuplicateInUpload, first),
		}
	}
	g.seen[key] = row

	if _, ok := g.existing[key]; ok {
		return &Error{Kind: ErrDuplicateKey, Row: row, Field: g.field, Key: key, Err: ErrDuplicateExisting}
	}
	return nil
}
