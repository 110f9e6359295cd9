package ingest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrRowValidation, Row: 4, Field: "price", Err: ErrNotInteger}
	assert.Equal(t, `row validation error: row 4: field "price": not an integer`, err.Error())

	err = &Error{Kind: ErrBatchWrite, Batch: 2}
	assert.Equal(t, "batch write failed: batch 2", err.Error())
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "", KindName(nil))
	assert.Equal(t, "duplicate_key", KindName(&Error{Kind: ErrDuplicateKey}))
	assert.Equal(t, "batch_write", KindName(fmt.Errorf("wrapped: %w", &Error{Kind: ErrBatchWrite})))
	assert.Equal(t, "internal", KindName(errors.New("boom")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrStructuralParse, KindOf(&Error{Kind: ErrStructuralParse}))
	assert.Nil(t, KindOf(errors.New("boom")))
}
