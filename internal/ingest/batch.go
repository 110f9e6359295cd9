package ingest

import (
	"context"
)

// DefaultBatchSize is the number of records written per transaction.
const DefaultBatchSize = 200

// Chunk splits items into consecutive slices of at most size elements,
// preserving order. The last chunk may be shorter. size <= 0 means one
// chunk holding everything.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// Writer commits batches, each in its own transaction.
type Writer struct {
	store Datastore
}

// NewWriter creates a Writer on top of store.
func NewWriter(store Datastore) *Writer {
	return &Writer{store: store}
}

// WriteBatch runs insert inside a transaction. index is the 1-based batch
// number used in the error. A failed batch leaves nothing behind.
func (w *Writer) WriteBatch(ctx context.Context, index int, insert func(tx Datastore) error) error {
	if err := ctx.Err(); err != nil {
		return &Error{Kind: ErrBatchWrite, Batch: index, Err: err}
	}
	if err := w.store.Transaction(ctx, insert); err != nil {
		return &Error{Kind: ErrBatchWrite, Batch: index, Err: err}
	}
	return nil
}
