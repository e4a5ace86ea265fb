package document

import "context"

// Document is one durable value that is always read and written whole.
type Document interface {
	Load(ctx context.Context) ([]byte, error)
	// Rewrite passes the current value to fn inside a transaction and stores
	// the returned value. A nil value leaves the document untouched.
	Rewrite(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}
