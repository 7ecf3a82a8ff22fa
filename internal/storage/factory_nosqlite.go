//go:build !sqlite

package storage

import "fmt"

// DefaultStoreKind is the backend used when none is requested.
func DefaultStoreKind() string {
	return "memory"
}

func newSQLiteStore(_ string) (Store, error) {
	return nil, fmt.Errorf("%w: sqlite backend unavailable in this build; rebuild with -tags sqlite", ErrUnsupportedStore)
}
