package installed

import (
	"github.com/glorpus-work/pakr/pkg/errutils"
)

// Backend kinds accepted by NewBackend.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// NewBackend returns the backend of the given kind stored at path.
func NewBackend(kind, path string) (Backend, error) {
	switch kind {
	case "", KindJSON:
		return NewJSONFileBackend(path), nil
	case KindSQLite:
		backend, err := OpenSQLiteBackend(path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, errutils.ErrInvalidStateBackendWithDetails(kind)
	}
}
