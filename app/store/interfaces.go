// Package store persists datasets as JSON values under stable string keys.
package store

// Store is the key-value collaborator every service reads and writes through.
//
// Get decodes the value under key into v and reports whether it was present.
// A value that is not valid JSON is logged and reported as absent.
type Store interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

// Load returns the dataset under key, or the zero value when it is absent.
func Load[T any](s Store, key string) (T, error) {
	var v, zero T
	ok, err := s.Get(key, &v)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, nil
	}
	return v, nil
}
