package storage

import "errors"

// Storage is the key-value persistence the cart writes through on every
// mutation. Consumers define this interface, not the file or Redis
// implementation.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

var ErrNotFound = errors.New("key not found")
