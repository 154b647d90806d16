package port

import "context"

// CartStorage is a durable string key-value slot, the server-side stand-in
// for browser local storage.
type CartStorage interface {
	// Load returns the stored value, ok is false when the key is absent
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save overwrites the value stored under key
	Save(ctx context.Context, key, value string) error
}
