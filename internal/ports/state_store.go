package ports

import "context"

// StateStore persists opaque state blobs under fixed keys.
// A missing key is reported as found=false, never as an error.
type StateStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
