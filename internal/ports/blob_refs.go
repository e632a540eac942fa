package ports

import "errors"

var ErrBlobRefNotFound = errors.New("blob reference not found")

// Blob is the content behind an ephemeral reference.
type Blob struct {
	Name    string
	Type    string
	Content []byte
}

// BlobRefs mints process-local references to in-memory file content.
// Every minted reference must be released by its owner.
type BlobRefs interface {
	Mint(name string, mimeType string, content []byte) (string, error)
	Resolve(ref string) (Blob, error)
	Release(ref string) bool
}
