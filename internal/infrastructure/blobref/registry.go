package blobref

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"feedbackdesk/internal/ports"
)

// Scheme prefixes every reference minted by a Registry.
const Scheme = "blob:feedbackdesk/"

// Registry keeps attachment content in memory until the reference is released.
// References die with the process, like object URLs die with a page session.
type Registry struct {
	mu    sync.Mutex
	blobs map[string]ports.Blob
}

var _ ports.BlobRefs = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string]ports.Blob)}
}

func (r *Registry) Mint(name string, mimeType string, content []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("blob name is required")
	}

	data := make([]byte, len(content))
	copy(data, content)

	ref := Scheme + uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[ref] = ports.Blob{Name: name, Type: mimeType, Content: data}
	return ref, nil
}

func (r *Registry) Resolve(ref string) (ports.Blob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, ok := r.blobs[ref]
	if !ok {
		return ports.Blob{}, ports.ErrBlobRefNotFound
	}
	return blob, nil
}

// Release drops the content behind ref. It reports whether ref was live.
func (r *Registry) Release(ref string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blobs[ref]; !ok {
		return false
	}
	delete(r.blobs, ref)
	return true
}

// Len reports the number of live references.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blobs)
}
