package blobref

import (
	"errors"
	"strings"
	"testing"

	"feedbackdesk/internal/ports"
)

func TestRegistryMintResolveRelease(t *testing.T) {
	registry := NewRegistry()
	content := []byte("png-bytes")

	ref, err := registry.Mint("shot.png", "image/png", content)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if !strings.HasPrefix(ref, Scheme) {
		t.Fatalf("ref = %q, want prefix %q", ref, Scheme)
	}

	content[0] = 'X'
	blob, err := registry.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(blob.Content) != "png-bytes" || blob.Type != "image/png" || blob.Name != "shot.png" {
		t.Fatalf("Resolve() = %+v", blob)
	}

	if !registry.Release(ref) {
		t.Fatalf("Release() = false, want true")
	}
	if registry.Release(ref) {
		t.Fatalf("second Release() = true, want false")
	}
	if _, err := registry.Resolve(ref); !errors.Is(err, ports.ErrBlobRefNotFound) {
		t.Fatalf("Resolve() after release error = %v", err)
	}
	if registry.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", registry.Len())
	}
}

func TestRegistryMintsDistinctRefs(t *testing.T) {
	registry := NewRegistry()

	first, err := registry.Mint("a.pdf", "application/pdf", nil)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	second, err := registry.Mint("a.pdf", "application/pdf", nil)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if first == second {
		t.Fatalf("refs collide: %q", first)
	}
	if registry.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", registry.Len())
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	if _, err := NewRegistry().Mint(" ", "image/png", nil); err == nil {
		t.Fatalf("Mint() expected error for empty name")
	}
}
