package pending

import (
	"strings"
	"sync"
)

// Registry tracks in-flight mutations (control commands, payment
// initiations) per asset/room so duplicate submissions are rejected and the
// status poller can skip entities with a pending write.
type Registry struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{inflight: make(map[string]struct{})}
}

func key(assetNumber, roomNumber string) string {
	return assetNumber + "/" + roomNumber
}

// Begin marks a mutation as in flight. Returns false if one is already
// pending for the same asset/room, in which case the caller must not submit.
func (r *Registry) Begin(assetNumber, roomNumber string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(assetNumber, roomNumber)
	if _, ok := r.inflight[k]; ok {
		return false
	}
	r.inflight[k] = struct{}{}
	return true
}

// End clears the in-flight mark once the mutation resolved (success or error).
func (r *Registry) End(assetNumber, roomNumber string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, key(assetNumber, roomNumber))
}

// AssetBusy reports whether any mutation is pending for the asset.
func (r *Registry) AssetBusy(assetNumber string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := assetNumber + "/"
	for k := range r.inflight {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}
