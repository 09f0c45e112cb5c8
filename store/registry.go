package store

import (
	"bytes"

	"go.uber.org/atomic"

	"github.com/babylonchain/avaproof/proof"
)

// Registry is a local dedup cache of proofs this node has already
// decoded, keyed by ProofId, so a node can recognize a previously seen
// proof without re-deriving or re-verifying it.
type Registry struct {
	backend Store
	format  proof.Format

	// hits/misses are plain bookkeeping counters, not metrics exported
	// to Prometheus; atomic rather than mutex-guarded since they are
	// the only state Lookup touches outside the backend itself.
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRegistry wraps a Store as a proof registry. format is the wire
// format every stored proof is encoded and decoded with.
func NewRegistry(backend Store, format proof.Format) *Registry {
	return &Registry{backend: backend, format: format}
}

// Stats returns the registry's lookup hit/miss counts since creation.
func (r *Registry) Stats() (hits, misses uint64) {
	return r.hits.Load(), r.misses.Load()
}

// Remember stores p under its ProofId, overwriting any previous entry.
func (r *Registry) Remember(p *proof.Proof) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return err
	}
	id := p.ProofId()
	return r.backend.Put(id.Bytes(), buf.Bytes())
}

// Lookup returns the proof previously stored under id, if any.
func (r *Registry) Lookup(id proof.ProofId) (*proof.Proof, bool, error) {
	ok, err := r.backend.Exists(id.Bytes())
	if err != nil || !ok {
		r.misses.Inc()
		return nil, false, err
	}
	data, err := r.backend.Get(id.Bytes())
	if err != nil {
		return nil, false, err
	}
	p, err := proof.Decode(data, r.format)
	if err != nil {
		return nil, false, err
	}
	r.hits.Inc()
	return p, true, nil
}

// Forget removes id from the registry, if present.
func (r *Registry) Forget(id proof.ProofId) error {
	return r.backend.Delete(id.Bytes())
}

// Close releases the underlying backend's resources.
func (r *Registry) Close() error {
	return r.backend.Close()
}
