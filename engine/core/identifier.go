package core

import "fmt"

/**
 * @brief Hands out small integer ids and recycles released ones. The owner
 * stored at an id is kept so lookups can go from id back to the object.
 */
type IdentifierPool struct {
	owners []interface{}
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{owners: make([]interface{}, 0, capacity)}
}

// Acquire returns the lowest free id and records owner against it.
func (p *IdentifierPool) Acquire(owner interface{}) uint32 {
	length := uint32(len(p.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			return i
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	p.owners = append(p.owners, owner)
	return uint32(len(p.owners)) - 1
}

// Release frees id for reuse.
func (p *IdentifierPool) Release(id uint32) error {
	if len(p.owners) == 0 {
		return fmt.Errorf("release of id %d: %w", id, ErrIdentifierPoolEmpty)
	}
	length := uint32(len(p.owners))
	if id >= length {
		return fmt.Errorf("release of id %d (max=%d): %w", id, length-1, ErrIdentifierOutOfRange)
	}
	p.owners[id] = nil
	return nil
}

// Owner returns what was registered for id, or nil.
func (p *IdentifierPool) Owner(id uint32) interface{} {
	if id >= uint32(len(p.owners)) {
		return nil
	}
	return p.owners[id]
}
