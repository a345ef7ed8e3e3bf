package entity

import "slices"

// IDs is an adjacency collection: the identifiers of the entities on the other
// side of a relationship. It behaves as a set ordered by insertion.
type IDs []uint64

// Contains reports whether id is part of the collection.
func (ids IDs) Contains(id uint64) bool {
	return slices.Contains(ids, id)
}

// Add appends id unless it is already present and reports whether it was added.
func (ids *IDs) Add(id uint64) bool {
	if ids.Contains(id) {
		return false
	}
	*ids = append(*ids, id)

	return true
}

// Remove drops id from the collection.
func (ids *IDs) Remove(id uint64) {
	*ids = slices.DeleteFunc(*ids, func(v uint64) bool { return v == id })
}

// Clone returns an independent copy.
func (ids IDs) Clone() IDs {
	if ids == nil {
		return nil
	}

	return slices.Clone(ids)
}
