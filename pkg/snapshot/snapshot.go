// Package snapshot persists the last known state of the bucket listing so the
// monitor survives restarts without reporting the whole bucket as newly added.
package snapshot

import (
	"sort"

	"github.com/mfco/spacewatch/pkg/dto"
)

// Snapshot maps object keys to their observed metadata at one poll instant.
// A published snapshot is never mutated; each successful poll cycle replaces
// it with a new instance.
type Snapshot map[string]dto.S3Object

// New returns an empty snapshot.
func New() Snapshot {
	return Snapshot{}
}

// FromObjects builds a snapshot from a full bucket listing. Keys are unique
// within a listing, so a plain assignment per object is sufficient.
func FromObjects(objects []dto.S3Object) Snapshot {
	s := make(Snapshot, len(objects))
	for _, obj := range objects {
		s[obj.Key] = obj
	}
	return s
}

// Keys returns all object keys in ascending lexicographic order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Objects returns the snapshot's records ordered by ascending key.
func (s Snapshot) Objects() []dto.S3Object {
	result := make([]dto.S3Object, 0, len(s))
	for _, k := range s.Keys() {
		result = append(result, s[k])
	}
	return result
}
