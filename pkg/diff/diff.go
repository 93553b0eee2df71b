// Package diff computes the ordered set of change records between two bucket
// snapshots.
package diff

import (
	"time"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/snapshot"
)

// Compute returns the change records describing how current differs from
// previous. It is a pure function of its inputs.
//
// Classification: a key only in current is added; a key in both whose size or
// last-modified differs is modified; a key only in previous is removed. Every
// key in either snapshot falls into exactly one of those classes or is
// unchanged. Object identity is the key alone: a key reappearing after an
// earlier removal is a fresh added, not a resurrection.
//
// Ordering: all removed records first, then modified, then added, each group
// in ascending key order. The ordering is a fixed policy of this package so
// the changelog is deterministic; nothing external depends on it.
//
// now is stamped on every record as the detection time.
func Compute(previous, current snapshot.Snapshot, now time.Time) []changelog.Record {
	var records []changelog.Record

	for _, key := range previous.Keys() {
		if _, ok := current[key]; !ok {
			records = append(records, changelog.Record{
				Action: changelog.ActionRemoved,
				Key:    key,
				Time:   now,
			})
		}
	}

	for _, key := range current.Keys() {
		prev, ok := previous[key]
		if !ok {
			continue
		}
		cur := current[key]
		if prev.Size != cur.Size || !prev.LastModified.Equal(cur.LastModified) {
			prevSize, newSize := prev.Size, cur.Size
			prevMod, newMod := prev.LastModified, cur.LastModified
			records = append(records, changelog.Record{
				Action:       changelog.ActionModified,
				Key:          key,
				Time:         now,
				PrevSize:     &prevSize,
				NewSize:      &newSize,
				PrevModified: &prevMod,
				NewModified:  &newMod,
			})
		}
	}

	for _, key := range current.Keys() {
		if _, ok := previous[key]; !ok {
			records = append(records, changelog.Record{
				Action: changelog.ActionAdded,
				Key:    key,
				Time:   now,
			})
		}
	}

	return records
}
