// internal/dedup/badger.go
package dedup

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is a disk-backed Cache for runs whose fragment universe will
// not fit in memory. Keys are fragment identifiers, values empty. The
// single-caller rule still applies; badger's own concurrency control
// is not relied upon.
type Badger struct {
	db    *badger.DB
	count int64
}

// OpenBadger opens (or creates) a cache at dir. Tuned low-memory: the
// cache competes with worker processes for RAM on the machines these
// runs happen on.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20).
		WithNumMemtables(2).
		WithBlockCacheSize(32 << 20).
		WithIndexCacheSize(16 << 20).
		WithValueThreshold(256).
		WithDetectConflicts(false)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open dedup cache: %w", err)
	}
	b := &Badger{db: db}
	// carry over the count from a pre-seeded cache directory
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			b.count++
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *Badger) Seen(id string) (bool, error) {
	key := []byte(id)
	present := false
	err := b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			present = true
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, fmt.Errorf("dedup cache: %w", err)
	}
	if !present {
		b.count++
	}
	return present, nil
}

func (b *Badger) Len() int64 { return b.count }

func (b *Badger) Close() error { return b.db.Close() }
