package host

// LedgerKey and LedgerEntry are opaque payloads from the host's point of
// view: it never inspects their contents, only compares keys for
// equality and hands entries back to whoever put them in. The concrete
// wire shape lives in package xdr; here they're byte-string handles.
type LedgerKey string
type LedgerEntry []byte

// AccessType distinguishes read-only footprint entries (which may be
// read but not written within an invocation) from read-write ones.
type AccessType uint8

const (
	AccessReadOnly AccessType = iota
	AccessReadWrite
)

// Footprint declares, up front, every LedgerKey an invocation may touch
// and how. Storage rejects any access to a key outside the footprint, and
// any write to a key only declared AccessReadOnly.
type Footprint map[LedgerKey]AccessType

// BackingStore is the persistent collaborator Storage reads through and
// flushes into; ledgerstore.MemStore is the concrete implementation
// shipped alongside the host.
type BackingStore interface {
	GetEntry(key LedgerKey) (LedgerEntry, bool, error)
	PutEntry(key LedgerKey, entry LedgerEntry) error
	DelEntry(key LedgerKey) error
}

// storageOverlay is one versioned layer of pending entries: nil means
// "deleted", absent means "unchanged from the layer below".
type storageOverlay map[LedgerKey]*LedgerEntry

// Storage is the transactional persistent-map overlay above a
// BackingStore. Reads fall through the overlay to the backing store;
// writes land only in the overlay until Commit, and RollbackPoint lets a
// Frame undo every write the overlay recorded since the frame was
// pushed (without touching the backing store at all).
type Storage struct {
	backing   BackingStore
	footprint Footprint
	overlay   storageOverlay
	// overlayShared marks overlay as also referenced by a live
	// RollbackPoint; the next Put/Del must clone before mutating so that
	// rolling back to that point still observes the pre-write contents.
	// This is the same copy-on-write discipline OrderedMap.Clone uses:
	// snapshotting is a pointer copy (O(1)), and the O(overlay size)
	// clone only happens lazily, on the first write after a snapshot.
	overlayShared bool

	// discover, when set, disables footprint enforcement and instead
	// records every key an invocation touches (and how) into accessed.
	// A driver runs one invocation in this mode over a scratch backing
	// store to learn the footprint a real submission needs to declare,
	// mirroring how a preflight/simulation pass discovers a
	// transaction's footprint before it is submitted for real.
	discover bool
	accessed Footprint
}

// NewStorage constructs a Storage over the given backing store and
// footprint.
func NewStorage(backing BackingStore, footprint Footprint) *Storage {
	return &Storage{backing: backing, footprint: footprint, overlay: storageOverlay{}}
}

// NewDiscoveryStorage constructs a Storage with footprint enforcement
// disabled, recording every key accessed instead. Pair with
// Storage.Accessed (Host.DiscoveredFootprint on a Host).
func NewDiscoveryStorage(backing BackingStore) *Storage {
	return &Storage{backing: backing, footprint: Footprint{}, overlay: storageOverlay{}, discover: true, accessed: Footprint{}}
}

func (s *Storage) checkFootprint(key LedgerKey, write bool) error {
	if s.discover {
		access := AccessReadOnly
		if write {
			access = AccessReadWrite
		}
		if cur, ok := s.accessed[key]; !ok || (cur == AccessReadOnly && write) {
			s.accessed[key] = access
		}
		return nil
	}
	access, ok := s.footprint[key]
	if !ok {
		return newErr(DomainHostStorageError, CodeAccessToUnknownEntry, "access to key outside footprint")
	}
	if write && access != AccessReadWrite {
		return newErr(DomainHostStorageError, CodeReadwriteAccessToReadonlyEntry, "write to a read-only footprint entry")
	}
	return nil
}

// Accessed returns a copy of the keys recorded during discovery mode,
// suitable for use as the Footprint of a subsequent real invocation.
func (s *Storage) Accessed() Footprint {
	out := make(Footprint, len(s.accessed))
	for k, v := range s.accessed {
		out[k] = v
	}
	return out
}

// Has reports whether key currently has a live entry.
func (s *Storage) Has(key LedgerKey) (bool, error) {
	if err := s.checkFootprint(key, false); err != nil {
		return false, err
	}
	if e, ok := s.overlay[key]; ok {
		return e != nil, nil
	}
	_, ok, err := s.backing.GetEntry(key)
	return ok, err
}

// Get returns the current entry at key.
func (s *Storage) Get(key LedgerKey) (LedgerEntry, error) {
	if err := s.checkFootprint(key, false); err != nil {
		return nil, err
	}
	if e, ok := s.overlay[key]; ok {
		if e == nil {
			return nil, newErr(DomainHostStorageError, CodeMissingValue, "key has been deleted")
		}
		return *e, nil
	}
	entry, ok, err := s.backing.GetEntry(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newErr(DomainHostStorageError, CodeMissingValue, "no entry for key")
	}
	return entry, nil
}

// ensureOwned clones overlay before a mutation if it is also referenced
// by a pending RollbackPoint, the same lazy-clone discipline
// OrderedMap.ensureOwned uses for its backing slice.
func (s *Storage) ensureOwned() {
	if !s.overlayShared {
		return
	}
	cp := make(storageOverlay, len(s.overlay))
	for k, v := range s.overlay {
		cp[k] = v
	}
	s.overlay = cp
	s.overlayShared = false
}

// Put sets the entry at key, staging the write in the overlay.
func (s *Storage) Put(key LedgerKey, entry LedgerEntry) error {
	if err := s.checkFootprint(key, true); err != nil {
		return err
	}
	s.ensureOwned()
	cp := make(LedgerEntry, len(entry))
	copy(cp, entry)
	s.overlay[key] = &cp
	return nil
}

// Del removes the entry at key, staging a tombstone in the overlay.
func (s *Storage) Del(key LedgerKey) error {
	if err := s.checkFootprint(key, true); err != nil {
		return err
	}
	s.ensureOwned()
	s.overlay[key] = nil
	return nil
}

// storageRollback captures an O(1) reference to the overlay map at the
// moment a Frame was pushed. Unlike a point-in-time byte copy, nothing is
// actually duplicated until the first write after the snapshot forces
// ensureOwned to clone — so a frame that reads but never writes storage
// costs nothing extra to roll back.
type storageRollback struct {
	overlay storageOverlay
}

func (s *Storage) snapshot() storageRollback {
	s.overlayShared = true
	return storageRollback{overlay: s.overlay}
}

func (s *Storage) restore(rb storageRollback) {
	s.overlay = rb.overlay
	// The restored map may still be referenced by an ancestor frame's own
	// pending RollbackPoint (pushed before any write forced a clone), so
	// it must stay copy-on-write rather than become directly mutable.
	s.overlayShared = true
}

// Commit flushes every staged overlay write/delete into the backing
// store, used once at the top level after a successful invocation.
func (s *Storage) Commit() error {
	for key, entry := range s.overlay {
		if entry == nil {
			if err := s.backing.DelEntry(key); err != nil {
				return err
			}
			continue
		}
		if err := s.backing.PutEntry(key, *entry); err != nil {
			return err
		}
	}
	s.overlay = storageOverlay{}
	s.overlayShared = false
	return nil
}
