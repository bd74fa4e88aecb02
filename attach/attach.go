package attach

// Store is a version-keyed attachment store.
//
// It backs the randomness state object's extensible payload mechanism: the
// stable handle records a version number, and the payload currently in
// effect lives under that key. Unlike content-addressed storage, attachments
// are mutable in place — the live payload is rewritten on every accepted
// update — so Put overwrites.
//
// Contract:
// - Keys are version numbers; version 0 is invalid.
// - Put MUST replace any existing payload under the same version.
// - Get MUST return ErrNotFound when no payload exists under the version.
// - Get MUST return ErrCorrupt when the stored payload fails its
//   integrity check (backends that record one).
type Store interface {
	Put(version uint64, payload []byte) error
	Get(version uint64) ([]byte, error)
	Has(version uint64) bool
}
