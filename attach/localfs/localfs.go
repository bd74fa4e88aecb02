package localfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xdao.co/randstate/attach"
	"xdao.co/randstate/cidutil"
)

// Store is a local filesystem-backed attachment store.
//
// Each version's payload is written to v<version>.bin with a v<version>.cid
// sidecar recording a CIDv1 (raw + sha2-256) of the payload bytes. Get
// recomputes the digest and returns ErrCorrupt on mismatch, so storage
// corruption surfaces before the payload reaches the state accessor.
//
// Put replaces both files; the payload is written to a temp file and
// renamed so a crash never leaves a half-written payload under the live
// name.
type Store struct {
	root string
}

// New constructs a filesystem store rooted at root. The directory will be created if needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Put(version uint64, payload []byte) error {
	if version == 0 {
		return attach.ErrInvalidVersion
	}
	id, err := cidutil.PayloadCID(payload)
	if err != nil {
		return err
	}

	path := s.payloadPath(version)
	tmp, err := os.CreateTemp(s.root, "put-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.WriteFile(s.sidecarPath(version), []byte(id.String()+"\n"), 0o644)
}

func (s *Store) Get(version uint64) ([]byte, error) {
	if version == 0 {
		return nil, attach.ErrInvalidVersion
	}
	b, err := os.ReadFile(s.payloadPath(version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, attach.ErrNotFound
		}
		return nil, err
	}
	rec, err := os.ReadFile(s.sidecarPath(version))
	if err != nil {
		if os.IsNotExist(err) {
			// Payload without its sidecar is indistinguishable from corruption.
			return nil, attach.ErrCorrupt
		}
		return nil, err
	}
	if !cidutil.VerifyPayload(b, strings.TrimSpace(string(rec))) {
		return nil, attach.ErrCorrupt
	}
	return b, nil
}

func (s *Store) Has(version uint64) bool {
	if version == 0 {
		return false
	}
	_, err := os.Stat(s.payloadPath(version))
	return err == nil
}

func (s *Store) payloadPath(version uint64) string {
	return filepath.Join(s.root, fmt.Sprintf("v%d.bin", version))
}

func (s *Store) sidecarPath(version uint64) string {
	return filepath.Join(s.root, fmt.Sprintf("v%d.cid", version))
}
