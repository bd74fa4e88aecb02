package testkit

import (
	"bytes"
	"testing"

	"xdao.co/randstate/attach"
)

// NewStore constructs a fresh, empty Store instance for a test.
// The returned Store MUST be isolated from other tests.
type NewStore func(t *testing.T) attach.Store

func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		st := newStore(t)
		want := []byte("versioned payload bytes")

		if err := st.Put(1, want); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := st.Get(1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch: got %q want %q", got, want)
		}
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		st := newStore(t)
		if err := st.Put(1, []byte("old")); err != nil {
			t.Fatalf("Put(old) failed: %v", err)
		}
		if err := st.Put(1, []byte("new")); err != nil {
			t.Fatalf("Put(new) failed: %v", err)
		}
		got, err := st.Get(1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "new" {
			t.Fatalf("Put did not overwrite: got %q", got)
		}
	})

	t.Run("VersionsIsolated", func(t *testing.T) {
		st := newStore(t)
		if err := st.Put(1, []byte("one")); err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		if err := st.Put(2, []byte("two")); err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		got, err := st.Get(1)
		if err != nil {
			t.Fatalf("Get(1) failed: %v", err)
		}
		if string(got) != "one" {
			t.Fatalf("Get(1): got %q want %q", got, "one")
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		st := newStore(t)
		if st.Has(7) {
			t.Fatalf("Has returned true for missing version")
		}
		_, err := st.Get(7)
		if !attach.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if err := st.Put(7, []byte("present")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !st.Has(7) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("RejectVersionZero", func(t *testing.T) {
		st := newStore(t)
		if err := st.Put(0, []byte("x")); err != attach.ErrInvalidVersion {
			t.Fatalf("Put(0): got err=%v want ErrInvalidVersion", err)
		}
		if _, err := st.Get(0); err != attach.ErrInvalidVersion {
			t.Fatalf("Get(0): got err=%v want ErrInvalidVersion", err)
		}
		if st.Has(0) {
			t.Fatalf("Has(0) should be false")
		}
	})

	t.Run("EmptyPayloadAllowed", func(t *testing.T) {
		st := newStore(t)
		if err := st.Put(1, nil); err != nil {
			t.Fatalf("Put(nil) failed: %v", err)
		}
		got, err := st.Get(1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty payload, got %d bytes", len(got))
		}
	})
}
