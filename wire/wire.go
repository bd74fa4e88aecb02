// Package wire implements the persisted and transported byte layouts for the
// randomness state object.
//
// All encodings are deterministic: fixed magic prefix, big-endian fixed-width
// integers, and length-prefixed byte payloads. Decoding is strict — trailing
// bytes, truncated fields, and oversized payloads are all rejected — so the
// same bytes always decode to the same value or fail.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxRandomBytes caps the randomness payload carried by an inner state or
// update envelope. Real beacon outputs are a few dozen bytes; the cap exists
// so a malformed length prefix cannot drive allocation.
const MaxRandomBytes = 64 * 1024

var (
	magicInner  = [4]byte{'R', 'S', 'I', '1'}
	magicUpdate = [4]byte{'R', 'S', 'U', '1'}
	magicSigned = [4]byte{'R', 'S', 'S', '1'}
)

var (
	ErrBadMagic  = errors.New("wire: bad magic")
	ErrTruncated = errors.New("wire: truncated")
	ErrTrailing  = errors.New("wire: trailing bytes")
	ErrOversize  = errors.New("wire: payload exceeds limit")
)

// InnerV1 is the version-1 persisted layout of the randomness state payload.
type InnerV1 struct {
	Version     uint64
	Epoch       uint64
	Round       uint64
	RandomBytes []byte
}

// Update is the producer-supplied update envelope.
type Update struct {
	Epoch       uint64
	Round       uint64
	RandomBytes []byte
}

// SignedUpdate carries an encoded Update together with the producer's
// principal and a signature over the envelope bytes.
type SignedUpdate struct {
	Principal string
	Signature []byte
	Envelope  []byte
}

func EncodeInner(in InnerV1) ([]byte, error) {
	if len(in.RandomBytes) > MaxRandomBytes {
		return nil, ErrOversize
	}
	b := make([]byte, 0, 4+8*3+4+len(in.RandomBytes))
	b = append(b, magicInner[:]...)
	b = binary.BigEndian.AppendUint64(b, in.Version)
	b = binary.BigEndian.AppendUint64(b, in.Epoch)
	b = binary.BigEndian.AppendUint64(b, in.Round)
	b = binary.BigEndian.AppendUint32(b, uint32(len(in.RandomBytes)))
	b = append(b, in.RandomBytes...)
	return b, nil
}

func DecodeInner(b []byte) (InnerV1, error) {
	r := reader{buf: b}
	if err := r.magic(magicInner); err != nil {
		return InnerV1{}, err
	}
	var in InnerV1
	var err error
	if in.Version, err = r.u64(); err != nil {
		return InnerV1{}, err
	}
	if in.Epoch, err = r.u64(); err != nil {
		return InnerV1{}, err
	}
	if in.Round, err = r.u64(); err != nil {
		return InnerV1{}, err
	}
	if in.RandomBytes, err = r.bytes32(); err != nil {
		return InnerV1{}, err
	}
	if err := r.done(); err != nil {
		return InnerV1{}, err
	}
	return in, nil
}

func EncodeUpdate(u Update) ([]byte, error) {
	if len(u.RandomBytes) > MaxRandomBytes {
		return nil, ErrOversize
	}
	b := make([]byte, 0, 4+8*2+4+len(u.RandomBytes))
	b = append(b, magicUpdate[:]...)
	b = binary.BigEndian.AppendUint64(b, u.Epoch)
	b = binary.BigEndian.AppendUint64(b, u.Round)
	b = binary.BigEndian.AppendUint32(b, uint32(len(u.RandomBytes)))
	b = append(b, u.RandomBytes...)
	return b, nil
}

func DecodeUpdate(b []byte) (Update, error) {
	r := reader{buf: b}
	if err := r.magic(magicUpdate); err != nil {
		return Update{}, err
	}
	var u Update
	var err error
	if u.Epoch, err = r.u64(); err != nil {
		return Update{}, err
	}
	if u.Round, err = r.u64(); err != nil {
		return Update{}, err
	}
	if u.RandomBytes, err = r.bytes32(); err != nil {
		return Update{}, err
	}
	if err := r.done(); err != nil {
		return Update{}, err
	}
	return u, nil
}

func EncodeSignedUpdate(s SignedUpdate) ([]byte, error) {
	if len(s.Principal) > 0xFFFF {
		return nil, fmt.Errorf("wire: principal too long (%d bytes)", len(s.Principal))
	}
	if len(s.Envelope) > 4+8*2+4+MaxRandomBytes {
		return nil, ErrOversize
	}
	b := make([]byte, 0, 4+2+len(s.Principal)+4+len(s.Signature)+4+len(s.Envelope))
	b = append(b, magicSigned[:]...)
	b = binary.BigEndian.AppendUint16(b, uint16(len(s.Principal)))
	b = append(b, s.Principal...)
	b = binary.BigEndian.AppendUint32(b, uint32(len(s.Signature)))
	b = append(b, s.Signature...)
	b = binary.BigEndian.AppendUint32(b, uint32(len(s.Envelope)))
	b = append(b, s.Envelope...)
	return b, nil
}

func DecodeSignedUpdate(b []byte) (SignedUpdate, error) {
	r := reader{buf: b}
	if err := r.magic(magicSigned); err != nil {
		return SignedUpdate{}, err
	}
	var s SignedUpdate
	pl, err := r.u16()
	if err != nil {
		return SignedUpdate{}, err
	}
	p, err := r.take(int(pl))
	if err != nil {
		return SignedUpdate{}, err
	}
	s.Principal = string(p)
	if s.Signature, err = r.bytes32(); err != nil {
		return SignedUpdate{}, err
	}
	if s.Envelope, err = r.bytes32(); err != nil {
		return SignedUpdate{}, err
	}
	if err := r.done(); err != nil {
		return SignedUpdate{}, err
	}
	return s, nil
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) magic(want [4]byte) error {
	b, err := r.take(4)
	if err != nil {
		return ErrBadMagic
	}
	if b[0] != want[0] || b[1] != want[1] || b[2] != want[2] || b[3] != want[3] {
		return ErrBadMagic
	}
	return nil
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// bytes32 reads a u32 length prefix and that many bytes, copying them out of
// the underlying buffer.
func (r *reader) bytes32() ([]byte, error) {
	lb, err := r.take(4)
	if err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lb)
	if n > MaxRandomBytes {
		return nil, ErrOversize
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *reader) done() error {
	if r.off != len(r.buf) {
		return ErrTrailing
	}
	return nil
}
