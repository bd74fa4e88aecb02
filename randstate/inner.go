package randstate

import (
	"fmt"

	"xdao.co/randstate/wire"
)

// CurrentVersion is the only inner-state layout in effect. A future layout
// would be attached under a new key and the handle's version flipped to it;
// the old attachment stays behind, orphaned but not removed.
const CurrentVersion uint64 = 1

// Inner is the randomness state payload: the most recent beacon output
// tagged with the round and epoch it belongs to.
type Inner struct {
	Version     uint64
	Epoch       uint64
	Round       uint64
	RandomBytes []byte
}

func (in Inner) clone() Inner {
	out := in
	out.RandomBytes = make([]byte, len(in.RandomBytes))
	copy(out.RandomBytes, in.RandomBytes)
	return out
}

func encodeInner(in Inner) ([]byte, error) {
	return wire.EncodeInner(wire.InnerV1{
		Version:     in.Version,
		Epoch:       in.Epoch,
		Round:       in.Round,
		RandomBytes: in.RandomBytes,
	})
}

// decodeInner decodes and upgrades a stored payload fetched under key.
func decodeInner(key uint64, payload []byte) (Inner, error) {
	v1, err := wire.DecodeInner(payload)
	if err != nil {
		return Inner{}, wrapError(KindVersion, "RAND-VER-004",
			fmt.Sprintf("attachment under version %d is undecodable", key), err)
	}
	if v1.Version != key {
		return Inner{}, newError(KindVersion, "RAND-VER-003",
			fmt.Sprintf("attachment records version %d but is keyed under %d", v1.Version, key))
	}
	return upgradeToLatest(Inner{
		Version:     v1.Version,
		Epoch:       v1.Epoch,
		Round:       v1.Round,
		RandomBytes: v1.RandomBytes,
	})
}

// upgradeToLatest converts a decoded payload to the current layout.
//
// Single-arm today: version 1 is both the oldest and the newest layout.
// Migration from a future version N-1 layout would be added here, keeping
// the accessor contract untouched.
func upgradeToLatest(in Inner) (Inner, error) {
	switch in.Version {
	case CurrentVersion:
		return in, nil
	default:
		return Inner{}, newError(KindVersion, "RAND-VER-001",
			fmt.Sprintf("unsupported inner state version %d", in.Version))
	}
}
