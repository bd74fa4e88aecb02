package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// PayloadCID returns a CIDv1 (raw + sha2-256) derived from data.
//
// Attachment payloads are keyed by version, not by content; the CID is
// recorded alongside a payload purely for corruption detection.
func PayloadCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// PayloadCIDString returns the string form of PayloadCID, or "" if the
// digest cannot be computed (unreachable with SHA2_256 and -1 length).
func PayloadCIDString(data []byte) string {
	id, err := PayloadCID(data)
	if err != nil {
		return ""
	}
	return id.String()
}

// VerifyPayload reports whether data hashes to the recorded CID string.
func VerifyPayload(data []byte, recorded string) bool {
	if recorded == "" {
		return false
	}
	want, err := cid.Decode(recorded)
	if err != nil || !want.Defined() {
		return false
	}
	got, err := PayloadCID(data)
	if err != nil {
		return false
	}
	return got == want
}
