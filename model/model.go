// Package model defines stable boundary types for CLI and API output.
//
// Protocol identity lives in the wire encodings; these structs are the only
// types intended for direct JSON serialization by consumers.
package model

import (
	"xdao.co/randstate/cidutil"
	"xdao.co/randstate/wire"
)

// StateView is the JSON projection of the randomness state.
//
// JSON note: RandomBytes are encoded as base64 by encoding/json. Digest is
// the CIDv1 (raw + sha2-256) of the raw random bytes, omitted while the
// state still holds the empty genesis payload.
type StateView struct {
	ObjectID    string `json:"objectId"`
	Version     uint64 `json:"version"`
	Epoch       uint64 `json:"epoch"`
	Round       uint64 `json:"round"`
	RandomBytes []byte `json:"randomBytes,omitempty"`
	Digest      string `json:"digest,omitempty"`
}

// ViewFromInner projects a decoded inner state into its JSON shape.
func ViewFromInner(objectID string, in wire.InnerV1) StateView {
	v := StateView{
		ObjectID:    objectID,
		Version:     in.Version,
		Epoch:       in.Epoch,
		Round:       in.Round,
		RandomBytes: in.RandomBytes,
	}
	if len(in.RandomBytes) > 0 {
		v.Digest = cidutil.PayloadCIDString(in.RandomBytes)
	}
	return v
}
