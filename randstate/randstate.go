// Package randstate implements the ledger's shared randomness state object:
// a versioned singleton holding the most recent verifiable random output,
// tagged with the round and epoch it belongs to.
//
// The object is a pair: a stable Handle with a fixed identity and a version
// number, and a versioned Inner payload attached to a store under that
// version. Only the privileged system principal may create or update the
// object, and updates must follow the round/epoch ordering rules enforced by
// Update.
//
// The package performs no locking. The surrounding execution environment
// (for this module, the gRPC server layer) is responsible for totally
// ordering all access to a handle.
package randstate

import (
	"fmt"

	"xdao.co/randstate/attach"
	"xdao.co/randstate/identity"
)

// ObjectID is the fixed, well-known identity of the randomness state object.
// It is established at creation and never reassigned.
const ObjectID = "xdao.co/randstate/state"

// ExecContext carries the ambient values the host execution environment
// supplies with every invocation: the authenticated caller and the current
// epoch.
type ExecContext struct {
	Caller identity.Principal
	Epoch  uint64
}

// Handle is the stable singleton pointer to the randomness state. It knows
// only its own current version and delegates payload access to the
// attachment store.
type Handle struct {
	id      string
	version uint64
	store   attach.Store
	authz   identity.Authorizer
}

func (h *Handle) ID() string      { return h.id }
func (h *Handle) Version() uint64 { return h.version }

// Create instantiates the handle and its initial inner state: version 1,
// epoch from the execution context, round 0, empty randomness.
//
// It must be invoked exactly once in the system's lifetime, by the
// bootstrap orchestration, with the system principal. Invoking it twice is
// a bug in the caller; Create itself checks only authorization.
func Create(store attach.Store, authz identity.Authorizer, ctx ExecContext) (*Handle, error) {
	if !authz.IsSystem(ctx.Caller) {
		return nil, newError(KindAuth, "RAND-AUTH-001",
			fmt.Sprintf("caller %q is not the system principal", ctx.Caller))
	}
	h := &Handle{id: ObjectID, version: CurrentVersion, store: store, authz: authz}
	initial := Inner{Version: CurrentVersion, Epoch: ctx.Epoch, Round: 0, RandomBytes: []byte{}}
	if err := h.commit(initial); err != nil {
		return nil, err
	}
	return h, nil
}

// Open reconstructs the handle over an existing attachment store, e.g.
// after a restart of the hosting process. It fails with a version error if
// no inner state has been created.
func Open(store attach.Store, authz identity.Authorizer) (*Handle, error) {
	h := &Handle{id: ObjectID, version: CurrentVersion, store: store, authz: authz}
	if _, err := h.resolve(); err != nil {
		return nil, err
	}
	return h, nil
}

// Resolve returns a copy of the inner state currently in effect.
func (h *Handle) Resolve() (Inner, error) {
	in, err := h.resolve()
	if err != nil {
		return Inner{}, err
	}
	return in.clone(), nil
}

// Update commits a new round of randomness supplied by the producer.
//
// The update is accepted iff one of:
//   - epoch transition: ctx.Epoch == inner.Epoch+1 and inner.Round == 0; or
//   - intra-epoch continuation: ctx.Epoch == inner.Epoch and
//     newRound == inner.Round+1.
//
// On acceptance, epoch, round and random bytes are all set from the
// caller-supplied values. The epoch-transition branch places no constraint
// on newRound relative to the prior round; the producer is trusted to
// supply a sane first round for the new epoch.
func (h *Handle) Update(ctx ExecContext, newRound uint64, newBytes []byte) error {
	if !h.authz.IsSystem(ctx.Caller) {
		return newError(KindAuth, "RAND-AUTH-001",
			fmt.Sprintf("caller %q is not the system principal", ctx.Caller))
	}
	in, err := h.resolve()
	if err != nil {
		return err
	}

	epochTransition := ctx.Epoch == in.Epoch+1 && in.Round == 0
	continuation := ctx.Epoch == in.Epoch && newRound == in.Round+1
	if !epochTransition && !continuation {
		return newError(KindUpdate, "RAND-UPD-001",
			fmt.Sprintf("update (epoch=%d, round=%d) does not follow state (epoch=%d, round=%d)",
				ctx.Epoch, newRound, in.Epoch, in.Round))
	}

	in.Epoch = ctx.Epoch
	in.Round = newRound
	in.RandomBytes = newBytes
	return h.commit(in)
}

// resolve loads the inner state attached under the handle's version and
// validates version consistency end to end.
func (h *Handle) resolve() (Inner, error) {
	if h.version != CurrentVersion {
		return Inner{}, newError(KindVersion, "RAND-VER-001",
			fmt.Sprintf("handle records unsupported version %d", h.version))
	}
	payload, err := h.store.Get(h.version)
	if err != nil {
		switch {
		case attach.IsNotFound(err):
			return Inner{}, wrapError(KindVersion, "RAND-VER-002",
				fmt.Sprintf("no attachment under version %d", h.version), err)
		default:
			return Inner{}, wrapError(KindVersion, "RAND-VER-004",
				fmt.Sprintf("attachment under version %d is unreadable", h.version), err)
		}
	}
	return decodeInner(h.version, payload)
}

func (h *Handle) commit(in Inner) error {
	payload, err := encodeInner(in)
	if err != nil {
		return wrapError(KindInternal, "RAND-INT-001", "inner state encoding failed", err)
	}
	if err := h.store.Put(h.version, payload); err != nil {
		return wrapError(KindInternal, "RAND-INT-002", "inner state write failed", err)
	}
	return nil
}
