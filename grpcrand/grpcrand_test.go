package grpcrand

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/randstate/attach/memory"
	"xdao.co/randstate/identity"
	"xdao.co/randstate/randstate"
	"xdao.co/randstate/wire"
)

func testSeed(b byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func signedUpdate(t *testing.T, seed []byte, epoch, round uint64, randomBytes []byte) wire.SignedUpdate {
	t.Helper()
	p, err := identity.FromEd25519Seed(seed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}
	env, err := wire.EncodeUpdate(wire.Update{Epoch: epoch, Round: round, RandomBytes: randomBytes})
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	sig := identity.SignEd25519(env, ed25519.NewKeyFromSeed(seed))
	return wire.SignedUpdate{Principal: string(p), Signature: sig, Envelope: env}
}

func newTestClient(t *testing.T, h *randstate.Handle) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterRandomnessStateServer(srv, NewServer(h, zerolog.Nop()))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewRandomnessStateClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCRand_SubmitAndState(t *testing.T) {
	sysSeed := testSeed(0x01)
	sys, err := identity.FromEd25519Seed(sysSeed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}

	h, err := randstate.Create(memory.New(), identity.StaticSystem{System: sys},
		randstate.ExecContext{Caller: sys, Epoch: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client := newTestClient(t, h)

	round, err := client.Submit(signedUpdate(t, sysSeed, 0, 1, []byte{0xAB}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if round != 1 {
		t.Fatalf("Submit returned round %d, want 1", round)
	}

	state, err := client.State(0)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Version != 1 || state.Epoch != 0 || state.Round != 1 {
		t.Fatalf("state: %+v", state)
	}
	if !bytes.Equal(state.RandomBytes, []byte{0xAB}) {
		t.Fatalf("random bytes: %x", state.RandomBytes)
	}
}

func TestGRPCRand_RejectsForeignSigner(t *testing.T) {
	sysSeed := testSeed(0x01)
	sys, err := identity.FromEd25519Seed(sysSeed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}

	h, err := randstate.Create(memory.New(), identity.StaticSystem{System: sys},
		randstate.ExecContext{Caller: sys, Epoch: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client := newTestClient(t, h)

	// Valid signature, but not from the system principal.
	_, err = client.Submit(signedUpdate(t, testSeed(0x02), 0, 1, []byte{0xAB}))
	if !randstate.IsKind(err, randstate.KindAuth) {
		t.Fatalf("foreign signer: got err=%v want KindAuth", err)
	}

	// State unchanged.
	state, serr := client.State(0)
	if serr != nil {
		t.Fatalf("State: %v", serr)
	}
	if state.Round != 0 {
		t.Fatalf("state changed by rejected submit: %+v", state)
	}
}

func TestGRPCRand_RejectsTamperedEnvelope(t *testing.T) {
	sysSeed := testSeed(0x01)
	sys, err := identity.FromEd25519Seed(sysSeed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}

	h, err := randstate.Create(memory.New(), identity.StaticSystem{System: sys},
		randstate.ExecContext{Caller: sys, Epoch: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client := newTestClient(t, h)

	signed := signedUpdate(t, sysSeed, 0, 1, []byte{0xAB})
	tampered, err := wire.EncodeUpdate(wire.Update{Epoch: 0, Round: 2, RandomBytes: []byte{0xAB}})
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	signed.Envelope = tampered

	if _, err := client.Submit(signed); err == nil {
		t.Fatalf("expected error for tampered envelope")
	}
}

func TestGRPCRand_MapsInvalidUpdate(t *testing.T) {
	sysSeed := testSeed(0x01)
	sys, err := identity.FromEd25519Seed(sysSeed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}

	h, err := randstate.Create(memory.New(), identity.StaticSystem{System: sys},
		randstate.ExecContext{Caller: sys, Epoch: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client := newTestClient(t, h)

	// Round 5 does not continue round 0.
	_, err = client.Submit(signedUpdate(t, sysSeed, 0, 5, []byte{0xAB}))
	if !randstate.IsKind(err, randstate.KindUpdate) {
		t.Fatalf("out-of-order submit: got err=%v want KindUpdate", err)
	}
}

func TestGRPCRand_StateRejectsNonLiveVersion(t *testing.T) {
	sysSeed := testSeed(0x01)
	sys, err := identity.FromEd25519Seed(sysSeed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}

	h, err := randstate.Create(memory.New(), identity.StaticSystem{System: sys},
		randstate.ExecContext{Caller: sys, Epoch: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client := newTestClient(t, h)

	if _, err := client.State(2); err == nil {
		t.Fatalf("expected error for non-live version")
	}

	// Explicitly requesting the live version works.
	state, err := client.State(1)
	if err != nil {
		t.Fatalf("State(1): %v", err)
	}
	if state.Version != 1 {
		t.Fatalf("state: %+v", state)
	}
}
