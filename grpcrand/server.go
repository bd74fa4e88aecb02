package grpcrand

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/randstate/identity"
	"xdao.co/randstate/randstate"
	"xdao.co/randstate/wire"
)

// Server exposes a randstate.Handle over the RandomnessState gRPC service.
//
// The state object itself performs no locking; the server supplies the
// execution environment's ordering guarantee by serializing all handle
// access behind a mutex, so no submit ever observes a half-committed state.
type Server struct {
	UnimplementedRandomnessStateServer

	Handle *randstate.Handle
	Log    zerolog.Logger

	mu sync.Mutex
}

// NewServer wraps a handle. Pass zerolog.Nop() to disable logging.
func NewServer(h *randstate.Handle, log zerolog.Logger) *Server {
	return &Server{Handle: h, Log: log}
}

func (s *Server) Submit(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	_ = ctx
	if s == nil || s.Handle == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing state handle")
	}
	reqID := uuid.NewString()

	signed, err := wire.DecodeSignedUpdate(in.GetValue())
	if err != nil {
		s.Log.Warn().Str("req", reqID).Err(err).Msg("submit: malformed signed update")
		return nil, status.Error(codes.InvalidArgument, "malformed signed update")
	}
	update, err := wire.DecodeUpdate(signed.Envelope)
	if err != nil {
		s.Log.Warn().Str("req", reqID).Err(err).Msg("submit: malformed update envelope")
		return nil, status.Error(codes.InvalidArgument, "malformed update envelope")
	}

	caller := identity.Principal(signed.Principal)
	if err := identity.Verify(caller, signed.Envelope, signed.Signature); err != nil {
		s.Log.Warn().Str("req", reqID).Str("caller", signed.Principal).Err(err).
			Msg("submit: signature rejected")
		return nil, status.Error(codes.Unauthenticated, "signature verification failed")
	}

	execCtx := randstate.ExecContext{Caller: caller, Epoch: update.Epoch}

	s.mu.Lock()
	uerr := s.Handle.Update(execCtx, update.Round, update.RandomBytes)
	s.mu.Unlock()
	if uerr != nil {
		s.Log.Warn().Str("req", reqID).
			Uint64("epoch", update.Epoch).Uint64("round", update.Round).
			Str("rule", randstate.RuleID(uerr)).Err(uerr).
			Msg("submit: update rejected")
		return nil, mapErr(uerr)
	}

	s.Log.Info().Str("req", reqID).
		Uint64("epoch", update.Epoch).Uint64("round", update.Round).
		Int("bytes", len(update.RandomBytes)).
		Msg("submit: randomness committed")
	return wrapperspb.UInt64(update.Round), nil
}

func (s *Server) State(ctx context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Handle == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing state handle")
	}

	// Version 0 means "whatever is current". Only the live version is
	// served; orphaned attachments from a future migration stay private.
	version := in.GetValue()
	if version != 0 && version != s.Handle.Version() {
		return nil, status.Errorf(codes.NotFound, "version %d is not the live version", version)
	}

	s.mu.Lock()
	inner, err := s.Handle.Resolve()
	s.mu.Unlock()
	if err != nil {
		return nil, mapErr(err)
	}

	payload, err := wire.EncodeInner(wire.InnerV1{
		Version:     inner.Version,
		Epoch:       inner.Epoch,
		Round:       inner.Round,
		RandomBytes: inner.RandomBytes,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "inner state encoding failed")
	}
	return wrapperspb.Bytes(payload), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case randstate.IsKind(err, randstate.KindAuth):
		return status.Error(codes.PermissionDenied, err.Error())
	case randstate.IsKind(err, randstate.KindUpdate):
		return status.Error(codes.FailedPrecondition, err.Error())
	case randstate.IsKind(err, randstate.KindVersion):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
