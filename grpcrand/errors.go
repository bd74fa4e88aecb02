package grpcrand

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/randstate/randstate"
)

// mapRPC converts the server's status codes back into the structured errors
// the core package raises, so producer-side callers can branch on Kind.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.PermissionDenied:
		return &randstate.Error{Kind: randstate.KindAuth, RuleID: "RAND-AUTH-001", Message: st.Message()}
	case codes.FailedPrecondition:
		return &randstate.Error{Kind: randstate.KindUpdate, RuleID: "RAND-UPD-001", Message: st.Message()}
	case codes.DataLoss:
		return &randstate.Error{Kind: randstate.KindVersion, RuleID: "", Message: st.Message()}
	default:
		return err
	}
}
