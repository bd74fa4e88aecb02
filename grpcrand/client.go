package grpcrand

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/randstate/wire"
)

// Client is the producer-side client for the RandomnessState gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client RandomnessStateClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewRandomnessStateClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Submit sends a signed update envelope and returns the committed round.
func (c *Client) Submit(signed wire.SignedUpdate) (uint64, error) {
	b, err := wire.EncodeSignedUpdate(signed)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Submit(ctx, wrapperspb.Bytes(b))
	if err != nil {
		return 0, mapRPC(err)
	}
	return reply.GetValue(), nil
}

// State fetches the inner state attached under version (0 = current).
func (c *Client) State(version uint64) (wire.InnerV1, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.State(ctx, wrapperspb.UInt64(version))
	if err != nil {
		return wire.InnerV1{}, mapRPC(err)
	}
	return wire.DecodeInner(reply.GetValue())
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
