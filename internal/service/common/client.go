//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/pawfeeder/internal/api/grpc/console"
	"github.com/oshokin/pawfeeder/internal/config"
)

// Client wraps a gRPC connection to the feeder console.
type Client struct {
	// conn is the underlying gRPC connection to the feeder.
	conn grpc.ClientConnInterface
	// closer releases conn, nil when the connection is borrowed.
	closer func() error
	// operator is attached to every Submit.
	operator string

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithOperator tags submitted commands with the given identity.
func WithOperator(operator Operator) Option {
	return func(c *Client) {
		c.operator = operator.String()
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errLineRequired is returned when Submit gets an empty line.
	errLineRequired = errors.New("command line must be provided")
)

// Dial creates a client for the feeder console at address.
// Note: this uses insecure transport credentials; the console is meant for a
// trusted local network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial feeder console: %w", err)
	}

	client := NewClient(conn, opts...)
	client.closer = conn.Close

	return client, nil
}

// NewClient wraps an existing connection. Close does not close conn.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// Submit sends one command line to the feeder.
func (c *Client) Submit(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return errLineRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if c.operator != "" {
		callCtx = metadata.AppendToOutgoingContext(callCtx, console.OperatorMetadataKey, c.operator)
	}

	err := c.conn.Invoke(callCtx, console.SubmitFullMethod, wrapperspb.String(line), new(emptypb.Empty))
	if err != nil {
		return fmt.Errorf("submit command: %w", err)
	}

	return nil
}

// Status retrieves the feeder status.
func (c *Client) Status(ctx context.Context) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response := new(structpb.Struct)

	if err := c.conn.Invoke(callCtx, console.StatusFullMethod, new(emptypb.Empty), response); err != nil {
		return nil, fmt.Errorf("get feeder status: %w", err)
	}

	return response, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
