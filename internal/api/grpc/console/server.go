package console

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/pawfeeder/internal/controller"
	"github.com/oshokin/pawfeeder/internal/logger"
	"github.com/oshokin/pawfeeder/internal/transport/line"
)

// Queue accepts command lines for the control loop.
type Queue interface {
	Inject(text string) error
}

// StatusSource exposes the last published controller status.
type StatusSource interface {
	Status() controller.Status
}

// Server implements the Console gRPC API.
type Server struct {
	// queue receives submitted lines.
	queue Queue
	// source provides status snapshots.
	source StatusSource
}

// NewServer wires the queue and status source into a gRPC handler.
func NewServer(queue Queue, source StatusSource) *Server {
	return &Server{
		queue:  queue,
		source: source,
	}
}

// Submit enqueues one command line. It returns before the line is processed.
func (s *Server) Submit(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	text := strings.TrimSpace(req.GetValue())
	if text == "" {
		return nil, status.Error(codes.InvalidArgument, "command line is required")
	}

	if strings.ContainsAny(text, "\r\n") {
		return nil, status.Error(codes.InvalidArgument, "exactly one command line is accepted")
	}

	err := s.queue.Inject(text)

	switch {
	case err == nil:
	case errors.Is(err, line.ErrQueueFull):
		return nil, status.Error(codes.ResourceExhausted, "command queue is full")
	case errors.Is(err, line.ErrClosed):
		return nil, status.Error(codes.Unavailable, "feeder is shutting down")
	default:
		return nil, status.Error(codes.Internal, "unable to queue command")
	}

	logger.InfoKV(ctx, "Remote command queued", "line", text, "operator", operator(ctx))

	return new(emptypb.Empty), nil
}

// Status returns the controller state as a JSON-like struct.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, err := structpb.NewStruct(toStatusFields(s.source.Status()))
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode status")
	}

	return result, nil
}

// operator returns the caller identity sent in metadata, if any.
func operator(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	if values := md.Get(OperatorMetadataKey); len(values) > 0 {
		return values[0]
	}

	return ""
}

// toStatusFields converts a controller status into structpb-compatible values.
func toStatusFields(st controller.Status) map[string]any {
	schedule := make([]any, 0, len(st.Entries))
	dead := make([]any, 0)

	for _, e := range st.Entries {
		schedule = append(schedule, e.Text)

		if !e.Live {
			dead = append(dead, e.Text)
		}
	}

	fields := map[string]any{
		"mode":          st.Mode.String(),
		"schedule":      schedule,
		"dead_entries":  dead,
		"clock_fault":   st.ClockFault,
		"ticks":         st.Ticks,
		"dispenses":     st.Dispenses,
		"last_fired":    nil,
		"clock":         nil,
		"last_dispense": nil,
	}

	if st.LastFired != nil {
		fields["last_fired"] = st.LastFired.String()
	}

	if st.Clock != nil {
		fields["clock"] = st.Clock.String()
	}

	if st.LastRun != nil {
		fields["last_dispense"] = map[string]any{
			"id":         st.LastRun.ID,
			"trigger":    string(st.LastRun.Trigger),
			"started_at": st.LastRun.StartedAt.Format(time.RFC3339),
			"duration":   st.LastRun.Duration.String(),
		}
	}

	return fields
}
