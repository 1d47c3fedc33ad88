package feeder

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/oshokin/pawfeeder/internal/api/grpc/console"
	"github.com/oshokin/pawfeeder/internal/config"
	"github.com/oshokin/pawfeeder/internal/controller"
	"github.com/oshokin/pawfeeder/internal/device"
	"github.com/oshokin/pawfeeder/internal/dispenser"
	domain "github.com/oshokin/pawfeeder/internal/domain/feeder"
	"github.com/oshokin/pawfeeder/internal/logger"
	"github.com/oshokin/pawfeeder/internal/repository/journal"
	"github.com/oshokin/pawfeeder/internal/service/instance"
	"github.com/oshokin/pawfeeder/internal/transport/line"
	"github.com/oshokin/pawfeeder/internal/version"
)

// runRole is the CLI subcommand of a long-running feeder.
const runRole = "run"

// Options controls the feeder process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// SerialDevice overrides the configured command channel.
	SerialDevice string
	// ListenAddress overrides the configured remote console address.
	ListenAddress string
	// Profile overrides the configured dispense profile.
	Profile string
	// JournalFile overrides the configured journal path.
	JournalFile string
	// Sleeper replaces real waits between dispense stages.
	Sleeper dispenser.Sleeper
}

// Run starts the feeder and blocks until ctx is canceled or a component fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "pawfeeder")

	logger.InfoKV(ctx, "Feeder build", version.KV()...)

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(settings, opts)

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	} else {
		logger.WarnKV(ctx, "Unknown log level, keeping current", "log_level", settings.LogLevel)
	}

	if err = instance.NewGuard("", instance.WithRole(runRole)).Check(ctx); err != nil {
		return fmt.Errorf("single instance check: %w", err)
	}

	profile, err := dispenser.Lookup(settings.Profile)
	if err != nil {
		return fmt.Errorf("select dispense profile: %w", err)
	}

	mode, err := domain.ParseMode(settings.InitialMode)
	if err != nil {
		return fmt.Errorf("initial mode: %w", err)
	}

	transport, err := line.Open(ctx, settings.SerialDevice)
	if err != nil {
		return fmt.Errorf("open command channel: %w", err)
	}

	defer func() {
		if closeErr := transport.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to close command channel", "error", closeErr)
		}
	}()

	sequencer := newSequencer(ctx, profile, opts.Sleeper)
	sequencer.Home(ctx)

	controllerOptions := controller.Options{
		InitialMode: mode,
		Period:      settings.TickInterval,
		MotorPort:   profile.MotorPort,
	}

	if settings.JournalFile != "" {
		repo := journal.NewFileRepository(settings.JournalFile)
		logPreviousDispense(ctx, repo)

		controllerOptions.Journal = repo
	}

	ctrl := controller.New(controllerOptions, device.NewSystemClock(), transport, sequencer)

	logger.InfoKV(ctx, "Feeder starting",
		"profile", profile.Name,
		"mode", mode,
		"serial_device", settings.SerialDevice,
		"listen_address", settings.ListenAddress,
		"journal_file", settings.JournalFile,
	)

	return runComponents(ctx, settings.ListenAddress, ctrl, transport)
}

// runComponents runs the control loop and the console until ctx ends or one
// of them fails.
func runComponents(ctx context.Context, listenAddress string, ctrl *controller.Controller, queue console.Queue) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	running := 1

	go func() {
		errs <- ctrl.Run(ctx)
	}()

	if listenAddress != "" {
		lis, err := listen(ctx, listenAddress)
		if err != nil {
			cancel()
			<-errs

			return err
		}

		running++

		go func() {
			errs <- serveConsole(ctx, lis, console.NewServer(queue, ctrl))
		}()
	}

	var firstErr error

	for range running {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}

		cancel()
	}

	logger.Info(ctx, "Feeder stopped")

	return firstErr
}

func listen(ctx context.Context, address string) (net.Listener, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	return lis, nil
}

// serveConsole serves the remote console until ctx is canceled.
func serveConsole(ctx context.Context, lis net.Listener, srv *console.Server) error {
	grpcServer := grpc.NewServer()
	console.Register(grpcServer, srv)

	logger.InfoKV(ctx, "Remote console listening", "listen_address", lis.Addr().String())

	// Closed after GracefulStop returns so Serve's caller waits for in-flight calls.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down remote console")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Remote console stopped")

	return nil
}

func newSequencer(ctx context.Context, profile dispenser.Profile, sleeper dispenser.Sleeper) *dispenser.Sequencer {
	servo := device.NewSimServo(ctx)
	motor := device.NewSimMotor(ctx, profile.MotorPort)

	return dispenser.New(profile, servo, motor, dispenser.WithSleeper(sleeper))
}

// applyOverrides copies non-empty command line values over the settings.
func applyOverrides(settings *config.Config, opts *Options) {
	if opts.SerialDevice != "" {
		settings.SerialDevice = opts.SerialDevice
	}

	if opts.ListenAddress != "" {
		settings.ListenAddress = opts.ListenAddress
	}

	if opts.Profile != "" {
		settings.Profile = opts.Profile
	}

	if opts.JournalFile != "" {
		settings.JournalFile = opts.JournalFile
	}
}

// logPreviousDispense reports the journal content at boot. It never restores state.
func logPreviousDispense(ctx context.Context, repo journal.Repository) {
	run, err := repo.Load(ctx)

	switch {
	case err == nil:
		logger.InfoKV(ctx, "Previous dispense",
			"dispense_id", run.ID,
			"trigger", run.Trigger,
			"profile", run.Profile,
			"started_at", run.StartedAt,
			"duration", run.Duration,
		)
	case errors.Is(err, journal.ErrNotFound):
		logger.Info(ctx, "No previous dispense recorded")
	default:
		logger.WarnKV(ctx, "Unable to read dispense journal", "error", err)
	}
}
