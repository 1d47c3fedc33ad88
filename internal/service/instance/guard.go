package instance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	ps "github.com/mitchellh/go-ps"
	"github.com/shirou/gopsutil/process"

	"github.com/oshokin/pawfeeder/internal/logger"
)

// ErrAlreadyRunning is returned when another feeder process is found.
var ErrAlreadyRunning = errors.New("another feeder instance is running")

// Lister enumerates running processes.
type Lister func() ([]ps.Process, error)

// ArgsReader returns the command line of a process, executable first.
type ArgsReader func(pid int) ([]string, error)

// Guard detects other processes running the same executable.
type Guard struct {
	// name is the executable name to look for.
	name string
	// pid is excluded from the search.
	pid int
	// role is the subcommand that marks a conflicting process, empty for any.
	role string
	// list enumerates processes.
	list Lister
	// args reads process command lines when role is set.
	args ArgsReader
}

// Option configures a Guard.
type Option func(*Guard)

// WithLister replaces the process table source.
func WithLister(list Lister) Option {
	return func(g *Guard) {
		if list != nil {
			g.list = list
		}
	}
}

// WithRole limits conflicts to processes started with the given subcommand,
// e.g. "run", so short-lived client invocations of the same binary are ignored.
func WithRole(role string) Option {
	return func(g *Guard) {
		g.role = role
	}
}

// WithArgsReader replaces the command line source.
func WithArgsReader(args ArgsReader) Option {
	return func(g *Guard) {
		if args != nil {
			g.args = args
		}
	}
}

// WithPID overrides the PID treated as the current process.
func WithPID(pid int) Option {
	return func(g *Guard) {
		g.pid = pid
	}
}

// NewGuard creates a guard for the executable name. An empty name means the
// current executable.
func NewGuard(name string, opts ...Option) *Guard {
	if name == "" {
		name = currentExecutable()
	}

	g := &Guard{
		name: name,
		pid:  os.Getpid(),
		list: ps.Processes,
		args: processArgs,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Check returns ErrAlreadyRunning if a different process has the same name
// and, when a role is set, was started with that subcommand.
func (g *Guard) Check(ctx context.Context) error {
	processList, err := g.list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		if process.Pid() == g.pid {
			continue
		}

		if process.Executable() != g.name {
			continue
		}

		if !g.hasRole(ctx, process.Pid()) {
			continue
		}

		logger.WarnKV(ctx, "Feeder already running", "pid", process.Pid(), "executable", g.name)

		return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, process.Pid())
	}

	return nil
}

// hasRole reports whether pid runs the guarded subcommand. Processes whose
// command line cannot be read (exited, or owned by another user) are ignored.
func (g *Guard) hasRole(ctx context.Context, pid int) bool {
	if g.role == "" {
		return true
	}

	args, err := g.args(pid)
	if err != nil {
		logger.DebugKV(ctx, "Unable to read process arguments", "pid", pid, "error", err)

		return false
	}

	return slices.Contains(args[min(1, len(args)):], g.role)
}

func processArgs(pid int) ([]string, error) {
	proc, err := process.NewProcess(int32(pid)) //nolint:gosec // PIDs fit in int32 on every supported OS.
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}

	args, err := proc.CmdlineSlice()
	if err != nil {
		return nil, fmt.Errorf("read command line of %d: %w", pid, err)
	}

	return args, nil
}

func currentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}
