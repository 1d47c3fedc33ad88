package instance

import (
	"context"
	"errors"
	"os"
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

var (
	errTestProcfs = errors.New("procfs unavailable")
	errTestExited = errors.New("process exited")
)

// fakeProcess is a static process table row.
type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int {
	return p.pid
}

func (p fakeProcess) PPid() int {
	return 1
}

func (p fakeProcess) Executable() string {
	return p.name
}

func table(rows ...fakeProcess) Lister {
	return func() ([]ps.Process, error) {
		result := make([]ps.Process, 0, len(rows))
		for _, r := range rows {
			result = append(result, r)
		}

		return result, nil
	}
}

// TestGuard_IgnoresSelf passes when only the current process matches.
func TestGuard_IgnoresSelf(t *testing.T) {
	t.Parallel()

	g := NewGuard("pawfeeder", WithPID(100), WithLister(table(
		fakeProcess{pid: 100, name: "pawfeeder"},
		fakeProcess{pid: 200, name: "bash"},
	)))

	require.NoError(t, g.Check(context.Background()))
}

// TestGuard_DetectsOther fails when a second feeder is running.
func TestGuard_DetectsOther(t *testing.T) {
	t.Parallel()

	g := NewGuard("pawfeeder", WithPID(100), WithLister(table(
		fakeProcess{pid: 100, name: "pawfeeder"},
		fakeProcess{pid: 300, name: "pawfeeder"},
	)))

	err := g.Check(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.Contains(t, err.Error(), "pid 300")
}

// commandLines serves fixed command lines by PID.
func commandLines(lines map[int][]string) ArgsReader {
	return func(pid int) ([]string, error) {
		args, ok := lines[pid]
		if !ok {
			return nil, errTestExited
		}

		return args, nil
	}
}

// TestGuard_RoleIgnoresClientInvocations lets `run` start while `status` or `send` is running.
func TestGuard_RoleIgnoresClientInvocations(t *testing.T) {
	t.Parallel()

	processes := table(
		fakeProcess{pid: 100, name: "pawfeeder"},
		fakeProcess{pid: 300, name: "pawfeeder"},
		fakeProcess{pid: 400, name: "pawfeeder"},
		fakeProcess{pid: 500, name: "pawfeeder"},
	)
	lines := commandLines(map[int][]string{
		300: {"/usr/local/bin/pawfeeder", "status"},
		400: {"pawfeeder", "--config", "run.yaml", "send", "D"},
	})

	g := NewGuard("pawfeeder", WithPID(100), WithRole("run"), WithLister(processes), WithArgsReader(lines))
	require.NoError(t, g.Check(context.Background()))

	lines = commandLines(map[int][]string{
		300: {"/usr/local/bin/pawfeeder", "status"},
		500: {"/usr/local/bin/pawfeeder", "-c", "/etc/pawfeeder.yaml", "run"},
	})

	g = NewGuard("pawfeeder", WithPID(100), WithRole("run"), WithLister(processes), WithArgsReader(lines))

	err := g.Check(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.Contains(t, err.Error(), "pid 500")
}

// TestGuard_RoleMatchesNothingInExecutablePath ignores a bare executable named like the role.
func TestGuard_RoleMatchesNothingInExecutablePath(t *testing.T) {
	t.Parallel()

	g := NewGuard("run", WithPID(1), WithRole("run"),
		WithLister(table(fakeProcess{pid: 2, name: "run"})),
		WithArgsReader(commandLines(map[int][]string{2: {"run"}})),
	)

	require.NoError(t, g.Check(context.Background()))
}

// TestGuard_ListError wraps process table failures.
func TestGuard_ListError(t *testing.T) {
	t.Parallel()

	g := NewGuard("pawfeeder", WithLister(func() ([]ps.Process, error) {
		return nil, errTestProcfs
	}))

	require.ErrorIs(t, g.Check(context.Background()), errTestProcfs)
}

// TestGuard_Defaults uses the current executable and the real process table.
func TestGuard_Defaults(t *testing.T) {
	t.Parallel()

	g := NewGuard("")
	require.NotEmpty(t, g.name)

	processes, err := g.list()
	require.NoError(t, err)
	require.NotEmpty(t, processes)

	args, err := g.args(os.Getpid())
	require.NoError(t, err)
	require.NotEmpty(t, args)
}
