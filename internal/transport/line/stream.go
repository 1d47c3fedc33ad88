package line

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/oshokin/pawfeeder/internal/logger"
)

// DefaultQueueSize bounds the number of complete lines waiting to be read.
const DefaultQueueSize = 64

// StdioDevice selects stdin/stdout as the stream.
const StdioDevice = "stdio"

var (
	// ErrQueueFull is returned by Inject when the pending queue is full.
	ErrQueueFull = errors.New("command queue is full")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("transport closed")
)

// Stream is a polled line transport. TryReadLine and WriteLine may be called
// from different goroutines than Inject.
type Stream struct {
	lines  chan string
	done   chan struct{}
	once   sync.Once
	w      io.Writer
	wmu    sync.Mutex
	closer io.Closer
}

// NewStream starts reading lines from r (nil for none) and writes replies to w
// (nil discards them).
func NewStream(ctx context.Context, r io.Reader, w io.Writer) *Stream {
	if w == nil {
		w = io.Discard
	}

	s := &Stream{
		lines: make(chan string, DefaultQueueSize),
		done:  make(chan struct{}),
		w:     w,
	}

	if r != nil {
		go s.readLoop(logger.WithName(ctx, "line"), r)
	}

	return s
}

// Open opens the command channel named by device: a path to a character
// device, StdioDevice, or empty for an injection-only channel.
func Open(ctx context.Context, device string) (*Stream, error) {
	switch device {
	case "":
		return NewStream(ctx, nil, nil), nil
	case StdioDevice:
		return NewStream(ctx, os.Stdin, os.Stdout), nil
	}

	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", device, err)
	}

	s := NewStream(ctx, f, f)
	s.closer = f

	return s, nil
}

// TryReadLine returns the next complete line without blocking.
func (s *Stream) TryReadLine() (string, bool) {
	select {
	case l := <-s.lines:
		return l, true
	default:
		return "", false
	}
}

// WriteLine writes text followed by a newline.
func (s *Stream) WriteLine(text string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if _, err := io.WriteString(s.w, text+"\n"); err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	return nil
}

// Inject queues a line as if it had arrived on the stream.
func (s *Stream) Inject(text string) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.lines <- strings.TrimRight(text, "\r\n"):
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued lines.
func (s *Stream) Pending() int {
	return len(s.lines)
}

// Close stops the reader and closes the underlying device, if owned.
func (s *Stream) Close() error {
	var err error

	s.once.Do(func() {
		close(s.done)

		if s.closer != nil {
			err = s.closer.Close()
		}
	})

	return err
}

func (s *Stream) readLoop(ctx context.Context, r io.Reader) {
	reader := bufio.NewReader(r)

	for {
		text, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.WarnKV(ctx, "Command channel read failed", "error", err)
			} else if text != "" {
				logger.DebugKV(ctx, "Discarding unterminated input", "bytes", len(text))
			}

			return
		}

		select {
		case s.lines <- strings.TrimRight(text, "\r\n"):
		case <-s.done:
			return
		}
	}
}
