package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/oshokin/pawfeeder/internal/config"
	"github.com/oshokin/pawfeeder/internal/dispenser"
)

// Journal field names.
const (
	fieldID        = "id"
	fieldTrigger   = "trigger"
	fieldProfile   = "profile"
	fieldStartedAt = "started_at"
	fieldDuration  = "duration"
)

// Repository defines persistence operations for the dispense journal.
type Repository interface {
	Load(ctx context.Context) (dispenser.Run, error)
	Save(ctx context.Context, run dispenser.Run) error
}

// FileRepository keeps the last dispense in a JSON file.
type FileRepository struct {
	// path is the filesystem location of the journal file.
	path string
	// mu serializes file access.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when no dispense has been recorded yet.
	ErrNotFound = errors.New("journal not found")
	// ErrCorrupted is returned when the file decodes but misses required fields.
	ErrCorrupted = errors.New("journal corrupted")
)

// NewFileRepository creates a repository that reads/writes JSON at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the last recorded dispense.
func (r *FileRepository) Load(_ context.Context) (dispenser.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dispenser.Run{}, ErrNotFound
		}

		return dispenser.Run{}, fmt.Errorf("read journal file: %w", err)
	}

	var record structpb.Struct
	if err = protojson.Unmarshal(contents, &record); err != nil {
		return dispenser.Run{}, fmt.Errorf("decode journal file: %w", err)
	}

	return fromRecord(&record)
}

// Save overwrites the journal with run.
func (r *FileRepository) Save(_ context.Context, run dispenser.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := toRecord(run)
	if err != nil {
		return fmt.Errorf("encode dispense: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode dispense: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write journal file: %w", err)
	}

	return nil
}

// toRecord converts a run into a Struct. Time values use the protobuf JSON
// forms of Timestamp and Duration.
func toRecord(run dispenser.Run) (*structpb.Struct, error) {
	startedAt, err := protojson.Marshal(timestamppb.New(run.StartedAt))
	if err != nil {
		return nil, fmt.Errorf("started_at: %w", err)
	}

	duration, err := protojson.Marshal(durationpb.New(run.Duration))
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}

	return structpb.NewStruct(map[string]any{
		fieldID:        run.ID,
		fieldTrigger:   string(run.Trigger),
		fieldProfile:   run.Profile,
		fieldStartedAt: unquote(startedAt),
		fieldDuration:  unquote(duration),
	})
}

// fromRecord converts a Struct back into a run.
func fromRecord(record *structpb.Struct) (dispenser.Run, error) {
	fields := record.GetFields()

	run := dispenser.Run{
		ID:      fields[fieldID].GetStringValue(),
		Trigger: dispenser.Trigger(fields[fieldTrigger].GetStringValue()),
		Profile: fields[fieldProfile].GetStringValue(),
	}

	if run.ID == "" {
		return dispenser.Run{}, fmt.Errorf("%w: missing %s", ErrCorrupted, fieldID)
	}

	var startedAt timestamppb.Timestamp
	if err := protojson.Unmarshal(quote(fields[fieldStartedAt].GetStringValue()), &startedAt); err != nil {
		return dispenser.Run{}, fmt.Errorf("%w: %s: %w", ErrCorrupted, fieldStartedAt, err)
	}

	var duration durationpb.Duration
	if err := protojson.Unmarshal(quote(fields[fieldDuration].GetStringValue()), &duration); err != nil {
		return dispenser.Run{}, fmt.Errorf("%w: %s: %w", ErrCorrupted, fieldDuration, err)
	}

	run.StartedAt = startedAt.AsTime().In(time.Local)
	run.Duration = duration.AsDuration()

	return run, nil
}

// unquote strips the quotes of a JSON string scalar.
func unquote(data []byte) string {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return string(data[1 : len(data)-1])
	}

	return string(data)
}

func quote(s string) []byte {
	return []byte(`"` + s + `"`)
}
