package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/growthmesh/refgraph/pkg/types"
)

// snapshotFile is the on-disk layout a FileSource reads.
type snapshotFile struct {
	Users    []userFileRow    `json:"users"`
	Contacts []contactFileRow `json:"contacts"`
}

// FileSource reads a snapshot from a JSON file on every Fetch. Exports
// from spreadsheet tools are often slightly malformed (trailing commas,
// single quotes), so a failed parse gets one repair attempt before the
// source gives up.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (*types.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}

	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(raw))
		if repairErr != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
		}
		if err := json.Unmarshal([]byte(repaired), &file); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
		}
	}

	return file.toSnapshot(), nil
}

// Close implements Source.
func (s *FileSource) Close(context.Context) error { return nil }
