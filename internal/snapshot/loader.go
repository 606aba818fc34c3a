package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// ParseError reports an export file that is not well-formed JSON. The
// load is aborted and no maps are produced from it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing snapshot: %v", e.Err)
	}
	return fmt.Sprintf("parsing snapshot %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExpandGlob resolves a snapshot path pattern to the matching files,
// sorted for deterministic merge order. Patterns support ** via
// doublestar; a plain path is returned as-is.
func ExpandGlob(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding snapshot glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("snapshot glob %q matched no files", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// ParseExport decodes a single export document.
func ParseExport(r io.Reader) (Export, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, &ParseError{Err: err}
	}
	return export, nil
}

// LoadExport reads and decodes one export file.
func LoadExport(path string) (Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	export, err := ParseExport(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return export, nil
}

// LoadExportGlob loads every file matching pattern and merges the shards
// into one export.
func LoadExportGlob(pattern string) (Export, error) {
	paths, err := ExpandGlob(pattern)
	if err != nil {
		return nil, err
	}

	merged := Export{}
	for _, path := range paths {
		shard, err := LoadExport(path)
		if err != nil {
			return nil, err
		}
		merged.Merge(shard)
	}
	return merged, nil
}

// ManagerIDs returns the export's manager keys in sorted order, for
// deterministic iteration.
func (e Export) ManagerIDs() []ids.UserID {
	out := make([]ids.UserID, 0, len(e))
	for id := range e {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
