// Package store reads and writes the JSON documents shared between runs.
// Writes replace the whole document through a temp file and rename, so readers never see a
// partially written file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"
)

// State tells what Load found on disk
type State int

// load states
const (
	Found   State = iota // document read and decoded
	Missing              // no file
	Corrupt              // file exists but is not valid JSON for the target type
)

func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Load reads JSON document from path. Missing and corrupt documents are not errors, they
// return zero value and the matching state. The error is returned only if the file can't be read.
func Load[T any](path string) (T, State, error) {
	var zero T
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, Missing, nil
		}
		return zero, Missing, fmt.Errorf("read %s: %w", path, err)
	}

	var res T
	if err := json.Unmarshal(data, &res); err != nil {
		lgr.Printf("[WARN] can't decode %s, treated as empty: %v", path, err)
		return zero, Corrupt, nil
	}
	return res, Found, nil
}

// Save writes v to path as indented JSON with a trailing newline. The document is written
// to a temp file in the same directory and renamed over the target.
func Save(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return WriteFile(path, data)
}

// Marshal encodes v as JSON indented by two spaces, with a trailing newline. Html in
// values is kept as is.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile atomically replaces path with data, creating parent directories if needed
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("make dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // generated site files are public
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp.Name(), path, err)
	}
	return nil
}
