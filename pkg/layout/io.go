package layout

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/strata/pkg/errors"
)

// WriteResult encodes a layout result as indented JSON.
func WriteResult(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteResultFile writes a layout result to a JSON file.
func WriteResultFile(path string, r Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "result file %s", path)
	}
	defer f.Close()
	return WriteResult(f, r)
}

// ReadResultFile reads a layout result from a JSON file.
func ReadResultFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "result file %s", path)
		}
		return Result{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "result file %s", path)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to decode result JSON")
	}
	return r, nil
}
