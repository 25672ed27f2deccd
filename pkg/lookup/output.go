package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dchest/safefile"
)

// MarshalResults formats results as a json array, indented by two
// spaces. A nil slice is formatted as an empty array.
func MarshalResults(results []Result) ([]byte, error) {
	if results == nil {
		results = []Result{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteResults(w io.Writer, results []Result) error {
	b, err := MarshalResults(results)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteResultsFile writes results to the named file. The file is
// replaced atomically, so a failed write never leaves partial output.
func WriteResultsFile(name string, results []Result) error {
	f, err := safefile.Create(name, 0644)
	if err != nil {
		return fmt.Errorf("creating %s failed: %w", name, err)
	}
	defer f.Close()

	if err := WriteResults(f, results); err != nil {
		return fmt.Errorf("writing %s failed: %w", name, err)
	}
	if err := f.Commit(); err != nil {
		return fmt.Errorf("writing %s failed: %w", name, err)
	}
	return nil
}

// ReadResults parses a json array as written by WriteResults.
func ReadResults(r io.Reader) ([]Result, error) {
	var results []Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, err
	}
	return results, nil
}
