package lookup

import (
	"bytes"
	"encoding/json"
)

// Result of looking up a single hash. A failed lookup has only Hash,
// Algorithm and Error set.
type Result struct {
	Hash      string
	Algorithm string
	Found     bool
	Plaintext *string
	Elapsed   *float64
	Error     string
}

func (r *Result) Failed() bool {
	return len(r.Error) > 0
}

func (r *Result) Status() string {
	if r.Found {
		return "FOUND"
	}
	return "NOT FOUND"
}

type foundResult struct {
	Hash      string   `json:"hash"`
	Algorithm string   `json:"alg"`
	Found     bool     `json:"found"`
	Plaintext *string  `json:"plaintext"`
	Elapsed   *float64 `json:"elapsed"`
}

type failedResult struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"alg"`
	Error     string `json:"error"`
}

// MarshalJSON emits either the lookup fields, with null for missing
// plaintext and elapsed, or only the error, never both.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return marshalUnescaped(failedResult{Hash: r.Hash, Algorithm: r.Algorithm, Error: r.Error})
	}
	return marshalUnescaped(foundResult{
		Hash:      r.Hash,
		Algorithm: r.Algorithm,
		Found:     r.Found,
		Plaintext: r.Plaintext,
		Elapsed:   r.Elapsed,
	})
}

// Like json.Marshal, but leaves <, > and & in plaintexts as is.
func marshalUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var w struct {
		Hash      string   `json:"hash"`
		Algorithm string   `json:"alg"`
		Found     bool     `json:"found"`
		Plaintext *string  `json:"plaintext"`
		Elapsed   *float64 `json:"elapsed"`
		Error     string   `json:"error"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = Result(w)
	return nil
}
