// package hashes reads the list of hashes to look up, and normalizes
// hash and algorithm strings typed or pasted by users. No attempt is
// made to check that a hash is well-formed for its algorithm.
package hashes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeHash maps compatibility characters (e.g., full-width
// digits) to their plain form and strips surrounding white space.
func NormalizeHash(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// NormalizeAlgorithm maps compatibility characters and strips white
// space, but keeps the case the user typed.
func NormalizeAlgorithm(s string) string {
	return NormalizeHash(s)
}

// Read returns one hash per non-empty line of r, in input order.
func Read(r io.Reader) ([]string, error) {
	var hashes []string
	br := bufio.NewReader(r)
	for {
		// No limit on line length.
		line, err := br.ReadString('\n')
		if h := NormalizeHash(line); len(h) > 0 {
			hashes = append(hashes, h)
		}
		if err == io.EOF {
			return hashes, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadFile reads hashes from the named file. A missing file results
// in an error matching os.ErrNotExist.
func ReadFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", name, os.ErrNotExist)
		}
		return nil, err
	}
	defer f.Close()

	hashes, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s failed: %w", name, err)
	}
	return hashes, nil
}
