// The api package defines the abstract api of the crackcrypt lookup
// service, and the json objects exchanged on the wire.
package api

import (
	"context"
	"strings"
)

const DefaultURL = "https://crackcrypt.com/api/v1"

type Endpoint string

const (
	EndpointLookup = Endpoint("lookup")
)

// Path joins a number of components to form a full endpoint path.  For example,
// EndpointLookup.Path("https://example.com/api/v1") -> https://example.com/api/v1/lookup.
func (e Endpoint) Path(components ...string) string {
	return strings.Join(append(components, string(e)), "/")
}

// Body of a lookup request.
type LookupRequest struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"alg"`
}

// Body of a successful lookup response. Plaintext and Elapsed are
// only present when the service includes them.
type LookupResponse struct {
	Found     bool     `json:"found"`
	Plaintext *string  `json:"plaintext"`
	Elapsed   *float64 `json:"elapsed"`
}

// Interface for the lookup api, corresponding to the end points of
// the HTTP wire protocol.
type Lookup interface {
	Lookup(context.Context, LookupRequest) (LookupResponse, error)
}
