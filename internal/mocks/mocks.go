// Package mocks holds gomock mocks used by unit tests. The files are
// generated by mockgen, regenerate with go generate after changing
// the mocked interfaces.
package mocks

//go:generate mockgen -destination roundtripper.go -package mocks net/http RoundTripper
//go:generate mockgen -destination lookup.go -package mocks crackcrypt.com/crackcrypt-go/pkg/api Lookup
