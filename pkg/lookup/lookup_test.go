package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"crackcrypt.com/crackcrypt-go/internal/mocks"
	"crackcrypt.com/crackcrypt-go/pkg/api"
)

func newTestRunner(service api.Lookup, progress *bytes.Buffer, sleeps *[]time.Duration) *Runner {
	r := NewRunner(service, &Config{Algorithm: "md5", Progress: progress})
	r.sleep = func(_ context.Context, d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return r
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestRunInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockLookup(ctrl)

	hashes := []string{"aaaa", "bbbb", "cccc"}
	gomock.InOrder(
		service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "aaaa", Algorithm: "md5"}).Return(
			api.LookupResponse{Found: true, Plaintext: strPtr("a")}, nil),
		service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "bbbb", Algorithm: "md5"}).Return(
			api.LookupResponse{}, nil),
		service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "cccc", Algorithm: "md5"}).Return(
			api.LookupResponse{Found: true, Plaintext: strPtr("c")}, nil),
	)

	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(context.Background(), hashes)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(results), 3; got != want {
		t.Fatalf("unexpected number of results, got %d, want %d", got, want)
	}
	for i, r := range results {
		if got, want := r.Hash, hashes[i]; got != want {
			t.Errorf("result %d: unexpected hash, got %q, want %q", i, got, want)
		}
	}
	if got, want := progress.String(), `
[1/3] aaaa → FOUND
[2/3] bbbb → NOT FOUND
[3/3] cccc → FOUND
`[1:]; got != want {
		t.Errorf("unexpected progress output, got:\n%s\nwant:\n%s", got, want)
	}
	if got, want := len(sleeps), 3; got != want {
		t.Errorf("unexpected number of sleeps, got %d, want %d", got, want)
	}
	for _, d := range sleeps {
		if d != DefaultDelay {
			t.Errorf("unexpected delay %v, want %v", d, DefaultDelay)
		}
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockLookup(ctrl)

	gomock.InOrder(
		service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "aaaa", Algorithm: "md5"}).Return(
			api.LookupResponse{}, api.ErrTooManyRequests),
		service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "bbbb", Algorithm: "md5"}).Return(
			api.LookupResponse{Found: true, Plaintext: strPtr("secret"), Elapsed: floatPtr(0.25)}, nil),
	)

	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(context.Background(), []string{"aaaa", "bbbb"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(results), 2; got != want {
		t.Fatalf("unexpected number of results, got %d, want %d", got, want)
	}
	failed := results[0]
	if !failed.Failed() {
		t.Errorf("first result not failed: %+v", failed)
	}
	if failed.Found || failed.Plaintext != nil || failed.Elapsed != nil {
		t.Errorf("failed result has lookup fields: %+v", failed)
	}
	b, err := failed.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"hash":"aaaa","alg":"md5","error":"(429) Too Many Requests"}`; got != want {
		t.Errorf("unexpected json for failed result, got %s, want %s", got, want)
	}
	if results[1].Failed() || !results[1].Found {
		t.Errorf("second result not found: %+v", results[1])
	}
	if got, want := progress.String(), "[1/2] aaaa → NOT FOUND\n[2/2] bbbb → FOUND\n"; got != want {
		t.Errorf("unexpected progress output, got %q, want %q", got, want)
	}
	if got, want := len(sleeps), 2; got != want {
		t.Errorf("unexpected number of sleeps, got %d, want %d", got, want)
	}
}

func TestRunSingleHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockLookup(ctrl)

	service.EXPECT().Lookup(gomock.Any(), api.LookupRequest{Hash: "abc123", Algorithm: "md5"}).Return(
		api.LookupResponse{Found: true, Plaintext: strPtr("secret"), Elapsed: floatPtr(0.5)}, nil)

	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(context.Background(), []string{"abc123"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalResults(results)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `
[
  {
    "hash": "abc123",
    "alg": "md5",
    "found": true,
    "plaintext": "secret",
    "elapsed": 0.5
  }
]
`[1:]; got != want {
		t.Errorf("unexpected json, got:\n%s\nwant:\n%s", got, want)
	}
	if got, want := len(sleeps), 1; got != want {
		t.Errorf("no sleep after last item, got %d sleeps, want %d", got, want)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	service := lookupFunc(func(_ context.Context, req api.LookupRequest) (api.LookupResponse, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return api.LookupResponse{}, nil
	})

	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(ctx, []string{"aa", "bb", "cc", "dd"})
	if err != context.Canceled {
		t.Errorf("unexpected error, got %v, want %v", err, context.Canceled)
	}
	if got, want := len(results), 2; got != want {
		t.Errorf("unexpected number of results, got %d, want %d", got, want)
	}
	if got, want := strings.Count(progress.String(), "\n"), 2; got != want {
		t.Errorf("unexpected number of progress lines, got %d, want %d", got, want)
	}
}

func TestRunErrorWithoutMessage(t *testing.T) {
	service := lookupFunc(func(context.Context, api.LookupRequest) (api.LookupResponse, error) {
		return api.LookupResponse{}, errors.New("")
	})
	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(context.Background(), []string{"aa"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(results), 1; got != want {
		t.Fatalf("unexpected number of results, got %d, want %d", got, want)
	}
	if !results[0].Failed() {
		t.Errorf("result not marked as failed: %+v", results[0])
	}
	if got, want := results[0].Error, "*errors.errorString"; got != want {
		t.Errorf("unexpected error text, got %q, want %q", got, want)
	}
}

func TestRunEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service := mocks.NewMockLookup(ctrl)

	var progress bytes.Buffer
	var sleeps []time.Duration
	results, err := newTestRunner(service, &progress, &sleeps).Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 || progress.Len() != 0 || len(sleeps) != 0 {
		t.Errorf("unexpected activity for empty input: %v, %q, %v", results, progress.String(), sleeps)
	}
}

func TestSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	sleep(ctx, time.Minute)
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("sleep not interrupted by cancelled context, took %v", elapsed)
	}
}

// Implements api.Lookup.
type lookupFunc func(context.Context, api.LookupRequest) (api.LookupResponse, error)

func (f lookupFunc) Lookup(ctx context.Context, req api.LookupRequest) (api.LookupResponse, error) {
	return f(ctx, req)
}

func ExampleRunner_Run() {
	service := lookupFunc(func(_ context.Context, req api.LookupRequest) (api.LookupResponse, error) {
		if req.Hash == "5f4dcc3b5aa765d61d8327deb882cf99" {
			return api.LookupResponse{Found: true, Plaintext: strPtr("password")}, nil
		}
		return api.LookupResponse{}, fmt.Errorf("mock error")
	})
	var progress bytes.Buffer
	r := NewRunner(service, &Config{Algorithm: "md5", Progress: &progress})
	r.sleep = func(context.Context, time.Duration) {}

	results, _ := r.Run(context.Background(), []string{"5f4dcc3b5aa765d61d8327deb882cf99", "00"})
	fmt.Print(progress.String())
	for _, r := range results {
		if r.Failed() {
			fmt.Println(r.Hash, "error:", r.Error)
		} else {
			fmt.Println(r.Hash, r.Status())
		}
	}
	// Output:
	// [1/2] 5f4dcc3b5aa765d61d8327deb882cf99 → FOUND
	// [2/2] 00 → NOT FOUND
	// 5f4dcc3b5aa765d61d8327deb882cf99 FOUND
	// 00 error: mock error
}
