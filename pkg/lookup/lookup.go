// package lookup runs a list of hashes through a lookup service, one
// at a time, and collects the results in input order.
package lookup

import (
	"context"
	"fmt"
	"io"
	"time"

	"crackcrypt.com/crackcrypt-go/pkg/api"
	"crackcrypt.com/crackcrypt-go/pkg/log"
)

// Delay after each request, to stay within the service's rate limit.
const DefaultDelay = 1 * time.Second

type Config struct {
	// Algorithm sent with every hash.
	Algorithm string

	// Delay after every lookup, including the last one. Zero
	// implies DefaultDelay.
	Delay time.Duration

	// Progress lines are written here. Nil means no progress
	// output.
	Progress io.Writer
}

func (c *Config) withDefaults() Config {
	res := *c
	if res.Delay <= 0 {
		res.Delay = DefaultDelay
	}
	if res.Progress == nil {
		res.Progress = io.Discard
	}
	return res
}

type Runner struct {
	config  Config
	service api.Lookup
	sleep   func(context.Context, time.Duration)
}

func NewRunner(service api.Lookup, cfg *Config) *Runner {
	return &Runner{
		config:  cfg.withDefaults(),
		service: service,
		sleep:   sleep,
	}
}

// Run looks up each hash in order. A failed lookup is recorded in its
// Result and does not stop the run. The only error returned is from
// ctx, together with the results collected so far.
func (r *Runner) Run(ctx context.Context, hashes []string) ([]Result, error) {
	results := make([]Result, 0, len(hashes))
	for i, hash := range hashes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := r.lookup(ctx, hash)
		results = append(results, result)
		fmt.Fprintf(r.config.Progress, "[%d/%d] %s → %s\n", i+1, len(hashes), hash, result.Status())
		r.sleep(ctx, r.config.Delay)
	}
	return results, nil
}

func (r *Runner) lookup(ctx context.Context, hash string) Result {
	rsp, err := r.service.Lookup(ctx, api.LookupRequest{Hash: hash, Algorithm: r.config.Algorithm})
	if err != nil {
		log.Warning("lookup of %s failed: %v", hash, err)
		msg := err.Error()
		if len(msg) == 0 {
			// Must be non-empty, or the result reads as not found.
			msg = fmt.Sprintf("%T", err)
		}
		return Result{Hash: hash, Algorithm: r.config.Algorithm, Error: msg}
	}
	log.Debug("lookup of %s: found %v", hash, rsp.Found)
	return Result{
		Hash:      hash,
		Algorithm: r.config.Algorithm,
		Found:     rsp.Found,
		Plaintext: rsp.Plaintext,
		Elapsed:   rsp.Elapsed,
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
