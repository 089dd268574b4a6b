// Package verifier is the neutral third party (spec.md's "neutral
// verifier") that replays submitted action logs. It never generates
// randomness and never sees private cards, same as the core it wraps;
// this package only adds the concurrency and request-coalescing needed
// to serve many channels at once.
package verifier

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/lox/channelpoker/internal/channel"
	"github.com/lox/channelpoker/internal/channel/digest"
)

// Request is one channel's submitted prefix awaiting a verdict.
type Request struct {
	Key     string
	Actions []channel.Action
	StackA  channel.Amount
	StackB  channel.Amount
}

// Result pairs a Request's key back with its outcome or error, so callers
// can match results from a batch back to their originating channel.
type Result struct {
	Key     string
	Outcome channel.Outcome
	Err     *channel.ReplayError
}

// Service fans batches of replay requests out across workers and
// coalesces concurrent, identical requests for the same channel key so a
// slow or retried client never causes duplicate work.
type Service struct {
	hasher  digest.Hasher
	group   singleflight.Group
	workers int
}

// New builds a Service. workers bounds how many replays run concurrently
// within a single VerifyBatch call; production callers size it to
// available CPUs, tests can pass 1 to run replays one at a time. Results
// come back in request order whatever the worker count.
func New(hasher digest.Hasher, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{hasher: hasher, workers: workers}
}

// Verify replays a single request, coalescing with any other in-flight
// Verify call carrying the same key.
func (s *Service) Verify(req Request) Result {
	v, _, _ := s.group.Do(req.Key, func() (any, error) {
		outcome, rerr := channel.Replay(s.hasher, req.Actions, req.StackA, req.StackB)
		return Result{Key: req.Key, Outcome: outcome, Err: rerr}, nil
	})
	return v.(Result)
}

// VerifyBatch replays every request concurrently, bounded by s.workers,
// and returns one Result per request in the same order. A cancelled
// context stops launching new work but still returns results already in
// flight.
func (s *Service) VerifyBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	sem := make(chan struct{}, s.workers)
	g, gctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			results[i] = s.Verify(req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("verify batch: %w", err)
	}
	return results, nil
}
