// Package registry builds a static, read-only index over a fixed set of
// channel IDs using a minimal perfect hash, so a verifier node serving
// many open channels can route an incoming action straight to the worker
// shard that owns its channel without a map lookup or lock.
package registry

import (
	"fmt"

	"github.com/opencoff/go-chd"

	"github.com/lox/channelpoker/internal/channel"
)

// Registry maps each of a fixed set of channel IDs to a shard index in
// [0, shardCount). It must be rebuilt (NOT incrementally updated) whenever
// the set of open channels changes — that is the tradeoff for O(1),
// allocation-free lookups on the hot path.
type Registry struct {
	index      *chd.CHD
	shardCount int
	ids        []channel.ID // the channel IDs the Registry was built over, in input order
}

// Build constructs a Registry over the given channel IDs, bucketing each
// into one of shardCount worker shards. ids must not contain duplicates.
func Build(ids []channel.ID, shardCount int) (*Registry, error) {
	if shardCount < 1 {
		shardCount = 1
	}

	b := chd.NewBuilder()
	for _, id := range ids {
		b.Add(id[:])
	}

	mph, err := b.Freeze(0.99)
	if err != nil {
		return nil, fmt.Errorf("build perfect hash: %w", err)
	}

	r := &Registry{index: mph, shardCount: shardCount, ids: append([]channel.ID(nil), ids...)}
	return r, nil
}

// Shard returns which worker shard owns id. The caller must only query IDs
// that were present when the Registry was built; behavior for any other
// ID is unspecified, matching a minimal perfect hash's contract.
func (r *Registry) Shard(id channel.ID) int {
	bucket := r.index.Find(id[:])
	return int(bucket) % r.shardCount
}

// Len reports how many channel IDs this Registry was built over.
func (r *Registry) Len() int {
	return len(r.ids)
}
