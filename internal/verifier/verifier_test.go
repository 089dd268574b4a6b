package verifier

import (
	"context"
	"testing"

	"github.com/lox/channelpoker/internal/channel"
	"github.com/lox/channelpoker/internal/channel/digest"
)

var testChannelID = channel.ID{1}
var testHandID = channel.ID{1}

func chain(h digest.Hasher, kinds []channel.ActionKind, amounts []uint64) []channel.Action {
	out := make([]channel.Action, len(kinds))
	prev := channel.HandGenesis(h, testChannelID, testHandID)
	for i, k := range kinds {
		a := channel.Action{
			ChannelID: testChannelID,
			HandID:    testHandID,
			Seq:       uint32(i),
			Kind:      k,
			Amount:    channel.AmountFromUint64(amounts[i]),
			PrevHash:  prev,
		}
		out[i] = a
		prev = a.Hash(h)
	}
	return out
}

func TestVerifySingleRequest(t *testing.T) {
	s := New(digest.Mock{}, 4)
	actions := chain(digest.Mock{}, []channel.ActionKind{channel.SmallBlind, channel.BigBlind, channel.Fold},
		[]uint64{1, 2, 0})

	res := s.Verify(Request{Key: "ch1", Actions: actions, StackA: channel.AmountFromUint64(10), StackB: channel.AmountFromUint64(10)})
	if res.Err != nil {
		t.Fatalf("Verify returned error: %v", res.Err)
	}
	if res.Outcome.EndKind != channel.EndFold || res.Outcome.Folder != 0 {
		t.Errorf("unexpected outcome: %+v", res.Outcome)
	}
}

func TestVerifyBatchPreservesOrderAndKeys(t *testing.T) {
	s := New(digest.Mock{}, 2)

	reqs := make([]Request, 5)
	for i := range reqs {
		actions := chain(digest.Mock{}, []channel.ActionKind{channel.SmallBlind, channel.BigBlind, channel.Fold},
			[]uint64{1, 2, 0})
		reqs[i] = Request{
			Key:     string(rune('a' + i)),
			Actions: actions,
			StackA:  channel.AmountFromUint64(10),
			StackB:  channel.AmountFromUint64(10),
		}
	}

	results, err := s.VerifyBatch(context.Background(), reqs)
	if err != nil {
		t.Fatalf("VerifyBatch: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, res := range results {
		if res.Key != reqs[i].Key {
			t.Errorf("result[%d].Key = %q, want %q (order not preserved)", i, res.Key, reqs[i].Key)
		}
		if res.Err != nil {
			t.Errorf("result[%d] unexpected error: %v", i, res.Err)
		}
	}
}

func TestVerifyConcurrentIdenticalKeysAgree(t *testing.T) {
	s := New(digest.Mock{}, 1)
	actions := chain(digest.Mock{}, []channel.ActionKind{channel.SmallBlind, channel.BigBlind, channel.Fold},
		[]uint64{1, 2, 0})
	req := Request{Key: "same", Actions: actions, StackA: channel.AmountFromUint64(10), StackB: channel.AmountFromUint64(10)}

	done := make(chan Result, 2)
	go func() { done <- s.Verify(req) }()
	go func() { done <- s.Verify(req) }()

	r1, r2 := <-done, <-done
	if r1.Outcome != r2.Outcome {
		t.Errorf("coalesced calls returned different outcomes: %+v vs %+v", r1.Outcome, r2.Outcome)
	}
}
