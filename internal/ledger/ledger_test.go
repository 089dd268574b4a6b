package ledger

import (
	"path/filepath"
	"testing"

	"github.com/lox/channelpoker/internal/channel"
)

func sampleAction(seq uint32, kind channel.ActionKind, amount uint64, prev channel.Hash) channel.Action {
	var channelID, handID channel.ID
	channelID[0] = 0xAB
	handID[0] = 0xCD
	return channel.Action{
		ChannelID: channelID,
		HandID:    handID,
		Seq:       seq,
		Kind:      kind,
		Amount:    channel.AmountFromUint64(amount),
		PrevHash:  prev,
	}
}

func TestOpenMissingFileReturnsEmptyJournal(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(j.Actions()) != 0 {
		t.Errorf("Actions() = %d entries, want 0", len(j.Actions()))
	}
}

func TestAppendAndReopenRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.jsonl")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	a0 := sampleAction(0, channel.SmallBlind, 1, channel.Hash{})
	a1 := sampleAction(1, channel.BigBlind, 2, channel.Hash{0x01})
	if err := j.Append(a0); err != nil {
		t.Fatalf("Append a0: %v", err)
	}
	if err := j.Append(a1); err != nil {
		t.Fatalf("Append a1: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reopened.Actions()
	if len(got) != 2 {
		t.Fatalf("Actions() = %d entries, want 2", len(got))
	}
	if got[0] != a0 || got[1] != a1 {
		t.Errorf("round trip mismatch:\n got  %+v %+v\n want %+v %+v", got[0], got[1], a0, a1)
	}
}

func TestActionsReturnsDefensiveCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.jsonl")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := j.Append(sampleAction(0, channel.SmallBlind, 1, channel.Hash{})); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := j.Actions()
	got[0].Seq = 99
	if j.Actions()[0].Seq == 99 {
		t.Error("mutating the returned slice affected the journal's internal state")
	}
}
