// Package ledger persists a hand's action log as newline-delimited JSON so
// either party (or the neutral verifier) can reload it and feed it back
// into channel.Replay or channel.FinishPartial.
package ledger

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/channelpoker/internal/channel"
	"github.com/lox/channelpoker/internal/fileutil"
)

// record is the on-disk shape of one channel.Action. Amount is split into
// its two limbs rather than serialized as a single too-big-for-JSON-number
// value.
type record struct {
	ChannelID string `json:"channel_id"`
	HandID    string `json:"hand_id"`
	Seq       uint32 `json:"seq"`
	Kind      uint8  `json:"kind"`
	AmountHi  uint64 `json:"amount_hi"`
	AmountLo  uint64 `json:"amount_lo"`
	PrevHash  string `json:"prev_hash"`
}

func toRecord(a channel.Action) record {
	return record{
		ChannelID: fmt.Sprintf("%x", a.ChannelID),
		HandID:    fmt.Sprintf("%x", a.HandID),
		Seq:       a.Seq,
		Kind:      uint8(a.Kind),
		AmountHi:  a.Amount.Hi,
		AmountLo:  a.Amount.Lo,
		PrevHash:  fmt.Sprintf("%x", a.PrevHash),
	}
}

func fromRecord(r record) (channel.Action, error) {
	var channelID channel.ID
	var handID channel.ID
	var prevHash channel.Hash
	if err := decodeHex(r.ChannelID, channelID[:]); err != nil {
		return channel.Action{}, fmt.Errorf("decode channel_id: %w", err)
	}
	if err := decodeHex(r.HandID, handID[:]); err != nil {
		return channel.Action{}, fmt.Errorf("decode hand_id: %w", err)
	}
	if err := decodeHex(r.PrevHash, prevHash[:]); err != nil {
		return channel.Action{}, fmt.Errorf("decode prev_hash: %w", err)
	}
	return channel.Action{
		ChannelID: channelID,
		HandID:    handID,
		Seq:       r.Seq,
		Kind:      channel.ActionKind(r.Kind),
		Amount:    channel.Amount{Hi: r.AmountHi, Lo: r.AmountLo},
		PrevHash:  prevHash,
	}, nil
}

func decodeHex(s string, dst []byte) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// Journal is an append-only, crash-safe record of one hand's actions.
// Every Append rewrites the whole file atomically via fileutil — hand
// logs are small (well under maxActions entries), so there is no need
// for true incremental appends at this scale.
type Journal struct {
	path    string
	actions []channel.Action
}

// Open loads an existing journal file, or returns an empty Journal if the
// file does not yet exist.
func Open(path string) (*Journal, error) {
	j := &Journal{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var r record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("decode journal line: %w", err)
		}
		a, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("decode journal line: %w", err)
		}
		j.actions = append(j.actions, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return j, nil
}

// Actions returns the actions recorded so far, in seq order.
func (j *Journal) Actions() []channel.Action {
	return append([]channel.Action(nil), j.actions...)
}

// Append records a new action and persists the journal atomically.
func (j *Journal) Append(a channel.Action) error {
	j.actions = append(j.actions, a)
	return j.flush()
}

func (j *Journal) flush() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, a := range j.actions {
		if err := enc.Encode(toRecord(a)); err != nil {
			return fmt.Errorf("encode journal line: %w", err)
		}
	}
	return fileutil.WriteFileAtomic(j.path, buf.Bytes(), 0o644)
}
