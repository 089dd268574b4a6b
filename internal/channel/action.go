package channel

import (
	"encoding/binary"

	"github.com/lox/channelpoker/internal/channel/digest"
)

// ActionKind is the finite enumeration of action records the betting state
// machine dispatches on (spec §3/§9 — "dynamic dispatch over action kinds
// -> tagged variant").
type ActionKind uint8

const (
	SmallBlind ActionKind = iota
	BigBlind
	CheckCall
	BetRaise
	Fold
)

func (k ActionKind) String() string {
	switch k {
	case SmallBlind:
		return "small_blind"
	case BigBlind:
		return "big_blind"
	case CheckCall:
		return "check_call"
	case BetRaise:
		return "bet_raise"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// ID is a 256-bit opaque identifier (channel_id or hand_id).
type ID [32]byte

// Hash is a 256-bit digest, either a chained action_hash or a hand_genesis.
type Hash [32]byte

// Action is the flat record streamed between the two parties and replayed
// by the verifier, per spec §3.
type Action struct {
	ChannelID ID
	HandID    ID
	Seq       uint32
	Kind      ActionKind
	Amount    Amount
	PrevHash  Hash
}

// genesisDomainTag domain-separates hand_genesis from action_hash so the
// two can never collide regardless of hash function.
var genesisDomainTag = []byte("channelpoker|hand_genesis|v1")

// HandGenesis computes the digest actions[0].PrevHash must equal.
func HandGenesis(h digest.Hasher, channelID, handID ID) Hash {
	buf := make([]byte, 0, len(genesisDomainTag)+64)
	buf = append(buf, genesisDomainTag...)
	buf = append(buf, channelID[:]...)
	buf = append(buf, handID[:]...)
	return Hash(h.Sum(buf))
}

// Canonical returns the tightly-packed, big-endian encoding of the action
// in the exact field order of spec §3, for hashing and for the external
// signature-verification layer. A hand-rolled encoder is used instead of a
// general-purpose serialization library because the byte layout must be
// exact (fixed width, fixed field order, no framing/tag bytes) for a
// foreign signature stack to reproduce it identically.
func (a Action) Canonical() []byte {
	buf := make([]byte, 0, 32+32+4+1+16+32)
	buf = append(buf, a.ChannelID[:]...)
	buf = append(buf, a.HandID[:]...)
	var seqBytes [4]byte
	binary.BigEndian.PutUint32(seqBytes[:], a.Seq)
	buf = append(buf, seqBytes[:]...)
	buf = append(buf, byte(a.Kind))
	amountBytes := a.Amount.Bytes()
	buf = append(buf, amountBytes[:]...)
	buf = append(buf, a.PrevHash[:]...)
	return buf
}

// Hash computes action_hash(a): the digest of its canonical encoding.
func (a Action) Hash(h digest.Hasher) Hash {
	return Hash(h.Sum(a.Canonical()))
}
