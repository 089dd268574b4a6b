package channel

// Street is one of the four betting rounds.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// HandState is the mutable state threaded through the betting state
// machine's pure transition functions (spec §3). Every transition in this
// package returns either a new HandState value or an error; none mutate a
// HandState in place on the error path, so a failed applyAction never corrupts
// the caller's state (spec §9 — "owned state threaded through pure
// transition functions").
type HandState struct {
	Stacks  [2]Amount
	Contrib [2]Amount
	Total   [2]Amount
	AllIn   [2]bool

	Actor  int
	Street Street

	ToCall     Amount
	LastRaise  Amount
	Checked    bool
	Reopen     bool
	RaiseCount uint8

	// BigBlind is the amount posted as the big blind for this hand. It is
	// immutable after the prologue and is the floor LastRaise resets to
	// at every street transition (spec §9's resolved ambiguity).
	BigBlind Amount
}
