package channel

import "github.com/lox/channelpoker/internal/channel/digest"

// validateBlinds consumes actions[0] and actions[1], producing the initial
// HandState per spec §4.1's Prologue. It never mutates actions or stacks
// in place; it returns a fresh HandState or the first failing error.
func validateBlinds(h digest.Hasher, actions []Action, stackA, stackB Amount) (HandState, *ReplayError) {
	sb := actions[0]
	genesis := HandGenesis(h, sb.ChannelID, sb.HandID)

	if sb.Seq != 0 {
		return HandState{}, newErr(CodeSmallBlindSequenceInvalid, "small blind seq must be 0")
	}
	if sb.PrevHash != genesis {
		return HandState{}, newErr(CodeSmallBlindPrevHashInvalid, "small blind prev_hash must equal hand genesis")
	}
	if sb.Kind != SmallBlind {
		return HandState{}, newErr(CodeSmallBlindActionInvalid, "action 0 must be SMALL_BLIND")
	}
	if sb.Amount.IsZero() || sb.Amount.GreaterThan(stackA) {
		return HandState{}, newErr(CodeSmallBlindAmountInvalid, "small blind amount must be in [1, stack_a]")
	}

	bb := actions[1]
	if bb.Seq != 1 {
		return HandState{}, newErr(CodeBigBlindSequenceInvalid, "big blind seq must be 1")
	}
	if bb.PrevHash != sb.Hash(h) {
		return HandState{}, newErr(CodeBigBlindPrevHashInvalid, "big blind prev_hash must equal hash(action[0])")
	}
	if bb.Kind != BigBlind {
		return HandState{}, newErr(CodeBigBlindActionInvalid, "action 1 must be BIG_BLIND")
	}
	wantBB := sb.Amount.Add(sb.Amount)
	if bb.Amount.Cmp(wantBB) != 0 {
		return HandState{}, newErr(CodeBigBlindAmountInvalid, "big blind amount must equal 2x small blind")
	}
	if bb.Amount.GreaterThan(stackB) {
		return HandState{}, newErr(CodeBigBlindStackInvalid, "big blind amount exceeds stack_b")
	}

	st := HandState{
		Contrib:    [2]Amount{sb.Amount, bb.Amount},
		Total:      [2]Amount{sb.Amount, bb.Amount},
		Stacks:     [2]Amount{stackA.Sub(sb.Amount), stackB.Sub(bb.Amount)},
		Actor:      0,
		Street:     Preflop,
		ToCall:     bb.Amount.Sub(sb.Amount),
		LastRaise:  bb.Amount,
		RaiseCount: 1,
		Reopen:     true,
		Checked:    false,
		BigBlind:   bb.Amount,
	}
	st.AllIn[0] = st.Stacks[0].IsZero()
	st.AllIn[1] = st.Stacks[1].IsZero()

	return st, nil
}
