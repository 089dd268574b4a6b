package channel

// applyAction validates and applies one post-prologue action against st,
// per spec §4.1's main loop dispatch. The caller (Replay) has already
// checked the sequence/prev_hash chain and that the current actor is not
// all-in; this function owns kind-specific validation, state mutation, and
// the street-closure decision.
//
// It returns either:
//   - a non-nil Outcome, if this action (or the street closure it causes)
//     ends the hand;
//   - a new HandState with Actor advanced to whoever must act next, ready
//     for the following action;
//   - a *ReplayError, the first failing check, per spec §7.
func applyAction(st HandState, a Action) (HandState, *Outcome, *ReplayError) {
	actor := st.Actor
	opp := 1 - actor

	switch a.Kind {
	case SmallBlind, BigBlind:
		return HandState{}, nil, newErr(CodeBlindOnlyStart, "blinds may only appear as actions 0 and 1")

	case Fold:
		if !a.Amount.IsZero() {
			return HandState{}, nil, newErr(CodeFoldAmountInvalid, "fold amount must be 0")
		}
		o := foldOutcome(st, actor)
		return st, &o, nil

	case CheckCall:
		if !a.Amount.IsZero() {
			if st.ToCall.IsZero() {
				return HandState{}, nil, newErr(CodeCheckAmountInvalid, "check amount must be 0")
			}
			return HandState{}, nil, newErr(CodeCallAmountInvalid, "call amount must be 0")
		}

		isCheck := st.ToCall.IsZero()
		pay := st.ToCall.Min(st.Stacks[actor])
		st.Contrib[actor] = st.Contrib[actor].Add(pay)
		st.Total[actor] = st.Total[actor].Add(pay)
		st.Stacks[actor] = st.Stacks[actor].Sub(pay)
		st.AllIn[actor] = st.Stacks[actor].IsZero()

		var closes bool
		if isCheck {
			if st.Street == Preflop || st.Checked {
				closes = true
			} else {
				st.Checked = true
			}
		} else {
			closes = true
		}

		if !closes && st.AllIn[opp] {
			closes = true
		}

		if closes {
			newSt, outcome := closeStreet(st)
			return newSt, outcome, nil
		}
		st.Actor = opp
		return st, nil, nil

	case BetRaise:
		if a.Amount.IsZero() {
			return HandState{}, nil, newErr(CodeRaiseAmountZero, "raise amount must be > 0")
		}

		newContrib := st.Contrib[actor].Add(a.Amount)
		if !newContrib.GreaterThan(st.Contrib[opp]) {
			return HandState{}, nil, newErr(CodeRaiseInsufficientIncrease, "raise must increase contribution beyond opponent's")
		}
		increment := newContrib.Sub(st.Contrib[opp])

		if st.RaiseCount >= 4 {
			return HandState{}, nil, newErr(CodeRaiseLimitExceeded, "no more than 4 raises per street")
		}
		if a.Amount.GreaterThan(st.Stacks[actor]) {
			return HandState{}, nil, newErr(CodeRaiseStackInvalid, "raise amount exceeds stack")
		}

		isAllIn := a.Amount.Cmp(st.Stacks[actor]) == 0
		if !isAllIn {
			if !st.Reopen {
				return HandState{}, nil, newErr(CodeNoReopenAllowed, "betting is not reopenable on this street")
			}
			if increment.LessThan(st.LastRaise) {
				return HandState{}, nil, newErr(CodeMinimumRaiseNotMet, "raise increment below minimum")
			}
		}

		st.Contrib[actor] = newContrib
		st.Total[actor] = st.Total[actor].Add(a.Amount)
		st.Stacks[actor] = st.Stacks[actor].Sub(a.Amount)
		st.AllIn[actor] = st.Stacks[actor].IsZero()
		st.ToCall = newContrib.Sub(st.Contrib[opp])

		if increment.GreaterThan(st.LastRaise) || increment.Cmp(st.LastRaise) == 0 {
			st.LastRaise = increment
			st.Reopen = true
		} else {
			// Short all-in: permitted, but does not reopen betting.
			st.Reopen = false
		}
		st.RaiseCount++
		st.Checked = false

		if st.AllIn[opp] {
			newSt, outcome := closeStreet(st)
			return newSt, outcome, nil
		}
		st.Actor = opp
		return st, nil, nil

	default:
		return HandState{}, nil, newErr(CodeUnknownAction, "unrecognized action kind")
	}
}
