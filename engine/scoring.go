package engine

// RoundResult summarizes the outcome of a finished round.
type RoundResult struct {
	Totals  [MaxPlayers]int16
	Winners uint8 // bitmask of players at the minimum total
	Caller  int8  // -1 when the round ended without a Gandalf call
	Penalty int16 // extra points charged to a caller who did not win
}

// EndRound tallies bench totals and applies them to the cumulative
// scores: every player at the minimum total wins and gains nothing,
// everyone else gains their own total, and a caller who is not among
// the winners pays the call penalty on top.
func (g *GameState) EndRound() (RoundResult, error) {
	if !g.IsRoundOver() {
		return RoundResult{}, ErrRoundNotOver
	}

	n := g.Rules.numPlayers()
	res := RoundResult{Caller: g.Caller}

	min := int16(1<<15 - 1)
	for p := uint8(0); p < n; p++ {
		res.Totals[p] = g.Players[p].Total()
		if res.Totals[p] < min {
			min = res.Totals[p]
		}
	}

	for p := uint8(0); p < n; p++ {
		if res.Totals[p] == min {
			res.Winners |= 1 << p
		} else {
			g.Players[p].Score += res.Totals[p]
		}
	}

	if g.Caller >= 0 && res.Winners&(1<<uint8(g.Caller)) == 0 {
		g.Players[g.Caller].Score += g.Rules.CallPenalty
		res.Penalty = g.Rules.CallPenalty
	}

	return res, nil
}
