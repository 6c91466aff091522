package engine

import "testing"

// setBenchTotal fills a player's bench with cards summing to total.
// Assumes 4 ≤ total ≤ 46 so each slot can hold a real rank.
func setBenchTotal(g *GameState, p uint8, total int16) {
	remaining := total
	for i := 0; i < BenchSize; i++ {
		slots := int16(BenchSize - i)
		v := remaining - (slots - 1) // leave at least 1 per remaining slot
		if v > 13 {
			v = 13
		}
		if v < 1 {
			v = 1
		}
		g.Players[p].Bench[i] = NewCard(SuitSpades, uint8(v-1))
		remaining -= v
	}
}

func endedGame(t *testing.T, players uint8) GameState {
	t.Helper()
	g := newStartedGame(t, 30, players)
	g.Flags |= FlagRoundOver
	g.Phase = PhaseRoundOver
	return g
}

func TestEndRoundRequiresRoundOver(t *testing.T) {
	g := newStartedGame(t, 31, 2)
	if _, err := g.EndRound(); err == nil {
		t.Fatal("EndRound must fail while the round is live")
	}
}

func TestEndRoundTiedWinners(t *testing.T) {
	// Totals [5, 5, 12]: players 0 and 1 both win and gain nothing,
	// player 2 gains 12.
	g := endedGame(t, 3)
	setBenchTotal(&g, 0, 5)
	setBenchTotal(&g, 1, 5)
	setBenchTotal(&g, 2, 12)

	res, err := g.EndRound()
	if err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	if res.Winners != 0b011 {
		t.Errorf("expected winners 0b011, got %b", res.Winners)
	}
	if g.Players[0].Score != 0 || g.Players[1].Score != 0 {
		t.Error("winners must gain nothing")
	}
	if g.Players[2].Score != 12 {
		t.Errorf("loser must gain own total 12, got %d", g.Players[2].Score)
	}
	if res.Penalty != 0 {
		t.Errorf("no caller, no penalty; got %d", res.Penalty)
	}
}

func TestEndRoundCallerPenalty(t *testing.T) {
	// Caller totals 8 against an opponent's 4: caller gains 8 + 10 = 18.
	g := endedGame(t, 2)
	g.Caller = 0
	g.Flags |= FlagGandalfCalled
	setBenchTotal(&g, 0, 8)
	setBenchTotal(&g, 1, 4)

	res, err := g.EndRound()
	if err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	if res.Winners != 0b10 {
		t.Errorf("expected player 1 to win, got %b", res.Winners)
	}
	if res.Penalty != 10 {
		t.Errorf("expected penalty 10, got %d", res.Penalty)
	}
	if g.Players[0].Score != 18 {
		t.Errorf("caller must gain 8 + 10 = 18, got %d", g.Players[0].Score)
	}
	if g.Players[1].Score != 0 {
		t.Errorf("winner must gain nothing, got %d", g.Players[1].Score)
	}
}

func TestEndRoundWinningCallerUnpenalized(t *testing.T) {
	g := endedGame(t, 2)
	g.Caller = 0
	g.Flags |= FlagGandalfCalled
	setBenchTotal(&g, 0, 6)
	setBenchTotal(&g, 1, 20)

	res, err := g.EndRound()
	if err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	if res.Penalty != 0 {
		t.Errorf("a winning caller pays nothing, got %d", res.Penalty)
	}
	if g.Players[0].Score != 0 {
		t.Errorf("winning caller gains nothing, got %d", g.Players[0].Score)
	}
	if g.Players[1].Score != 20 {
		t.Errorf("loser gains own total, got %d", g.Players[1].Score)
	}
}

func TestEndRoundAccumulatesAcrossRounds(t *testing.T) {
	g := endedGame(t, 2)
	g.Players[0].Score = 7
	g.Players[1].Score = 30
	setBenchTotal(&g, 0, 10)
	setBenchTotal(&g, 1, 4)

	if _, err := g.EndRound(); err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	if g.Players[0].Score != 17 {
		t.Errorf("expected 7 + 10 = 17, got %d", g.Players[0].Score)
	}
	if g.Players[1].Score != 30 {
		t.Errorf("winner keeps 30, got %d", g.Players[1].Score)
	}
}
