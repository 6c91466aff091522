package engine

import "testing"

func TestBotPlaysLowCard(t *testing.T) {
	g := newStartedGame(t, 40, 2)
	card := NewCard(SuitClubs, RankFour)
	stackDeck(&g, card)

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if !s.Played || s.Discarded != card {
		t.Errorf("a four must be played to the discard: %+v", s)
	}
	if s.SwapIndex != -1 {
		t.Error("no swap expected")
	}
	if g.DiscardTop() != card {
		t.Error("played card must top the discard")
	}
}

func TestBotSwapsHighCardAgainstWorstSlot(t *testing.T) {
	g := newStartedGame(t, 41, 2)
	king := NewCard(SuitSpades, RankKing)
	stackDeck(&g, king)
	worst := g.Players[0].WorstSlot()
	old := g.Players[0].Bench[worst]

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if s.Played {
		t.Error("a king must not be played")
	}
	if s.SwapIndex != int8(worst) {
		t.Errorf("expected swap at worst slot %d, got %d", worst, s.SwapIndex)
	}
	if s.Discarded != old {
		t.Errorf("expected displaced %v, got %v", old, s.Discarded)
	}
	if g.Players[0].Bench[worst] != king || !g.Players[0].Seen[worst] {
		t.Error("king must land in the worst slot, marked seen")
	}
}

func TestBotResolvesRevealOwn(t *testing.T) {
	g := newStartedGame(t, 42, 2)
	stackDeck(&g, NewCard(SuitHearts, RankSeven))

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if s.Effect != EffectRevealOwn {
		t.Fatalf("expected EffectRevealOwn, got %d", s.Effect)
	}
	if s.OwnIndex < 0 || s.OwnIndex >= BenchSize {
		t.Fatalf("own index out of range: %d", s.OwnIndex)
	}
	if !g.Players[0].Seen[s.OwnIndex] {
		t.Error("revealed slot must be marked seen")
	}
	if s.RevealedCard != g.Players[0].Bench[s.OwnIndex] {
		t.Error("summary must carry the revealed card")
	}
	if g.Phase == PhaseAwaitEffect {
		t.Error("the bot must fully resolve its own effects")
	}
}

func TestBotResolvesPeekOther(t *testing.T) {
	g := newStartedGame(t, 43, 3)
	stackDeck(&g, NewCard(SuitDiamonds, RankNine))
	before := [MaxPlayers][BenchSize]Card{}
	for p := uint8(0); p < 3; p++ {
		before[p] = g.Players[p].Bench
	}

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if s.Effect != EffectPeekOther {
		t.Fatalf("expected EffectPeekOther, got %d", s.Effect)
	}
	if s.EffectTarget == 0 || s.EffectTarget < 0 || s.EffectTarget >= 3 {
		t.Fatalf("peek target must be another player, got %d", s.EffectTarget)
	}
	if s.RevealedCard != g.Players[s.EffectTarget].Bench[s.EffectIndex] {
		t.Error("summary must carry the peeked card")
	}
	for p := uint8(0); p < 3; p++ {
		if g.Players[p].Bench != before[p] {
			t.Errorf("a peek must not move cards (player %d)", p)
		}
	}
}

func TestBotResolvesJackSwap(t *testing.T) {
	g := newStartedGame(t, 44, 2)
	stackDeck(&g, NewCard(SuitClubs, RankJack))
	worst := g.Players[0].WorstSlot()
	mine := g.Players[0].Bench[worst]

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if s.Effect != EffectSwapOther {
		t.Fatalf("expected EffectSwapOther, got %d", s.Effect)
	}
	if s.OwnIndex != int8(worst) || s.EffectTarget != 1 {
		t.Errorf("expected swap of own worst slot with player 1: %+v", s)
	}
	if g.Players[1].Bench[s.EffectIndex] != mine {
		t.Error("the bot's worst card must land on the opponent's bench")
	}
}

func TestBotForcedDiscardSwapOnEmptyDeck(t *testing.T) {
	g := newStartedGame(t, 45, 2)
	g.DeckLen = 0
	top := g.DiscardTop()
	worst := g.Players[0].WorstSlot()
	old := g.Players[0].Bench[worst]

	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if !s.FromDiscard || s.Drawn != top {
		t.Errorf("expected a forced discard draw of %v: %+v", top, s)
	}
	if s.SwapIndex != int8(worst) || s.Discarded != old {
		t.Errorf("expected the worst card %v dumped: %+v", old, s)
	}
	if g.DiscardTop() != old {
		t.Error("displaced card must top the discard")
	}
}

func TestBotGandalfGateEventuallyFires(t *testing.T) {
	// With everything seen and a cheap bench, the call probability is at
	// its 0.55 maximum; over many fresh rounds the gate must fire.
	fired := false
	for seed := uint64(1); seed <= 40 && !fired; seed++ {
		g := newStartedGame(t, seed, 2)
		for i := 0; i < BenchSize; i++ {
			g.Players[0].Bench[i] = NewCard(SuitSpades, RankAce)
			g.Players[0].Seen[i] = true
		}
		stackDeck(&g, NewCard(SuitHearts, RankTwo))
		s, err := g.BotTakeTurn()
		if err != nil {
			t.Fatalf("BotTakeTurn: %v", err)
		}
		fired = s.CalledGandalf
	}
	if !fired {
		t.Error("a maximum-confidence bot must call within 40 independent rounds")
	}
}

func TestBotNeverCallsTwice(t *testing.T) {
	g := newStartedGame(t, 46, 2)
	if err := g.CallGandalf(); err != nil {
		t.Fatalf("CallGandalf: %v", err)
	}
	stackDeck(&g, NewCard(SuitHearts, RankTwo))
	s, err := g.BotTakeTurn()
	if err != nil {
		t.Fatalf("BotTakeTurn: %v", err)
	}
	if s.CalledGandalf {
		t.Error("the gate must not fire once Gandalf is called")
	}
}

func TestBotAllRoundsTerminate(t *testing.T) {
	// Bot-only rounds must always reach round end under the turn cap.
	for seed := uint64(1); seed <= 10; seed++ {
		g := newStartedGame(t, seed, 3)
		for turns := 0; !g.IsRoundOver(); turns++ {
			if turns > int(g.Rules.MaxRoundTurns)+8 {
				t.Fatalf("seed %d: round did not terminate", seed)
			}
			if _, err := g.BotTakeTurn(); err != nil {
				t.Fatalf("seed %d: BotTakeTurn: %v", seed, err)
			}
		}
		if _, err := g.EndRound(); err != nil {
			t.Fatalf("seed %d: EndRound: %v", seed, err)
		}
	}
}
