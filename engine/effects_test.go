package engine

import (
	"errors"
	"testing"
)

// drawAndPlay stacks the deck with card and plays it, leaving any effect pending.
func drawAndPlay(t *testing.T, g *GameState, card Card) EffectKind {
	t.Helper()
	stackDeck(g, card)
	if _, err := g.DrawFromDeck(); err != nil {
		t.Fatalf("DrawFromDeck: %v", err)
	}
	effect, err := g.PlayDrawn()
	if err != nil {
		t.Fatalf("PlayDrawn: %v", err)
	}
	return effect
}

func TestRevealOwnEffect(t *testing.T) {
	g := newStartedGame(t, 20, 2)

	effect := drawAndPlay(t, &g, NewCard(SuitSpades, RankSeven))
	if effect != EffectRevealOwn {
		t.Fatalf("expected EffectRevealOwn, got %d", effect)
	}
	if g.Phase != PhaseAwaitEffect {
		t.Fatalf("expected PhaseAwaitEffect, got %d", g.Phase)
	}

	want := g.Players[0].Bench[1]
	card, err := g.ResolveRevealOwn(1)
	if err != nil {
		t.Fatalf("ResolveRevealOwn: %v", err)
	}
	if card != want {
		t.Errorf("expected %v, got %v", want, card)
	}
	if !g.Players[0].Seen[1] {
		t.Error("revealed slot must be marked seen")
	}
	if g.CurrentPlayer != 1 || g.Phase != PhaseAwaitTurn {
		t.Errorf("turn must pass after resolution: player %d phase %d", g.CurrentPlayer, g.Phase)
	}
}

func TestPeekOtherEffectIsPure(t *testing.T) {
	g := newStartedGame(t, 21, 2)

	if effect := drawAndPlay(t, &g, NewCard(SuitHearts, RankNine)); effect != EffectPeekOther {
		t.Fatalf("expected EffectPeekOther, got %d", effect)
	}

	benchBefore := g.Players[1].Bench
	seenBefore := g.Players[1].Seen
	want := g.Players[1].Bench[3]

	card, err := g.ResolvePeekOther(1, 3)
	if err != nil {
		t.Fatalf("ResolvePeekOther: %v", err)
	}
	if card != want {
		t.Errorf("expected %v, got %v", want, card)
	}
	if g.Players[1].Bench != benchBefore || g.Players[1].Seen != seenBefore {
		t.Error("a peek must not mutate the target")
	}
}

func TestPeekOtherRejectsSelfAndBadTargets(t *testing.T) {
	g := newStartedGame(t, 22, 3)
	drawAndPlay(t, &g, NewCard(SuitClubs, RankTen))

	if _, err := g.ResolvePeekOther(0, 0); err == nil {
		t.Error("peeking own bench via the opponent path must fail")
	}
	if _, err := g.ResolvePeekOther(3, 0); err == nil {
		t.Error("out-of-range target must fail")
	}
	if _, err := g.ResolvePeekOther(1, BenchSize); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}
	if g.Phase != PhaseAwaitEffect {
		t.Error("failed resolutions must leave the effect pending")
	}
}

func TestJackCrossSwap(t *testing.T) {
	g := newStartedGame(t, 23, 2)
	g.Players[1].Seen[2] = true

	if effect := drawAndPlay(t, &g, NewCard(SuitDiamonds, RankJack)); effect != EffectSwapOther {
		t.Fatalf("expected EffectSwapOther, got %d", effect)
	}

	mine := g.Players[0].Bench[0]
	theirs := g.Players[1].Bench[2]
	if err := g.ResolveSwapOther(0, 1, 2); err != nil {
		t.Fatalf("ResolveSwapOther: %v", err)
	}

	if g.Players[0].Bench[0] != theirs || g.Players[1].Bench[2] != mine {
		t.Error("swap must exchange exactly the two chosen slots")
	}
	if !g.Players[0].Seen[0] {
		t.Error("actor's slot must be marked seen")
	}
	if g.Players[1].Seen[2] {
		t.Error("target's stale knowledge of the slot must be wiped")
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("turn must pass to player 1, got %d", g.CurrentPlayer)
	}
}

func TestEffectKindMismatchRejected(t *testing.T) {
	g := newStartedGame(t, 24, 2)
	drawAndPlay(t, &g, NewCard(SuitSpades, RankEight)) // reveal-own pending

	if _, err := g.ResolvePeekOther(1, 0); err == nil {
		t.Error("resolving the wrong effect kind must fail")
	}
	if err := g.ResolveSwapOther(0, 1, 0); err == nil {
		t.Error("resolving the wrong effect kind must fail")
	}
	if _, err := g.ResolveRevealOwn(0); err != nil {
		t.Errorf("the matching resolution must still succeed: %v", err)
	}
}
