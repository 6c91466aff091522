package engine

import "fmt"

// requireEffect rejects resolutions that don't match the pending effect.
func (g *GameState) requireEffect(want EffectKind) error {
	if err := g.requirePhase(PhaseAwaitEffect); err != nil {
		return err
	}
	if g.Pending.Effect != want {
		return fmt.Errorf("pending effect is %d, not %d", g.Pending.Effect, want)
	}
	return nil
}

// ResolveRevealOwn resolves a Seven/Eight: the actor reveals one of their
// own bench slots to themselves. Revealing an already-seen slot is legal
// and idempotent.
func (g *GameState) ResolveRevealOwn(idx uint8) (Card, error) {
	if err := g.requireEffect(EffectRevealOwn); err != nil {
		return EmptyCard, err
	}
	if idx >= BenchSize {
		return EmptyCard, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	p := &g.Players[g.CurrentPlayer]
	p.Seen[idx] = true
	card := p.Bench[idx]
	g.finishTurn()
	return card, nil
}

// ResolvePeekOther resolves a Nine/Ten: the actor looks at one slot of an
// opponent's bench. Pure information — nothing moves and the owner's own
// seen flags are untouched.
func (g *GameState) ResolvePeekOther(target, idx uint8) (Card, error) {
	if err := g.requireEffect(EffectPeekOther); err != nil {
		return EmptyCard, err
	}
	if target >= g.Rules.numPlayers() || target == g.CurrentPlayer {
		return EmptyCard, fmt.Errorf("invalid peek target %d", target)
	}
	if idx >= BenchSize {
		return EmptyCard, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	card := g.Players[target].Bench[idx]
	g.finishTurn()
	return card, nil
}

// ResolveSwapOther resolves a Jack: an atomic cross swap between one of
// the actor's slots and one of an opponent's. The actor's slot is marked
// seen; the opponent's knowledge of the incoming card is wiped.
func (g *GameState) ResolveSwapOther(ownIdx, target, targetIdx uint8) error {
	if err := g.requireEffect(EffectSwapOther); err != nil {
		return err
	}
	if target >= g.Rules.numPlayers() || target == g.CurrentPlayer {
		return fmt.Errorf("invalid swap target %d", target)
	}
	if ownIdx >= BenchSize || targetIdx >= BenchSize {
		return fmt.Errorf("%w: %d/%d", ErrInvalidIndex, ownIdx, targetIdx)
	}

	me := &g.Players[g.CurrentPlayer]
	them := &g.Players[target]
	me.Bench[ownIdx], them.Bench[targetIdx] = them.Bench[targetIdx], me.Bench[ownIdx]
	me.Seen[ownIdx] = true
	them.Seen[targetIdx] = false

	g.finishTurn()
	return nil
}
