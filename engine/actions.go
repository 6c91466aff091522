package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes the service layer maps onto its
// own taxonomy. Wrapped with fmt.Errorf("%w") where extra context helps.
var (
	ErrEmptyDeck    = errors.New("deck is empty")
	ErrEmptyDiscard = errors.New("discard pile is empty")
	ErrInvalidIndex = errors.New("bench index out of range")
	ErrRoundOver    = errors.New("round is already over")
	ErrRoundNotOver = errors.New("round is not over")
)

// DrawFromDeck pops the top deck card and holds it as the pending draw.
// The deck is never reshuffled; an empty deck is an error and the state
// is left unchanged.
func (g *GameState) DrawFromDeck() (Card, error) {
	if err := g.requirePhase(PhaseAwaitTurn); err != nil {
		return EmptyCard, err
	}
	if g.DeckLen == 0 {
		return EmptyCard, ErrEmptyDeck
	}
	g.DeckLen--
	drawn := g.Deck[g.DeckLen]
	g.Pending = Pending{Drawn: drawn}
	g.Phase = PhaseAwaitPlacement
	return drawn, nil
}

// DrawFromDiscard pops the top discard card and holds it as the pending
// draw. A discard draw must be swapped into the bench; playing it back
// is rejected at placement time.
func (g *GameState) DrawFromDiscard() (Card, error) {
	if err := g.requirePhase(PhaseAwaitTurn); err != nil {
		return EmptyCard, err
	}
	if g.DiscardLen == 0 {
		return EmptyCard, ErrEmptyDiscard
	}
	g.DiscardLen--
	drawn := g.Discard[g.DiscardLen]
	g.Pending = Pending{Drawn: drawn, FromDiscard: true}
	g.Phase = PhaseAwaitPlacement
	return drawn, nil
}

// CallGandalf ends the caller's participation: the turn ends without a
// draw, and every other player gets exactly one more turn.
func (g *GameState) CallGandalf() error {
	if err := g.requirePhase(PhaseAwaitTurn); err != nil {
		return err
	}
	if g.IsGandalfCalled() {
		return fmt.Errorf("gandalf has already been called by player %d", g.Caller)
	}
	g.Caller = int8(g.CurrentPlayer)
	g.Flags |= FlagGandalfCalled
	g.ActedSince = 0
	g.finishTurn()
	return nil
}

// PlayDrawn discards the pending drawn card. Ranks Seven through Queen
// trigger their effect: a Queen applies immediately, the others park the
// engine in PhaseAwaitEffect until the actor resolves them.
func (g *GameState) PlayDrawn() (EffectKind, error) {
	if err := g.requirePhase(PhaseAwaitPlacement); err != nil {
		return EffectNone, err
	}
	if g.Pending.FromDiscard {
		return EffectNone, fmt.Errorf("a card drawn from the discard pile must be swapped into the bench")
	}

	drawn := g.Pending.Drawn
	g.Discard[g.DiscardLen] = drawn
	g.DiscardLen++

	effect := drawn.Effect()
	switch effect {
	case EffectNone:
		g.finishTurn()
	case EffectSkipNext:
		g.SkipNext = true
		g.finishTurn()
	default:
		g.Pending.Effect = effect
		g.Phase = PhaseAwaitEffect
	}
	return effect, nil
}

// SwapDrawn places the pending drawn card into bench[idx], discarding the
// displaced card. The slot is marked seen; swaps never trigger effects.
func (g *GameState) SwapDrawn(idx uint8) (Card, error) {
	if err := g.requirePhase(PhaseAwaitPlacement); err != nil {
		return EmptyCard, err
	}

	p := &g.Players[g.CurrentPlayer]
	displaced, err := p.PlaceCard(idx, g.Pending.Drawn)
	if err != nil {
		return EmptyCard, err
	}
	p.Seen[idx] = true

	g.Discard[g.DiscardLen] = displaced
	g.DiscardLen++

	g.finishTurn()
	return displaced, nil
}

// requirePhase rejects actions issued out of phase.
func (g *GameState) requirePhase(want Phase) error {
	if g.IsRoundOver() {
		return ErrRoundOver
	}
	if g.Phase != want {
		return fmt.Errorf("action not legal in phase %d", g.Phase)
	}
	return nil
}

// finishTurn closes the current player's turn: it credits the turn
// toward the post-call countdown, checks the round-end conditions, and
// rotates to the next eligible player.
func (g *GameState) finishTurn() {
	g.Pending = Pending{}
	if g.IsGandalfCalled() && int8(g.CurrentPlayer) != g.Caller {
		g.ActedSince |= 1 << g.CurrentPlayer
	}
	g.TurnNumber++
	if g.checkRoundEnd() {
		return
	}
	g.advanceTurn()
	g.Phase = PhaseAwaitTurn
}

// advanceTurn rotates to the next player, passing over the Gandalf
// caller and consuming a pending Queen skip. A skip spent on a player
// does not count as that player's post-call turn.
func (g *GameState) advanceTurn() {
	n := g.Rules.numPlayers()
	for {
		g.CurrentPlayer = (g.CurrentPlayer + 1) % n
		if g.Caller >= 0 && g.CurrentPlayer == uint8(g.Caller) {
			continue
		}
		if g.SkipNext {
			g.SkipNext = false
			continue
		}
		return
	}
}

// checkRoundEnd sets the round-over flag when every non-caller has
// completed one turn since the Gandalf call, or the turn cap is hit.
func (g *GameState) checkRoundEnd() bool {
	if g.IsRoundOver() {
		return true
	}
	if g.Rules.MaxRoundTurns > 0 && g.TurnNumber >= g.Rules.MaxRoundTurns {
		g.Flags |= FlagRoundOver
		g.Phase = PhaseRoundOver
		return true
	}
	if g.Caller >= 0 {
		need := uint8(1)<<g.Rules.numPlayers() - 1
		need &^= 1 << uint8(g.Caller)
		if g.ActedSince&need == need {
			g.Flags |= FlagRoundOver
			g.Phase = PhaseRoundOver
			return true
		}
	}
	return false
}
