package engine

import "fmt"

// BotTurnSummary records everything a bot did on one turn, so the
// service layer can narrate it to human players.
type BotTurnSummary struct {
	Player        uint8
	Drawn         Card
	FromDiscard   bool
	Played        bool
	Discarded     Card
	SwapIndex     int8 // -1 unless the drawn card was swapped in
	Effect        EffectKind
	OwnIndex      int8 // slot used for a reveal-own or cross-swap
	EffectTarget  int8 // opponent targeted by a peek or cross-swap
	EffectIndex   int8 // opponent slot targeted
	RevealedCard  Card // what a reveal or peek showed the bot
	CalledGandalf bool
}

// BotTakeTurn plays one full turn for the current player using the fixed
// bot policy:
//
//   - drawn value ≤6: play to the discard pile
//   - effect card (values 7–12): play and resolve the effect
//   - value 13/14: swap against the worst bench slot
//   - empty deck: forced swap of the discard top against the worst slot
//
// After the turn, if nobody has called Gandalf yet, the bot rolls its
// confidence-weighted call gate.
func (g *GameState) BotTakeTurn() (BotTurnSummary, error) {
	s := BotTurnSummary{
		SwapIndex:    -1,
		OwnIndex:     -1,
		EffectTarget: -1,
		EffectIndex:  -1,
		Drawn:        EmptyCard,
		Discarded:    EmptyCard,
		RevealedCard: EmptyCard,
	}
	if err := g.requirePhase(PhaseAwaitTurn); err != nil {
		return s, err
	}

	p := g.CurrentPlayer
	s.Player = p

	if g.DeckLen == 0 {
		// No deck left: take the discard top and dump the worst card.
		drawn, err := g.DrawFromDiscard()
		if err != nil {
			return s, err
		}
		s.Drawn = drawn
		s.FromDiscard = true
		idx := g.Players[p].WorstSlot()
		displaced, err := g.SwapDrawn(idx)
		if err != nil {
			return s, err
		}
		s.SwapIndex = int8(idx)
		s.Discarded = displaced
	} else {
		drawn, err := g.DrawFromDeck()
		if err != nil {
			return s, err
		}
		s.Drawn = drawn
		switch {
		case drawn.Value() <= 6:
			if _, err := g.PlayDrawn(); err != nil {
				return s, err
			}
			s.Played = true
			s.Discarded = drawn
		case drawn.HasEffect():
			effect, err := g.PlayDrawn()
			if err != nil {
				return s, err
			}
			s.Played = true
			s.Discarded = drawn
			s.Effect = effect
			if err := g.botResolveEffect(&s, p, effect); err != nil {
				return s, err
			}
		default:
			// King or Joker: too expensive to keep drawn, swap out the worst slot.
			idx := g.Players[p].WorstSlot()
			displaced, err := g.SwapDrawn(idx)
			if err != nil {
				return s, err
			}
			s.SwapIndex = int8(idx)
			s.Discarded = displaced
		}
	}

	s.CalledGandalf = g.maybeCallGandalf(p)
	return s, nil
}

// botResolveEffect picks targets for a pending effect. Reveals prefer an
// unseen own slot; peeks and swaps target a uniformly random opponent slot.
func (g *GameState) botResolveEffect(s *BotTurnSummary, p uint8, effect EffectKind) error {
	switch effect {
	case EffectRevealOwn:
		idx := g.pickUnseenSlot(p)
		card, err := g.ResolveRevealOwn(idx)
		if err != nil {
			return err
		}
		s.OwnIndex = int8(idx)
		s.RevealedCard = card
	case EffectPeekOther:
		target := g.pickOpponent(p)
		idx := uint8(g.randN(BenchSize))
		card, err := g.ResolvePeekOther(target, idx)
		if err != nil {
			return err
		}
		s.EffectTarget = int8(target)
		s.EffectIndex = int8(idx)
		s.RevealedCard = card
	case EffectSwapOther:
		own := g.Players[p].WorstSlot()
		target := g.pickOpponent(p)
		idx := uint8(g.randN(BenchSize))
		if err := g.ResolveSwapOther(own, target, idx); err != nil {
			return err
		}
		s.OwnIndex = int8(own)
		s.EffectTarget = int8(target)
		s.EffectIndex = int8(idx)
	case EffectSkipNext, EffectNone:
		// Queen applies on play; nothing to resolve.
	default:
		return fmt.Errorf("unhandled effect %d", effect)
	}
	return nil
}

// pickUnseenSlot returns a random unseen bench slot, falling back to a
// random slot when everything is already known.
func (g *GameState) pickUnseenSlot(p uint8) uint8 {
	var unseen [BenchSize]uint8
	n := 0
	for i := uint8(0); i < BenchSize; i++ {
		if !g.Players[p].Seen[i] {
			unseen[n] = i
			n++
		}
	}
	if n == 0 {
		return uint8(g.randN(BenchSize))
	}
	return unseen[g.randN(uint64(n))]
}

// pickOpponent returns a uniformly random player other than p.
func (g *GameState) pickOpponent(p uint8) uint8 {
	opps := g.Opponents(p)
	return opps[g.randN(uint64(len(opps)))]
}

// maybeCallGandalf rolls the bot's call gate at the end of its turn.
// Confidence earns one point each (max 3) for a bench total ≤10, at
// least three slots seen, and a worst seen value ≤5; the call fires with
// probability 0.10 + 0.15·confidence.
func (g *GameState) maybeCallGandalf(p uint8) bool {
	if g.IsGandalfCalled() || g.IsRoundOver() {
		return false
	}

	ps := &g.Players[p]
	confidence := 0
	if ps.Total() <= 10 {
		confidence++
	}
	seen := 0
	worstSeen := int8(0)
	for i := 0; i < BenchSize; i++ {
		if ps.Seen[i] {
			seen++
			if v := ps.Bench[i].Value(); v > worstSeen {
				worstSeen = v
			}
		}
	}
	if seen >= 3 {
		confidence++
	}
	if seen > 0 && worstSeen <= 5 {
		confidence++
	}

	prob := 0.10 + 0.15*float64(confidence)
	u := float64(g.randN(1<<20)) / float64(1<<20)
	if u >= prob {
		return false
	}

	// The call lands after the turn already advanced: flag the caller and
	// restart the countdown, leaving the next player to act first.
	g.Caller = int8(p)
	g.Flags |= FlagGandalfCalled
	g.ActedSince = 0
	return true
}
