// Package engine implements the Gandalf card game rules.
//
// The engine is a self-contained state machine with no external
// dependencies: a flat value-type GameState drives the full round
// lifecycle (deal, draws, placements, effects, the Gandalf call and
// scoring) and is embedded by the service layer for networked play.
package engine

import "fmt"

const (
	MaxPlayers = 6
	BenchSize  = 4
	DeckSize   = 54
)

// PlayerState holds one player's bench and what they know about it.
// The bench is fixed at four slots after the deal; Seen[i] flips true
// only on an explicit reveal or swap, never implicitly.
type PlayerState struct {
	Bench [BenchSize]Card
	Seen  [BenchSize]bool
	Score int16
	IsBot bool
}

// Total returns the sum of the player's bench card values.
func (p *PlayerState) Total() int16 {
	var t int16
	for i := 0; i < BenchSize; i++ {
		t += int16(p.Bench[i].Value())
	}
	return t
}

// Reveal marks the slot as seen. Revealing an already-seen slot is a no-op.
func (p *PlayerState) Reveal(idx uint8) {
	if idx < BenchSize {
		p.Seen[idx] = true
	}
}

// PlaceCard puts a card into the slot without revealing it, returning
// the displaced card.
func (p *PlayerState) PlaceCard(idx uint8, c Card) (Card, error) {
	if idx >= BenchSize {
		return EmptyCard, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	displaced := p.Bench[idx]
	p.Bench[idx] = c
	return displaced, nil
}

// WorstSlot returns the index of the highest-value bench card.
func (p *PlayerState) WorstSlot() uint8 {
	worst := uint8(0)
	for i := uint8(1); i < BenchSize; i++ {
		if p.Bench[i].Value() > p.Bench[worst].Value() {
			worst = i
		}
	}
	return worst
}

// GameState holds the complete, self-contained state of one Gandalf round
// plus the cumulative scores carried across rounds. It is a flat value
// type (no pointers, no slices) so copies are plain struct copies.
type GameState struct {
	Players       [MaxPlayers]PlayerState
	Deck          [DeckSize]Card
	DeckLen       uint8
	Discard       [DeckSize]Card
	DiscardLen    uint8
	CurrentPlayer uint8
	TurnNumber    uint16
	Flags         uint16
	Phase         Phase
	Pending       Pending
	SkipNext      bool  // set by a played Queen; consumed on the next advance
	Caller        int8  // -1 until Gandalf is called
	ActedSince    uint8 // bitmask of players who completed a turn since the call
	RNG           uint64
	Rules         Rules
}

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagRoundOver     uint16 = 1 << 0
	FlagGandalfCalled uint16 = 1 << 1
	FlagStarted       uint16 = 1 << 2
)

func (g *GameState) IsRoundOver() bool     { return g.Flags&FlagRoundOver != 0 }
func (g *GameState) IsGandalfCalled() bool { return g.Flags&FlagGandalfCalled != 0 }
func (g *GameState) IsStarted() bool       { return g.Flags&FlagStarted != 0 }

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame initializes a new GameState with the given seed and rules.
// The deck is built but not yet shuffled or dealt.
func NewGame(seed uint64, rules Rules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.Caller = -1
	g.buildDeck()
	return g
}

// buildDeck fills the draw pile with the full 4×13 cross product plus
// any configured jokers.
func (g *GameState) buildDeck() {
	idx := 0
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank <= RankKing; rank++ {
			g.Deck[idx] = NewCard(suit, rank)
			idx++
		}
	}
	jokerSuits := [2]uint8{SuitRedJoker, SuitBlackJoker}
	for j := uint8(0); j < g.Rules.NumJokers && j < 2; j++ {
		g.Deck[52+int(j)] = NewCard(jokerSuits[j], RankJoker)
	}
	g.DeckLen = uint8(52 + g.Rules.NumJokers)
}

// Deal shuffles the deck, distributes four cards to each player, and
// flips the top deck card to seed the discard pile. Player 0 acts first.
func (g *GameState) Deal() {
	// Fisher-Yates shuffle.
	for i := int(g.DeckLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}

	n := g.Rules.numPlayers()

	// Deal round-robin: one card to each player in seat order, four times.
	for c := uint8(0); c < BenchSize; c++ {
		for p := uint8(0); p < n; p++ {
			g.DeckLen--
			g.Players[p].Bench[c] = g.Deck[g.DeckLen]
		}
	}

	// Flip top deck card to start the discard pile.
	g.DeckLen--
	g.Discard[0] = g.Deck[g.DeckLen]
	g.DiscardLen = 1

	g.CurrentPlayer = 0
	g.Phase = PhaseAwaitTurn
	g.Flags |= FlagStarted
}

// NextRound rebuilds the deck and re-deals for a fresh round, keeping
// cumulative scores and seat order. Only legal once the round is over.
func (g *GameState) NextRound() error {
	if !g.IsRoundOver() {
		return ErrRoundNotOver
	}
	for p := range g.Players {
		g.Players[p].Bench = [BenchSize]Card{}
		g.Players[p].Seen = [BenchSize]bool{}
	}
	g.DiscardLen = 0
	g.TurnNumber = 0
	g.Caller = -1
	g.ActedSince = 0
	g.SkipNext = false
	g.Pending = Pending{}
	g.Flags &^= FlagRoundOver | FlagGandalfCalled
	g.buildDeck()
	g.Deal()
	return nil
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.Discard[g.DiscardLen-1]
}

// NumActivePlayers returns the number of active players in this game.
func (g *GameState) NumActivePlayers() uint8 { return g.Rules.numPlayers() }

// Opponents returns all player indices except the given player.
func (g *GameState) Opponents(player uint8) []uint8 {
	n := g.Rules.numPlayers()
	opps := make([]uint8, 0, n-1)
	for i := uint8(0); i < n; i++ {
		if i != player {
			opps = append(opps, i)
		}
	}
	return opps
}
