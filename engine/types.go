package engine

// Suit constants — packed into upper 4 bits of Card. Suits are cosmetic;
// all game logic keys off the rank.
const (
	SuitHearts     uint8 = 0
	SuitDiamonds   uint8 = 1
	SuitClubs      uint8 = 2
	SuitSpades     uint8 = 3
	SuitRedJoker   uint8 = 4
	SuitBlackJoker uint8 = 5
)

// Rank constants — packed into lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
	RankJoker uint8 = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Value returns the point value of the card.
//   - Ace (rank 0) → 1
//   - Two–Ten (ranks 1–9) → rank+1
//   - Jack → 11, Queen → 12, King → 13
//   - Joker (rank 13) → 14
func (c Card) Value() int8 {
	r := c.Rank()
	switch {
	case r <= RankTen:
		return int8(r) + 1
	case r == RankJack:
		return 11
	case r == RankQueen:
		return 12
	case r == RankKing:
		return 13
	case r == RankJoker:
		return 14
	}
	// EmptyCard or malformed — return 0
	return 0
}

// SameRank reports rank equality. Cards compare by rank only; suit never
// affects matching or scoring.
func (c Card) SameRank(o Card) bool { return c.Rank() == o.Rank() }

// EffectKind represents the special effect triggered by playing a card
// to the discard pile. Effects fire on play only, never on swap.
type EffectKind uint8

const (
	EffectNone      EffectKind = iota // 0
	EffectRevealOwn                   // 1 — Seven, Eight
	EffectPeekOther                   // 2 — Nine, Ten
	EffectSwapOther                   // 3 — Jack
	EffectSkipNext                    // 4 — Queen
)

// Effect returns the effect associated with playing this card.
func (c Card) Effect() EffectKind {
	switch c.Rank() {
	case RankSeven, RankEight:
		return EffectRevealOwn
	case RankNine, RankTen:
		return EffectPeekOther
	case RankJack:
		return EffectSwapOther
	case RankQueen:
		return EffectSkipNext
	default:
		return EffectNone
	}
}

// HasEffect returns true for ranks Seven through Queen.
func (c Card) HasEffect() bool { return c.Effect() != EffectNone }

// Phase describes what kind of input the round engine is waiting for.
type Phase uint8

const (
	PhaseAwaitTurn      Phase = iota // 0 — current player must draw or call Gandalf
	PhaseAwaitPlacement              // 1 — current player must play or swap the drawn card
	PhaseAwaitEffect                 // 2 — current player must resolve a pending effect
	PhaseRoundOver                   // 3
)

// Pending holds the in-flight turn state between a draw and its resolution.
type Pending struct {
	Drawn       Card
	FromDiscard bool
	Effect      EffectKind
}
