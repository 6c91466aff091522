package game

import (
	"github.com/zaid5678/gandalf/engine"
	"github.com/zaid5678/gandalf/internal/models"
)

// hiddenCard is the placeholder rendered for any slot the viewer has no
// right to see.
const hiddenCard = "?"

// rankLabel converts an engine rank to its display string.
func rankLabel(rank uint8) string {
	switch rank {
	case engine.RankAce:
		return "A"
	case engine.RankTwo:
		return "2"
	case engine.RankThree:
		return "3"
	case engine.RankFour:
		return "4"
	case engine.RankFive:
		return "5"
	case engine.RankSix:
		return "6"
	case engine.RankSeven:
		return "7"
	case engine.RankEight:
		return "8"
	case engine.RankNine:
		return "9"
	case engine.RankTen:
		return "10"
	case engine.RankJack:
		return "J"
	case engine.RankQueen:
		return "Q"
	case engine.RankKing:
		return "K"
	case engine.RankJoker:
		return "Joker"
	default:
		return hiddenCard
	}
}

// suitLabel converts an engine suit to its display symbol. Jokers carry
// no suit symbol.
func suitLabel(suit uint8) string {
	switch suit {
	case engine.SuitHearts:
		return "♥"
	case engine.SuitDiamonds:
		return "♦"
	case engine.SuitClubs:
		return "♣"
	case engine.SuitSpades:
		return "♠"
	default:
		return ""
	}
}

// cardLabel renders a card as e.g. "7♥", "10♠" or "Joker".
func cardLabel(c engine.Card) string {
	if c == engine.EmptyCard {
		return hiddenCard
	}
	if c.Rank() == engine.RankJoker {
		return "Joker"
	}
	return rankLabel(c.Rank()) + suitLabel(c.Suit())
}

// cardView builds the full wire representation of a face-up card.
func cardView(c engine.Card) models.CardView {
	return models.CardView{
		Rank:  rankLabel(c.Rank()),
		Suit:  suitLabel(c.Suit()),
		Value: int(c.Value()),
		Label: cardLabel(c),
	}
}
