// Package models holds the service-side player and card view types
// shared between the session layer and the transport.
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player represents one seat in a game session. Conn is nil for bots
// and for humans who have not attached a connection yet.
type Player struct {
	ID        uuid.UUID
	Name      string
	Seat      uint8
	IsBot     bool
	Conn      *websocket.Conn
	Connected bool
}

// CardView is the wire representation of a face-up card.
type CardView struct {
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
	Label string `json:"label"`
}
