package engine

// Rules holds configurable game rule settings.
type Rules struct {
	MaxRoundTurns uint16 // safety cap on turns per round; 0 = unlimited
	CallPenalty   int16  // added to a Gandalf caller's score when the caller does not win
	NumJokers     uint8  // 0, 1, or 2 jokers in the deck
	NumPlayers    uint8  // number of active players (2–6); 0 treated as 2
}

// DefaultRules returns the standard Gandalf rules.
func DefaultRules() Rules {
	return Rules{
		MaxRoundTurns: 256,
		CallPenalty:   10,
		NumJokers:     0,
		NumPlayers:    2,
	}
}

// numPlayers returns the effective number of players, treating 0 as 2.
func (r *Rules) numPlayers() uint8 {
	if r.NumPlayers == 0 {
		return 2
	}
	return r.NumPlayers
}
