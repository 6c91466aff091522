package game

import "github.com/zaid5678/gandalf/engine"

// PlayerView is one player's bench as seen by a specific viewer. Slots
// render as card labels only when the viewer is entitled to them: a
// player sees exactly their own seen slots, and nothing of anyone else.
type PlayerView struct {
	Name          string   `json:"name"`
	IsBot         bool     `json:"is_bot"`
	Bench         []string `json:"bench"`
	Score         int      `json:"score"`
	CalledGandalf bool     `json:"called_gandalf"`
	IsCurrentTurn bool     `json:"is_current_turn"`
}

// StateView is the full game state tailored to one viewer.
type StateView struct {
	GameID        string       `json:"game_id"`
	Started       bool         `json:"started"`
	RoundOver     bool         `json:"round_over"`
	Phase         string       `json:"phase"`
	CurrentPlayer string       `json:"current_player,omitempty"`
	TopDiscard    string       `json:"top_discard,omitempty"`
	DeckSize      int          `json:"deck_size"`
	GandalfCalled bool         `json:"gandalf_called"`
	GandalfCaller string       `json:"gandalf_caller,omitempty"`
	Players       []PlayerView `json:"players"`
}

// stateFor builds the redacted state for the named viewer.
// Assumes lock is held.
func (s *GandalfSession) stateFor(viewer string) Result {
	vp := s.playerByName(viewer)
	if vp == nil {
		return errResult(ErrInvalidPlayer)
	}

	view := StateView{
		GameID:        s.Name,
		Started:       s.Started,
		RoundOver:     s.Engine.IsRoundOver(),
		Phase:         phaseLabel(s.Engine.Phase),
		CurrentPlayer: s.currentName(),
		GandalfCalled: s.Engine.IsGandalfCalled(),
		DeckSize:      int(s.Engine.DeckLen),
	}
	if s.Started {
		view.TopDiscard = cardLabel(s.Engine.DiscardTop())
	}
	if s.Engine.Caller >= 0 && int(s.Engine.Caller) < len(s.Players) {
		view.GandalfCaller = s.Players[s.Engine.Caller].Name
	}

	view.Players = make([]PlayerView, len(s.Players))
	for i, p := range s.Players {
		es := &s.Engine.Players[p.Seat]
		pv := PlayerView{
			Name:          p.Name,
			IsBot:         p.IsBot,
			Score:         int(es.Score),
			CalledGandalf: s.Engine.Caller == int8(p.Seat),
			IsCurrentTurn: s.Started && !view.RoundOver && s.Engine.CurrentPlayer == p.Seat,
		}
		if s.Started {
			pv.Bench = make([]string, engine.BenchSize)
			for j := 0; j < engine.BenchSize; j++ {
				if p.Name == viewer && es.Seen[j] {
					pv.Bench[j] = cardLabel(es.Bench[j])
				} else {
					pv.Bench[j] = hiddenCard
				}
			}
		}
		view.Players[i] = pv
	}

	return Result{"status": "state", "state": view}
}

func phaseLabel(p engine.Phase) string {
	switch p {
	case engine.PhaseAwaitTurn:
		return "awaiting_turn"
	case engine.PhaseAwaitPlacement:
		return "awaiting_placement"
	case engine.PhaseAwaitEffect:
		return "awaiting_effect"
	case engine.PhaseRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}

func effectLabel(e engine.EffectKind) string {
	switch e {
	case engine.EffectRevealOwn:
		return "reveal_own"
	case engine.EffectPeekOther:
		return "peek_other"
	case engine.EffectSwapOther:
		return "swap_other"
	case engine.EffectSkipNext:
		return "skip_next"
	default:
		return "none"
	}
}
