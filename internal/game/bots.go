package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zaid5678/gandalf/engine"
)

// runBots plays out consecutive bot turns until a human is up or the
// round ends, narrating each turn publicly. Cards a bot learned privately
// (its peeks and reveals) never leave the engine. Assumes lock is held.
func (s *GandalfSession) runBots() {
	for s.Started && !s.Engine.IsRoundOver() {
		idx := s.Engine.CurrentPlayer
		if int(idx) >= len(s.Players) || !s.Players[idx].IsBot {
			break
		}
		bot := s.Players[idx]

		if s.BotTurnDelay > 0 {
			time.Sleep(s.BotTurnDelay)
		}

		summary, err := s.Engine.BotTakeTurn()
		if err != nil {
			s.log.WithError(err).WithField("bot", bot.Name).Error("bot turn failed")
			return
		}
		s.narrateBotTurn(bot.Name, summary)
	}
	s.settleRound()
	if name := s.currentName(); name != "" {
		s.broadcast(Result{"event": "turn", "player": name})
		if p := s.playerByName(name); p != nil && !p.IsBot && s.BroadcastToPlayerFn != nil {
			s.BroadcastToPlayerFn(p, Result{"event": "your_turn"})
		}
	}
}

// narrateBotTurn logs and broadcasts the public view of a bot turn.
func (s *GandalfSession) narrateBotTurn(name string, t engine.BotTurnSummary) {
	ev := Result{"event": "bot_turn", "player": name}
	if t.FromDiscard {
		ev["source"] = "discard"
	} else {
		ev["source"] = "deck"
	}
	if t.Played {
		// A played card is public: it sits on the discard pile.
		ev["played"] = cardLabel(t.Drawn)
		if t.Effect != engine.EffectNone {
			ev["effect"] = effectLabel(t.Effect)
		}
	} else if t.SwapIndex >= 0 {
		ev["swap_index"] = int(t.SwapIndex)
		ev["discarded"] = cardLabel(t.Discarded)
	}
	switch t.Effect {
	case engine.EffectRevealOwn:
		ev["revealed_index"] = int(t.OwnIndex)
	case engine.EffectPeekOther:
		if t.EffectTarget >= 0 && int(t.EffectTarget) < len(s.Players) {
			ev["peek_target"] = s.Players[t.EffectTarget].Name
			ev["peek_index"] = int(t.EffectIndex)
		}
	case engine.EffectSwapOther:
		if t.EffectTarget >= 0 && int(t.EffectTarget) < len(s.Players) {
			ev["swap_target"] = s.Players[t.EffectTarget].Name
			ev["own_index"] = int(t.OwnIndex)
			ev["target_index"] = int(t.EffectIndex)
		}
	}
	if t.CalledGandalf {
		ev["called_gandalf"] = true
	}

	s.log.WithFields(logrus.Fields{"bot": name, "played": t.Played, "called": t.CalledGandalf}).Debug("bot turn")
	s.logAction(name, "bot_turn", ev)
	s.broadcast(ev)

	if t.CalledGandalf {
		s.broadcast(Result{"event": "gandalf_called", "player": name})
	}
}
