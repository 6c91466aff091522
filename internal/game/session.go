// Package game implements the Gandalf game session: roster management,
// the networked action API on top of the rules engine, per-viewer state
// redaction, bot driving, and the Redis action history.
package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zaid5678/gandalf/engine"
	"github.com/zaid5678/gandalf/internal/models"
)

// Action is one decoded client message. Which fields matter depends on
// Action and, for player_action, on Move.
type Action struct {
	Action string `json:"action"` // create_player | start_game | get_state | player_action | next_round

	// create_player
	Name string `json:"name,omitempty"`
	Bot  bool   `json:"bot,omitempty"`

	// get_state / player_action
	Player string `json:"player,omitempty"`

	// player_action
	Move        string `json:"move,omitempty"`   // draw | play | swap | peek | gandalf
	Source      string `json:"source,omitempty"` // deck (default) | discard
	Index       *int   `json:"index,omitempty"`
	Target      string `json:"target,omitempty"`
	TargetIndex *int   `json:"target_index,omitempty"`
	OwnIndex    *int   `json:"own_index,omitempty"`
}

// Result is the reply map sent back to the originating connection.
type Result map[string]interface{}

func errResult(err error) Result { return Result{"error": err.Error()} }

// GandalfSession owns one game: the authoritative engine state, the
// seated players, and the callbacks used to reach their connections.
// All access is serialized through Mu.
type GandalfSession struct {
	ID   uuid.UUID
	Name string // external identifier, taken from the connection URL

	Engine  engine.GameState
	Players []*models.Player
	Started bool
	scored  bool // round totals already applied

	UseJokers    bool
	BotTurnDelay time.Duration

	actionIndex int
	Mu          sync.Mutex
	log         *logrus.Entry

	// Communication callbacks, wired by the transport.
	BroadcastFn         func(ev Result)
	BroadcastToPlayerFn func(p *models.Player, ev Result)
}

// NewSession creates an empty session for the given external name.
func NewSession(name string) *GandalfSession {
	id, _ := uuid.NewRandom()
	return &GandalfSession{
		ID:   id,
		Name: name,
		log:  logrus.WithField("game", name),
	}
}

// Dispatch routes one decoded message and returns the reply for the
// originating connection. Bot turns triggered by the message run before
// it returns.
func (s *GandalfSession) Dispatch(msg Action) Result {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	switch msg.Action {
	case "create_player":
		return s.addPlayer(msg.Name, msg.Bot)
	case "start_game":
		res := s.start()
		if _, failed := res["error"]; !failed {
			s.runBots()
		}
		return res
	case "get_state":
		return s.stateFor(msg.Player)
	case "player_action":
		res := s.handleMove(msg)
		if _, failed := res["error"]; !failed {
			s.settleRound()
			s.runBots()
		}
		return res
	case "next_round":
		return s.nextRound()
	default:
		return errResult(ErrUnknownAction)
	}
}

// addPlayer seats a new player. Only legal before the game starts.
// Assumes lock is held.
func (s *GandalfSession) addPlayer(name string, isBot bool) Result {
	if s.Started {
		return errResult(ErrAlreadyStarted)
	}
	if name == "" {
		return errResult(fmt.Errorf("%w: name", ErrMissingField))
	}
	for _, p := range s.Players {
		if p.Name == name {
			return errResult(ErrDuplicateName)
		}
	}
	if len(s.Players) >= engine.MaxPlayers {
		return errResult(fmt.Errorf("game is full (%d seats)", engine.MaxPlayers))
	}

	id, _ := uuid.NewRandom()
	p := &models.Player{
		ID:    id,
		Name:  name,
		Seat:  uint8(len(s.Players)),
		IsBot: isBot,
	}
	s.Players = append(s.Players, p)

	s.log.WithFields(logrus.Fields{"player": name, "bot": isBot}).Info("player seated")
	s.logAction(name, "player_added", Result{"bot": isBot})
	return Result{"status": "player_added", "player": name}
}

// start freezes the roster, deals four cards to every player, and seeds
// the discard pile. Assumes lock is held.
func (s *GandalfSession) start() Result {
	if s.Started {
		return errResult(ErrAlreadyStarted)
	}
	if len(s.Players) < 2 {
		return errResult(ErrInsufficientPlayers)
	}

	rules := engine.DefaultRules()
	rules.NumPlayers = uint8(len(s.Players))
	if s.UseJokers {
		rules.NumJokers = 2
	}

	s.Engine = engine.NewGame(uint64(time.Now().UnixNano()), rules)
	for _, p := range s.Players {
		s.Engine.Players[p.Seat].IsBot = p.IsBot
	}
	s.Engine.Deal()
	s.Started = true
	s.scored = false

	top := cardLabel(s.Engine.DiscardTop())
	s.log.WithFields(logrus.Fields{"players": len(s.Players), "top_discard": top}).Info("game started")
	s.logAction("", "game_started", Result{"players": len(s.Players), "top_discard": top})
	s.broadcast(Result{"event": "game_started", "top_discard": top, "current_player": s.currentName()})
	return Result{"status": "game_started", "top_discard": top}
}

// nextRound re-deals for a fresh round, keeping cumulative scores.
// Assumes lock is held.
func (s *GandalfSession) nextRound() Result {
	if !s.Started {
		return errResult(ErrNotStarted)
	}
	if err := s.Engine.NextRound(); err != nil {
		return errResult(err)
	}
	s.scored = false

	top := cardLabel(s.Engine.DiscardTop())
	s.logAction("", "round_started", Result{"top_discard": top})
	s.broadcast(Result{"event": "round_started", "top_discard": top, "current_player": s.currentName()})
	res := Result{"status": "round_started", "top_discard": top}
	s.runBots()
	return res
}

// handleMove routes one in-game move for a named player. Failed moves
// leave the engine untouched. Assumes lock is held.
func (s *GandalfSession) handleMove(msg Action) Result {
	if !s.Started {
		return errResult(ErrNotStarted)
	}
	p := s.playerByName(msg.Player)
	if p == nil {
		return errResult(ErrInvalidPlayer)
	}
	if s.Engine.IsRoundOver() {
		return errResult(engine.ErrRoundOver)
	}
	if p.Seat != s.Engine.CurrentPlayer {
		return errResult(ErrNotYourTurn)
	}

	var res Result
	switch msg.Move {
	case "draw":
		res = s.moveDraw(p, msg.Source)
	case "play":
		res = s.movePlay(p)
	case "swap":
		res = s.moveSwap(p, msg)
	case "peek":
		res = s.movePeek(p, msg)
	case "gandalf":
		res = s.moveGandalf(p)
	default:
		res = errResult(ErrUnknownAction)
	}
	return res
}

// moveDraw draws from the deck (default) or the discard pile. The drawn
// card is revealed only in the reply to the acting player.
func (s *GandalfSession) moveDraw(p *models.Player, source string) Result {
	var (
		drawn engine.Card
		err   error
	)
	switch source {
	case "", "deck":
		source = "deck"
		drawn, err = s.Engine.DrawFromDeck()
	case "discard":
		drawn, err = s.Engine.DrawFromDiscard()
	default:
		return errResult(fmt.Errorf("unknown draw source %q", source))
	}
	if err != nil {
		return errResult(err)
	}

	s.logAction(p.Name, "drew", Result{"source": source})
	s.broadcast(Result{"event": "player_drew", "player": p.Name, "source": source})
	return Result{"status": "drawn", "card": cardLabel(drawn), "source": source}
}

// movePlay discards the drawn card. Effect cards leave the session
// awaiting the player's resolution via peek or swap.
func (s *GandalfSession) movePlay(p *models.Player) Result {
	drawn := s.Engine.Pending.Drawn
	effect, err := s.Engine.PlayDrawn()
	if err != nil {
		return errResult(err)
	}

	label := cardLabel(drawn)
	s.logAction(p.Name, "played", Result{"card": label, "effect": effectLabel(effect)})
	s.broadcast(Result{"event": "player_played", "player": p.Name, "card": label, "effect": effectLabel(effect)})

	res := Result{"status": "played", "card": label}
	if effect != engine.EffectNone {
		res["effect"] = effectLabel(effect)
	}
	if s.Engine.Phase == engine.PhaseAwaitEffect {
		res["awaiting_effect"] = true
	}
	return res
}

// moveSwap handles both placements and Jack resolutions: with a drawn
// card pending it swaps the draw into the bench, during a Jack effect it
// performs the cross swap against an opponent.
func (s *GandalfSession) moveSwap(p *models.Player, msg Action) Result {
	if s.Engine.Phase == engine.PhaseAwaitEffect {
		if msg.OwnIndex == nil || msg.Target == "" || msg.TargetIndex == nil {
			return errResult(fmt.Errorf("%w: own_index, target, target_index", ErrMissingField))
		}
		target := s.playerByName(msg.Target)
		if target == nil {
			return errResult(ErrInvalidPlayer)
		}
		err := s.Engine.ResolveSwapOther(uint8(*msg.OwnIndex), target.Seat, uint8(*msg.TargetIndex))
		if err != nil {
			return errResult(err)
		}
		s.logAction(p.Name, "cross_swapped", Result{"index": *msg.OwnIndex, "target": target.Name, "target_index": *msg.TargetIndex})
		s.broadcast(Result{"event": "player_cross_swapped", "player": p.Name, "index": *msg.OwnIndex, "target": target.Name, "target_index": *msg.TargetIndex})
		return Result{"status": "swapped", "index": *msg.OwnIndex, "target": target.Name, "target_index": *msg.TargetIndex}
	}

	if msg.Index == nil {
		return errResult(fmt.Errorf("%w: index", ErrMissingField))
	}
	displaced, err := s.Engine.SwapDrawn(uint8(*msg.Index))
	if err != nil {
		return errResult(err)
	}

	label := cardLabel(displaced)
	s.logAction(p.Name, "swapped", Result{"index": *msg.Index, "discarded": label})
	s.broadcast(Result{"event": "player_swapped", "player": p.Name, "index": *msg.Index, "discarded": label})
	return Result{"status": "swapped", "index": *msg.Index, "discarded": label}
}

// movePeek resolves a pending reveal effect. Sevens and eights reveal
// one of the actor's own slots; nines and tens look at an opponent's.
// The revealed card appears only in the reply to the acting player.
func (s *GandalfSession) movePeek(p *models.Player, msg Action) Result {
	switch s.Engine.Pending.Effect {
	case engine.EffectRevealOwn:
		if msg.Index == nil {
			return errResult(fmt.Errorf("%w: index", ErrMissingField))
		}
		card, err := s.Engine.ResolveRevealOwn(uint8(*msg.Index))
		if err != nil {
			return errResult(err)
		}
		s.logAction(p.Name, "peeked_own", Result{"index": *msg.Index})
		s.broadcast(Result{"event": "player_peeked", "player": p.Name, "index": *msg.Index})
		return Result{"status": "peeked", "card": cardLabel(card), "index": *msg.Index}

	case engine.EffectPeekOther:
		if msg.Target == "" || msg.Index == nil {
			return errResult(fmt.Errorf("%w: target, index", ErrMissingField))
		}
		target := s.playerByName(msg.Target)
		if target == nil {
			return errResult(ErrInvalidPlayer)
		}
		card, err := s.Engine.ResolvePeekOther(target.Seat, uint8(*msg.Index))
		if err != nil {
			return errResult(err)
		}
		s.logAction(p.Name, "peeked_other", Result{"target": target.Name, "index": *msg.Index})
		s.broadcast(Result{"event": "player_peeked", "player": p.Name, "target": target.Name, "index": *msg.Index})
		return Result{"status": "peeked", "card": cardLabel(card), "player": target.Name, "index": *msg.Index}

	default:
		return errResult(fmt.Errorf("no reveal effect pending"))
	}
}

// moveGandalf handles the call: the caller's turn ends without a draw
// and every other player gets exactly one more turn.
func (s *GandalfSession) moveGandalf(p *models.Player) Result {
	if err := s.Engine.CallGandalf(); err != nil {
		return errResult(err)
	}
	s.log.WithField("player", p.Name).Info("gandalf called")
	s.logAction(p.Name, "gandalf_called", nil)
	s.broadcast(Result{"event": "gandalf_called", "player": p.Name})
	return Result{"status": "gandalf_called", "player": p.Name}
}

// settleRound applies scores exactly once when the round ends and
// broadcasts the outcome. Assumes lock is held.
func (s *GandalfSession) settleRound() {
	if !s.Engine.IsRoundOver() || s.scored {
		return
	}
	res, err := s.Engine.EndRound()
	if err != nil {
		s.log.WithError(err).Error("round settlement failed")
		return
	}
	s.scored = true

	totals := make(map[string]int, len(s.Players))
	scores := make(map[string]int, len(s.Players))
	winners := make([]string, 0, 1)
	for _, p := range s.Players {
		totals[p.Name] = int(res.Totals[p.Seat])
		scores[p.Name] = int(s.Engine.Players[p.Seat].Score)
		if res.Winners&(1<<p.Seat) != 0 {
			winners = append(winners, p.Name)
		}
	}

	ev := Result{
		"event":   "round_ended",
		"totals":  totals,
		"winners": winners,
		"scores":  scores,
	}
	if res.Caller >= 0 {
		ev["caller"] = s.Players[res.Caller].Name
		ev["caller_penalty"] = int(res.Penalty)
	}
	s.log.WithFields(logrus.Fields{"winners": winners, "totals": totals}).Info("round ended")
	s.logAction("", "round_ended", ev)
	s.broadcast(ev)
}

// playerByName returns the seated player with the given name, or nil.
// Assumes lock is held.
func (s *GandalfSession) playerByName(name string) *models.Player {
	for _, p := range s.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// currentName returns the name of the player whose turn it is, or "".
func (s *GandalfSession) currentName() string {
	if !s.Started || s.Engine.IsRoundOver() {
		return ""
	}
	idx := s.Engine.CurrentPlayer
	if int(idx) < len(s.Players) {
		return s.Players[idx].Name
	}
	return ""
}

// broadcast sends an event to every connected player.
func (s *GandalfSession) broadcast(ev Result) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// AttachConn binds a connection to the named human player so broadcasts
// and private events reach it. Returns false for unknown names and bots.
func (s *GandalfSession) AttachConn(name string, conn *websocket.Conn) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	p := s.playerByName(name)
	if p == nil || p.IsBot {
		return false
	}
	p.Conn = conn
	p.Connected = true
	return true
}

// DetachConn unbinds a dropped connection from whichever player held it.
// The seat stays; the player may reconnect.
func (s *GandalfSession) DetachConn(conn *websocket.Conn) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for _, p := range s.Players {
		if p.Conn == conn {
			p.Conn = nil
			p.Connected = false
			s.log.WithField("player", p.Name).Info("player disconnected")
		}
	}
}
