// Package server exposes game sessions over persistent WebSocket
// connections. One connection speaks JSON messages for one game; replies
// go to the sender only, while game events fan out to every attached
// player.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"

	"github.com/zaid5678/gandalf/internal/game"
	"github.com/zaid5678/gandalf/internal/models"
)

const writeTimeout = 5 * time.Second

// Server terminates WebSocket connections and dispatches decoded
// messages into the session layer.
type Server struct {
	store SessionStore
	log   *logrus.Logger

	allowedOrigins []string
}

// New creates a Server over the given session registry.
func New(store SessionStore, log *logrus.Logger, allowedOrigins string) *Server {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return &Server{store: store, log: log, allowedOrigins: origins}
}

// Handler returns the HTTP handler tree: the WebSocket endpoint plus a
// health probe, wrapped in CORS.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{game_id}", srv.handleWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return handlers.CORS(
		handlers.AllowedOrigins(srv.allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(mux)
}

// handleWS upgrades the connection and runs the per-connection message
// loop. A decode failure or disconnect closes the connection; the game
// session itself stays alive for the remaining players.
func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game_id")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin policy is enforced by the CORS layer
	})
	if err != nil {
		srv.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection teardown")

	sess := srv.store.Get(gameID)
	srv.wireSession(sess)
	clog := srv.log.WithField("game", gameID)
	clog.Info("connection opened")

	ctx := r.Context()
	for {
		var msg game.Action
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			clog.WithError(err).Debug("connection closed")
			sess.DetachConn(conn)
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		res := sess.Dispatch(msg)

		// Bind the connection to the player it speaks for, so broadcasts
		// and private events can reach it.
		if _, failed := res["error"]; !failed {
			switch msg.Action {
			case "create_player":
				sess.AttachConn(msg.Name, conn)
			case "get_state", "player_action":
				sess.AttachConn(msg.Player, conn)
			}
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := wsjson.Write(wctx, conn, res)
		cancel()
		if err != nil {
			clog.WithError(err).Debug("write failed, dropping connection")
			sess.DetachConn(conn)
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

// wireSession installs the broadcast callbacks once per session.
func (srv *Server) wireSession(sess *game.GandalfSession) {
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.BroadcastFn != nil {
		return
	}
	sess.BroadcastFn = func(ev game.Result) {
		for _, p := range sess.Players {
			if p.Conn == nil || !p.Connected {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := wsjson.Write(ctx, p.Conn, ev); err != nil {
				srv.log.WithError(err).WithField("player", p.Name).Debug("broadcast write failed")
			}
			cancel()
		}
	}
	sess.BroadcastToPlayerFn = func(p *models.Player, ev game.Result) {
		if p.Conn == nil || !p.Connected {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := wsjson.Write(ctx, p.Conn, ev); err != nil {
			srv.log.WithError(err).WithField("player", p.Name).Debug("private write failed")
		}
	}
}
