package bridge

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/codemindmap/birdview/internal/session"
)

// Server accepts websocket connections from views and runs one Session per
// connection.
type Server struct {
	analyzer Analyzer
	store    *session.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a bridge server. The session store may be nil to
// disable state persistence.
func NewServer(analyzer Analyzer, store *session.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the http handler accepting view connections.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bridge", s.serveConn)
	return mux
}

// ListenAndServe blocks serving the bridge on addr until the context is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	s.logger.Info("bridge listening", "addr", addr)
	err := srv.ListenAndServe()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Server) serveConn(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sender := &wsSender{conn: conn}
	sess := NewSession(s.analyzer, s.store, sender, s.logger)
	s.logger.Info("view connected", "remote", conn.RemoteAddr().String())

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("view connection dropped", "error", err)
			}
			return
		}
		sess.Dispatch(r.Context(), env)
	}
}

// wsSender serializes writes to one websocket connection. Gorilla allows a
// single concurrent writer, so every send takes the mutex.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(env Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(env)
}
