// Package feed serves the upcoming-builds listing over HTTP: a JSON snapshot
// at /api/schedule and a websocket at /ws that re-sends it periodically.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/scheduledisplay/internal/display"
	"github.com/crystaldolphin/scheduledisplay/internal/render"
)

const writeWait = 10 * time.Second

// Snapshotter produces one listing.
type Snapshotter interface {
	Snapshot(q display.Query) (render.Document, error)
}

// Server is the feed HTTP server.
type Server struct {
	addr     string
	refresh  time.Duration
	src      Snapshotter
	log      *slog.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewServer creates a Server. refresh is the websocket push interval.
func NewServer(addr string, refresh time.Duration, src Snapshotter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if refresh <= 0 {
		refresh = time.Minute
	}
	return &Server{
		addr:    addr,
		refresh: refresh,
		src:     src,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		now: time.Now,
	}
}

// Handler returns the feed routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/schedule", s.handleSchedule)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("feed: listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("feed: shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ---- handlers --------------------------------------------------------------

func (s *Server) query(r *http.Request) (display.Query, error) {
	v := r.URL.Query()
	q := display.Query{View: v.Get("view"), Now: s.now()}
	var err error
	if c := v.Get("maxCount"); c != "" {
		if q.MaxCount, err = strconv.Atoi(c); err != nil {
			return q, errors.New("maxCount: not a valid number")
		}
	}
	if d := v.Get("maxDays"); d != "" {
		if q.MaxDays, err = strconv.Atoi(d); err != nil {
			return q, errors.New("maxDays: not a valid number")
		}
	}
	return q, nil
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	q, err := s.query(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.src.Snapshot(q)
	if err != nil {
		s.log.Error("feed: snapshot failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q, err := s.query(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("feed: websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	s.log.Debug("feed: websocket connected", "remote", r.RemoteAddr, "view", q.View)

	// The client never sends data; reading only notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	tick := time.NewTicker(s.refresh)
	defer tick.Stop()
	for {
		q.Now = s.now()
		if err := s.push(conn, q); err != nil {
			s.log.Debug("feed: websocket closed", "err", err)
			return
		}
		select {
		case <-tick.C:
		case <-closed:
			return
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Server) push(conn *websocket.Conn, q display.Query) error {
	doc, err := s.src.Snapshot(q)
	if err != nil {
		s.log.Error("feed: snapshot failed", "err", err)
		doc = render.Document{GeneratedAt: q.Now, View: q.View, Builds: []render.Build{}}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
