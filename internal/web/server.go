// Package web hosts a running pattern in the browser. Frames are streamed
// as base64 PNG over a websocket and pattern/speed changes arrive on a
// separate control socket.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/surface"
)

//go:embed index.html
var indexHTML []byte

const writeWait = 200 * time.Millisecond

type Server struct {
	mu        sync.Mutex
	ctrl      *anim.Controller
	raster    *surface.Raster
	loop      *anim.Loop
	clients   map[*websocket.Conn]bool
	last      anim.State
	label     string
	lastErr   string
	startTime time.Time
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

// New wraps ctrl in a loop driven by sched. The controller must draw into
// raster; the loop goroutine is the only one touching either.
func New(ctrl *anim.Controller, raster *surface.Raster, sched anim.Scheduler) *Server {
	s := &Server{
		ctrl:      ctrl,
		raster:    raster,
		clients:   map[*websocket.Conn]bool{},
		last:      ctrl.State(),
		label:     ctrl.SpeedLabel(),
		startTime: time.Now(),
		log:       log.With().Str("component", "web").Logger(),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	s.loop = anim.NewLoop(ctrl, sched, anim.OnFrame(s.publish), anim.OnCommandError(s.commandFailed))
	return s
}

func (s *Server) Loop() *anim.Loop { return s.loop }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleIndex)
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return withCORS(mux)
}

// Run serves on addr and renders frames until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan error, 1)
	srvErr := make(chan error, 1)
	go func() {
		loopDone <- s.loop.Run(ctx)
	}()
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	var err error
	loopExited := false
	select {
	case <-ctx.Done():
	case err = <-srvErr:
	case err = <-loopDone:
		loopExited = true
	}
	cancel()
	if !loopExited {
		<-loopDone
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		s.log.Warn().Err(serr).Msg("shutdown")
	}
	s.closeClients()
	s.log.Info().Uint64("frames", s.loop.Frames()).Msg("server stopped")
	return err
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.writeLocked(conn, s.helloLocked())
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleControlWS reads control messages and queues them for the loop.
// Each message gets an ack once it is queued; the effect shows up in the
// next frame.
func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		ack := ackMessage{Type: "ack"}
		cmds, perr := parseControl(data)
		if perr != nil {
			ack.Error = perr.Error()
		}
		for _, cmd := range cmds {
			if err := s.loop.Submit(cmd); err != nil {
				ack.Error = err.Error()
				break
			}
			ack.Queued++
		}
		b, _ := json.Marshal(ack)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]any{
		"frame_id": s.loop.Frames(),
		"uptime_s": time.Since(s.startTime).Seconds(),
		"pattern":  s.last.Pattern,
		"elapsed":  s.last.Elapsed,
		"speed":    s.last.Speed,
		"label":    s.label,
		"clients":  len(s.clients),
	}
	if s.lastErr != "" {
		resp["last_error"] = s.lastErr
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// publish runs on the loop goroutine after each tick.
// publish broadcasts the frame the loop just drew. st is the post-tick state,
// so the drawn time is one speed step behind it.
func (s *Server) publish(st anim.State) {
	label := s.ctrl.SpeedLabel()
	st.Elapsed -= st.Speed

	s.mu.Lock()
	s.last = st
	s.label = label
	n := len(s.clients)
	s.mu.Unlock()
	if n == 0 {
		return
	}

	var buf bytes.Buffer
	if err := s.raster.EncodePNG(&buf); err != nil {
		s.log.Warn().Err(err).Msg("encode frame")
		return
	}
	msg := frameMessage{
		Type:    "frame",
		T:       time.Now().UnixNano(),
		FrameID: s.loop.Frames(),
		Pattern: st.Pattern,
		Elapsed: st.Elapsed,
		Speed:   st.Speed,
		Label:   label,
		PNG:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	s.broadcast(msg)
}

func (s *Server) commandFailed(cmd anim.Command, err error) {
	s.log.Warn().Err(err).Str("command", fmt.Sprintf("%T", cmd)).Msg("command rejected")
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.broadcast(errorMessage{Type: "error", Error: err.Error()})
}

func (s *Server) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
			delete(s.clients, c)
			c.Close()
		}
	}
}

func (s *Server) writeLocked(c *websocket.Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.WriteMessage(websocket.TextMessage, b)
}

func (s *Server) helloLocked() helloMessage {
	return helloMessage{
		Type:     "hello",
		Patterns: s.ctrl.Registry().Names(),
		Pattern:  s.last.Pattern,
		Baseline: s.ctrl.Baseline(),
		Label:    s.label,
		Slider: slider{
			Min:   anim.SliderMin,
			Max:   anim.SliderMax,
			Step:  anim.SliderStep,
			Value: s.last.Speed,
		},
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
