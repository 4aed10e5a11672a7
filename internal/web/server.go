// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package web serves the display state over HTTP and websockets.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/relabs-tech/home_display/internal/controller"
	"github.com/relabs-tech/home_display/internal/display"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
)

// FrameSource provides the frame being displayed.
type FrameSource interface {
	Frame() display.Frame
}

// StatusSource provides the barometer state.
type StatusSource interface {
	Status() controller.Status
}

// Cell is one registered cell and its current colour.
type Cell struct {
	grid.Entry
	hsv.RGB
}

// GridResponse is the body of GET /api/grid.
type GridResponse struct {
	display.Frame
	Cells []Cell `json:"cells"`
}

// Server exposes the display.
type Server struct {
	frames   FrameSource
	status   StatusSource
	registry *grid.Registry
	hub      *Hub
	mux      *http.ServeMux
}

// NewServer registers the routes.
func NewServer(frames FrameSource, status StatusSource, registry *grid.Registry) *Server {
	s := &Server{
		frames:   frames,
		status:   status,
		registry: registry,
		hub:      NewHub(),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/grid", s.handleGrid)
	s.mux.HandleFunc("GET /api/forecast", s.handleForecast)
	s.mux.HandleFunc("GET /ws", s.hub.ServeWS)
	return s
}

// Hub returns the websocket sink to register with the renderer.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	f := s.frames.Frame()
	resp := GridResponse{Frame: f}
	for _, e := range s.registry.Entries() {
		resp.Cells = append(resp.Cells, Cell{Entry: e, RGB: f.Pixels[e.X+e.Y*grid.Size]})
	}
	writeJSON(w, resp)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	st := s.status.Status()
	if st.Pressure == nil {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, st)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("web: server listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
