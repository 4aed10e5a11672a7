package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/home_display/internal/controller"
	"github.com/relabs-tech/home_display/internal/display"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
	"github.com/relabs-tech/home_display/internal/router"
)

type fakeFrames struct{ f display.Frame }

func (s fakeFrames) Frame() display.Frame { return s.f }

func newTestController(t *testing.T) *controller.Controller {
	t.Helper()
	reg, err := grid.NewRegistry(grid.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	return controller.New(grid.New(reg), nil, nil, controller.Options{})
}

func TestGridEndpoint(t *testing.T) {
	c := newTestController(t)
	if err := c.HandleEvent(router.Event{Category: router.Motion, Identity: "Living Motion", Value: true}); err != nil {
		t.Fatal(err)
	}
	r := display.NewRenderer(c.Grid(), 0)
	s := NewServer(r, c, c.Grid().Registry())

	req := httptest.NewRequest(http.MethodGet, "/api/grid", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body GridResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Cells) != len(grid.DefaultLayout()) {
		t.Fatalf("got %d cells", len(body.Cells))
	}
	var found bool
	for _, cell := range body.Cells {
		if cell.Identity == "Living Motion" {
			found = true
			if cell.RGB != (hsv.RGB{R: 255}) {
				t.Errorf("Living Motion = %+v", cell.RGB)
			}
			if body.Pixels[cell.X+cell.Y*grid.Size] != cell.RGB {
				t.Error("pixels and cells disagree")
			}
		}
	}
	if !found {
		t.Fatal("Living Motion missing from cells")
	}
}

func TestForecastEndpoint(t *testing.T) {
	c := newTestController(t)
	s := NewServer(fakeFrames{}, c, c.Grid().Registry())

	// No samples yet.
	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}

	for i := 0; i < 10; i++ {
		if _, err := c.SampleBarometer(1005 + float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var st controller.Status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.State != "active" || st.Forecast == nil || st.Forecast.Delta != 9 {
		t.Fatalf("status %+v", st)
	}
}

func TestUnknownMethod(t *testing.T) {
	c := newTestController(t)
	s := NewServer(fakeFrames{}, c, c.Grid().Registry())

	req := httptest.NewRequest(http.MethodPost, "/api/grid", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestWebsocketStreamsFrames(t *testing.T) {
	c := newTestController(t)
	s := NewServer(fakeFrames{}, c, c.Grid().Registry())
	srv := httptest.NewServer(s)
	defer srv.Close()

	first := display.Frame{Caption: []string{"first"}}
	if err := s.Hub().Render(first); err != nil {
		t.Fatal(err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got display.Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Caption) != 1 || got.Caption[0] != "first" {
		t.Fatalf("initial frame %+v", got)
	}

	second := display.Frame{LowLight: true}
	second.Pixels[9] = hsv.RGB{B: 255}
	if err := s.Hub().Render(second); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if !got.LowLight || got.Pixels[9] != (hsv.RGB{B: 255}) {
		t.Fatalf("second frame %+v", got)
	}
	if s.Hub().Clients() != 1 {
		t.Fatalf("clients = %d", s.Hub().Clients())
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	c := newTestController(t)
	s := NewServer(fakeFrames{}, c, c.Grid().Registry())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
