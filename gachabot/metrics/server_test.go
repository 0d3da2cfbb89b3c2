package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestServer_Healthz(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "healthy", wantCode: http.StatusOK, wantBody: `"database":"healthy"`},
		{name: "database down", err: errors.New("closed"), wantCode: http.StatusServiceUnavailable, wantBody: "unhealthy: closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(":0", New(), stubPinger{err: tt.err}, "test")
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("GET /healthz code = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("GET /healthz body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	m := New()
	m.ObserveCommand("summon", "success", 30*time.Millisecond)
	m.Summoned([]*game.Character{{Rarity: game.RarityEpic}, {Rarity: game.RarityCommon}})
	m.Battled(true)

	s := NewServer(":0", m, stubPinger{}, "test")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`gachabot_commands_total{name="summon",status="success"} 1`,
		`gachabot_summons_total{count="2"} 1`,
		`gachabot_characters_drawn_total{rarity="Epic"} 1`,
		`gachabot_battles_total{result="tie"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("GET /metrics missing %q", want)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveCommand("x", "success", time.Second)
	m.Throttled("x")
	m.Summoned(nil)
	m.Battled(false)
	m.Purchased()
	m.QuestClaimed()
	m.DailyClaimed()
}
