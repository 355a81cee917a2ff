package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

func drawn(snap bakery.Snapshot, serving bool) *core.Screen {
	w, h := KitchenSize()
	s := core.NewScreen(w, h)
	DrawKitchen(s, snap, config.DefaultConfig(), serving)
	return s
}

func TestDrawKitchenHUD(t *testing.T) {
	s := drawn(bakery.Snapshot{
		Difficulty: config.DifficultyHard,
		Score:      120,
		Remaining:  75 * time.Second,
	}, false)

	hud := s.Row(0)
	for _, want := range []string{"SCORE   120", "01:15:00", "Hard"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q does not contain %q", hud, want)
		}
	}
}

func TestDrawKitchenFood(t *testing.T) {
	snap := bakery.Snapshot{
		Food: bakery.FoodView{Kind: bakery.KindSalad, State: bakery.StatePerfect, X: 220, Y: 220},
	}
	s := drawn(snap, false)

	// 220 of 440 world units is the middle of the 44x20 field
	cell := s.GetCell(fieldLeft+22+2, fieldTop+10)
	if cell.Rune != 'S' || cell.Color != core.ColorOrange {
		t.Errorf("food mark = %q in %v, expected 'S' in orange", cell.Rune, cell.Color)
	}
	if got := s.Get(fieldLeft+22, fieldTop+10); got != '▇' {
		t.Errorf("food body = %q, expected '▇'", got)
	}
}

func TestDrawKitchenOven(t *testing.T) {
	tests := []struct {
		name   string
		window bool
		expect core.Color
	}{
		{"baking", false, core.ColorRed},
		{"take out", true, core.ColorBrightYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := bakery.Snapshot{
				Food: bakery.FoodView{X: 300, Y: 200},
				Oven: bakery.OvenView{Occupied: true, PerfectWindow: tt.window},
			}
			s := drawn(snap, false)
			if !strings.Contains(s.Row(fieldTop), "OVEN") {
				t.Errorf("oven row %q has no label", s.Row(fieldTop))
			}
			if c := s.GetCell(fieldLeft+30, fieldTop+1).Color; c != tt.expect {
				t.Errorf("oven color = %v, expected %v", c, tt.expect)
			}
		})
	}
}

func TestDrawKitchenServeHighlight(t *testing.T) {
	cfg := config.DefaultConfig()
	v := kitchenView{cfg: cfg}
	serve := v.zone(cfg.Stations.Serve)
	x, y := serve.X, serve.Y+1

	if c := drawn(bakery.Snapshot{}, false).GetCell(x, y).Color; c != core.ColorBrown {
		t.Errorf("serving table color = %v, expected brown", c)
	}
	if c := drawn(bakery.Snapshot{}, true).GetCell(x, y).Color; c != core.ColorBrightYellow {
		t.Errorf("highlighted serving table color = %v, expected bright yellow", c)
	}
}

func TestDrawKitchenHazards(t *testing.T) {
	snap := bakery.Snapshot{
		Food:    bakery.FoodView{X: 300, Y: 100},
		Hazards: []bakery.Hazard{{ID: 1, X: 0, Y: 400}},
	}
	s := drawn(snap, false)
	if got := s.Get(fieldLeft, fieldTop+18); got != 'o' {
		t.Errorf("hazard cell = %q, expected 'o'", got)
	}
}

func TestDrawKitchenPanel(t *testing.T) {
	snap := bakery.Snapshot{Stats: bakery.Stats{Served: 3, Perfect: 2}}
	text := drawn(snap, false).String()

	for _, want := range []string{"CROISSANT RUSH", "served      3", "perfect     2", "oven: empty"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel does not contain %q", want)
		}
	}
}

func TestRenderResult(t *testing.T) {
	res := bakery.Result{
		Difficulty: config.DifficultyEasy,
		Score:      370,
		Stats:      bakery.Stats{Served: 3, Perfect: 2, Burned: 1},
		Played:     90 * time.Second,
		Reason:     bakery.EndTimeUp,
	}

	out := RenderResult(res, 370, 80)
	for _, want := range []string{"TIME'S UP!", "Score: 370", "New high score!", "01:30:00", "served 3 (perfect 2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderResult() does not contain %q", want)
		}
	}

	res.Reason = bakery.EndQuit
	out = RenderResult(res, 500, 80)
	if !strings.Contains(out, "ROUND ENDED") || !strings.Contains(out, "Best: 500") {
		t.Errorf("RenderResult() for a lower score = %q", out)
	}
}
