package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Kitchen layout in terminal cells. The field box sits below the HUD row and
// the side panel to its right.
const (
	fieldCols  = 44
	fieldRows  = 20
	fieldLeft  = 1
	fieldTop   = 2
	panelLeft  = fieldCols + 4
	panelWidth = 26
)

// KitchenSize returns the screen size needed to draw the kitchen and its
// side panel.
func KitchenSize() (int, int) {
	return panelLeft + panelWidth, fieldTop + fieldRows + 1
}

// kitchenView projects world coordinates onto the field box.
type kitchenView struct {
	cfg config.Config
}

func (v kitchenView) x(wx int) int {
	return fieldLeft + core.Scale(wx, v.cfg.Field.Width, fieldCols)
}

func (v kitchenView) y(wy int) int {
	return fieldTop + core.Scale(wy, v.cfg.Field.Height, fieldRows)
}

// rect projects a world box, at least one cell in each direction, clipped to
// the field.
func (v kitchenView) rect(wx, wy, ww, wh int) core.Rect {
	x, y := v.x(wx), v.y(wy)
	w := max(core.Scale(ww, v.cfg.Field.Width, fieldCols), 1)
	h := max(core.Scale(wh, v.cfg.Field.Height, fieldRows), 1)
	w = min(w, fieldLeft+fieldCols-x)
	h = min(h, fieldTop+fieldRows-y)
	return core.NewRect(x, y, w, h)
}

func (v kitchenView) zone(z core.Zone) core.Rect {
	return v.rect(z.MinX, z.MinY, z.MaxX-z.MinX, z.MaxY-z.MinY)
}

// foodColor is the croissant's color for its doneness.
func foodColor(s bakery.State) core.Color {
	switch s {
	case bakery.StatePerfect:
		return core.ColorOrange
	case bakery.StateBurn:
		return core.ColorBrown
	default:
		return core.ColorYellow
	}
}

// kindMark is the letter drawn on a croissant.
func kindMark(k bakery.Kind) rune {
	switch k {
	case bakery.KindSalad:
		return 'S'
	case bakery.KindRainbow:
		return 'R'
	default:
		return 'C'
	}
}

// DrawKitchen draws a session snapshot: HUD, field with oven, serving table,
// trash, tomatoes and the croissant, and the side panel when it fits.
// serving highlights the table after a serve.
func DrawKitchen(s *core.Screen, snap bakery.Snapshot, cfg config.Config, serving bool) {
	s.Clear()
	v := kitchenView{cfg: cfg}

	hud := fmt.Sprintf(" SCORE %5d   TIME %s   %s", snap.Score, bakery.FormatClock(snap.Remaining), snap.Difficulty.Title())
	s.DrawTextColor(0, 0, hud, core.ColorWhite)

	s.DrawBox(core.NewRect(fieldLeft-1, fieldTop-1, fieldCols+2, fieldRows+2), core.ColorGray)

	oven := v.rect(0, 0, cfg.Field.Width, cfg.Oven.TriggerMaxY+cfg.Field.Height/fieldRows)
	ovenColor := core.ColorRed
	if snap.Oven.PerfectWindow {
		ovenColor = core.ColorBrightYellow
	}
	s.DrawRect(oven, '░', ovenColor)
	s.DrawTextColor(oven.X+1, oven.Y, " OVEN ", ovenColor)

	serve := v.zone(cfg.Stations.Serve)
	serveColor := core.ColorBrown
	if serving {
		serveColor = core.ColorBrightYellow
	}
	s.DrawRect(serve, '▒', serveColor)
	s.DrawTextColor(serve.X+(serve.W-7)/2, serve.Y, " SERVE ", serveColor)

	trash := v.zone(cfg.Stations.Trash)
	s.DrawRect(trash, '▓', core.ColorGray)
	s.DrawTextColor(trash.X+(trash.W-5)/2, trash.Y+trash.H/2, " BIN ", core.ColorGray)

	for _, h := range snap.Hazards {
		s.DrawRect(v.rect(h.X, h.Y, cfg.Hazard.Width, cfg.Hazard.Height), 'o', core.ColorBrightRed)
	}

	f := snap.Food
	body := v.rect(f.X, f.Y, cfg.Food.Width, cfg.Food.Height)
	s.DrawRect(body, '▇', foodColor(f.State))
	s.SetColor(body.X+body.W/2, body.Y, kindMark(f.Kind), foodColor(f.State))

	if s.Width() >= panelLeft+panelWidth {
		drawPanel(s, snap)
	}
}

func drawPanel(s *core.Screen, snap bakery.Snapshot) {
	x, y := panelLeft, fieldTop
	s.DrawTextColor(x, y, "CROISSANT RUSH", core.ColorOrange)
	y += 2

	f := snap.Food
	s.DrawTextColor(x, y, f.Kind.Name(), foodColor(f.State))
	y++
	s.DrawTextColor(x, y, "state: "+f.State.String(), foodColor(f.State))
	y += 2

	ovenLine := "oven: empty"
	ovenColor := core.ColorGray
	if snap.Oven.Occupied {
		ovenLine = fmt.Sprintf("oven: %4.1fs", snap.Oven.Elapsed.Seconds())
		ovenColor = core.ColorRed
		if snap.Oven.PerfectWindow {
			ovenLine += " TAKE OUT!"
			ovenColor = core.ColorBrightYellow
		}
	}
	s.DrawTextColor(x, y, ovenLine, ovenColor)
	y += 2

	st := snap.Stats
	for _, line := range []string{
		fmt.Sprintf("served    %3d", st.Served),
		fmt.Sprintf("perfect   %3d", st.Perfect),
		fmt.Sprintf("burnt     %3d", st.Burned),
		fmt.Sprintf("trashed   %3d", st.Discarded),
		fmt.Sprintf("tomatoes  %3d", st.HazardHits),
	} {
		s.DrawTextColor(x, y, line, core.ColorWhite)
		y++
	}
	y++

	s.DrawTextColor(x, y, "▇ raw", core.ColorYellow)
	s.DrawTextColor(x+7, y, "▇ perfect", core.ColorOrange)
	s.DrawTextColor(x+17, y, "▇ burnt", core.ColorBrown)
	y++
	s.DrawTextColor(x, y, "o tomato", core.ColorBrightRed)
}

// endStyles style the end-of-round summary.
var (
	endTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	endScoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	endBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 4)
)

// RenderResult renders the end-of-round summary.
func RenderResult(res bakery.Result, best int, width int) string {
	title := "TIME'S UP!"
	if res.Reason == bakery.EndQuit {
		title = "ROUND ENDED"
	}

	var b strings.Builder
	b.WriteString(endTitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(endScoreStyle.Render(fmt.Sprintf("Score: %d", res.Score)))
	b.WriteString("\n")
	if res.Score > 0 && res.Score >= best {
		b.WriteString(endScoreStyle.Render("New high score!"))
	} else {
		b.WriteString(fmt.Sprintf("Best: %d", best))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  |  played %s\n", res.Difficulty.Title(), bakery.FormatClock(res.Played))
	fmt.Fprintf(&b, "served %d (perfect %d)  burnt %d  trashed %d",
		res.Stats.Served, res.Stats.Perfect, res.Stats.Burned, res.Stats.Discarded)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, endBoxStyle.Render(b.String()))
}
