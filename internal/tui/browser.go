// Package tui provides an interactive terminal browser for paging
// through a loaded strain file window by window.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gwflux/internal/config"
	"github.com/san-kum/gwflux/internal/physics"
	"github.com/san-kum/gwflux/internal/strain"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	orange = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

type Browser struct {
	series *strain.Series
	cfg    *config.Config
	name   string

	page    int     // current page ordinal
	pageDur float64 // seconds shown per page

	width, height int
}

func NewBrowser(name string, s *strain.Series, cfg *config.Config) *Browser {
	return &Browser{
		series:  s,
		cfg:     cfg,
		name:    name,
		pageDur: 0.5,
		width:   80,
		height:  24,
	}
}

// Run drives the browser until the user quits.
func Run(name string, s *strain.Series, cfg *config.Config) error {
	p := tea.NewProgram(NewBrowser(name, s, cfg))
	_, err := p.Run()
	return err
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "left", "h":
			if b.page > 0 {
				b.page--
			}
		case "right", "l":
			if float64(b.page+1)*b.pageDur < b.series.Duration() {
				b.page++
			}
		case "+", "=":
			if b.pageDur > 0.02 {
				b.pageDur /= 2
				b.page *= 2
			}
		case "-", "_":
			if b.pageDur < b.series.Duration() {
				b.pageDur *= 2
				b.page /= 2
			}
		case "home", "g":
			b.page = 0
		}
	}
	return b, nil
}

func (b *Browser) View() string {
	start := float64(b.page) * b.pageDur
	end := start + b.pageDur
	if end > b.series.Duration() {
		end = b.series.Duration()
	}

	var sb strings.Builder

	sb.WriteString(cyan.Render(fmt.Sprintf("gwflux — %s", b.name)))
	sb.WriteString("\n")
	sb.WriteString(dim.Render(fmt.Sprintf("GPS %.1f  %.0f Hz  %.1fs total",
		b.series.GPSStart, b.series.Rate, b.series.Duration())))
	sb.WriteString("\n\n")

	page, err := b.series.Segment(start, end)
	if err != nil || len(page.Samples) == 0 {
		sb.WriteString(dim.Render("no samples in view"))
		sb.WriteString("\n")
		return sb.String()
	}

	plotWidth := b.width - 12
	if plotWidth < 20 {
		plotWidth = 20
	}
	plotHeight := b.height - 10
	if plotHeight < 5 {
		plotHeight = 5
	}
	if plotHeight > 16 {
		plotHeight = 16
	}

	sb.WriteString(asciigraph.Plot(downsample(page.Samples, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("strain  [%.3fs – %.3fs]", start, end)),
	))
	sb.WriteString("\n\n")

	temp := physics.HawkingTemperature(b.cfg.Source.Mass)
	dE := physics.EnergyDissipation(page.Samples, page.Dt())
	phi := physics.EntropyFlux(dE, temp)
	force := physics.InformationForce(b.cfg.Source.Mass, b.cfg.Source.CarrierVelocity, phi)

	sb.WriteString(orange.Render(fmt.Sprintf("entropy flux %.4e J/K/s", phi)))
	sb.WriteString(dim.Render("   "))
	sb.WriteString(yellow.Render(fmt.Sprintf("info force %.4e N", force)))
	sb.WriteString("\n\n")
	sb.WriteString(dim.Render("←/→ page  +/- zoom  g start  q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// downsample reduces the series to at most width points by taking the
// peak-magnitude sample of each bucket, preserving transients.
func downsample(x []float64, width int) []float64 {
	if len(x) <= width {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	out := make([]float64, width)
	bucket := float64(len(x)) / float64(width)
	for i := 0; i < width; i++ {
		lo := int(float64(i) * bucket)
		hi := int(float64(i+1) * bucket)
		if hi > len(x) {
			hi = len(x)
		}
		best := x[lo]
		for _, v := range x[lo:hi] {
			if math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		out[i] = best
	}
	return out
}
