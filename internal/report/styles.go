package report

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps outcome kinds to colours from a catppuccin flavor.
type Styles struct {
	flavor   catppuccin.Flavor
	renderer *lipgloss.Renderer
}

func NewStyles(renderer *lipgloss.Renderer, themeName string) *Styles {
	return &Styles{flavor: flavorFromName(themeName), renderer: renderer}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) color(c catppuccin.Color) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex))
}

func (s *Styles) Success() lipgloss.Style { return s.color(s.flavor.Green()) }
func (s *Styles) Removed() lipgloss.Style { return s.color(s.flavor.Peach()) }
func (s *Styles) Skipped() lipgloss.Style { return s.color(s.flavor.Overlay1()) }
func (s *Styles) Error() lipgloss.Style   { return s.color(s.flavor.Red()).Bold(true) }
func (s *Styles) Heading() lipgloss.Style { return s.color(s.flavor.Mauve()).Bold(true) }
func (s *Styles) Accent() lipgloss.Style  { return s.color(s.flavor.Teal()) }
