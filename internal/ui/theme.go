package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + symbols + panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = theme("classic")

func SetTheme(name string) { current = theme(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func theme(name string) Theme {
	plain := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:    plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    plain.Faint(true),
			Accent:   plain.Foreground(lipgloss.Color("14")),
			Success:  plain.Foreground(lipgloss.Color("10")),
			Error:    plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  plain.Foreground(lipgloss.Color("11")),
			Selected: plain.Bold(true).Reverse(true),
			Done:     plain.Faint(true).Strikethrough(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain.Reverse(true), Done: plain,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Title:    plain.Bold(true),
			Muted:    plain.Faint(true),
			Accent:   plain.Foreground(lipgloss.Color("12")),
			Success:  plain.Foreground(lipgloss.Color("42")),
			Error:    plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  plain.Foreground(lipgloss.Color("214")),
			Selected: plain.Bold(true).Reverse(true),
			Done:     plain.Faint(true).Strikethrough(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
