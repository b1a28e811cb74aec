package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/tui/styles"
)

// MarketOverviewPanel displays current prices for all instruments.
type MarketOverviewPanel struct {
	instruments   []market.Instrument
	selectedIndex int
	offset        int
	focused       bool
	width         int
	height        int
}

// NewMarketOverviewPanel creates a new market overview panel.
func NewMarketOverviewPanel(u market.Universe) *MarketOverviewPanel {
	return &MarketOverviewPanel{
		instruments: u.Instruments(),
	}
}

// Init initializes the panel.
func (p *MarketOverviewPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *MarketOverviewPanel) Update(msg tea.Msg) (*MarketOverviewPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		prev := p.selectedIndex
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.instruments)-1 {
				p.selectedIndex++
			}
		}
		if prev != p.selectedIndex {
			p.scrollToSelection()
			inst := p.SelectedInstrument()
			return p, func() tea.Msg { return InstrumentSelectedMsg{Instrument: inst} }
		}
	}
	return p, nil
}

func (p *MarketOverviewPanel) visibleRows() int {
	// border, title and header
	rows := p.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p *MarketOverviewPanel) scrollToSelection() {
	rows := p.visibleRows()
	if p.selectedIndex < p.offset {
		p.offset = p.selectedIndex
	}
	if p.selectedIndex >= p.offset+rows {
		p.offset = p.selectedIndex - rows + 1
	}
}

// View renders the panel.
func (p *MarketOverviewPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-7s %10s %8s  %-s", "Symbol", "Price", "Chg", "Sector")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	end := p.offset + p.visibleRows()
	if end > len(p.instruments) {
		end = len(p.instruments)
	}
	for i := p.offset; i < end; i++ {
		inst := p.instruments[i]

		row := fmt.Sprintf("%-7s %10s ", inst.Symbol, styles.FormatMoney(inst.CurrentPrice))
		chg := fmt.Sprintf("%8s", styles.FormatFraction(inst.ChangePercent))
		sector := "  " + inst.Sector

		if i == p.selectedIndex && p.focused {
			content.WriteString(styles.SelectedRowStyle.Render(row + chg + sector))
		} else {
			content.WriteString(styles.RowStyle.Render(row))
			content.WriteString(styles.ChangeStyle(inst.ChangePercent).Render(chg))
			content.WriteString(styles.SizeStyle.Render(sector))
		}
		if i < end-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📈 Market Overview", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *MarketOverviewPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketOverviewPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetUniverse replaces the displayed prices, keeping the selection.
func (p *MarketOverviewPanel) SetUniverse(u market.Universe) {
	p.instruments = u.Instruments()
	if p.selectedIndex >= len(p.instruments) {
		p.selectedIndex = 0
		p.offset = 0
	}
}

// SelectedInstrument returns the currently selected instrument.
func (p *MarketOverviewPanel) SelectedInstrument() market.Instrument {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.instruments) {
		return p.instruments[p.selectedIndex]
	}
	return market.Instrument{}
}

// InstrumentSelectedMsg is sent when the selection moves.
type InstrumentSelectedMsg struct {
	Instrument market.Instrument
}
