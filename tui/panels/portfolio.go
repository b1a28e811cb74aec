package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/zappabad/investly/internal/game"
	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/tui/styles"
)

// PortfolioPanel shows cash, holdings and the outcome of the last day.
type PortfolioPanel struct {
	portfolio     portfolio.Portfolio
	universe      market.Universe
	holdingsValue decimal.Decimal
	netWorth      decimal.Decimal
	last          *game.DayResult

	scrollOffset int
	focused      bool
	width        int
	height       int
}

// NewPortfolioPanel creates a new portfolio panel.
func NewPortfolioPanel() *PortfolioPanel {
	return &PortfolioPanel{}
}

// Init initializes the panel.
func (p *PortfolioPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *PortfolioPanel) Update(msg tea.Msg) (*PortfolioPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.scrollOffset > 0 {
				p.scrollOffset--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.scrollOffset < len(p.portfolio.Holdings)-1 {
				p.scrollOffset++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *PortfolioPanel) View() string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Cash     "), styles.PriceStyle.Render(styles.FormatMoney(p.portfolio.CashBalance))))
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Holdings "), styles.PriceStyle.Render(styles.FormatMoney(p.holdingsValue))))
	content.WriteString(fmt.Sprintf("%s %s\n\n",
		styles.LabelStyle.Render("Net worth"), styles.BuyStyle.Render(styles.FormatMoney(p.netWorth))))

	header := fmt.Sprintf("%-7s %6s %9s %9s %10s", "Symbol", "Qty", "Avg", "Price", "P/L")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	if len(p.portfolio.Holdings) == 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No holdings yet"))
		content.WriteString("\n")
	}

	rows := p.height - 16
	if rows < 3 {
		rows = 3
	}
	end := p.scrollOffset + rows
	if end > len(p.portfolio.Holdings) {
		end = len(p.portfolio.Holdings)
	}
	for _, h := range p.portfolio.Holdings[p.scrollOffset:end] {
		price, err := p.universe.Price(h.Symbol)
		if err != nil {
			price = decimal.Zero
		}
		qty := decimal.NewFromInt(h.Quantity)
		pl := market.RoundPrice(price.Sub(h.AvgPrice).Mul(qty))

		row := fmt.Sprintf("%-7s %6d %9s %9s ", h.Symbol, h.Quantity,
			styles.FormatMoney(h.AvgPrice), styles.FormatMoney(price))
		content.WriteString(styles.RowStyle.Render(row))
		content.WriteString(styles.ChangeStyle(pl).Render(fmt.Sprintf("%10s", styles.FormatMoney(pl))))
		content.WriteString("\n")
	}

	content.WriteString(p.renderLastResult())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("💼 Portfolio", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *PortfolioPanel) renderLastResult() string {
	if p.last == nil {
		return ""
	}
	r := p.last

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("Day %d: %s", r.Day, r.ScenarioTitle)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s -> %s ",
		styles.FormatMoney(r.PortfolioValueBefore), styles.FormatMoney(r.PortfolioValueAfter)))
	b.WriteString(styles.ChangeStyle(r.TotalChange).Render(styles.FormatMoney(r.TotalChange)))
	for _, a := range r.AffectedHoldings {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %-7s ", a.Symbol))
		b.WriteString(styles.ChangeStyle(a.ChangePercent).Render(
			fmt.Sprintf("%8s %10s", styles.FormatPercent(a.ChangePercent), styles.FormatMoney(a.ChangeAmount))))
	}
	return b.String()
}

// SetFocus sets the focus state of the panel.
func (p *PortfolioPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *PortfolioPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSnapshot refreshes the panel from a game snapshot.
func (p *PortfolioPanel) SetSnapshot(s game.Snapshot) {
	p.portfolio = s.Portfolio
	p.universe = s.Universe
	p.holdingsValue = s.HoldingsValue
	p.netWorth = s.NetWorth
	p.last = s.LastResult
	if p.scrollOffset >= len(p.portfolio.Holdings) {
		p.scrollOffset = 0
	}
}
