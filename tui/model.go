package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/investly/internal/game"
	"github.com/zappabad/investly/internal/market"
	newsview "github.com/zappabad/investly/internal/news/view"
	"github.com/zappabad/investly/tui/panels"
	"github.com/zappabad/investly/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusMarket     PanelFocus = 0
	FocusPortfolio  PanelFocus = 1
	FocusChart      PanelFocus = 2
	FocusNews       PanelFocus = 3
	FocusOrderInput PanelFocus = 4

	panelCount = 5
)

// headlineDepth is how much of the tape the news panel shows.
const headlineDepth = 50

// Model is the main TUI application model.
type Model struct {
	game *game.Game

	// Panels
	marketPanel     *panels.MarketOverviewPanel
	portfolioPanel  *panels.PortfolioPanel
	newsPanel       *panels.NewsPanel
	orderInputPanel *panels.OrderInputPanel
	chartPanel      *panels.CandlestickPanel

	// Focus management
	focusedPanel PanelFocus

	// Window dimensions
	width  int
	height int

	// Status
	day       int
	tier      string
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model over a running game.
func NewModel(g *game.Game) *Model {
	u := g.Universe()

	chartPanel := panels.NewCandlestickPanel()
	if syms := u.Symbols(); len(syms) > 0 {
		chartPanel.SetSymbol(syms[0])
	}

	m := &Model{
		game:            g,
		marketPanel:     panels.NewMarketOverviewPanel(u),
		portfolioPanel:  panels.NewPortfolioPanel(),
		newsPanel:       panels.NewNewsPanel(),
		orderInputPanel: panels.NewOrderInputPanel(u),
		chartPanel:      chartPanel,
		focusedPanel:    FocusOrderInput,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.marketPanel.Init(),
		m.portfolioPanel.Init(),
		m.newsPanel.Init(),
		m.orderInputPanel.Init(),
		m.chartPanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// q is a letter while typing a symbol or quantity
			if !m.orderInputPanel.Editing() {
				return m, tea.Quit
			}

		case "tab":
			m.cycleFocus()
			return m, nil
		case "shift+tab":
			m.focusedPanel--
			if m.focusedPanel < 0 {
				m.focusedPanel = panelCount - 1
			}
			return m, nil

		// Direct panel focus with F1-F5
		case "f1":
			m.setFocus(FocusMarket)
			return m, nil
		case "f2":
			m.setFocus(FocusPortfolio)
			return m, nil
		case "f3":
			m.setFocus(FocusNews)
			return m, nil
		case "f4":
			m.setFocus(FocusOrderInput)
			return m, nil
		case "f5":
			m.setFocus(FocusChart)
			return m, nil

		case "ctrl+n":
			return m, m.playScenario()
		case "ctrl+e":
			return m, m.endDay()
		case "ctrl+t":
			return m, m.peekHotshot()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.InstrumentSelectedMsg:
		m.chartPanel.SetSymbol(msg.Instrument.Symbol)
		m.orderInputPanel.SetSymbol(msg.Instrument.Symbol)

	case panels.OrderSubmitMsg:
		cmds = append(cmds, m.submitOrder(msg))

	case orderResultMsg:
		m.statusMsg = msg.message
		if msg.ok {
			m.orderInputPanel.Reset()
		}
		m.refresh()

	case turnResultMsg:
		m.chartPanel.Record(msg.day, msg.before, msg.after)
		m.statusMsg = msg.message
		m.refresh()

	case hotshotMsg:
		m.statusMsg = msg.message
		m.refresh()
	}

	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusMarket:
		m.marketPanel, cmd = m.marketPanel.Update(msg)
	case FocusPortfolio:
		m.portfolioPanel, cmd = m.portfolioPanel.Update(msg)
	case FocusNews:
		m.newsPanel, cmd = m.newsPanel.Update(msg)
	case FocusOrderInput:
		m.orderInputPanel, cmd = m.orderInputPanel.Update(msg)
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.portfolioPanel.SetFocus(m.focusedPanel == FocusPortfolio)
	m.newsPanel.SetFocus(m.focusedPanel == FocusNews)
	m.orderInputPanel.SetFocus(m.focusedPanel == FocusOrderInput)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)

	// Layout:
	// ┌─────────────────────────────────────────────┐
	// │  Market Overview  │  Portfolio  │   Chart   │
	// │                   │             │           │
	// ├───────────────────┼─────────────┴───────────┤
	// │      News         │         Trade           │
	// └───────────────────┴─────────────────────────┘

	leftWidth := m.width / 3
	middleWidth := m.width / 3
	rightWidth := m.width - leftWidth - middleWidth

	topHeight := (m.height - 3) * 2 / 3
	bottomHeight := m.height - topHeight - 3

	m.marketPanel.SetSize(leftWidth, topHeight)
	m.portfolioPanel.SetSize(middleWidth, topHeight)
	m.chartPanel.SetSize(rightWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(),
		m.portfolioPanel.View(),
		m.chartPanel.View(),
	)

	m.newsPanel.SetSize(leftWidth, bottomHeight)
	m.orderInputPanel.SetSize(m.width-leftWidth, bottomHeight)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.newsPanel.View(),
		m.orderInputPanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render(fmt.Sprintf("Day %d", m.day)) + styles.StatusBarDescStyle.Render(" "+m.tier),
		styles.StatusBarKeyStyle.Render("^N") + styles.StatusBarDescStyle.Render(" scenario"),
		styles.StatusBarKeyStyle.Render("^E") + styles.StatusBarDescStyle.Render(" end day"),
		styles.StatusBarKeyStyle.Render("^T") + styles.StatusBarDescStyle.Render(" headline"),
		styles.StatusBarKeyStyle.Render("F1-F5") + styles.StatusBarDescStyle.Render(" panels"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}

	helpStr := strings.Join(help, " │ ")

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
}

func (m *Model) cycleFocus() {
	m.focusedPanel = (m.focusedPanel + 1) % panelCount
}

// refresh pulls a fresh snapshot into every panel.
func (m *Model) refresh() {
	snap := m.game.Snapshot()

	m.day = snap.Day
	m.tier = string(snap.Tier)
	m.marketPanel.SetUniverse(snap.Universe)
	m.portfolioPanel.SetSnapshot(snap)
	m.orderInputPanel.SetUniverse(snap.Universe)
	m.newsPanel.SetHotshot(snap.Hotshot)
	m.newsPanel.SetHeadlines(newestFirst(m.game.Headlines(headlineDepth)))
}

func newestFirst(in []newsview.Headline) []newsview.Headline {
	out := make([]newsview.Headline, len(in))
	for i, h := range in {
		out[len(in)-1-i] = h
	}
	return out
}

func (m *Model) submitOrder(order panels.OrderSubmitMsg) tea.Cmd {
	return func() tea.Msg {
		if err := m.game.Trade(order.Symbol, order.Quantity, order.Side); err != nil {
			return orderResultMsg{message: "❌ Trade failed: " + err.Error()}
		}
		return orderResultMsg{
			ok:      true,
			message: fmt.Sprintf("✓ %s %d %s", strings.ToUpper(order.Side.String()), order.Quantity, order.Symbol),
		}
	}
}

func (m *Model) playScenario() tea.Cmd {
	return func() tea.Msg {
		before := m.game.Universe()
		ev, day := m.game.PlayScenario()
		return turnResultMsg{
			day:     day - 1,
			before:  before,
			after:   m.game.Universe(),
			message: "📰 " + ev.Title,
		}
	}
}

func (m *Model) endDay() tea.Cmd {
	return func() tea.Msg {
		before := m.game.Universe()
		res := m.game.AdvanceWithHotshotResult()
		if res.Day == 0 {
			return hotshotMsg{message: "❌ No headline available to end the day"}
		}
		return turnResultMsg{
			day:    res.Day,
			before: before,
			after:  m.game.Universe(),
			message: fmt.Sprintf("🔥 Day %d: %s (%s)",
				res.Day, res.ScenarioTitle, styles.FormatMoney(res.TotalChange)),
		}
	}
}

func (m *Model) peekHotshot() tea.Cmd {
	return func() tea.Msg {
		h, ok := m.game.TodayHotshot()
		if !ok {
			return hotshotMsg{message: "❌ No headline available"}
		}
		return hotshotMsg{message: "🔥 Today: " + h.Title}
	}
}

// orderResultMsg is sent after a trade is processed.
type orderResultMsg struct {
	ok      bool
	message string
}

// turnResultMsg is sent after a scenario turn or day end.
type turnResultMsg struct {
	day     int
	before  market.Universe
	after   market.Universe
	message string
}

// hotshotMsg reports on today's headline without advancing.
type hotshotMsg struct {
	message string
}
