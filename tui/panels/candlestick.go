package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/tui/styles"
)

// Candle is one turn of price movement for an instrument.
type Candle struct {
	Day   int
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

// Up reports whether the candle closed at or above its open.
func (c Candle) Up() bool {
	return c.Close.GreaterThanOrEqual(c.Open)
}

// CandlestickPanel charts per-turn candles for the selected instrument.
type CandlestickPanel struct {
	symbol  string
	history map[string][]Candle

	focused bool
	width   int
	height  int

	// Chart settings
	maxCandles int
}

// NewCandlestickPanel creates a new candlestick chart panel.
func NewCandlestickPanel() *CandlestickPanel {
	return &CandlestickPanel{
		history:    make(map[string][]Candle),
		maxCandles: 50,
	}
}

// Init initializes the panel.
func (p *CandlestickPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *CandlestickPanel) Update(msg tea.Msg) (*CandlestickPanel, tea.Cmd) {
	if msg, ok := msg.(InstrumentSelectedMsg); ok {
		p.SetSymbol(msg.Instrument.Symbol)
	}
	return p, nil
}

// View renders the panel.
func (p *CandlestickPanel) View() string {
	symbol := "No instrument"
	if p.symbol != "" {
		symbol = p.symbol
	}

	var content strings.Builder

	chartWidth := p.width - 12 // Leave room for price axis
	chartHeight := p.height - 6
	if chartHeight < 5 {
		chartHeight = 5
	}

	candles := p.Candles()
	if len(candles) == 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No turns played yet..."))
	} else {
		content.WriteString(p.renderChart(chartWidth, chartHeight, candles))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📉 Chart - %s", symbol), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *CandlestickPanel) renderChart(width, height int, candles []Candle) string {
	if len(candles) == 0 {
		return ""
	}

	// Reserve space: 9 chars for price axis, 1 for separator
	chartWidth := width - 10
	if chartWidth < 10 {
		chartWidth = 10
	}

	// Each candle needs 3 chars: space, candle, space
	candleWidth := 3
	candlesToShow := chartWidth / candleWidth
	if candlesToShow < 1 {
		candlesToShow = 1
	}
	if candlesToShow > len(candles) {
		candlesToShow = len(candles)
	}

	displayCandles := candles
	if len(candles) > candlesToShow {
		displayCandles = candles[len(candles)-candlesToShow:]
	}

	minPrice := displayCandles[0].Low.InexactFloat64()
	maxPrice := displayCandles[0].High.InexactFloat64()
	for _, c := range displayCandles {
		if lo := c.Low.InexactFloat64(); lo < minPrice {
			minPrice = lo
		}
		if hi := c.High.InexactFloat64(); hi > maxPrice {
			maxPrice = hi
		}
	}

	// Pad the range by 10% so flat series still get a visible band
	priceRange := maxPrice - minPrice
	if priceRange == 0 {
		priceRange = maxPrice * 0.02
		if priceRange == 0 {
			priceRange = 1
		}
	}
	padding := priceRange * 0.1
	minPrice -= padding
	maxPrice += padding

	// Reserve 2 rows for the day axis
	chartHeight := height - 3
	if chartHeight < 5 {
		chartHeight = 5
	}

	var result strings.Builder

	// Render chart rows (top to bottom = high to low price)
	for row := 0; row < chartHeight; row++ {
		price := yToPrice(row, minPrice, maxPrice, chartHeight)
		result.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8.2f │", price)))

		for _, candle := range displayCandles {
			char := getCandleChar(candle, row, minPrice, maxPrice, chartHeight)

			style := styles.CandleDownStyle
			if candle.Up() {
				style = styles.CandleUpStyle
			}

			result.WriteString(style.Render(string(char)))
			result.WriteString(" ")
		}
		result.WriteString("\n")
	}

	result.WriteString(styles.ChartAxisStyle.Render("─────────┴"))
	for range displayCandles {
		result.WriteString(styles.ChartAxisStyle.Render("──"))
	}
	result.WriteString("\n")

	// Day axis, last two digits of the day number
	result.WriteString(styles.ChartAxisStyle.Render("          "))
	for i, candle := range displayCandles {
		if i == 0 || i == len(displayCandles)-1 || i%5 == 0 {
			result.WriteString(styles.ChartLabelStyle.Render(fmt.Sprintf("%02d", candle.Day%100)))
		} else {
			result.WriteString("  ")
		}
	}

	return result.String()
}

// getCandleChar returns the character to draw for a candle at a given row.
func getCandleChar(candle Candle, row int, minPrice, maxPrice float64, height int) rune {
	rowPrice := yToPrice(row, minPrice, maxPrice, height)

	high := candle.High.InexactFloat64()
	low := candle.Low.InexactFloat64()
	bodyTop := candle.Open.InexactFloat64()
	bodyBottom := candle.Close.InexactFloat64()
	if bodyBottom > bodyTop {
		bodyTop, bodyBottom = bodyBottom, bodyTop
	}

	// Half a row of tolerance, since prices map onto discrete rows
	tolerance := (maxPrice - minPrice) / float64(height*2)

	// Body overwrites wick
	if rowPrice <= bodyTop+tolerance && rowPrice >= bodyBottom-tolerance {
		return '┃'
	}
	if rowPrice <= high+tolerance && rowPrice > bodyTop {
		return '│'
	}
	if rowPrice >= low-tolerance && rowPrice < bodyBottom {
		return '│'
	}
	return ' '
}

func yToPrice(y int, minPrice, maxPrice float64, height int) float64 {
	if height <= 1 {
		return minPrice
	}
	ratio := float64(y) / float64(height-1)
	return maxPrice - ratio*(maxPrice-minPrice)
}

// SetFocus sets the focus state of the panel.
func (p *CandlestickPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *CandlestickPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSymbol selects the instrument to chart. History is kept for every
// symbol, so switching back and forth does not lose candles.
func (p *CandlestickPanel) SetSymbol(symbol string) {
	p.symbol = symbol
}

// Symbol returns the charted symbol.
func (p *CandlestickPanel) Symbol() string {
	return p.symbol
}

// Record appends one candle per instrument for a completed turn, opening at
// the price before the turn and closing at the price after it.
func (p *CandlestickPanel) Record(day int, before, after market.Universe) {
	for _, inst := range after.Instruments() {
		closePrice := inst.CurrentPrice
		open := closePrice
		if prev, ok := before.Get(inst.Symbol); ok {
			open = prev.CurrentPrice
		}

		c := Candle{
			Day:   day,
			Open:  open,
			High:  decimal.Max(open, closePrice),
			Low:   decimal.Min(open, closePrice),
			Close: closePrice,
		}

		candles := append(p.history[inst.Symbol], c)
		if len(candles) > p.maxCandles {
			candles = candles[len(candles)-p.maxCandles:]
		}
		p.history[inst.Symbol] = candles
	}
}

// Candles returns the recorded candles for the charted symbol.
func (p *CandlestickPanel) Candles() []Candle {
	return p.history[p.symbol]
}
