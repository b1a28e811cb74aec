package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/tui/styles"
)

// OrderInputField represents the currently focused input field.
type OrderInputField int

const (
	FieldSymbol OrderInputField = iota
	FieldSide
	FieldQuantity
	FieldSubmit
)

// OrderInputPanel handles trade entry with symbol autocomplete.
type OrderInputPanel struct {
	universe      market.Universe
	symbolInput   textinput.Model
	quantityInput textinput.Model

	// Dropdown state
	showDropdown     bool
	dropdownItems    []string
	dropdownFiltered []string
	dropdownIndex    int

	sides     []portfolio.Side
	sideIndex int

	currentField OrderInputField

	selectedSymbol string

	focused bool
	width   int
	height  int
}

// NewOrderInputPanel creates a new order input panel.
func NewOrderInputPanel(u market.Universe) *OrderInputPanel {
	symbols := u.Symbols()

	symbolInput := textinput.New()
	symbolInput.Placeholder = "Search symbol..."
	symbolInput.Width = 15
	symbolInput.CharLimit = 10

	quantityInput := textinput.New()
	quantityInput.Placeholder = "Shares"
	quantityInput.Width = 10
	quantityInput.CharLimit = 12

	return &OrderInputPanel{
		universe:         u,
		symbolInput:      symbolInput,
		quantityInput:    quantityInput,
		dropdownItems:    symbols,
		dropdownFiltered: symbols,
		sides:            []portfolio.Side{portfolio.SideBuy, portfolio.SideSell},
		currentField:     FieldSymbol,
	}
}

// Init initializes the panel.
func (p *OrderInputPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *OrderInputPanel) Update(msg tea.Msg) (*OrderInputPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("down"))):
			p.nextField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("up"))):
			p.prevField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if p.currentField == FieldSubmit {
				return p, p.submitOrder()
			}
			p.nextField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			p.showDropdown = false
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
			if p.showDropdown {
				if p.dropdownIndex > 0 {
					p.dropdownIndex--
				}
				return p, nil
			}
			if p.currentField == FieldSide {
				if p.sideIndex > 0 {
					p.sideIndex--
				}
				return p, nil
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("right"))):
			if p.showDropdown {
				if p.dropdownIndex < len(p.dropdownFiltered)-1 {
					p.dropdownIndex++
				}
				return p, nil
			}
			if p.currentField == FieldSide {
				if p.sideIndex < len(p.sides)-1 {
					p.sideIndex++
				}
				return p, nil
			}
		}
	}

	switch p.currentField {
	case FieldSymbol:
		p.symbolInput, cmd = p.symbolInput.Update(msg)
		p.filterDropdown(p.symbolInput.Value())
		p.showDropdown = len(p.symbolInput.Value()) > 0

	case FieldQuantity:
		p.quantityInput, cmd = p.quantityInput.Update(msg)
	}

	return p, cmd
}

// View renders the panel.
func (p *OrderInputPanel) View() string {
	var content strings.Builder

	content.WriteString(p.renderField("Symbol\n", FieldSymbol, p.renderSymbolField()))
	content.WriteString("\n")

	content.WriteString(p.renderField("Side", FieldSide, p.renderSideField()))
	content.WriteString("\n")

	content.WriteString(p.renderField("Qty", FieldQuantity, p.quantityInput.View()))
	content.WriteString("\n\n")

	submitStyle := styles.InputStyle
	if p.currentField == FieldSubmit && p.focused {
		submitStyle = styles.FocusedInputStyle.Bold(true).Foreground(styles.PrimaryColor)
	}
	content.WriteString(submitStyle.Render("  [Submit Trade]  "))

	content.WriteString("\n\n")
	content.WriteString(p.renderOrderSummary())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📝 Trade", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *OrderInputPanel) renderField(label string, field OrderInputField, inputView string) string {
	labelStyle := styles.LabelStyle
	if p.currentField == field && p.focused {
		labelStyle = labelStyle.Foreground(styles.PrimaryColor)
	}
	return labelStyle.Render(fmt.Sprintf("%-8s", label)) + inputView
}

func (p *OrderInputPanel) renderSymbolField() string {
	var result strings.Builder

	inputStyle := styles.InputStyle
	if p.currentField == FieldSymbol && p.focused {
		inputStyle = styles.FocusedInputStyle
	}
	result.WriteString(inputStyle.Render(p.symbolInput.View()))

	if p.showDropdown && len(p.dropdownFiltered) > 0 {
		result.WriteString("\n")
		maxShow := 5
		if len(p.dropdownFiltered) < maxShow {
			maxShow = len(p.dropdownFiltered)
		}

		for i := 0; i < maxShow; i++ {
			item := p.dropdownFiltered[i]
			style := styles.DropdownItemStyle
			if i == p.dropdownIndex {
				style = styles.DropdownSelectedStyle
			}

			highlighted := p.highlightMatch(item, p.symbolInput.Value())
			result.WriteString("         " + style.Render(highlighted))
			if i < maxShow-1 {
				result.WriteString("\n")
			}
		}
	}

	return result.String()
}

func (p *OrderInputPanel) renderSideField() string {
	var items []string
	for i, side := range p.sides {
		style := styles.DropdownItemStyle
		if i == p.sideIndex {
			if p.currentField == FieldSide && p.focused {
				style = styles.DropdownSelectedStyle
			} else {
				style = styles.DropdownItemStyle.Bold(true)
			}
			if side == portfolio.SideBuy {
				style = style.Foreground(styles.BuyColor)
			} else {
				style = style.Foreground(styles.SellColor)
			}
		}
		items = append(items, style.Render(strings.ToUpper(side.String())))
	}
	return strings.Join(items, " | ")
}

func (p *OrderInputPanel) renderOrderSummary() string {
	var parts []string

	symbol := p.selectedSymbol
	if symbol == "" {
		symbol = "---"
	}
	parts = append(parts, symbol)

	side := p.sides[p.sideIndex]
	sideStyle := styles.BuyStyle
	if side == portfolio.SideSell {
		sideStyle = styles.SellStyle
	}
	parts = append(parts, sideStyle.Render(strings.ToUpper(side.String())))

	qty := p.quantityInput.Value()
	if qty == "" {
		qty = "0"
	}
	parts = append(parts, "x"+qty)

	line := styles.HeaderStyle.Render("Trade: ") + strings.Join(parts, " ")
	if est, ok := p.estimate(); ok {
		line += "\n" + styles.HeaderStyle.Render("Est:   ") + styles.FormatMoney(est)
	}
	return line
}

// estimate is quantity times the current price, before the trade settles.
func (p *OrderInputPanel) estimate() (decimal.Decimal, bool) {
	price, err := p.universe.Price(p.selectedSymbol)
	if err != nil {
		return decimal.Zero, false
	}
	qty, err := strconv.ParseInt(p.quantityInput.Value(), 10, 64)
	if err != nil || qty <= 0 {
		return decimal.Zero, false
	}
	return market.RoundPrice(price.Mul(decimal.NewFromInt(qty))), true
}

func (p *OrderInputPanel) filterDropdown(query string) {
	query = strings.ToUpper(query)
	p.dropdownFiltered = nil
	p.dropdownIndex = 0

	for _, item := range p.dropdownItems {
		if strings.Contains(strings.ToUpper(item), query) {
			p.dropdownFiltered = append(p.dropdownFiltered, item)
		}
	}
}

func (p *OrderInputPanel) highlightMatch(item, query string) string {
	if query == "" {
		return item
	}

	upper := strings.ToUpper(item)
	idx := strings.Index(upper, strings.ToUpper(query))
	if idx == -1 {
		return item
	}

	before := item[:idx]
	match := item[idx : idx+len(query)]
	after := item[idx+len(query):]

	return before + styles.DropdownMatchStyle.Render(match) + after
}

func (p *OrderInputPanel) selectDropdownItem() {
	if !p.showDropdown {
		// typed an exact symbol without opening the list
		if sym := strings.ToUpper(strings.TrimSpace(p.symbolInput.Value())); p.universe.Has(sym) {
			p.symbolInput.SetValue(sym)
			p.selectedSymbol = sym
		}
		return
	}
	if p.dropdownIndex < len(p.dropdownFiltered) {
		selected := p.dropdownFiltered[p.dropdownIndex]
		p.symbolInput.SetValue(selected)
		p.selectedSymbol = selected
	}
}

func (p *OrderInputPanel) nextField() {
	switch p.currentField {
	case FieldSymbol:
		p.selectDropdownItem()
		p.currentField = FieldSide
		p.symbolInput.Blur()
	case FieldSide:
		p.currentField = FieldQuantity
		p.quantityInput.Focus()
	case FieldQuantity:
		p.currentField = FieldSubmit
		p.quantityInput.Blur()
	case FieldSubmit:
		p.currentField = FieldSymbol
		p.symbolInput.Focus()
	}
	p.showDropdown = false
}

func (p *OrderInputPanel) prevField() {
	p.showDropdown = false
	switch p.currentField {
	case FieldSymbol:
		p.currentField = FieldSubmit
		p.symbolInput.Blur()
	case FieldSide:
		p.currentField = FieldSymbol
		p.symbolInput.Focus()
	case FieldQuantity:
		p.currentField = FieldSide
		p.quantityInput.Blur()
	case FieldSubmit:
		p.currentField = FieldQuantity
		p.quantityInput.Focus()
	}
}

func (p *OrderInputPanel) submitOrder() tea.Cmd {
	if p.selectedSymbol == "" {
		return nil
	}

	qty, err := strconv.ParseInt(p.quantityInput.Value(), 10, 64)
	if err != nil || qty <= 0 {
		return nil
	}

	msg := OrderSubmitMsg{
		Symbol:   p.selectedSymbol,
		Side:     p.sides[p.sideIndex],
		Quantity: qty,
	}
	return func() tea.Msg { return msg }
}

// SetFocus sets the focus state of the panel.
func (p *OrderInputPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused {
		switch p.currentField {
		case FieldSymbol:
			p.symbolInput.Focus()
		case FieldQuantity:
			p.quantityInput.Focus()
		}
	} else {
		p.symbolInput.Blur()
		p.quantityInput.Blur()
	}
}

// Editing reports whether a text field currently has the cursor.
func (p *OrderInputPanel) Editing() bool {
	return p.focused && (p.currentField == FieldSymbol || p.currentField == FieldQuantity)
}

// SetSize sets the panel dimensions.
func (p *OrderInputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetUniverse refreshes the prices used for the cost estimate.
func (p *OrderInputPanel) SetUniverse(u market.Universe) {
	p.universe = u
}

// SetSymbol pre-fills the symbol field.
func (p *OrderInputPanel) SetSymbol(symbol string) {
	p.symbolInput.SetValue(symbol)
	p.selectedSymbol = symbol
}

// Reset clears the input fields.
func (p *OrderInputPanel) Reset() {
	p.symbolInput.SetValue("")
	p.quantityInput.SetValue("")
	p.selectedSymbol = ""
	p.currentField = FieldSymbol
	p.sideIndex = 0
	p.showDropdown = false
}

// OrderSubmitMsg is sent when a trade is submitted.
type OrderSubmitMsg struct {
	Symbol   string
	Side     portfolio.Side
	Quantity int64
}
