package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/investly/internal/news"
	newsview "github.com/zappabad/investly/internal/news/view"
	"github.com/zappabad/investly/tui/styles"
)

// NewsPanel displays the headline tape, newest first, with the explanation
// of the selected headline underneath.
type NewsPanel struct {
	headlines     []newsview.Headline
	hotshot       *news.Hotshot
	selectedIndex int
	scrollOffset  int
	focused       bool
	width         int
	height        int
}

// NewNewsPanel creates a new news panel.
func NewNewsPanel() *NewsPanel {
	return &NewsPanel{}
}

// Init initializes the panel.
func (p *NewsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *NewsPanel) Update(msg tea.Msg) (*NewsPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.headlines)-1 {
				p.selectedIndex++
				visibleItems := p.visibleItems()
				if p.selectedIndex >= p.scrollOffset+visibleItems {
					p.scrollOffset = p.selectedIndex - visibleItems + 1
				}
			}
		}
	}
	return p, nil
}

func (p *NewsPanel) visibleItems() int {
	// borders, title, hotshot line and a few explanation lines
	n := p.height - 9
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the panel.
func (p *NewsPanel) View() string {
	var content strings.Builder

	if p.hotshot != nil {
		content.WriteString(styles.NewsImportantStyle.Render(
			fmt.Sprintf("🔥 %s [%s]", truncate(p.hotshot.Title, p.width-14), p.hotshot.Difficulty)))
		content.WriteString("\n")
	}

	if len(p.headlines) == 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No news yet. Play a turn."))
	} else {
		visibleItems := p.visibleItems()
		start := p.scrollOffset
		end := start + visibleItems
		if end > len(p.headlines) {
			end = len(p.headlines)
		}

		for i := start; i < end; i++ {
			h := p.headlines[i]

			headlineStyle := styles.NewsNormalStyle
			if h.Kind == news.KindHotshot {
				headlineStyle = styles.NewsImportantStyle
			}

			day := styles.TimeStyle.Render(fmt.Sprintf("D%-3d", h.Day))
			line := fmt.Sprintf("%s %s", day, headlineStyle.Render(truncate(h.Title, p.width-12)))

			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}

			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}

		if len(p.headlines) > visibleItems {
			scrollInfo := fmt.Sprintf(" (%d/%d)", p.selectedIndex+1, len(p.headlines))
			content.WriteString("\n")
			content.WriteString(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(scrollInfo))
		}

		if h, ok := p.SelectedHeadline(); ok && h.Explanation != "" {
			content.WriteString("\n\n")
			content.WriteString(styles.LabelStyle.Width(p.width - 6).Render("💡 " + h.Explanation))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📰 News", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// SetFocus sets the focus state of the panel.
func (p *NewsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *NewsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetHeadlines replaces the tape, newest first.
func (p *NewsPanel) SetHeadlines(items []newsview.Headline) {
	p.headlines = items
	if p.selectedIndex >= len(p.headlines) {
		p.selectedIndex = len(p.headlines) - 1
		if p.selectedIndex < 0 {
			p.selectedIndex = 0
		}
	}
}

// SetHotshot sets today's headline; nil hides it.
func (p *NewsPanel) SetHotshot(h *news.Hotshot) {
	p.hotshot = h
}

// SelectedHeadline returns the currently selected headline.
func (p *NewsPanel) SelectedHeadline() (newsview.Headline, bool) {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.headlines) {
		return p.headlines[p.selectedIndex], true
	}
	return newsview.Headline{}, false
}
