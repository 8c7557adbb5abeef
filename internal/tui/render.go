package tui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/bizfindr/bizfindr/internal/core/charts"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/styles"
	"github.com/bizfindr/bizfindr/internal/core/widgets"
)

const (
	maxBarWidth = 30
	labelWidth  = 22
)

func (m Model) render() string {
	parts := []string{m.renderNavbar()}
	if banners := m.renderBanners(); banners != "" {
		parts = append(parts, banners)
	}
	parts = append(parts,
		m.renderTabs(),
		m.renderSearch(),
		m.viewport.View(),
		m.renderFooter(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderNavbar() string {
	doc := m.opts.Doc

	brand := styles.BrandStyle.Render(styles.IconBuildings + " BizFindr")

	var stat string
	if el := doc.ByID(page.IDStatsCount); el != nil {
		stat = styles.StatStyle.Render(doc.Text(el))
	}

	var button string
	if btn := doc.ByID(page.IDRefreshData); btn != nil {
		label := doc.OwnText(btn)
		if doc.Disabled(btn) {
			button = styles.ButtonBusyStyle.Render(m.spinner.View() + " " + label)
		} else {
			button = styles.ButtonStyle.Render(styles.IconRefresh + " " + label)
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", stat)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(button)-2, 1)
	return styles.NavbarStyle.Render(left + strings.Repeat(" ", gap) + button)
}

func (m Model) renderBanners() string {
	active := m.opts.Center.Active()
	if len(active) == 0 {
		return ""
	}

	lines := make([]string, 0, len(active))
	for _, b := range active {
		n := b.Notification()
		sev := string(n.Severity)
		style := styles.BannerStyle(sev)
		if m.width > 0 {
			style = style.Width(m.width)
		}
		lines = append(lines, style.Render(styles.BannerIcon(sev)+" "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTabs() string {
	doc := m.opts.Doc
	links := doc.QueryAll(`a[data-bs-toggle="tab"]`)

	tabs := make([]string, 0, len(links))
	for _, l := range links {
		label := doc.Text(l)
		if doc.HasClass(l, "active") {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSearch() string {
	prompt := styles.SearchPromptStyle.Render(styles.IconSearch + " ")
	if m.searching {
		return prompt + m.input.View()
	}

	var label string
	if form := m.opts.Search.Form(); form != nil {
		if btn := m.opts.Doc.QueryIn(form, `button[type="submit"]`); btn != nil {
			label = m.opts.Doc.OwnText(btn)
		}
	}

	q := m.input.Value()
	if q == "" {
		return prompt + styles.TextMutedStyle.Render("press / to search")
	}
	return prompt + q + styles.TextMutedStyle.Render("  ["+label+"]")
}

func (m Model) renderFooter() string {
	bindings := m.keys.shortHelp()
	if m.searching {
		bindings = []key.Binding{m.searchKeys.Submit, m.searchKeys.Cancel}
	}

	help := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	footer := styles.HelpStyle.Render(strings.Join(help, " • "))

	if m.opts.BackToTop.Visible() {
		footer = styles.BackToTopStyle.Render(styles.IconArrowUp+" top (g)") + " " + footer
	}
	return footer
}

// renderBody renders the content of the active tab.
func (m Model) renderBody() string {
	if m.opts.Tabs.Active() == page.TabNotifications {
		return m.renderHistory()
	}
	return m.renderOverview()
}

func (m Model) renderOverview() string {
	doc := m.opts.Doc
	var b strings.Builder

	total := "loading..."
	if el := doc.ByID(page.IDStatsCount); el != nil {
		if text := doc.Text(el); text != "" {
			total = text
		}
	}
	fmt.Fprintf(&b, "%-*s%s\n", labelWidth, "Total registrations", total)

	if m.opts.State != nil {
		if raw := m.opts.State.LastUpdated(); raw != "" {
			fmt.Fprintf(&b, "%-*s%s (%s)\n", labelWidth, "Last updated",
				widgets.FormatDate(raw), widgets.FormatRelative(raw, m.opts.Now()))
		} else {
			fmt.Fprintf(&b, "%-*s%s\n", labelWidth, "Last updated", widgets.FormatDate(""))
		}
	}

	sections := []struct {
		id    string
		title string
	}{
		{page.IDBusinessTypes, "Business types"},
		{page.IDRegistrationTrd, "Registration trends"},
	}
	for _, s := range sections {
		d, ok, err := charts.FromElement(doc, doc.ByID(s.id))
		if err != nil || !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styles.CommandHeaderStyle.Render(s.title))
		b.WriteString("\n")
		b.WriteString(renderBars(d))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderBars draws the first dataset of d as horizontal bars.
func renderBars(d charts.Data) string {
	if len(d.Datasets) == 0 {
		return ""
	}
	values := d.Datasets[0].Data

	var peak float64
	for _, v := range values {
		peak = math.Max(peak, v)
	}

	var b strings.Builder
	for i, label := range d.Labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		width := 0
		if peak > 0 {
			width = int(math.Round(v / peak * maxBarWidth))
		}
		fmt.Fprintf(&b, "  %-*s%s %s\n", labelWidth, label,
			strings.Repeat("█", width), humanize.Comma(int64(v)))
	}
	return b.String()
}

func (m Model) renderHistory() string {
	if m.historyErr != nil {
		return styles.TextErrorStyle.Render(fmt.Sprintf("failed to load notifications: %v", m.historyErr))
	}
	if len(m.history) == 0 {
		return styles.TextMutedStyle.Render("No notifications")
	}

	now := m.opts.Now()
	lines := make([]string, 0, len(m.history))
	for _, n := range m.history {
		sev := string(n.Severity)
		when := humanize.RelTime(n.CreatedAt, now, "ago", "from now")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.BannerIcon(sev),
			n.Message,
			styles.TextMutedStyle.Render("· "+when)))
	}
	return strings.Join(lines, "\n")
}
