package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

// styles holds the palette for one output. Colours are dropped automatically
// when the writer is not a terminal.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	muted    lipgloss.Style
	negative lipgloss.Style
	selected lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
		header:   r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		negative: r.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		selected: r.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
	}
}

// RenderText writes the month's income table, expense table and category
// breakdown as plain columns.
func RenderText(w io.Writer, r core.MonthReport) error {
	st := newStyles(w)
	var lines []string

	lines = append(lines, st.title.Render("Month: "+r.Month.String()), "")

	lines = append(lines, st.header.Render("Income"))
	lines = append(lines, transactionLines(st, r.Income())...)
	lines = append(lines, "")

	lines = append(lines, st.header.Render("Expenses"))
	lines = append(lines, transactionLines(st, r.Expenses())...)
	lines = append(lines, "")

	s := r.Summary
	lines = append(lines, st.header.Render(fmt.Sprintf("%-10s  %12s  %8s", "Category", "Total", "%")))
	for _, share := range s.Breakdown() {
		lines = append(lines, fmt.Sprintf("%-10s  %12s  %8s",
			share.Category, amount(st, share.Total), formatPercent(share.Percent)))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%-16s %12s", "Total income:", amount(st, s.TotalIncome)))
	lines = append(lines, fmt.Sprintf("%-16s %12s", "Total expenses:", amount(st, s.TotalExpenses)))

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// RenderMonths writes one month per line, marking the selected one.
func RenderMonths(w io.Writer, months []core.MonthKey, selected core.MonthKey, hasSelection bool) error {
	st := newStyles(w)
	if len(months) == 0 {
		_, err := io.WriteString(w, st.muted.Render("No transactions yet.")+"\n")
		return err
	}

	var b strings.Builder
	for _, m := range months {
		if hasSelection && m == selected {
			b.WriteString(st.selected.Render("> " + m.String()))
		} else {
			b.WriteString("  " + m.String())
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func transactionLines(st styles, txs []core.Transaction) []string {
	if len(txs) == 0 {
		return []string{st.muted.Render("  none")}
	}
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, fmt.Sprintf("  %4d  %s  %-8s %12s  %s",
			t.ID, t.Date, t.Category, amount(st, t.Amount), t.Description))
	}
	return lines
}

func amount(st styles, d decimal.Decimal) string {
	s := core.FormatAmount(d)
	if d.IsNegative() {
		return st.negative.Render(s)
	}
	return s
}
