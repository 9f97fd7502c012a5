package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands in English style.
var printer = message.NewPrinter(language.English)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// FormatInt formats n with thousand separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDecimal rounds d to prec places and groups the integer part.
func FormatDecimal(d decimal.Decimal, prec int32) string {
	s := d.StringFixed(prec)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + s
	}
	out := sign + FormatInt(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatFloat is FormatDecimal for float64 values.
func FormatFloat(f float64, prec int32) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	return FormatDecimal(decimal.NewFromFloat(f), prec)
}

func money(d decimal.Decimal, prec int32) string {
	return "$" + FormatDecimal(d, prec)
}

// section is a titled block of "label  value" lines.
type section struct {
	title string
	lines [][2]string
}

// render lays sections out inside one rounded box.
func render(title string, sections ...section) string {
	width := 0
	for _, s := range sections {
		for _, l := range s.lines {
			if n := lipgloss.Width(l[0]); l[1] != "" && n > width {
				width = n
			}
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, s := range sections {
		b.WriteString("\n")
		if s.title != "" {
			b.WriteString("\n" + titleStyle.Render(s.title))
		}
		for _, l := range s.lines {
			b.WriteString("\n  ")
			if l[1] == "" {
				b.WriteString(l[0])
				continue
			}
			b.WriteString(l[0] + strings.Repeat(" ", width-lipgloss.Width(l[0])+2) + l[1])
		}
	}
	return boxStyle.Render(b.String())
}

// table renders rows with left-aligned first column and right-aligned rest.
func table(title string, head []string, rows [][]string) string {
	widths := make([]int, len(head))
	for i, h := range head {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if i < len(widths) && lipgloss.Width(c) > widths[i] {
				widths[i] = lipgloss.Width(c)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(c))
			if i == 0 {
				parts[i] = c + pad
			} else {
				parts[i] = pad + c
			}
		}
		return strings.Join(parts, "  ")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(line(head) + "\n")
	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total+2*(len(widths)-1)))
	for _, r := range rows {
		b.WriteString("\n" + line(r))
	}
	return boxStyle.Render(b.String())
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
