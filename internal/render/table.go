package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

var (
	colorBorder  = lipgloss.Color("#404040")
	colorHeader  = lipgloss.Color("#39FF14")
	colorText    = lipgloss.Color("#E5E5E5")
	colorMuted   = lipgloss.Color("#A3A3A3")
	colorWeekend = lipgloss.Color("#FFB0A0")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	evenStyle    = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	oddStyle     = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	weekendStyle = lipgloss.NewStyle().Foreground(colorWeekend).Padding(0, 1)
)

var tableHeaders = []string{"#", "Date", "Day", "Job", "Label", "Parameters", "Origin"}

// Table renders the builds as a bordered terminal table, striped by the
// row style hints.
func Table(builds []Build) string {
	rows := make([][]string, len(builds))
	stripes := make([]string, len(builds))
	for i, b := range builds {
		rows[i] = []string{
			strconv.Itoa(b.Position + 1),
			b.Date,
			b.Weekday,
			b.ShortName,
			b.Label,
			b.ParamsShort,
			b.Origin,
		}
		stripes[i] = b.Stripe
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || row < 0 || row >= len(stripes) {
				return headerStyle
			}
			switch stripes[row] {
			case schedule.StripeWeekend.String():
				return weekendStyle
			case schedule.StripeOdd.String():
				return oddStyle
			default:
				return evenStyle
			}
		})

	return tbl.String()
}
