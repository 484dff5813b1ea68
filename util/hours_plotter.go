package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"localscoop-server/models"
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderWeeklyHoursChart writes an HTML bar chart of open hours per
// weekday for the given schedule.
func RenderWeeklyHoursChart(w io.Writer, placeName string, schedule *models.WeeklySchedule) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Weekly Opening Hours",
			Width:     "800px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Opening hours: %s", placeName),
			Subtitle: "Hours open per weekday",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	hours := openHoursPerDay(schedule)
	data := make([]opts.BarData, len(hours))
	for i, h := range hours {
		data[i] = opts.BarData{Value: h}
	}

	bar.SetXAxis(weekdayLabels).AddSeries("Open hours", data,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render hours chart: %w", err)
	}
	return nil
}

// openHoursPerDay sums the open time of each weekday, Sunday first.
// Overnight periods are split at midnight; an open period without a
// close counts to the end of its day.
func openHoursPerDay(schedule *models.WeeklySchedule) [7]float64 {
	var minutes [7]int
	if schedule == nil {
		return [7]float64{}
	}

	const dayEnd = 24 * 60
	for _, period := range schedule.Periods {
		day := period.Open.Day
		if day < 0 || day > 6 {
			continue
		}
		openMin := period.Open.MinuteOfDay()

		if period.Close == nil {
			minutes[day] += dayEnd - openMin
			continue
		}
		closeDay := period.Close.Day
		closeMin := period.Close.MinuteOfDay()
		if closeDay == day {
			if closeMin > openMin {
				minutes[day] += closeMin - openMin
			}
			continue
		}
		minutes[day] += dayEnd - openMin
		if closeDay >= 0 && closeDay <= 6 {
			minutes[closeDay] += closeMin
		}
	}

	var hours [7]float64
	for i, m := range minutes {
		hours[i] = float64(m) / 60.0
	}
	return hours
}
