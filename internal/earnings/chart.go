package earnings

import (
	"fmt"
	"math"
	"strings"
)

const chartPadding = 32

// RenderSVG рисует линейный график с заливкой по дням отчета
func RenderSVG(report Report, width, height int) string {
	if width <= 2*chartPadding {
		width = 640
	}
	if height <= 2*chartPadding {
		height = 240
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)

	n := len(report.Days)
	if n == 0 {
		b.WriteString(`</svg>`)
		return b.String()
	}

	maxTotal := 0.0
	for _, d := range report.Days {
		maxTotal = math.Max(maxTotal, d.Total)
	}
	if maxTotal == 0 {
		maxTotal = 1
	}

	plotW := float64(width - 2*chartPadding)
	plotH := float64(height - 2*chartPadding)
	baseY := float64(height - chartPadding)

	points := make([]string, n)
	for i, d := range report.Days {
		x := float64(chartPadding)
		if n > 1 {
			x += plotW * float64(i) / float64(n-1)
		} else {
			x += plotW / 2
		}
		y := baseY - plotH*d.Total/maxTotal
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	first := strings.Split(points[0], ",")[0]
	last := strings.Split(points[n-1], ",")[0]
	fmt.Fprintf(&b, `<polygon fill="#c7d2fe" fill-opacity="0.6" points="%s,%.1f %s %s,%.1f"/>`,
		first, baseY, strings.Join(points, " "), last, baseY)
	fmt.Fprintf(&b, `<polyline fill="none" stroke="#4f46e5" stroke-width="2" points="%s"/>`,
		strings.Join(points, " "))
	fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#9ca3af"/>`,
		chartPadding, baseY, width-chartPadding, baseY)

	for i, d := range report.Days {
		if n > 7 && i%5 != 0 && i != n-1 {
			continue
		}
		xy := strings.Split(points[i], ",")
		fmt.Fprintf(&b, `<text x="%s" y="%d" font-size="10" text-anchor="middle">%02d/%02d</text>`,
			xy[0], height-chartPadding/3, d.Date.Day(), int(d.Date.Month()))
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// Breakdown построчная расшифровка по дням
func Breakdown(report Report) []string {
	lines := make([]string, 0, len(report.Days)+1)
	for _, d := range report.Days {
		lines = append(lines, fmt.Sprintf("%s: $%s (%d turnos)", d.Key, FormatAmount(d.Total), d.Bookings))
	}
	lines = append(lines, fmt.Sprintf("Total: $%s (%d turnos)", FormatAmount(report.Total), report.Count))
	return lines
}

// FormatAmount форматирует сумму с разделителем тысяч "." как принято в es-AR
func FormatAmount(v float64) string {
	whole := int64(math.Round(v * 100))
	cents := whole % 100
	whole /= 100

	s := fmt.Sprintf("%d", whole)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ".")
	if cents != 0 {
		out += fmt.Sprintf(",%02d", cents)
	}
	return out
}
