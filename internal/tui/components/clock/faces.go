package clock

import (
	"math"
	"strings"
	"time"
)

// glyphs are 3x5 block digits for the Digital face
var glyphs = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {"  █", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "▪", " ", "▪", " "},
}

// bigDigits renders the digits and colons of s in block glyphs. Any trailing
// AM/PM suffix is kept as plain text on the last row.
func bigDigits(s string) string {
	digits, suffix := s, ""
	if i := strings.IndexByte(s, ' '); i >= 0 {
		digits, suffix = s[:i], s[i+1:]
	}

	var rows [5]strings.Builder
	for i, r := range digits {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(g[row])
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	if suffix != "" {
		pad := strings.Repeat(" ", len(suffix))
		for i := range lines {
			if i == len(lines)-1 {
				lines[i] += " " + suffix
			} else {
				lines[i] += " " + pad
			}
		}
	}
	return strings.Join(lines, "\n")
}

const dialRadius = 5

// analogDial draws a round dial with hour and minute hands. Columns are
// doubled so the dial looks round in a terminal.
func analogDial(t time.Time, showSeconds bool) string {
	h := 2*dialRadius + 1
	w := 4*dialRadius + 1
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}
	cx, cy := 2*dialRadius, dialRadius

	plot := func(angle, length float64, ch rune) {
		for step := 0.0; step <= length; step += 0.25 {
			x := cx + int(math.Round(2*step*math.Sin(angle)))
			y := cy - int(math.Round(step*math.Cos(angle)))
			if y >= 0 && y < h && x >= 0 && x < w {
				grid[y][x] = ch
			}
		}
	}

	for hour := 0; hour < 12; hour++ {
		angle := float64(hour) * math.Pi / 6
		x := cx + int(math.Round(2*dialRadius*math.Sin(angle)))
		y := cy - int(math.Round(dialRadius*math.Cos(angle)))
		mark := '·'
		if hour%3 == 0 {
			mark = '◆'
		}
		grid[y][x] = mark
	}

	minutes := float64(t.Minute()) + float64(t.Second())/60
	hours := float64(t.Hour()%12) + minutes/60

	if showSeconds {
		plot(float64(t.Second())*math.Pi/30, dialRadius-1, '░')
	}
	plot(minutes*math.Pi/30, dialRadius-1, '▒')
	plot(hours*math.Pi/6, dialRadius*0.55, '█')
	grid[cy][cx] = '●'

	lines := make([]string, h)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
