package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"            _      _  __ _   ", "#38bdf8"},
	{"   __ _  __| |_ __(_)/ _| |_ ", "#22d3ee"},
	{"  / _` |/ _` | '__| | |_| __|", "#2dd4bf"},
	{" | (_| | (_| | |  | |  _| |_ ", "#34d399"},
	{"  \\__,_|\\__,_|_|  |_|_|  \\__|", "#a3e635"},
}

// PrintBanner writes the adrift banner to w, coloured when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
