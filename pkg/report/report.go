// Package report renders estimation results as terminal tables or as JSON.
// The estimators themselves define no display format.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat accepts "text" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", errors.Errorf("unknown output format %q", s)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Printer writes one section per call. In JSON mode every section is a
// single line holding {"kind", "title", "data"}.
type Printer struct {
	out    io.Writer
	format Format
}

func New(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

type envelope struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Data  any    `json:"data"`
}

func (p *Printer) emit(kind, title string, data any, text func() string) error {
	if p.format == JSON {
		b, err := json.Marshal(envelope{Kind: kind, Title: title, Data: data})
		if err != nil {
			return errors.Wrapf(err, "encode %s", kind)
		}
		_, err = fmt.Fprintln(p.out, string(b))
		return err
	}
	var sb strings.Builder
	if title != "" {
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
	}
	sb.WriteString(text())
	sb.WriteString("\n\n")
	_, err := io.WriteString(p.out, sb.String())
	return err
}

// Note prints a line of free text. JSON output skips it.
func (p *Printer) Note(format string, args ...any) error {
	if p.format == JSON {
		return nil
	}
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}

// render builds a bordered table. Columns listed in numeric are right aligned.
func render(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func num(x float64) string {
	switch {
	case math.IsNaN(x):
		return "-"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// finite maps NaN and the infinities to null, which encoding/json cannot
// represent otherwise.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
