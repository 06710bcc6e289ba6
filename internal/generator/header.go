package generator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// HeaderField is one labeled summary line of the script header. The label
// is padded with "." fill characters up to a uniform column.
type HeaderField struct {
	Label string
	Value string
}

// generateHeader builds the boxed comment header. The field list is declared
// once and rendered in a single pass; the padding column is computed from the
// longest line of the whole block.
func (g *Generator) generateHeader(req Request, entryCount int) string {
	title := "Generated script for Mikrotik RouterOS by " + generatorName + " v" + g.Version

	sourceDisplay := req.SourceDisplay
	if sourceDisplay == "" {
		sourceDisplay = req.SourcePath
	}

	fields := []HeaderField{
		{Label: "Date:", Value: g.Now().Format(g.DatetimeFormat)},
		{Label: "Address List:", Value: req.ListName},
		{Label: "Source:", Value: sourceDisplay},
		{Label: "Entries:", Value: strconv.Itoa(entryCount)},
	}

	var extra []string
	for _, line := range req.Header {
		extra = append(extra, strings.TrimSpace(line))
	}

	// The column is derived from the longest line of the block, counted in
	// runes so non-ASCII values keep the box aligned. A labeled field
	// renders as "Label: .... value" and needs at least one fill dot.
	width := utf8.RuneCountInString(title)
	for _, f := range fields {
		if l := utf8.RuneCountInString(f.Label) + 3 + utf8.RuneCountInString(f.Value); l > width {
			width = l
		}
	}
	for _, line := range extra {
		if l := utf8.RuneCountInString(line); l > width {
			width = l
		}
	}

	divider := "# ╠" + strings.Repeat("═", width+2) + "╣"

	var lines []string
	lines = append(lines, "# ╔"+strings.Repeat("═", width+2)+"╗")
	lines = append(lines, boxRow(title, width))
	lines = append(lines, divider)
	for _, f := range fields {
		lines = append(lines, boxRow(padField(f, width), width))
	}
	if len(extra) > 0 {
		lines = append(lines, divider)
		for _, line := range extra {
			lines = append(lines, boxRow(line, width))
		}
	}
	lines = append(lines, "# ╚"+strings.Repeat("═", width+2)+"╝")

	return strings.Join(lines, "\n")
}

// padField fills the gap between label and value with "." so the value ends
// at the right edge of the block.
func padField(f HeaderField, width int) string {
	fill := width - utf8.RuneCountInString(f.Label) - utf8.RuneCountInString(f.Value) - 2
	if fill < 0 {
		fill = 0
	}
	return f.Label + " " + strings.Repeat(".", fill) + " " + f.Value
}

func boxRow(content string, width int) string {
	pad := width - utf8.RuneCountInString(content)
	if pad < 0 {
		pad = 0
	}
	return "# ║ " + content + strings.Repeat(" ", pad) + " ║"
}
