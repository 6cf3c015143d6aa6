package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column.
type column struct {
	title string
	right bool
}

// renderTable draws rows under cols with rounded borders. Short rows are
// padded; a non-nil footer is drawn below a separator.
func renderTable(cols []column, rows [][]string, footer []string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(cols, func(i int) string { return cols[i].title }))
	for _, row := range rows {
		tw.AppendRow(toRow(cols, cellAt(row)))
	}
	if footer != nil {
		tw.AppendFooter(toRow(cols, cellAt(footer)))
	}

	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		align := text.AlignLeft
		if c.right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			Align:            align,
			AlignFooter:      align,
			AlignHeader:      text.AlignLeft,
			WidthMax:         maxColumnWidth,
			WidthMaxEnforcer: text.WrapHard,
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// Digests are 64+ characters; wider cells wrap instead of stretching the table.
const maxColumnWidth = 72

func toRow(cols []column, cell func(int) string) table.Row {
	r := make(table.Row, len(cols))
	for i := range cols {
		r[i] = cell(i)
	}
	return r
}

func cellAt(row []string) func(int) string {
	return func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
}
