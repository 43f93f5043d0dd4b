package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// report is one go-pretty table printed by a command. The rounded style
// renders headers in upper case.
type report struct {
	tw      table.Writer
	columns int
}

func newReport(headers ...string) *report {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return &report{tw: tw, columns: len(headers)}
}

// alignRight right-aligns the given 1-based columns, for counts.
func (r *report) alignRight(cols ...int) *report {
	configs := make([]table.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		configs = append(configs, table.ColumnConfig{Number: c, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	r.tw.SetColumnConfigs(configs)
	return r
}

// row appends cells, padding short rows so every row spans all columns.
func (r *report) row(cells ...string) {
	row := make(table.Row, r.columns)
	for i := range row {
		row[i] = ""
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	r.tw.AppendRow(row)
}

func (r *report) String() string { return r.tw.Render() }
