// Package render formats timeline state as plain-text tables for humans
// (terminal clients hitting the summary endpoint, debug logs).
package render

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Timeline renders one row per clip, grouped by kind then track order.
// Empty tracks still get a row so the layout is visible.
func Timeline(tl domain.Timeline) string {
	headers := []string{"Kind", "Track", "#", "Clip", "Start", "End", "Duration", "Offset"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}

	var rows [][]string
	for _, kind := range domain.Kinds() {
		for ti, tr := range tl.Tracks[kind] {
			label := strconv.Itoa(ti+1) + " " + shortID(tr.ID)
			if len(tr.Clips) == 0 {
				rows = append(rows, []string{string(kind), label, "", "(empty)", "", "", "", ""})
				continue
			}
			for ci, c := range tr.Clips {
				rows = append(rows, []string{
					string(kind),
					label,
					strconv.Itoa(ci),
					c.Name,
					seconds(c.StartTime),
					seconds(c.End()),
					seconds(c.Duration),
					seconds(c.MediaOffset),
				})
			}
		}
	}

	footer := []string{"", "", "", "total", "", seconds(tl.TotalDuration()), "", ""}
	return renderTable(headers, rows, footer, aligns)
}

// Assets renders the registry in registration order.
func Assets(assets []domain.Asset) string {
	headers := []string{"ID", "Name", "Kind", "Duration", "Source"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{shortID(a.ID), a.Name, string(a.Kind), seconds(a.Duration), a.SourceRef})
	}
	return renderTable(headers, rows, nil, aligns)
}

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if footer != nil {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "s"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
