package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mangareel/internal/catalog"
	"mangareel/internal/history"
	"mangareel/internal/ledger"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderCatalogTable lists every catalog entry with its rotation state.
func renderCatalogTable(items []catalog.Item, used *ledger.Set, colorize bool) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"ID", "Description", "Used"})
	for _, item := range items {
		tw.AppendRow(table.Row{item.ID, item.Description, usedLabel(used.Contains(item.ID), colorize)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
	})
	return tw.Render()
}

// renderHistoryTable lists production runs, newest first.
func renderHistoryTable(runs []history.Run, colorize bool) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Date", "Title", "Items", "IDs", "Delivered", "Created"})
	for _, run := range runs {
		tw.AppendRow(table.Row{
			run.Date,
			run.Title,
			strconv.Itoa(len(run.ItemIDs)),
			strings.Join(run.ItemIDs, ", "),
			deliveredLabel(run.Delivered, colorize),
			run.CreatedAt.Local().Format(time.DateTime),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, WidthMax: 48},
	})
	return tw.Render()
}

// Used ids are the ones the rotation will skip, so "yes" is the dim state.
func usedLabel(used, colorize bool) string {
	label := yesNo(used)
	if !colorize {
		return label
	}
	if used {
		return text.FgYellow.Sprint(label)
	}
	return text.FgGreen.Sprint(label)
}

func deliveredLabel(delivered, colorize bool) string {
	label := yesNo(delivered)
	if !colorize {
		return label
	}
	if delivered {
		return text.FgGreen.Sprint(label)
	}
	return text.FgYellow.Sprint(label)
}
