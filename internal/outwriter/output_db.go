package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDBStatus outputs the status of the reference database.
func WriteDBStatus(status schema.ReferenceDBStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"table", "rows"}, func(cw *csv.Writer) error {
				for _, name := range slices.Sorted(maps.Keys(status.Tables)) {
					if err := cw.Write([]string{name, strconv.Itoa(status.Tables[name])}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDBStatusText(w, status)
		}, "Wrote report")
	default:
		return errUnsupported("database status", cfg.Output)
	}
}

func writeDBStatusText(w io.Writer, status schema.ReferenceDBStatus) error {
	if _, err := fmt.Fprintf(w, "Reference Backend: %s\nConnected: %t\n", status.Backend, status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	dirty := ""
	if status.Dirty {
		dirty = " (dirty)"
	}
	if _, err := fmt.Fprintf(w, "Schema Version: %d%s\nTotal Rows: %s\n", status.Version, dirty, humanize.Comma(int64(status.TotalRows))); err != nil {
		return err
	}
	if len(status.Sources) > 0 {
		if _, err := fmt.Fprintf(w, "Sources: %s\n", strings.Join(status.Sources, ", ")); err != nil {
			return err
		}
	}
	if len(status.Tables) == 0 {
		_, err := fmt.Fprintln(w, "No reference tables stored; the built-in tables are used.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Table", "Rows"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(status.Tables))
	for _, name := range slices.Sorted(maps.Keys(status.Tables)) {
		data = append(data, []string{name, humanize.Comma(int64(status.Tables[name]))})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
