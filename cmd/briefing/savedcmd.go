package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/store"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

const previewWidth = 48

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved briefings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitWriter(os.Stderr, log.WarnLevel)

		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		list := d.saved.List()
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No hay artículos guardados.")
			return nil
		}
		renderSavedTable(cmd.OutOrStdout(), list)

		if db, ok := d.blobs.(*store.SQLite); ok {
			if at, found, err := db.UpdatedAt(d.cfg.Storage.Key); err == nil && found {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d saved, last change %s\n", len(list), at.Local().Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved briefing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitWriter(os.Stderr, log.WarnLevel)

		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		a, ok := d.saved.Get(args[0])
		if !ok {
			return fmt.Errorf("no saved briefing with id %s", args[0])
		}
		if _, err := d.saved.Remove(a.ID); err != nil {
			return fmt.Errorf("deleting %s: %w", a.ID, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s, %s)\n", a.ID, a.Topic, a.Date)
		return nil
	},
}

func init() {
	savedCmd.AddCommand(savedRmCmd)
}

func renderSavedTable(w io.Writer, list []model.SavedArticle) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{
			a.ID,
			a.Topic,
			a.DisplayTimestamp(),
			strconv.Itoa(len(a.Sources)),
			runewidth.Truncate(a.Headline(), previewWidth, "…"),
		})
	}

	table.Header([]string{"id", "topic", "saved", "sources", "summary"})
	table.Bulk(rows)
	table.Render()
}
