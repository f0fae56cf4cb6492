package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/podcutter/internal/app"
	"github.com/five82/podcutter/internal/history"
)

type historyRecord struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Filename   string    `json:"filename"`
	OK         bool      `json:"ok"`
	Output     string    `json:"output_filename,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent analyze and splice actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(env *app.Env) error {
				if env.History == nil {
					return errors.New("action history is unavailable; see the log for the open error")
				}
				entries, err := env.History.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}

				if jsonOut {
					out := make([]historyRecord, 0, len(entries))
					for _, e := range entries {
						out = append(out, historyRecord(e))
					}
					return writeJSON(cmd, out)
				}

				w := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(w, "No actions recorded yet.")
					return nil
				}
				fmt.Fprint(w, renderTable(
					[]string{"Finished", "Action", "File", "Result", "Duration"},
					historyRows(entries),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := "ok"
		switch {
		case !e.OK:
			result = "failed"
		case e.Output != "":
			result = "ok -> " + e.Output
		}
		rows = append(rows, []string{
			e.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			e.Filename,
			result,
			e.Duration().Round(time.Millisecond).String(),
		})
	}
	return rows
}
