package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/podcutter/internal/app"
	"github.com/five82/podcutter/internal/podlist"
	"github.com/five82/podcutter/internal/state"
)

type listedPodcast struct {
	Filename   string `json:"filename"`
	Actionable bool   `json:"actionable"`
}

type actionResult struct {
	Action   string `json:"action"`
	Filename string `json:"filename"`
	OK       bool   `json:"ok"`
	Output   string `json:"output_filename,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var forceTable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the podcast files on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(env *app.Env) error {
				if err := env.View.LoadListing(cmd.Context()); err != nil {
					return err
				}
				names := env.View.Snapshot().Listing

				if jsonOut {
					out := make([]listedPodcast, 0, len(names))
					for _, name := range names {
						out = append(out, listedPodcast{Filename: name, Actionable: env.View.Actionable(name)})
					}
					return writeJSON(cmd, out)
				}

				w := cmd.OutOrStdout()
				if len(names) == 0 {
					fmt.Fprintln(w, "No podcasts found.")
					return nil
				}
				if !forceTable && !isTerminal(w) {
					for _, name := range names {
						fmt.Fprintln(w, name)
					}
					return nil
				}

				rows := make([][]string, 0, len(names))
				for i, name := range names {
					actions := "-"
					if env.View.Actionable(name) {
						actions = "analyze, splice"
					}
					rows = append(rows, []string{strconv.Itoa(i + 1), name, actions})
				}
				fmt.Fprint(w, renderTable([]string{"#", "Filename", "Actions"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&forceTable, "table", false, "Draw a table even when stdout is not a terminal")
	return cmd
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Ask the server to detect ads in a podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(env *app.Env) error {
				filename := strings.TrimSpace(args[0])
				err := env.View.Analyze(cmd.Context(), filename)
				return reportAction(cmd, env, state.ActionAnalyze, filename, "", err, jsonOut)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newSpliceCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "splice <file>",
		Short: "Ask the server to cut the detected ads out of a podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(env *app.Env) error {
				filename := strings.TrimSpace(args[0])
				output, err := env.View.Splice(cmd.Context(), filename)
				return reportAction(cmd, env, state.ActionSplice, filename, output, err, jsonOut)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// reportAction prints the status the action left behind. A failed action
// still returns its error so the process exits non-zero.
func reportAction(cmd *cobra.Command, env *app.Env, action state.Action, filename, output string, actionErr error, jsonOut bool) error {
	// The post-action reload may have failed; report the action itself.
	status := podlist.DoneStatus(action, filename, output)
	if actionErr != nil {
		status = env.View.Snapshot().Status
	}

	if jsonOut {
		result := actionResult{
			Action:   string(action),
			Filename: filename,
			OK:       actionErr == nil,
			Output:   output,
			Status:   status,
		}
		if actionErr != nil {
			result.Error = actionErr.Error()
		}
		if err := writeJSON(cmd, result); err != nil {
			return err
		}
		return actionErr
	}

	if actionErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), status)
		return actionErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}
