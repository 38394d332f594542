// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/rowtrace/session"
	"github.com/katalvlaran/rowtrace/timeline"
)

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List, export, import and delete stored sessions",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tOPERATIONS\tCURSOR\tUPDATED")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.ID, r.Operations, r.Cursor, r.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sessions (0 for all)")

	export := &cobra.Command{
		Use:   "export ID",
		Short: "Print a session record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := mgr.Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := session.MarshalRecord(rec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(b))
			return err
		},
	}

	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a record produced by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rec, err := session.UnmarshalRecord(b)
			if err != nil {
				return err
			}
			if _, err = timeline.Replay(rec.Initial, rec.Operations, rec.Cursor); err != nil {
				return fmt.Errorf("record does not replay: %w", err)
			}
			_, st, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			if err = st.Insert(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "session %s\n", rec.ID)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			return mgr.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, export, imp, del)

	return cmd
}

// mutate runs fn on a stored session, saves it and prints the present snapshot.
func (a *app) mutate(ctx context.Context, id string, fn func(*timeline.Machine) error) error {
	mgr, _, err := a.sessions(ctx)
	if err != nil {
		return err
	}
	err = mgr.Do(ctx, id, func(mc *timeline.Machine) error {
		if err := fn(mc); err != nil {
			return err
		}
		writeSnapshot(a.stdout, mc.Position(), mc.Len(), mc.Present())
		writeReport(a.stdout, mc.Explainer(), mc.Status())
		return nil
	})
	if err != nil {
		return err
	}

	return mgr.Save(ctx, id)
}

func newApplyCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "apply ID (swap I J | scale I K | add TARGET SOURCE K)",
		Short: "Apply a row operation to a session (rows are 1-based)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseOperation(args[1:])
			if err != nil {
				return err
			}
			a.strict = strict
			return a.mutate(cmd.Context(), args[0], func(mc *timeline.Machine) error {
				return mc.Apply(op)
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject adding a multiple of a row to itself")
	// Flags end at ID so negative scalars such as -2 or -1/2 stay positional.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo ID",
		Short: "Step a session back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), args[0], func(mc *timeline.Machine) error {
				if !mc.Undo() {
					fmt.Fprintln(a.stdout, "nothing to undo")
				}
				return nil
			})
		},
	}
}

func newRedoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo ID",
		Short: "Step a session forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), args[0], func(mc *timeline.Machine) error {
				if !mc.Redo() {
					fmt.Fprintln(a.stdout, "nothing to redo")
				}
				return nil
			})
		},
	}
}

func newJumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jump ID POSITION",
		Short: "Move a session to a position of its timeline (0 is the initial matrix)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: position %q", errUsage, args[1])
			}
			return a.mutate(cmd.Context(), args[0], func(mc *timeline.Machine) error {
				if !mc.JumpTo(pos) {
					fmt.Fprintf(a.stdout, "position %d is outside 0..%d\n", pos, mc.Len()-1)
				}
				return nil
			})
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a session's present snapshot, or its whole timeline with --all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			return mgr.Do(cmd.Context(), args[0], func(mc *timeline.Machine) error {
				h := mc.State()
				if all {
					for i, s := range h.Flatten() {
						writeSnapshot(a.stdout, i, h.Len(), s)
					}
				} else {
					writeSnapshot(a.stdout, h.Position(), h.Len(), h.Present)
				}
				writeReport(a.stdout, mc.Explainer(), mc.Status())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every snapshot of the timeline")

	return cmd
}
