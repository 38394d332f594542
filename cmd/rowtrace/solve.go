// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/geometry"
	"github.com/katalvlaran/rowtrace/logger"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/playback"
	"github.com/katalvlaran/rowtrace/solution"
	"github.com/katalvlaran/rowtrace/timeline"
)

type solveFlags struct {
	file    string
	mode    string
	noPivot bool
	asJSON  bool
	play    bool
	save    bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve [MATRIX]",
		Short: "Eliminate an augmented matrix and print every step",
		Long: `Solve reads an augmented matrix as JSON rows, e.g. '[[1,2,3,14],[2,5,6,30],[3,1,1,8]]',
from the argument or from --file, and prints each elementary row operation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd.Context(), args, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read the matrix from a JSON file")
	cmd.Flags().StringVar(&f.mode, "mode", "", "REF or RREF; overrides ROWTRACE_MODE")
	cmd.Flags().BoolVar(&f.noPivot, "no-pivot", false, "disable partial pivoting")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the trace as JSON")
	cmd.Flags().BoolVar(&f.play, "play", false, "apply one step per ROWTRACE_PLAYBACK_INTERVAL")
	cmd.Flags().BoolVar(&f.save, "save", false, "keep the result as a session")

	return cmd
}

func readMatrix(args []string, file string) (matrix.Augmented, error) {
	var raw []byte
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return matrix.Augmented{}, err
		}
		raw = b
	case len(args) == 1:
		raw = []byte(args[0])
	default:
		return matrix.Augmented{}, fmt.Errorf("%w: a matrix argument or --file is required", errUsage)
	}

	var m matrix.Augmented
	if err := json.Unmarshal(raw, &m); err != nil {
		return matrix.Augmented{}, err
	}
	if err := matrix.ValidateInput(m.Data()); err != nil {
		return matrix.Augmented{}, err
	}

	return m, nil
}

func (a *app) eliminationConfig(f solveFlags) (elimination.Config, error) {
	cfg := a.cfg.EliminationConfig()
	if f.mode != "" {
		mode, err := elimination.ParseMode(f.mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if f.noPivot {
		cfg.PartialPivoting = false
	}

	return cfg, nil
}

func (a *app) solve(ctx context.Context, args []string, f solveFlags) error {
	m, err := readMatrix(args, f.file)
	if err != nil {
		return err
	}
	cfg, err := a.eliminationConfig(f)
	if err != nil {
		return err
	}

	steps := elimination.Steps(m, cfg,
		elimination.WithLogger(a.log.Named(logger.ComponentElimination)),
		elimination.WithMetrics(a.rec),
		elimination.WithExplainer(a.explainer),
	)

	mc, err := timeline.New(m,
		timeline.WithLogger(a.log.Named(logger.ComponentTimeline)),
		timeline.WithMetrics(a.rec),
		timeline.WithExplainer(a.explainer),
	)
	if err != nil {
		return err
	}

	var trace []elimination.Step
	opts := []playback.Option{
		playback.WithLogger(a.log.Named(logger.ComponentPlayback)),
		playback.WithOnStep(func(s elimination.Step) {
			trace = append(trace, s)
			if !f.asJSON {
				writeStep(a.stdout, s)
			}
		}),
	}
	player, err := playback.New(a.cfg.PlaybackInterval, opts...)
	if err != nil {
		return err
	}
	if f.play {
		_, err = player.Run(ctx, mc, steps)
	} else {
		_, err = player.Drain(mc, steps)
	}
	if err != nil {
		return err
	}

	report := mc.Status()
	if f.asJSON {
		if err = writeTraceJSON(a, trace, report); err != nil {
			return err
		}
	} else {
		writeReport(a.stdout, a.explainer, report)
	}

	if f.save {
		return a.saveSolved(ctx, mc)
	}

	return nil
}

// saveSolved stores the solved timeline as a new session and prints its id.
func (a *app) saveSolved(ctx context.Context, mc *timeline.Machine) error {
	mgr, _, err := a.sessions(ctx)
	if err != nil {
		return err
	}
	id, err := mgr.Create(ctx, mc.Initial(), a.locale)
	if err != nil {
		return err
	}
	if err = mgr.Do(ctx, id, func(s *timeline.Machine) error {
		for _, op := range mc.Operations() {
			if err := s.Apply(op); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if err = mgr.Save(ctx, id); err != nil {
		return err
	}
	a.log.Info("session saved", zap.String("session_id", id))
	fmt.Fprintf(a.stdout, "session %s\n", id)

	return nil
}

type jsonStep struct {
	Index       int                 `json:"index"`
	Phase       string              `json:"phase"`
	Formula     string              `json:"formula,omitempty"`
	Explanation string              `json:"explanation"`
	Matrix      matrix.Augmented    `json:"matrix"`
	Projection  geometry.Projection `json:"projection"`
}

type jsonTrace struct {
	Steps    []jsonStep `json:"steps"`
	Outcome  string     `json:"outcome"`
	Solution []float64  `json:"solution,omitempty"`
	Aligned  bool       `json:"aligned"`
}

func writeTraceJSON(a *app, steps []elimination.Step, r solution.Report) error {
	out := jsonTrace{
		Steps:    make([]jsonStep, 0, len(steps)),
		Outcome:  r.Kind.String(),
		Solution: r.Solution,
		Aligned:  r.Aligned,
	}
	for _, s := range steps {
		out.Steps = append(out.Steps, jsonStep{
			Index:       s.Index,
			Phase:       s.Phase.String(),
			Formula:     s.Formula,
			Explanation: s.Explanation,
			Matrix:      s.Matrix,
			Projection:  s.Projection,
		})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(b))

	return err
}
