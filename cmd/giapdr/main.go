// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Command giapdr runs the IC3/PDR engine over an AIGER circuit.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erigontech/gia-pdr/aiger"
	"github.com/erigontech/gia-pdr/pdr"
	"github.com/erigontech/gia-pdr/satsolver"
)

type cliFlags struct {
	profile      string
	output       int
	solveAll     bool
	monoCnf      bool
	twoRounds    bool
	shortest     bool
	skipGeneral  bool
	frameMax     int
	recycle      int
	confLimit    int
	timeout      time.Duration
	dumpInv      string
	checkpoint   string
	loadCkpt     bool
	revalidate   bool
	verbose      bool
	veryVerbose  bool
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	flags := &cliFlags{}
	root := newRootCmd(flags, logger)
	if err := root.Execute(); err != nil {
		logger.Error("giapdr failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(flags *cliFlags, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "giapdr <circuit.aig>",
		Short: "Property-directed reachability over an AIGER circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], flags, logger)
		},
	}

	pf := cmd.Flags()
	pf.StringVar(&flags.profile, "profile", "", "TOML file overriding the default Pars before flag parsing")
	pf.IntVar(&flags.output, "output", 0, "property (PO) index to solve when --all is not set")
	pf.BoolVar(&flags.solveAll, "all", false, "solve every PO in one run")
	pf.BoolVar(&flags.monoCnf, "mono-cnf", false, "use the monolithic CNF facade instead of on-demand")
	pf.BoolVar(&flags.twoRounds, "two-rounds", false, "set Pars.FTwoRounds (not read by the engine)")
	pf.BoolVar(&flags.shortest, "shortest", false, "set Pars.FShortest (not read by the engine)")
	pf.BoolVar(&flags.skipGeneral, "skip-generalize", false, "skip clause generalization (debug only)")
	pf.IntVar(&flags.frameMax, "frame-max", 10000, "abort once this many frames have been opened")
	pf.IntVar(&flags.recycle, "recycle", 300, "re-create a frame's SAT solver after this many activation literals")
	pf.IntVar(&flags.confLimit, "conflict-limit", 0, "per-query conflict budget (0 = unlimited)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "wall-clock budget for the whole run (0 = unlimited)")
	pf.StringVar(&flags.dumpInv, "dump-invariant", "", "write the proved invariant as a PLA file to this path")
	pf.StringVar(&flags.checkpoint, "checkpoint", "", "checkpoint file to load from and save to")
	pf.BoolVar(&flags.loadCkpt, "resume", false, "load --checkpoint before solving instead of starting fresh")
	pf.BoolVar(&flags.revalidate, "revalidate", true, "re-check reloaded clauses by relative induction")
	pf.BoolVar(&flags.verbose, "verbose", false, "set Pars.FVerbose (not read by the engine)")
	pf.BoolVar(&flags.veryVerbose, "very-verbose", false, "set Pars.FVeryVerbose (not read by the engine)")

	return cmd
}

func run(path string, flags *cliFlags, logger *zap.Logger) error {
	pars := pdr.DefaultPars()
	if flags.profile != "" {
		data, err := os.ReadFile(flags.profile)
		if err != nil {
			return errors.Wrapf(err, "giapdr: read profile %s", flags.profile)
		}
		if err := toml.Unmarshal(data, &pars); err != nil {
			return errors.Wrapf(err, "giapdr: parse profile %s", flags.profile)
		}
	}
	pars.IOutput = flags.output
	pars.FSolveAll = flags.solveAll
	pars.FMonoCnf = flags.monoCnf
	pars.FTwoRounds = flags.twoRounds
	pars.FShortest = flags.shortest
	pars.FSkipGeneral = flags.skipGeneral
	pars.NFrameMax = flags.frameMax
	pars.NRecycle = flags.recycle
	pars.NConfLimit = flags.confLimit
	pars.NTimeOut = flags.timeout
	pars.FVerbose = flags.verbose
	pars.FVeryVerbose = flags.veryVerbose
	pars.FDumpInv = flags.dumpInv != ""

	m, err := aiger.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "giapdr: load %s", path)
	}
	logger.Info("loaded circuit",
		zap.String("path", path),
		zap.Int("pis", m.NumPis()),
		zap.Int("regs", m.NumRegs()),
		zap.Int("pos", m.NumPos()),
		zap.Int("ands", m.NumAnds()),
	)

	engine := pdr.NewEngine(m, pars, func() satsolver.Solver { return satsolver.NewGiniSolver() })

	if flags.checkpoint != "" && flags.loadCkpt {
		if err := engine.LoadCheckpoint(flags.checkpoint, flags.revalidate); err != nil {
			return errors.Wrapf(err, "giapdr: load checkpoint %s", flags.checkpoint)
		}
	}

	verdicts := engine.Solve()

	if flags.checkpoint != "" {
		if err := engine.SaveCheckpoint(flags.checkpoint); err != nil {
			return errors.Wrapf(err, "giapdr: save checkpoint %s", flags.checkpoint)
		}
	}

	for po, v := range verdicts {
		fmt.Printf("po%d: %s\n", po, verdictString(v))
		if v == pdr.Disproved {
			if cex := engine.Cex(po); cex != nil {
				fmt.Printf("  cex: frame=%d regs=%d pis=%d\n", cex.IFrame, cex.NRegs, cex.NPis)
			}
		}
	}

	if flags.dumpInv != "" {
		f, err := os.Create(flags.dumpInv)
		if err != nil {
			return errors.Wrapf(err, "giapdr: create %s", flags.dumpInv)
		}
		defer f.Close()
		if err := engine.DumpInvariantPLA(f, m); err != nil {
			return errors.Wrapf(err, "giapdr: dump invariant to %s", flags.dumpInv)
		}
	}

	return nil
}

func verdictString(v pdr.Verdict) string {
	switch v {
	case pdr.Proved:
		return "proved"
	case pdr.Disproved:
		return "disproved"
	default:
		return "undecided"
	}
}
