/*
 * pipeline.go, part of govib.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	chem "github.com/rmera/govib"
	"github.com/rmera/govib/chemplot"
	"github.com/rmera/govib/hessian"
	"github.com/rmera/govib/internal/config"
	"github.com/rmera/govib/nma"
	"github.com/rmera/govib/sink"
	"github.com/rmera/govib/wigner"
	"github.com/sirupsen/logrus"
)

// system is a molecule with its Hessian, masses and normal modes.
type system struct {
	data   *hessian.Data
	masses []float64
	modes  *nma.ModeSet
}

func loadSystem(c *config.Config, log logrus.FieldLogger) (*system, error) {
	var symbols []string
	if len(c.Symbols) > 0 {
		symbols = c.Symbols
	}
	D, err := hessian.ReadFile(c.Hessian, symbols)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":    c.Hessian,
		"atoms":   D.Geometry.Len(),
		"npoints": D.NPoints,
		"disp":    D.Displacement,
	}).Debug("Hessian read")
	table := chem.DefaultMassTable()
	if len(c.Masses) > 0 {
		over, err := chem.ParseMassOverrides(c.Masses)
		if err != nil {
			return nil, err
		}
		table.Override(over)
		log.WithField("masses", c.Masses).Info("Mass overrides applied")
	}
	masses, err := D.Geometry.Masses(table)
	if err != nil {
		return nil, err
	}
	modes, err := nma.NormalModes(D.Geometry, D.Hessian, masses)
	if err != nil {
		return nil, err
	}
	return &system{data: D, masses: masses, modes: modes}, nil
}

// analyze writes the normal mode table and, if requested, the mode animations.
func (s *system) analyze(c *config.Config, out io.Writer, log logrus.FieldLogger) error {
	if err := nma.WriteAnalysis(out, s.modes, chem.Beta(c.Temperature)); err != nil {
		return err
	}
	if c.Viz.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Viz.Dir, 0o755); err != nil {
		return err
	}
	for i := 0; i < s.modes.Len(); i++ {
		frames, err := nma.ModeFrames(s.data.Geometry, s.modes, i, c.Viz.Frames, c.Viz.Dx)
		if err != nil {
			return err
		}
		name := filepath.Join(c.Viz.Dir, fmt.Sprintf("%04d.xyz", i))
		if err = writeFrames(name, frames); err != nil {
			return err
		}
	}
	log.WithFields(logrus.Fields{"dir": c.Viz.Dir, "modes": s.modes.Len()}).Info("Normal mode animations written")
	return nil
}

func writeFrames(name string, frames []*chem.Geometry) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = chem.XYZTrajWrite(f, frames, chem.Bohr2A); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sinks builds the sinks requested in c.
func (s *system) sinks(c *config.Config, S *wigner.Sampler, runID string, seed uint64) (sink.Multi, error) {
	F, err := sink.NewFiles(c.OutputDir)
	if err != nil {
		return nil, err
	}
	ret := sink.Multi{F}
	if c.Trajectory != "" {
		ret = append(ret, sink.NewTrajectory(c.Trajectory))
	}
	if c.Database != "" {
		db, err := sink.NewSQLite(c.Database, sink.RunInfo{
			ID:          runID,
			Seed:        seed,
			Temperature: c.Temperature,
			ZPVE:        S.ZPVE(),
			FTVE:        S.FTVE(),
			Geometry:    s.data.Geometry,
		})
		if err != nil {
			return nil, err
		}
		ret = append(ret, db)
	}
	return ret, nil
}

// ReportFile is the name of the report written to the output directory.
const ReportFile = "report.txt"

// writeReport writes the ensemble report both to out and to the file name.
func writeReport(name string, out io.Writer, E *wigner.Ensemble, S *wigner.Sampler) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := wigner.WriteReport(io.MultiWriter(out, f), E, S); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sample runs the Wigner sampling and writes the report to out and to the output directory.
func (s *system) sample(ctx context.Context, c *config.Config, out io.Writer, log logrus.FieldLogger) (*wigner.Ensemble, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	S, err := wigner.New(s.modes, s.data.Geometry, s.data.Hessian, s.masses, wigner.Options{
		Beta:              chem.Beta(c.Temperature),
		RemoveCOMVelocity: c.RemoveCOMVelocity,
	})
	if err != nil {
		return nil, err
	}
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		log.WithField("seed", seed).Info("No seed given, using one from the clock")
	}
	workers := c.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	runID := uuid.New().String()
	sinks, err := s.sinks(c, S, runID, seed)
	if err != nil {
		return nil, err
	}
	E, err := wigner.Run(ctx, S, c.Samples, wigner.EnsembleConfig{
		Seed:    seed,
		Workers: workers,
		Sink:    sinks,
		Logger:  log,
		RunID:   runID,
	})
	if cerr := sinks.Close(); cerr != nil {
		err = multierror.Append(err, cerr).ErrorOrNil()
	}
	if err != nil {
		return nil, err
	}
	if err = writeReport(filepath.Join(c.OutputDir, ReportFile), out, E, S); err != nil {
		return nil, err
	}
	log.WithField("file", filepath.Join(c.OutputDir, ReportFile)).Debug("Report written")
	if c.Plot != "" {
		title := fmt.Sprintf("Wigner ensemble, %.1f K", c.Temperature)
		if err = chemplot.EnergyHistogram(E.Records, title, c.Plot); err != nil {
			return nil, err
		}
		log.WithField("file", c.Plot).Info("Energy histogram written")
	}
	return E, nil
}
