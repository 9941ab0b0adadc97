/*
 * ensemble.go, part of govib.
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

package wigner

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	chem "github.com/rmera/govib"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Sink receives the samples of an ensemble as they are produced. Put
// is called concurrently from several goroutines, and not in index order.
type Sink interface {
	Put(i int, s *Sample) error
}

// EnsembleConfig are the options for Run.
type EnsembleConfig struct {
	//Seed for the whole run. Each sample gets its own stream, derived from Seed and the sample index,
	//so the results don't depend on Workers. 0 is not a usable seed: it means a seed taken from
	//the clock, which is logged and stored in the Ensemble, so any run can be repeated with it.
	Seed    uint64
	Workers int  //samples obtained at the same time. Values < 1 mean 1.
	Sink    Sink //can be nil
	Logger  logrus.FieldLogger
	RunID   string //a random UUID if empty
}

// Record is the outcome of one sample.
type Record struct {
	Index int
	Seed  uint64
	Energies
	Err error //nil for successful samples.
}

// Ensemble is the result of a Run. The averages are taken over the successful samples only.
type Ensemble struct {
	RunID     string
	Seed      uint64
	Requested int
	Succeeded int
	//Averages of the normal mode energies.
	AvgKE, AvgPE float64
	//Averages of the cartesian energies.
	AvgCartesianKE, AvgCartesianPE float64

	Records []Record //one per requested sample, in index order.
	Failed  error    //all the per-sample errors, nil if there were none.
}

// Successful returns the records of the samples that didn't fail.
func (E *Ensemble) Successful() []Record {
	ret := make([]Record, 0, E.Succeeded)
	for _, r := range E.Records {
		if r.Err == nil {
			ret = append(ret, r)
		}
	}
	return ret
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Run obtains n samples from S. Failed samples are logged and excluded from the averages,
// but they don't stop the run. An error is returned only if the context is canceled,
// if the arguments are invalid, or if every sample failed.
func Run(ctx context.Context, S *Sampler, n int, cfg EnsembleConfig) (*Ensemble, error) {
	if n < 1 {
		return nil, chem.NewError(chem.ErrConfig, "wigner.Run", "invalid number of samples %d", n)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.New().String()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	logger = logger.WithField("run", cfg.RunID)
	logger.WithFields(logrus.Fields{
		"seed":        cfg.Seed,
		"samples":     n,
		"workers":     workers,
		"temperature": chem.Temperature(S.Beta()),
	}).Info("Wigner sampling started")

	records := make([]Record, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := SampleSeed(cfg.Seed, i)
			rec := Record{Index: i, Seed: seed}
			s, err := S.Sample(SampleSource(cfg.Seed, i))
			if err == nil {
				rec.Energies = s.Energies
				if cfg.Sink != nil {
					err = cfg.Sink.Put(i, s)
				}
			}
			if err != nil {
				rec.Err = fmt.Errorf("sample %d: %w", i, err)
				logger.WithFields(logrus.Fields{"sample": i, "error": err}).Warn("sample failed")
			} else {
				logger.WithFields(logrus.Fields{
					"sample": i,
					"KE":     s.CartesianKE,
					"PE":     s.CartesianPE,
				}).Debug("sample done")
			}
			//each goroutine writes only its own element.
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	E := &Ensemble{RunID: cfg.RunID, Seed: cfg.Seed, Requested: n, Records: records}
	var merr *multierror.Error
	for _, r := range records {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
			continue
		}
		E.Succeeded++
		E.AvgKE += r.NormalKE
		E.AvgPE += r.NormalPE
		E.AvgCartesianKE += r.CartesianKE
		E.AvgCartesianPE += r.CartesianPE
	}
	E.Failed = merr.ErrorOrNil()
	if E.Succeeded == 0 {
		return E, fmt.Errorf("all %d samples failed: %w", n, E.Failed)
	}
	f := float64(E.Succeeded)
	E.AvgKE /= f
	E.AvgPE /= f
	E.AvgCartesianKE /= f
	E.AvgCartesianPE /= f
	logger.WithFields(logrus.Fields{
		"succeeded": E.Succeeded,
		"KE":        E.AvgKE,
		"PE":        E.AvgPE,
	}).Info("Wigner sampling finished")
	return E, nil
}

// MemorySink keeps all the samples in memory.
type MemorySink struct {
	mu      sync.Mutex
	samples map[int]*Sample
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{samples: make(map[int]*Sample)}
}

// Put stores the sample s with index i.
func (M *MemorySink) Put(i int, s *Sample) error {
	M.mu.Lock()
	defer M.mu.Unlock()
	M.samples[i] = s
	return nil
}

// Remove drops the sample with index i, if present.
func (M *MemorySink) Remove(i int) error {
	M.mu.Lock()
	defer M.mu.Unlock()
	delete(M.samples, i)
	return nil
}

// Get returns the sample with index i, or nil.
func (M *MemorySink) Get(i int) *Sample {
	M.mu.Lock()
	defer M.mu.Unlock()
	return M.samples[i]
}

// Indexes returns the indexes of the stored samples, sorted.
func (M *MemorySink) Indexes() []int {
	M.mu.Lock()
	defer M.mu.Unlock()
	ret := make([]int, 0, len(M.samples))
	for i := range M.samples {
		ret = append(ret, i)
	}
	sort.Ints(ret)
	return ret
}
