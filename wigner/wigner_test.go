/*
 * wigner_test.go, part of govib.
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
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/internal/testutil"
	"github.com/rmera/govib/nma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func waterSampler(Te *testing.T, opts Options) (*Sampler, *chem.Geometry, []float64) {
	Te.Helper()
	G, H := testutil.Water()
	m, err := G.Masses(nil)
	require.NoError(Te, err)
	M, err := nma.NormalModes(G, H, m)
	require.NoError(Te, err)
	S, err := New(M, G, H, m, opts)
	require.NoError(Te, err)
	return S, G, m
}

func TestNewErrors(Te *testing.T) {
	G, H := testutil.Triangle("H", 1.6, -0.3)
	m, _ := G.Masses(nil)
	M, err := nma.NormalModes(G, H, m)
	require.NoError(Te, err)
	_, err = New(M, G, H, m, Options{Beta: math.Inf(1)})
	assert.True(Te, errors.Is(err, chem.ErrImaginaryMode))
	fmt.Println(err)

	G, H = testutil.Water()
	m, _ = G.Masses(nil)
	M, err = nma.NormalModes(G, H, m)
	require.NoError(Te, err)
	for _, b := range []float64{0, -1, math.NaN()} {
		_, err = New(M, G, H, m, Options{Beta: b})
		assert.True(Te, errors.Is(err, chem.ErrConfig))
	}
	_, err = New(M, G, H, m[:2], Options{Beta: 1})
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
}

func TestSample(Te *testing.T) {
	S, G, m := waterSampler(Te, Options{Beta: math.Inf(1)})
	for i := 0; i < 50; i++ {
		s, err := S.Sample(SampleSource(7, i))
		require.NoError(Te, err)
		scale := S.ZPVE()
		assert.InDelta(Te, s.NormalKE, s.CartesianKE, 1e-10*scale)
		assert.InDelta(Te, s.NormalPE, s.CartesianPE, 1e-10*scale)
		assert.Equal(Te, 0.5*S.ZPVE(), s.ZPKE)
		assert.Equal(Te, 0.5*S.ZPVE(), s.FTPE)
		assert.Equal(Te, G.Symbols, s.Position.Symbols)
		for a := 0; a < G.Len(); a++ {
			for k := 0; k < 3; k++ {
				assert.InDelta(Te, s.Momentum.Coords.At(a, k)/m[a], s.Velocity.Coords.At(a, k), 1e-15)
			}
		}
		//The momenta have no net component, the modes are orthogonal to translations.
		total := s.Momentum.Coords.SumVecs()
		assert.InDeltaSlice(Te, []float64{0, 0, 0}, total.RawRowView(0), 1e-10)
	}
	//the same source gives the same sample.
	a, err := S.Sample(SampleSource(3, 1))
	require.NoError(Te, err)
	b, err := S.Sample(SampleSource(3, 1))
	require.NoError(Te, err)
	assert.True(Te, mat.Equal(a.Position.Coords, b.Position.Coords))
	c, err := S.Sample(SampleSource(3, 2))
	require.NoError(Te, err)
	assert.False(Te, mat.Equal(a.Position.Coords, c.Position.Coords))
}

// The widths of the distribution are checked through the average energies.
// Each mode contributes w/4 (at 0 K) to both the average kinetic and potential energy.
func TestAverageEnergies(Te *testing.T) {
	for _, temp := range []float64{0, 2000} {
		S, _, _ := waterSampler(Te, Options{Beta: chem.Beta(temp)})
		E, err := Run(context.Background(), S, 20000, EnsembleConfig{Seed: 1234, Workers: 4})
		require.NoError(Te, err)
		require.Equal(Te, 20000, E.Succeeded)
		assert.Nil(Te, E.Failed)
		exp := 0.5 * S.FTVE()
		fmt.Printf("T=%.0f K expected %.6e KE %.6e PE %.6e\n", temp, exp, E.AvgCartesianKE, E.AvgCartesianPE)
		assert.InDelta(Te, exp, E.AvgCartesianPE, 0.05*exp)
		assert.InDelta(Te, exp, E.AvgCartesianKE, 0.05*exp)
		assert.InDelta(Te, E.AvgKE, E.AvgCartesianKE, 1e-9*exp)
		assert.InDelta(Te, E.AvgPE, E.AvgCartesianPE, 1e-9*exp)
		if temp == 0 {
			assert.InDelta(Te, S.ZPVE(), S.FTVE(), 1e-15)
		} else {
			assert.True(Te, S.FTVE() > S.ZPVE())
		}
	}
}

func TestReproducible(Te *testing.T) {
	S, _, _ := waterSampler(Te, Options{Beta: chem.Beta(300), RemoveCOMVelocity: true})
	s1 := NewMemorySink()
	s8 := NewMemorySink()
	E1, err := Run(context.Background(), S, 20, EnsembleConfig{Seed: 99, Workers: 1, Sink: s1})
	require.NoError(Te, err)
	E8, err := Run(context.Background(), S, 20, EnsembleConfig{Seed: 99, Workers: 8, Sink: s8})
	require.NoError(Te, err)
	assert.NotEqual(Te, E1.RunID, E8.RunID)
	assert.Equal(Te, E1.AvgKE, E8.AvgKE)
	assert.Equal(Te, E1.AvgPE, E8.AvgPE)
	require.Equal(Te, 20, len(s8.Indexes()))
	for i := 0; i < 20; i++ {
		assert.Equal(Te, E1.Records[i], E8.Records[i])
		assert.True(Te, mat.Equal(s1.Get(i).Momentum.Coords, s8.Get(i).Momentum.Coords))
	}
	//a clock seed is recorded, and repeats the run
	E, err := Run(context.Background(), S, 2, EnsembleConfig{})
	require.NoError(Te, err)
	require.NotZero(Te, E.Seed)
	E2, err := Run(context.Background(), S, 2, EnsembleConfig{Seed: E.Seed})
	require.NoError(Te, err)
	assert.Equal(Te, E.Records, E2.Records)
}

func TestSeeds(Te *testing.T) {
	seen := make(map[uint64]bool)
	for s := uint64(0); s < 10; s++ {
		for i := 0; i < 100; i++ {
			v := SampleSeed(s, i)
			assert.False(Te, seen[v])
			seen[v] = true
		}
	}
}

func TestRemoveCOMVelocity(Te *testing.T) {
	m := []float64{1, 2, 3}
	p := []float64{1, 0, 0, 2, 1, 0, 3, 0, 1}
	removeCOMVelocity(p, m)
	var tot [3]float64
	for i := range m {
		for k := 0; k < 3; k++ {
			tot[k] += p[3*i+k]
		}
	}
	assert.InDeltaSlice(Te, []float64{0, 0, 0}, tot[:], 1e-14)
	//the relative velocities are preserved: v0-v1 = 1-1 in x
	assert.InDelta(Te, 0, p[0]/m[0]-p[3]/m[1], 1e-14)
}

type failingSink struct {
	*MemorySink
	odd bool //fail only odd samples
}

func (F failingSink) Put(i int, s *Sample) error {
	if !F.odd || i%2 == 1 {
		return fmt.Errorf("disk full")
	}
	return F.MemorySink.Put(i, s)
}

func TestFailures(Te *testing.T) {
	S, _, _ := waterSampler(Te, Options{Beta: math.Inf(1)})
	sink := failingSink{NewMemorySink(), true}
	E, err := Run(context.Background(), S, 4, EnsembleConfig{Seed: 5, Workers: 2, Sink: sink})
	require.NoError(Te, err)
	assert.Equal(Te, 2, E.Succeeded)
	assert.Equal(Te, []int{0, 2}, sink.Indexes())
	require.Error(Te, E.Failed)
	assert.Contains(Te, E.Failed.Error(), "sample 1")
	assert.Contains(Te, E.Failed.Error(), "sample 3")
	assert.Len(Te, E.Successful(), 2)
	var buf bytes.Buffer
	require.NoError(Te, WriteReport(&buf, E, S))
	assert.Contains(Te, buf.String(), "2 of 4 samples succeeded")
	assert.Contains(Te, buf.String(), "failed: sample 1")
	fmt.Print(buf.String())

	_, err = Run(context.Background(), S, 3, EnsembleConfig{Seed: 5, Sink: failingSink{NewMemorySink(), false}})
	assert.Error(Te, err)
	_, err = Run(context.Background(), S, 0, EnsembleConfig{})
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, S, 10, EnsembleConfig{Seed: 1})
	assert.True(Te, errors.Is(err, context.Canceled))
}

func TestEnergyMismatch(Te *testing.T) {
	G, H := testutil.Water()
	m, _ := G.Masses(nil)
	M, err := nma.NormalModes(G, H, m)
	require.NoError(Te, err)
	var H2 mat.Dense
	H2.Scale(2, H)
	S, err := New(M, G, &H2, m, Options{Beta: math.Inf(1)})
	require.NoError(Te, err)
	_, err = S.Sample(SampleSource(1, 0))
	assert.True(Te, errors.Is(err, ErrEnergyMismatch))
	assert.True(Te, errors.Is(err, chem.ErrNumerical))
}

func TestEnergyStats(Te *testing.T) {
	E := &Ensemble{Succeeded: 3, Records: []Record{
		{Index: 0, Energies: Energies{CartesianKE: 1, CartesianPE: 2}},
		{Index: 1, Err: errors.New("x")},
		{Index: 2, Energies: Energies{CartesianKE: 2, CartesianPE: 2}},
		{Index: 3, Energies: Energies{CartesianKE: 3, CartesianPE: 2}},
	}}
	ke, pe := EnergyStats(E)
	assert.InDelta(Te, 2, ke.Mean, 1e-15)
	assert.InDelta(Te, 1/math.Sqrt(3), ke.StdErr, 1e-15)
	assert.Equal(Te, 0.0, pe.StdErr)
}
