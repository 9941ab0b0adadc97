/*
 * sampler.go, part of govib.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package wigner

import (
	"fmt"
	"math"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/nma"
	v3 "github.com/rmera/govib/v3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Per-sample errors. Both wrap chem.ErrNumerical.
var (
	ErrSampleNaN      = fmt.Errorf("%w: non-finite value in Wigner sample", chem.ErrNumerical)
	ErrEnergyMismatch = fmt.Errorf("%w: cartesian and normal mode energies differ", chem.ErrNumerical)
)

// DefaultTolerance is the default for Options.Tolerance.
const DefaultTolerance = 1e-6

// Options for a Sampler.
type Options struct {
	//Inverse temperature 1/kT in atomic units. Use math.Inf(1), or chem.Beta(0), for 0 K.
	Beta float64
	//Remove the velocity of the center of mass from each sample.
	RemoveCOMVelocity bool
	//Largest allowed difference between the energies obtained from the cartesian
	//and from the normal mode representation of a sample, relative to the
	//vibrational energy of the system. 0 means DefaultTolerance.
	Tolerance float64
}

// Energies contains the diagnostic energies for one sample, in hartree. The ZP and FT
// values are the expectation values of the kinetic and potential energy at 0 K and at the
// sampling temperature, respectively. They are the same for all samples.
type Energies struct {
	ZPKE, ZPPE  float64
	FTKE, FTPE  float64
	NormalKE    float64 //from the sampled normal mode coordinates and momenta
	NormalPE    float64
	CartesianKE float64 //from the cartesian momenta
	CartesianPE float64 //from the cartesian displacements and the Hessian
}

// Sample is one point of the phase space, all in atomic units.
type Sample struct {
	Position *chem.Geometry
	Momentum *chem.Geometry
	Velocity *chem.Geometry
	Energies
}

// Sampler draws samples from the harmonic Wigner distribution of a molecule
// at a given temperature. A Sampler is not modified by sampling, so it can be used
// concurrently from several goroutines, as long as each uses its own random source.
type Sampler struct {
	modes  *nma.ModeSet
	x0     *chem.Geometry
	hess   mat.Symmetric
	masses []float64
	opts   Options
	sigmax []float64
	sigmap []float64
	zpve   float64
	ftve   float64
}

// New returns a Sampler for the geometry G, with Hessian hess, masses masses and the normal modes in modes.
// All the frequencies must be positive, as the Wigner distribution is not defined for imaginary modes.
func New(modes *nma.ModeSet, G *chem.Geometry, hess mat.Matrix, masses []float64, opts Options) (*Sampler, error) {
	N := G.Len()
	n3 := 3 * N
	if r, c := hess.Dims(); r != n3 || c != n3 {
		return nil, chem.MalformedInputError("wigner.New", "Hessian is %dx%d for %d atoms", r, c, N)
	}
	if len(masses) != N {
		return nil, chem.MalformedInputError("wigner.New", "%d masses for %d atoms", len(masses), N)
	}
	if r, c := modes.Modes.Dims(); r != n3 || c != modes.Len() {
		return nil, chem.MalformedInputError("wigner.New", "modes are %dx%d for %d atoms and %d frequencies", r, c, N, modes.Len())
	}
	if math.IsNaN(opts.Beta) || opts.Beta <= 0 {
		return nil, chem.NewError(chem.ErrConfig, "wigner.New", "invalid inverse temperature %g", opts.Beta)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	for i, w := range modes.Frequencies {
		if w <= 0 || math.IsNaN(w) {
			return nil, chem.ImaginaryModeError("wigner.New", i, w)
		}
	}
	S := &Sampler{
		modes:  modes,
		x0:     G.Copy(),
		hess:   symmetrize(hess),
		masses: append([]float64(nil), masses...),
		opts:   opts,
		sigmax: make([]float64, modes.Len()),
		sigmap: make([]float64, modes.Len()),
	}
	for i, w := range modes.Frequencies {
		ft := math.Tanh(w * opts.Beta / 2)
		S.sigmax[i] = math.Sqrt(1 / (2 * ft * w))
		S.sigmap[i] = math.Sqrt(w / (2 * ft))
	}
	S.zpve = nma.ZPVE(modes.Frequencies)
	S.ftve = nma.FTVE(modes.Frequencies, opts.Beta)
	return S, nil
}

func symmetrize(H mat.Matrix) *mat.SymDense {
	n, _ := H.Dims()
	S := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			S.SetSym(i, j, 0.5*(H.At(i, j)+H.At(j, i)))
		}
	}
	return S
}

// ZPVE returns the zero point vibrational energy of the system.
func (S *Sampler) ZPVE() float64 { return S.zpve }

// FTVE returns the vibrational energy of the system at the sampling temperature.
func (S *Sampler) FTVE() float64 { return S.ftve }

// Beta returns the inverse temperature of the sampler.
func (S *Sampler) Beta() float64 { return S.opts.Beta }

// Geometry returns a copy of the reference geometry of the sampler.
func (S *Sampler) Geometry() *chem.Geometry { return S.x0.Copy() }

// Sample draws one sample using the random source src. For each mode, a coordinate and a momentum
// are drawn from normal distributions with the widths of the Wigner distribution of a harmonic
// oscillator at the sampler's temperature. Samples with non-finite values, or where
// the cartesian energies don't agree with the normal mode ones are rejected with an error.
func (S *Sampler) Sample(src rand.Source) (*Sample, error) {
	N := S.x0.Len()
	n3 := 3 * N
	dx := make([]float64, n3)
	dp := make([]float64, n3)
	var E Energies
	for i, w := range S.modes.Frequencies {
		xstar := distuv.Normal{Mu: 0, Sigma: S.sigmax[i], Src: src}.Rand()
		pstar := distuv.Normal{Mu: 0, Sigma: S.sigmap[i], Src: src}.Rand()
		q := S.modes.Modes.ColView(i)
		for k := 0; k < n3; k++ {
			qk := q.AtVec(k)
			dx[k] += qk * xstar
			dp[k] += qk * pstar
		}
		E.NormalKE += 0.5 * pstar * pstar
		E.NormalPE += 0.5 * w * w * xstar * xstar
	}
	m3 := chem.Mass3(S.masses)
	floats.Mul(dp, m3)

	E.ZPKE, E.ZPPE = 0.5*S.zpve, 0.5*S.zpve
	E.FTKE, E.FTPE = 0.5*S.ftve, 0.5*S.ftve
	for k, p := range dp {
		E.CartesianKE += 0.5 * p * p / m3[k]
	}
	dxv := mat.NewVecDense(n3, dx)
	E.CartesianPE = 0.5 * mat.Inner(dxv, S.hess, dxv)

	if S.opts.RemoveCOMVelocity {
		removeCOMVelocity(dp, S.masses)
	}
	x := make([]float64, n3)
	floats.AddTo(x, S.x0.Coords.Flat(nil), dx)
	v := make([]float64, n3)
	floats.DivTo(v, dp, m3)

	if !finite(x) || !finite(dp) || !finite(v) || !finite([]float64{E.NormalKE, E.NormalPE, E.CartesianKE, E.CartesianPE}) {
		return nil, chem.NewError(ErrSampleNaN, "Sampler.Sample", "energies: %+v", E)
	}
	scale := math.Max(S.ftve, math.Abs(E.NormalKE+E.NormalPE))
	dKE := math.Abs(E.CartesianKE - E.NormalKE)
	dPE := math.Abs(E.CartesianPE - E.NormalPE)
	if dKE > S.opts.Tolerance*scale || dPE > S.opts.Tolerance*scale {
		return nil, chem.NewError(ErrEnergyMismatch, "Sampler.Sample", "KE: %g vs %g, PE: %g vs %g", E.CartesianKE, E.NormalKE, E.CartesianPE, E.NormalPE)
	}
	return &Sample{
		Position: S.geometry(x),
		Momentum: S.geometry(dp),
		Velocity: S.geometry(v),
		Energies: E,
	}, nil
}

func (S *Sampler) geometry(data []float64) *chem.Geometry {
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error()) //can't happen, data always has 3N elements.
	}
	return S.x0.WithCoords(m)
}

// removes the velocity of the center of mass from the momenta p, in place.
func removeCOMVelocity(p, masses []float64) {
	var total [3]float64
	for i := range masses {
		for k := 0; k < 3; k++ {
			total[k] += p[3*i+k]
		}
	}
	M := floats.Sum(masses)
	for i, m := range masses {
		for k := 0; k < 3; k++ {
			p[3*i+k] = (p[3*i+k]/m - total[k]/M) * m
		}
	}
}

func finite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
