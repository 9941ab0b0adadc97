/*
 * energy.go, part of govib
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package chemplot draws diagnostic plots for Wigner ensembles.
package chemplot

import (
	"fmt"
	"image/color"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/wigner"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bins is the number of bins used in the energy histograms.
var Bins = 30

// EnergyValues returns the cartesian kinetic and potential energies of the successful records,
// in kcal/mol.
func EnergyValues(records []wigner.Record) (ke, pe plotter.Values) {
	for _, r := range records {
		if r.Err != nil {
			continue
		}
		ke = append(ke, r.CartesianKE*chem.H2Kcal)
		pe = append(pe, r.CartesianPE*chem.H2Kcal)
	}
	return ke, pe
}

func basicEnergyPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Energy (kcal/mol)"
	p.Y.Label.Text = "Samples"
	p.Add(plotter.NewGrid())
	return p
}

// EnergyHistogram plots the histograms of the kinetic and potential energies
// of the successful samples among records, and saves the plot to filename. The format is
// decided from the extension of filename (png, svg, pdf, etc).
func EnergyHistogram(records []wigner.Record, title, filename string) error {
	ke, pe := EnergyValues(records)
	if len(ke) == 0 {
		return chem.NewError(chem.ErrConfig, "EnergyHistogram", "no successful samples to plot")
	}
	p := basicEnergyPlot(title)
	colors := []color.Color{
		color.RGBA{R: 200, A: 140},
		color.RGBA{B: 200, A: 140},
	}
	for i, v := range []plotter.Values{ke, pe} {
		h, err := plotter.NewHist(v, Bins)
		if err != nil {
			return fmt.Errorf("EnergyHistogram: %w", err)
		}
		h.FillColor = colors[i]
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add([]string{"Kinetic", "Potential"}[i], h)
	}
	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
