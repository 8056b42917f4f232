package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/quantize"
	"github.com/lixenwraith/evo-terrain/weather"
)

var quantiles = []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}

func newTable(w io.Writer, title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(title)
	return tw
}

func doStats(cmd *cobra.Command, args []string) error {
	setup, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	turn, _ := cmd.Flags().GetInt("turn")

	gen := setup.Generator()
	heights, err := gen.GenerateNoiseArrayContext(cmd.Context())
	if err != nil {
		return err
	}
	tiles := setup.Quantizer().Quantize(heights)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %dx%d, noise %s, %d mask(s), generated in %v\n",
		setup.Name, setup.Width, setup.Height, setup.Noise, len(setup.Masks), gen.Elapsed())

	writeHistogram(w, tiles)
	writeDistribution(w, heights)
	writeClimate(w, setup, heights, turn)
	return nil
}

func writeHistogram(w io.Writer, tiles [][]quantize.TileType) {
	counts := quantize.Histogram(tiles)
	total := 0
	for _, n := range counts {
		total += n
	}

	tw := newTable(w, "Tiles")
	tw.AppendHeader(table.Row{"TILE", "COUNT", "SHARE"})
	for _, tt := range quantize.TileTypes() {
		n := counts[tt]
		if n == 0 {
			continue
		}
		tw.AppendRow(table.Row{tt.String(), n, fmt.Sprintf("%.1f%%", 100*float64(n)/float64(max(total, 1)))})
	}
	tw.AppendFooter(table.Row{"total", total, ""})
	tw.Render()
}

// flatten copies heights into one ascending slice
func flatten(heights [][]float64) []float64 {
	var n int
	for _, row := range heights {
		n += len(row)
	}
	out := make([]float64, 0, n)
	for _, row := range heights {
		out = append(out, row...)
	}
	sort.Float64s(out)
	return out
}

func writeDistribution(w io.Writer, heights [][]float64) {
	values := flatten(heights)

	tw := newTable(w, "Heights")
	tw.AppendHeader(table.Row{"QUANTILE", "HEIGHT"})
	if len(values) == 0 {
		tw.Render()
		return
	}
	for _, q := range quantiles {
		tw.AppendRow(table.Row{fmt.Sprintf("p%g", q*100), fmt.Sprintf("%.4f", stat.Quantile(q, stat.Empirical, values, nil))})
	}
	mean, std := stat.MeanStdDev(values, nil)
	tw.AppendFooter(table.Row{"mean", fmt.Sprintf("%.4f ± %.4f", mean, std)})
	tw.Render()
}

func writeClimate(w io.Writer, setup preset.Setup, heights [][]float64, turn int) {
	s := setup.Climate.Field(heights, turn)

	tw := newTable(w, fmt.Sprintf("Climate, turn %d", turn))
	tw.AppendHeader(table.Row{"MEASURE", "VALUE"})
	tw.AppendRows([]table.Row{
		{"mean temperature", fmt.Sprintf("%.3f", s.MeanTemperature)},
		{"mean humidity", fmt.Sprintf("%.3f", s.MeanHumidity)},
		{"mean precipitation chance", fmt.Sprintf("%.3f", s.MeanChance)},
		{weather.PrecipitationRain.String() + " tiles", s.Rain},
		{weather.PrecipitationSnow.String() + " tiles", s.Snow},
	})
	tw.Render()
}
