package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/udisondev/zzzcalc/internal/calc"
	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/marginal"
	"github.com/udisondev/zzzcalc/internal/model"
)

func main() {
	exportDir := flag.String("export", "", "re-export the sanitized build document into this directory")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: zzzcalc [-export DIR] [BUILD.json]")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *exportDir); err != nil {
		fmt.Fprintln(os.Stderr, "zzzcalc:", err)
		os.Exit(1)
	}
}

func run(path, exportDir string) error {
	b := model.Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		b, err = model.DecodeDocument(raw)
		if err != nil {
			return err
		}
	}

	preview := calc.ComputePreview(b)
	printPreview(b, preview)

	store := marginal.NewStore()
	store.Load(b.Marginal.CustomApplied)
	result := marginal.New(store).Analyze(b)
	printMarginals(result)

	if exportDir != "" {
		out, err := b.EncodeDocument()
		if err != nil {
			return err
		}
		name := model.SafeFileName(b.JSONName) + ".json"
		dst := filepath.Join(exportDir, name)
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("\nexported %s\n", dst)
	}
	return nil
}

func printPreview(b *model.Build, p calc.Preview) {
	fmt.Printf("build: %s (mode %s)\n\n", b.JSONName, p.Mode)
	fmt.Printf("output:      %.2f\n", p.Output)
	fmt.Printf("non-crit:    %.2f\n", p.OutputNonCrit)
	fmt.Printf("crit:        %.2f\n", p.OutputCrit)
	fmt.Printf("expected:    %.2f\n", p.OutputExpected)

	if p.Anom != nil {
		fmt.Printf("\nanomaly %s (%s): per tick %.2f, per proc %.2f, disorder %.2f\n",
			p.Anom.Type, p.Anom.Kind, p.Anom.PerTick.Avg, p.Anom.PerProc.Avg, p.Anom.Disorder.Avg)
	}
}

func printMarginals(res marginal.Result) {
	fmt.Println("\nsensitivity:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "stat\tapplied\toutput\tgain\tgain%")
	for _, row := range res.Rows {
		applied := fmt.Sprintf("%+.2f", row.Applied.Value)
		if row.Applied.Kind == data.KindPct {
			applied += "%"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%+.2f\t%+.2f%%\n",
			row.Label, applied, row.Out2, row.Gain, row.PctGain)
	}
	w.Flush()
}
