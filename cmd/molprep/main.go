/*
Command molprep processes a chemical dataset into the format suitable for
machine learning: canonical record table, structure shard and feature tables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"go-ml.dev/pkg/molprep/chem"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/molprep/rows"
	"go-ml.dev/pkg/molprep/target"
	"os"
	"strconv"
	"strings"
)

type args struct {
	inputFile, inputType string
	fields, fieldTypes   []string
	name, out            string
	prediction           string
	threshold            *float64
	sheet                string
	featurizer           []string
	verbose              bool
}

func parseArgs(argv []string) (*args, error) {
	fs := flag.NewFlagSet("molprep", flag.ContinueOnError)
	a := &args{}
	var flds, types, threshold, featurizer string
	fs.StringVar(&a.inputFile, "input-file", "", "Input file with data.")
	fs.StringVar(&a.inputType, "input-type", "csv", "Type of input file: csv (tab delimited), xlsx, tabular or sdf.")
	fs.StringVar(&flds, "fields", "", "Comma separated names of fields.")
	fs.StringVar(&types, "field-types", "", "Comma separated types of fields: string, float, list-string, list-float, ndarray.")
	fs.StringVar(&a.name, "name", "", "Name of the dataset.")
	fs.StringVar(&a.out, "out", "", "Folder to generate processed dataset in.")
	fs.StringVar(&a.prediction, "prediction-endpoint", "", "Name of measured endpoint to predict.")
	fs.StringVar(&threshold, "threshold", "", "Used to turn real-valued data into binary.")
	fs.StringVar(&a.sheet, "sheet", rows.DefaultSheet, "Spreadsheet sheet name.")
	fs.StringVar(&featurizer, "featurizer", "", "Featurization command, like 'python -m vs_utils.scripts.featurize'.")
	fs.BoolVar(&a.verbose, "v", false, "Verbose output.")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	for n, v := range map[string]string{"input-file": a.inputFile, "fields": flds, "field-types": types, "name": a.name, "prediction-endpoint": a.prediction} {
		if v == "" {
			return nil, fu.ConfigErrorf("-%v is required", n)
		}
	}
	a.fields = strings.Split(flds, ",")
	a.fieldTypes = strings.Split(types, ",")
	if threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return nil, fu.ConfigErrorf("bad threshold `%v`", threshold)
		}
		a.threshold = &v
	}
	if featurizer != "" {
		a.featurizer = strings.Fields(featurizer)
	}
	return a, nil
}

func run(ctx context.Context, a *args) error {
	kind, err := rows.ParseKind(a.inputType)
	if err != nil {
		return err
	}
	types, err := fields.ParseTypes(a.fieldTypes)
	if err != nil {
		return err
	}
	var verbose func(string)
	if a.verbose {
		verbose = func(s string) { fmt.Fprintln(os.Stderr, s) }
	}

	layout := fu.DatasetLayout(a.name, a.out)
	if err = layout.Create(); err != nil {
		return err
	}
	src, err := rows.Open(a.inputFile, kind, rows.Options{Sheet: a.sheet})
	if err != nil {
		return err
	}
	defer src.Close()
	t, err := target.Build(src, target.Options{
		Fields:     a.fields,
		Types:      types,
		Prediction: a.prediction,
		Threshold:  a.threshold,
		Verbose:    verbose,
	})
	if err != nil {
		return err
	}
	if err = t.Write(layout); err != nil {
		return err
	}
	fmt.Printf("%d records written to %v\n", len(t.Records), layout.Targets())

	if a.featurizer == nil {
		return nil
	}
	for _, f := range []chem.Command{
		chem.CircularFingerprints(a.featurizer, layout.Fingerprints()),
		chem.MolecularDescriptors(a.featurizer, layout.Descriptors()),
	} {
		f.Verbose = verbose
		table, err := f.Featurize(ctx, layout.Shard())
		if err != nil {
			return err
		}
		fmt.Printf("%d compounds featurized into %v\n", len(table), f.Output)
	}
	return nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err == nil {
		err = run(context.Background(), a)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "molprep:", err)
		os.Exit(1)
	}
}
