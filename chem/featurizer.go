package chem

import (
	"bytes"
	"context"
	"fmt"
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/dataset/sqlstore"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zlog"
	"os/exec"
	"strings"
)

/*
Featurizer computes per-compound features for a structure file
*/
type Featurizer interface {
	// Featurize featurizes structures and returns feature table keyed by canonical identifier
	Featurize(ctx context.Context, structures string) (dataset.FeatureTable, error)
}

/*
Feature kinds known by the featurization script
*/
const (
	Circular    = "circular"
	Descriptors = "descriptors"
)

/*
Command runs an external featurization process:

	<Program> <Args...> --scaffolds --smiles <structures> <Output> <Kind> <Params...>

The process writes an SQLite feature table into Output
*/
type Command struct {
	Program string
	Args    []string
	Output  string   // feature table path
	Kind    string   // Circular, Descriptors, ...
	Params  []string // kind specific, like --size 1024
	Verbose func(string)
}

/*
CircularFingerprints is the command producing 1024 bits circular fingerprints
*/
func CircularFingerprints(program []string, output string) Command {
	return Command{Program: program[0], Args: program[1:], Output: output, Kind: Circular, Params: []string{"--size", "1024"}}
}

/*
MolecularDescriptors is the command producing molecular descriptors
*/
func MolecularDescriptors(program []string, output string) Command {
	return Command{Program: program[0], Args: program[1:], Output: output, Kind: Descriptors}
}

func (c Command) Featurize(ctx context.Context, structures string) (dataset.FeatureTable, error) {
	args := append(append([]string{}, c.Args...), "--scaffolds", "--smiles", structures, c.Output, c.Kind)
	args = append(args, c.Params...)
	if c.Verbose != nil {
		c.Verbose(c.Program + " " + strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, c.Program, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fu.DataErrorf("featurizer %v exited with status %d: %v", c.Program, ee.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fu.DataErrorf("failed to run featurizer %v: %v", c.Program, err.Error())
	}
	if stderr.Len() > 0 {
		zlog.Warning(fmt.Sprintf("featurizer %v: %v", c.Program, strings.TrimSpace(stderr.String())))
	}
	return sqlstore.LoadFeatures(c.Output)
}
