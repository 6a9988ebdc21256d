package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/pca"
	"github.com/vertgenlab/gonomics/exception"
)

func pcaUsage(pcaFlags *flag.FlagSet) {
	fmt.Print(
		"pca - principal component analysis and Ward hierarchical clustering of samples\n" +
			"\tdata.csv has sample names in the first column and one variable per column,\n" +
			"\te.g. the category tables of crtarg. Non-numeric columns are ignored.\n\n" +
			"Usage:\n" +
			"  argtools pca [options] data.csv dirOut\n\n" +
			"Options:\n")
	pcaFlags.PrintDefaults()
}

func runPca(args []string) {
	var err error
	pcaFlags := flag.NewFlagSet("pca", flag.ExitOnError)
	paramsFile := pcaFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	scaling := pcaFlags.Bool("scaling", true, "Standardize every variable to mean 0 and unit variance before PCA.")
	proportion := pcaFlags.Bool("proportion", false, "Convert every sample to proportions of its total first.")
	verbose := pcaFlags.Int("v", 1, "Verbose output by setting to >0. Also prints a scree plot.")

	pcaFlags.Usage = func() { pcaUsage(pcaFlags) }
	err = pcaFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(pcaFlags, 2)
	p := loadParams(*paramsFile)
	if !given(pcaFlags, "scaling") {
		*scaling = p.Scaling
	}
	if !given(pcaFlags, "proportion") {
		*proportion = p.Proportion
	}

	_, err = pca.Run(paths[0], paths[1], pca.Options{Scaling: *scaling, Proportion: *proportion}, *verbose)
	exception.PanicOnErr(err)
}
