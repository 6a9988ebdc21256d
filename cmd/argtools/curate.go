package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/merge"
	"github.com/dasnellings/argTools/params"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/taxa"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func crtUsage(crtFlags *flag.FlagSet, cfg merge.Config) {
	fmt.Print(
		"crt" + cfg.Prefix + " - merge " + cfg.Prefix + " profiles of all samples and sum them by category\n" +
			"\tSamples are renamed with " + samples.NameFiles[0] + " in dirIn when present.\n\n" +
			"Usage:\n" +
			"  argtools " + crtFlags.Name() + " [options] dirIn dirOut\n\n" +
			"Writes dirOut/" + cfg.MergedName() + " and one csv per category, e.g. dirOut/" + cfg.CategoryName(cfg.Categories[0]) + "\n\n" +
			"Options:\n")
	crtFlags.PrintDefaults()
}

func runCurate(name string, cfg merge.Config, args []string) {
	var err error
	crtFlags := flag.NewFlagSet(name, flag.ExitOnError)
	param := crtFlags.String("param", cfg.Param, "Profile column compared across samples.")
	verbose := crtFlags.Int("v", 1, "Verbose output by setting to >0.")

	crtFlags.Usage = func() { crtUsage(crtFlags, cfg) }
	err = crtFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(crtFlags, 2)

	cfg.Param = *param
	res, err := merge.Curate(cfg, paths[0], paths[1], *verbose)
	exception.PanicOnErr(err)
	if res.Warnings > 0 {
		log.Printf("WARNING: finished with %d warnings.", res.Warnings)
	}
}

func runCrtArg(args []string) {
	runCurate("crtarg", merge.ARGPreset, args)
}

func runCrtMge(args []string) {
	runCurate("crtmge", merge.MGEPreset, args)
}

func crt16SUsage(crtFlags *flag.FlagSet) {
	fmt.Print(
		"crt16s - merge 16S taxonomy profiles (*" + taxa.Suffix + ") of all samples and sum them by rank\n\n" +
			"Usage:\n" +
			"  argtools crt16s [options] dirIn dirOut\n\n" +
			"Options:\n")
	crtFlags.PrintDefaults()
}

func runCrt16S(args []string) {
	var err error
	crtFlags := flag.NewFlagSet("crt16s", flag.ExitOnError)
	paramsFile := crtFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	threshold := crtFlags.Float64("threshold", params.Default().TaxonThreshold, "Taxa with relative abundance at or below this value are excluded.")
	verbose := crtFlags.Int("v", 1, "Verbose output by setting to >0.")

	crtFlags.Usage = func() { crt16SUsage(crtFlags) }
	err = crtFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(crtFlags, 2)
	p := loadParams(*paramsFile)
	if !given(crtFlags, "threshold") {
		*threshold = p.TaxonThreshold
	}

	_, err = taxa.Curate16S(paths[0], paths[1], *threshold, *verbose)
	exception.PanicOnErr(err)
}

func mergePropUsage(mergeFlags *flag.FlagSet) {
	fmt.Print(
		"mergeprop - merge one column of several sample tables on a key column\n\n" +
			"Usage:\n" +
			"  argtools mergeprop [options] fileOut dirIn fileIn1 [fileIn2 ...]\n\n" +
			"Options:\n")
	mergeFlags.PrintDefaults()
}

func runMergeProp(args []string) {
	var err error
	mergeFlags := flag.NewFlagSet("mergeprop", flag.ExitOnError)
	key := mergeFlags.String("key", catalog.CARDShortName, "Column used to match rows across tables.")
	param := mergeFlags.String("param", profile.PropRPK, "Column compared across tables.")
	suffix := mergeFlags.String("suffix", profile.ARGSuffix, "Removed from input file names to name the sample columns.")
	verbose := mergeFlags.Int("v", 1, "Verbose output by setting to >0.")

	mergeFlags.Usage = func() { mergePropUsage(mergeFlags) }
	err = mergeFlags.Parse(args)
	exception.PanicOnErr(err)
	if mergeFlags.NArg() < 3 {
		mergeFlags.Usage()
		errExit("\nERROR: must give fileOut, dirIn and at least one input file")
	}

	err = merge.MergeFiles(*key, *param, *suffix, mergeFlags.Arg(1), mergeFlags.Args()[2:], mergeFlags.Arg(0), *verbose)
	exception.PanicOnErr(err)
}
