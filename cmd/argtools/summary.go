package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/drugclass"
	"github.com/dasnellings/argTools/params"
	"github.com/dasnellings/argTools/reads"
	"github.com/vertgenlab/gonomics/exception"
)

func sumReadsUsage(sumFlags *flag.FlagSet) {
	fmt.Print(
		"sumreads - summarize raw, quality, 16S, ARG and MGE reads of every sample\n" +
			"\tdirQT holds fastp *" + reads.FastpSuffix + ", dir16S bracken *" + reads.BrackenSuffix + ",\n" +
			"\tdirARG and dirMGE the profiles of each sample.\n\n" +
			"Usage:\n" +
			"  argtools sumreads [options] dirQT dir16S dirARG dirMGE dirOut\n" +
			"  argtools sumreads [options] dirQT dir16S dirARG dirOut\n\n" +
			"Writes dirOut/" + reads.SummaryFile + ", or dirOut/" + reads.SummaryFileARG + " without dirMGE\n\n" +
			"Options:\n")
	sumFlags.PrintDefaults()
}

func runSumReads(args []string) {
	var err error
	sumFlags := flag.NewFlagSet("sumreads", flag.ExitOnError)
	paramsFile := sumFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	len16S := sumFlags.Int("len16S", params.Length16SEcoli, "(bp) Length of the 16S rRNA gene used for RPK of 16S reads.")
	verbose := sumFlags.Int("v", 1, "Verbose output by setting to >0.")

	sumFlags.Usage = func() { sumReadsUsage(sumFlags) }
	err = sumFlags.Parse(args)
	exception.PanicOnErr(err)
	p := loadParams(*paramsFile)
	if !given(sumFlags, "len16S") {
		*len16S = p.Length16S
	}

	var mgeDir string
	paths := sumFlags.Args()
	switch len(paths) {
	case 5:
		mgeDir = paths[3]
		paths = append(paths[:3], paths[4])
	case 4:
	default:
		sumFlags.Usage()
		errExit("\nERROR: wrong number of arguments")
	}
	_, err = reads.Summarize(paths[0], paths[1], paths[2], mgeDir, paths[3], *len16S, *verbose)
	exception.PanicOnErr(err)
}

func drugClassUsage(drugFlags *flag.FlagSet) {
	fmt.Print(
		"drugclass - sum ARG abundance per 16S (RPK/RPK-16S) by drug class for every sample\n" +
			"\tTables are made for all ARGs, single drug class ARGs, non-efflux and efflux ARGs.\n\n" +
			"Usage:\n" +
			"  argtools drugclass [options] " + reads.SummaryFile + " dirARG dirOut\n\n" +
			"Writes dirOut/" + drugclass.WorkbookFile + ", or one csv per table with -csv\n\n" +
			"Options:\n")
	drugFlags.PrintDefaults()
}

func runDrugClass(args []string) {
	var err error
	drugFlags := flag.NewFlagSet("drugclass", flag.ExitOnError)
	csv := drugFlags.Bool("csv", false, "Write one csv file per table instead of a workbook.")
	each := drugFlags.Bool("each", false, "Also write every ARG profile with its RPK/RPK-16S and drug class columns.")
	verbose := drugFlags.Int("v", 1, "Verbose output by setting to >0.")

	drugFlags.Usage = func() { drugClassUsage(drugFlags) }
	err = drugFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(drugFlags, 3)

	_, err = drugclass.Aggregate(paths[0], paths[1], paths[2], drugclass.Options{CSV: *csv, Each: *each}, *verbose)
	exception.PanicOnErr(err)
}
