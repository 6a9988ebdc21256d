package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/params"
	"github.com/dasnellings/argTools/profile"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func argProfUsage(argFlags *flag.FlagSet) {
	fmt.Print(
		"argprof - make an ARG profile from blast hits of reads against the CARD nucleotide database\n\n" +
			"Usage:\n" +
			"  argtools argprof [options] aro_index.tsv sample.blast.txt dirOut\n\n" +
			"Writes dirOut/sample" + profile.ARGSuffix + "\n\n" +
			"Options:\n")
	argFlags.PrintDefaults()
}

func runArgProf(args []string) {
	var err error
	argFlags := flag.NewFlagSet("argprof", flag.ExitOnError)
	paramsFile := argFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	pident, length := cutoffFlags(argFlags, params.Default().ARG)
	verbose := argFlags.Int("v", 0, "Verbose output by setting to >0.")

	argFlags.Usage = func() { argProfUsage(argFlags) }
	err = argFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(argFlags, 3)
	p := loadParams(*paramsFile)

	card, err := catalog.ReadCARD(paths[0])
	exception.PanicOnErr(err)
	out, err := profile.ARG(card, paths[1], paths[2], filter(argFlags, pident, length, p.ARG))
	exception.PanicOnErr(err)
	if *verbose > 0 {
		log.Printf("%s was created.", out)
	}
}

func mgeProfUsage(mgeFlags *flag.FlagSet) {
	fmt.Print(
		"mgeprof - make an MGE profile from blast hits of reads against MGEDB\n\n" +
			"Usage:\n" +
			"  argtools mgeprof [options] mgedb_catalog.tsv sample.blast.txt dirOut\n\n" +
			"Writes dirOut/sample" + profile.MGESuffix + " and dirOut/sample" + profile.MGESummarySuffix + "\n\n" +
			"Options:\n")
	mgeFlags.PrintDefaults()
}

func runMgeProf(args []string) {
	var err error
	mgeFlags := flag.NewFlagSet("mgeprof", flag.ExitOnError)
	paramsFile := mgeFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	pident, length := cutoffFlags(mgeFlags, params.Default().MGE)
	noHeader := mgeFlags.Bool("noHeader", false, "The MGEDB catalog has no header line.")
	verbose := mgeFlags.Int("v", 0, "Verbose output by setting to >0.")

	mgeFlags.Usage = func() { mgeProfUsage(mgeFlags) }
	err = mgeFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(mgeFlags, 3)
	p := loadParams(*paramsFile)

	mgedb, err := catalog.ReadMGE(paths[0], !*noHeader)
	exception.PanicOnErr(err)
	prof, summary, err := profile.MGE(mgedb, paths[1], paths[2], filter(mgeFlags, pident, length, p.MGE))
	exception.PanicOnErr(err)
	if *verbose > 0 {
		log.Printf("%s was created.", prof)
		log.Printf("%s was created.", summary)
	}
}

func rgiProfUsage(rgiFlags *flag.FlagSet) {
	fmt.Print(
		"rgiprof - make an ARG profile from the RGI main output of contig ORFs\n" +
			"\tPerfect and Strict hits are always kept. Loose hits must pass -pident and -length.\n\n" +
			"Usage:\n" +
			"  argtools rgiprof [options] sample._ARGI.txt dirOut\n\n" +
			"Writes dirOut/sample" + profile.RGISuffix + "\n\n" +
			"Options:\n")
	rgiFlags.PrintDefaults()
}

func runRgiProf(args []string) {
	var err error
	rgiFlags := flag.NewFlagSet("rgiprof", flag.ExitOnError)
	paramsFile := rgiFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	pident, length := cutoffFlags(rgiFlags, params.Default().RGI)
	verbose := rgiFlags.Int("v", 0, "Verbose output by setting to >0.")

	rgiFlags.Usage = func() { rgiProfUsage(rgiFlags) }
	err = rgiFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(rgiFlags, 2)
	p := loadParams(*paramsFile)

	out, err := profile.RGI(paths[0], paths[1], filter(rgiFlags, pident, length, p.RGI))
	exception.PanicOnErr(err)
	if *verbose > 0 {
		log.Printf("%s was created.", out)
	}
}
