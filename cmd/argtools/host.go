package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/host"
	"github.com/dasnellings/argTools/params"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func argHostUsage(hostFlags *flag.FlagSet) {
	fmt.Print(
		"arghost - link ARGs found by blast on contigs to the contig taxonomy from kraken2\n\n" +
			"Usage:\n" +
			"  argtools arghost [options] names.dmp sample.ARGI.txt sample.kraken2.tsv dirOut\n\n" +
			"Writes dirOut/sample" + host.TaxonSuffix + ", dirOut/sample" + host.HostSuffix + " and dirOut/sample" + host.SummarySuffix + "\n\n" +
			"Options:\n")
	hostFlags.PrintDefaults()
}

func runArgHost(args []string) {
	var err error
	hostFlags := flag.NewFlagSet("arghost", flag.ExitOnError)
	paramsFile := hostFlags.String("params", "", "YAML parameter file overriding the built-in defaults.")
	pident, length := cutoffFlags(hostFlags, params.Default().Host)
	verbose := hostFlags.Int("v", 0, "Verbose output by setting to >0.")

	hostFlags.Usage = func() { argHostUsage(hostFlags) }
	err = hostFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(hostFlags, 4)
	p := loadParams(*paramsFile)

	written, err := host.BlastHost(paths[0], paths[1], paths[2], paths[3], filter(hostFlags, pident, length, p.Host))
	exception.PanicOnErr(err)
	logWritten(written, *verbose)
}

func argiHostUsage(hostFlags *flag.FlagSet) {
	fmt.Print(
		"argihost - link ARGs found by RGI on contig ORFs to the contig taxonomy from kraken2\n" +
			"\tinspect.txt is the kraken2-inspect report of the kraken2 index used for classification.\n\n" +
			"Usage:\n" +
			"  argtools argihost [options] inspect.txt sample._ARGI.txt sample.kraken2.tsv dirOut\n\n" +
			"Options:\n")
	hostFlags.PrintDefaults()
}

func runArgiHost(args []string) {
	var err error
	hostFlags := flag.NewFlagSet("argihost", flag.ExitOnError)
	verbose := hostFlags.Int("v", 0, "Verbose output by setting to >0.")

	hostFlags.Usage = func() { argiHostUsage(hostFlags) }
	err = hostFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(hostFlags, 4)

	written, err := host.RGIHost(paths[0], paths[1], paths[2], paths[3])
	exception.PanicOnErr(err)
	logWritten(written, *verbose)
}

func logWritten(files []string, verbose int) {
	if verbose > 0 {
		for _, f := range files {
			log.Printf("%s was created.", f)
		}
	}
}
