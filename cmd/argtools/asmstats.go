package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/argTools/assembly"
	"github.com/vertgenlab/gonomics/exception"
	"log"
	"os"
)

func asmStatsUsage(asmFlags *flag.FlagSet) {
	fmt.Print(
		"asmstats - number, total and mean length, N50 and L50 of the sequences of a fasta file\n\n" +
			"Usage:\n" +
			"  argtools asmstats [options] contigs.fa\n" +
			"  argtools asmstats [options] contigs.fa.fai\n\n" +
			"Options:\n")
	asmFlags.PrintDefaults()
}

func runAsmStats(args []string) {
	var err error
	asmFlags := flag.NewFlagSet("asmstats", flag.ExitOnError)
	output := asmFlags.String("o", "", "Also write the statistics to this csv file.")
	bins := asmFlags.Int("hist", 0, "Print a histogram of contig lengths with # bins. 0 for none.")

	asmFlags.Usage = func() { asmStatsUsage(asmFlags) }
	err = asmFlags.Parse(args)
	exception.PanicOnErr(err)
	paths := positional(asmFlags, 1)

	s, lengths, err := assembly.Read(paths[0])
	if err != nil {
		log.Fatalf("ERROR: %s", err)
	}
	s.Render(os.Stdout, paths[0])
	if *bins > 0 {
		fmt.Println(assembly.Histogram(lengths, *bins))
	}
	if *output != "" {
		err = s.WriteCSV(*output)
		exception.PanicOnErr(err)
	}
}
