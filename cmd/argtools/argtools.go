package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"

type subcommand struct {
	name     string
	stage    string
	function func(args []string)
	blurb    string
}

// stages lists the pipeline stages in the order they run.
var stages = []string{
	"per-sample profiles",
	"run summaries",
	"curation across samples",
	"sample comparison",
	"assembled contigs",
}

// SubCommands contains all valid subcommands, listed under their stage in the usage.
var SubCommands = []*subcommand{
	{"argprof", stages[0], runArgProf, "ARG profile from blast hits of reads against CARD"},
	{"mgeprof", stages[0], runMgeProf, "MGE profile and summary from blast hits against MGEDB"},
	{"rgiprof", stages[0], runRgiProf, "ARG profile from RGI main output of contig ORFs"},
	{"sumreads", stages[1], runSumReads, "reads, 16S reads and ARG/MGE RPK of every sample"},
	{"drugclass", stages[1], runDrugClass, "ARG abundance per 16S by drug class"},
	{"crtarg", stages[2], runCrtArg, "merge ARG profiles and sum by category"},
	{"crtmge", stages[2], runCrtMge, "merge MGE profiles and sum by category"},
	{"crt16s", stages[2], runCrt16S, "merge 16S taxonomy profiles and sum by rank"},
	{"mergeprop", stages[2], runMergeProp, "merge one column of several tables on a key column"},
	{"pca", stages[3], runPca, "PCA and Ward clustering of a sample table"},
	{"arghost", stages[4], runArgHost, "ARG-host table from contig blast hits and kraken2"},
	{"argihost", stages[4], runArgiHost, "ARG-host table from contig RGI hits and kraken2"},
	{"asmstats", stages[4], runAsmStats, "length statistics (N50, L50) of assembled contigs"},
}

// versionString reports the argtools version and the gonomics release it was built with.
func versionString() string {
	ans := "argtools " + version
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ans
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/vertgenlab/gonomics" {
			return ans + " (gonomics " + dep.Version + ")"
		}
	}
	return ans
}

func writeUsage(out io.Writer) {
	s := new(strings.Builder)
	s.WriteString(
		versionString() + "\n" +
			"Profiles antimicrobial resistance genes and mobile genetic elements of metagenomes.\n\n" +
			"Usage:\n" +
			"  argtools <command> [options] <paths>\n" +
			"  argtools help <command>\n" +
			"  argtools -version\n")

	w := tabwriter.NewWriter(s, 0, 8, 3, ' ', 0)
	for _, stage := range stages {
		fmt.Fprintf(w, "\n%s:\n", stage)
		for _, c := range SubCommands {
			if c.stage == stage {
				fmt.Fprintf(w, "  %s\t%s\n", c.name, c.blurb)
			}
		}
	}
	w.Flush()
	fmt.Fprint(out, s.String())
}

func usage() {
	writeUsage(os.Stdout)
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	showVersion := flag.Bool("version", false, "Print the version and exit.")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(versionString())
		return
	}

	commands := commandMap()
	name, args := flag.Arg(0), flag.Args()
	if name == "help" && flag.NArg() > 1 {
		name, args = flag.Arg(1), []string{flag.Arg(1), "-h"}
	}
	command := commands[name]
	if command == nil {
		if name != "" && name != "help" {
			fmt.Fprintf(os.Stderr, "argtools: unknown command %q\n\n", name)
		}
		flag.Usage()
		return
	}
	command(args[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
