package main

import (
	"flag"
	"github.com/dasnellings/argTools/blast"
	"github.com/dasnellings/argTools/params"
	"log"
)

// given reports whether the named flag was set on the command line.
func given(fs *flag.FlagSet, name string) bool {
	var found bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// loadParams reads the -params file, or the defaults when file is empty.
func loadParams(file string) params.Params {
	p, err := params.Load(file)
	if err != nil {
		log.Fatalf("ERROR: %s", err)
	}
	return p
}

// cutoffFlags registers -pident and -length with the defaults of c.
func cutoffFlags(fs *flag.FlagSet, c params.Cutoff) (pident *float64, length *int) {
	pident = fs.Float64("pident", c.Pident, "(%) Hits with percent identity below this value are excluded.")
	length = fs.Int("length", c.Length, "(bp) Hits with match length below this value are excluded.")
	return pident, length
}

// filter combines the cutoff flags with c from the params file. Flags given on the
// command line win.
func filter(fs *flag.FlagSet, pident *float64, length *int, c params.Cutoff) blast.Filter {
	f := blast.Filter{MinPident: c.Pident, MinLength: c.Length}
	if given(fs, "pident") {
		f.MinPident = *pident
	}
	if given(fs, "length") {
		f.MinLength = *length
	}
	return f
}

// positional exits with the usage of fs unless exactly n paths were given.
func positional(fs *flag.FlagSet, n int) []string {
	if fs.NArg() != n {
		fs.Usage()
		errExit("\nERROR: wrong number of arguments")
	}
	return fs.Args()
}
