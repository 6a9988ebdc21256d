// Package params holds the cutoffs and constants shared by the argtools commands.
// Defaults can be overridden with a YAML parameter file.
package params

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Cutoff is a percent identity and match length threshold.
type Cutoff struct {
	Pident float64 `yaml:"pident"`
	Length int     `yaml:"length"`
}

// Params is the parameter file document.
type Params struct {
	ARG  Cutoff `yaml:"arg"`  // blast hits against CARD nucleotide references
	MGE  Cutoff `yaml:"mge"`  // blast hits against MGEDB
	Host Cutoff `yaml:"host"` // contig blast hits used for ARG-host tables
	RGI  Cutoff `yaml:"rgi"`  // applied to "Loose" RGI hits only

	TaxonThreshold float64 `yaml:"taxonThreshold"` // taxa at or below this relative abundance are dropped
	Length16S      int     `yaml:"length16S"`      // bp, used for RPK of 16S reads

	Scaling    bool `yaml:"scaling"`    // standardize variables before PCA
	Proportion bool `yaml:"proportion"` // convert each sample to proportions before PCA
}

// Length16SEcoli is the length of the E. coli 16S rRNA gene (Brosius et al. 1978, PNAS 75:4801).
const Length16SEcoli = 1541

// Default returns the built-in parameters.
func Default() Params {
	return Params{
		ARG:            Cutoff{Pident: 90, Length: 100},
		MGE:            Cutoff{Pident: 90, Length: 50},
		Host:           Cutoff{Pident: 90, Length: 100},
		RGI:            Cutoff{Pident: 90, Length: 100},
		TaxonThreshold: 1e-5,
		Length16S:      Length16SEcoli,
		Scaling:        true,
		Proportion:     false,
	}
}

// Load reads a YAML parameter file on top of the defaults. Fields absent from the
// file keep their default value. An empty filename returns the defaults.
func Load(filename string) (Params, error) {
	ans := Default()
	if filename == "" {
		return ans, nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return ans, err
	}
	err = yaml.Unmarshal(b, &ans)
	if err != nil {
		return ans, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, ans.Validate()
}

// Validate rejects values that would make the outputs meaningless.
func (p Params) Validate() error {
	for name, c := range map[string]Cutoff{"arg": p.ARG, "mge": p.MGE, "host": p.Host, "rgi": p.RGI} {
		if c.Pident < 0 || c.Pident > 100 {
			return fmt.Errorf("%s.pident must be between 0 and 100, found %g", name, c.Pident)
		}
		if c.Length < 0 {
			return fmt.Errorf("%s.length must not be negative, found %d", name, c.Length)
		}
	}
	if p.Length16S <= 0 {
		return fmt.Errorf("length16S must be positive, found %d", p.Length16S)
	}
	if p.TaxonThreshold < 0 || p.TaxonThreshold >= 1 {
		return fmt.Errorf("taxonThreshold must be in [0, 1), found %g", p.TaxonThreshold)
	}
	return nil
}
