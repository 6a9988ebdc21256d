package seqid

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCARD(t *testing.T) {
	aro, gene, err := CARD("gb|AF038993|+|0-1509|ARO:3000318|mphB [Escherichia coli]")
	require.NoError(t, err)
	assert.Equal(t, "ARO:3000318", aro)
	assert.Equal(t, "mphB [Escherichia coli]", gene)

	_, gene, err = CARD("gb|X|+|0-10|ARO:3000873|TEM-1")
	require.NoError(t, err)
	assert.Equal(t, "TEM", gene)

	_, _, err = CARD("gb|X|+|0-10")
	assert.Error(t, err)
}

func TestGeneSymbol(t *testing.T) {
	tests := map[string]string{
		"tet(A)-1":   "tet(A)",
		"blaOXA.2a":  "blaOXA",
		"OXA-48":     "OXA",
		"AAC(6')-Ib": "AAC(6')-Ib",
		"mdtF":       "mdtF",
		"vanA|x":     "vanA",
	}
	for in, want := range tests {
		assert.Equal(t, want, GeneSymbol(in), in)
	}
}

func TestMGE(t *testing.T) {
	id, gene, err := MGE("1001_IS26_IS6")
	require.NoError(t, err)
	assert.Equal(t, "1001", id)
	assert.Equal(t, "IS26", gene)

	_, _, err = MGE("nounderscore")
	assert.Error(t, err)
}

func TestContigAndWords(t *testing.T) {
	assert.Equal(t, "k141_22", ORFContig("k141_22_3"))
	assert.Equal(t, "k141_22", ORFContig("k141_22_3 "))
	assert.Equal(t, "TEM-1", FirstWord("TEM-1 beta-lactamase"))
	assert.Equal(t, "mdtF", FirstWord("mdtF"))
}

func TestSlimAndMAR(t *testing.T) {
	assert.Equal(t, "tetracycline;glycylcycline", SlimDrugClass("tetracycline antibiotic;glycylcycline"))
	assert.Equal(t, "efflux", SlimMechanism("antibiotic efflux"))

	n, ok := MAR("a;b;c")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = MAR("")
	assert.False(t, ok)

	assert.Equal(t, []string{"penam", "cephalosporin"}, DrugClasses("penam;cephalosporin;"))
	assert.Nil(t, DrugClasses(""))
}
