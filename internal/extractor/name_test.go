package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstLineStrategy(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "rajesh kumar\nEmail: x@y.com", "Rajesh Kumar"},
		{"skips title line", "\n  RESUME  \nCurriculum Vitae\nANITA DESAI\n", "Anita Desai"},
		{"strips symbols", "** Ramesh Babu (Hyd) **", "Ramesh Babu Hyd"},
		{"too short", "A\nJohn", ""},
		{"localized script", "प्रिया शर्मा", "प्रिया शर्मा"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstLineStrategy{}.ExtractName(tt.text))
		})
	}
}

func TestCueStrategy(t *testing.T) {
	assert.Equal(t, "John Mathew", CueStrategy{}.ExtractName("My name is John Mathew. I live in Pune"))
	assert.Equal(t, "Lakshmi", CueStrategy{}.ExtractName("name: lakshmi\nphone: 9000000001"))
	assert.Equal(t, "", CueStrategy{}.ExtractName("no cue in this sentence"))
}

func TestChainStrategy_FallsBack(t *testing.T) {
	chain := ChainStrategy{CueStrategy{}, FirstLineStrategy{}}

	assert.Equal(t, "Meena Iyer", chain.ExtractName("meena iyer\nskills: tally"))
}
