package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		920_000:   "$920K",
		760_000:   "$760K",
		999_499:   "$999K",
		1_000_000: "$1.00M",
		1_090_000: "$1.09M",
		1_250_000: "$1.25M",
		-30_000:   "-$30K",
		0:         "$0K",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPrice(in), "FormatPrice(%v)", in)
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+$100K (+10.0%)", FormatDelta(100_000, 1_000_000))
	assert.Equal(t, "-$30K (-3.1%)", FormatDelta(-30_000, 970_000))
	assert.Equal(t, "$0K (0.0%)", FormatDelta(0, 970_000))
	assert.Equal(t, "+$10K (+0.0%)", FormatDelta(10_000, 0), "zero base has no percentage")
}

func TestFormatDollarsGroupsThousands(t *testing.T) {
	assert.Equal(t, "$29,569,003", FormatDollars(AveragePricePerAcre))
	assert.Equal(t, "$26,842,105", FormatDollars(1_020_000/0.038))
	assert.Equal(t, "$950", FormatDollars(949.6))
}
