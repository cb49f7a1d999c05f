package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/evaluating"
	"github.com/spacemeshos/bits/parsing"
)

func TestNested(t *testing.T) {
	req := require.New(t)

	for _, depth := range []int{1, 2, 50} {
		p, err := parsing.Parse(nested(depth), parsing.WithMaxDepth(depth))
		req.NoError(err)
		req.Equal(depth, p.Depth())

		v, err := evaluating.Evaluate(p)
		req.NoError(err)
		req.Equal(int64(1), v.Int64())

		_, err = parsing.Parse(nested(depth+1), parsing.WithMaxDepth(depth))
		req.Error(err)
	}
}

func TestRun(t *testing.T) {
	req := require.New(t)

	cases, err := genTestCases("", 20)
	req.NoError(err)
	req.Len(cases, 2)

	for _, c := range cases {
		row, err := run(c, config.StrategyStack, 1)
		req.NoError(err)
		req.Len(row, 7)
	}
}

func TestInputSize(t *testing.T) {
	req := require.New(t)

	req.Equal(uint64(0), inputSize(nil))
	req.Equal(uint64(3), inputSize([]string{"D2FE28"}))
	req.Equal(uint64(3), inputSize([]string{"66000"}))
	req.Equal(uint64(1), inputSize([]string{"F"}))
	req.Equal(uint64(8), inputSize([]string{"D2FE28", "C200B40A82"}))

	// depth 2: one 18-bit operator header and an 11-bit literal, 8 hex digits
	req.Len(nested(2), 8)
	req.Equal(uint64(4), inputSize([]string{nested(2)}))
}
