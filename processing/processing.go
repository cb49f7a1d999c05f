// Package processing runs input lines through the full pipeline: hex
// decoding, packet parsing, version summing and evaluation.
package processing

import (
	"fmt"
	"math/big"

	"github.com/spacemeshos/bits/bitstream"
	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/evaluating"
	"github.com/spacemeshos/bits/packet"
	"github.com/spacemeshos/bits/parsing"
	"github.com/spacemeshos/bits/shared"
)

type Stage string

const (
	StageDecode   Stage = "decode"
	StageParse    Stage = "parse"
	StageEvaluate Stage = "evaluate"
)

// LineError is the failure of a single input line. Line is 1-based, or 0
// when the line was decoded on its own.
type LineError struct {
	Line  int
	Stage Stage
	Err   error
}

func (err LineError) Error() string {
	if err.Line == 0 {
		return fmt.Sprintf("%s: %v", err.Stage, err.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", err.Line, err.Stage, err.Err)
}

func (err LineError) Unwrap() error {
	return err.Err
}

// Result holds the outcome of one input line. VersionSum is set once the
// line parsed, even if evaluation then failed; Value only when evaluation
// succeeded.
type Result struct {
	Line   int
	Input  string
	Digest []byte

	Root       *packet.Packet
	VersionSum uint64
	Value      *big.Int

	Err error
}

// Parsed reports whether the line got through parsing.
func (r *Result) Parsed() bool {
	return r.Root != nil
}

// Answers returns the version sum and the value as decimal strings. A part
// that couldn't be computed is returned empty.
func (r *Result) Answers() (string, string) {
	var sum, value string
	if r.Parsed() {
		sum = fmt.Sprintf("%d", r.VersionSum)
	}
	if r.Value != nil {
		value = r.Value.String()
	}
	return sum, value
}

// Decode runs a single line through the pipeline. Failures never panic; they
// are reported through Result.Err as a LineError.
func Decode(line string, cfg *config.Config) *Result {
	return decodeLine(0, line, cfg, shared.NoopLogger{})
}

func decodeLine(index int, line string, cfg *config.Config, logger shared.Logger) *Result {
	input := shared.NormalizeInput(line)
	res := &Result{
		Line:   index,
		Input:  input,
		Digest: shared.Digest(input),
	}
	fail := func(stage Stage, err error) *Result {
		res.Err = LineError{Line: index, Stage: stage, Err: err}
		return res
	}

	if len(input) > cfg.MaxInputLen {
		return fail(StageDecode, shared.InputTooLongError{Max: cfg.MaxInputLen, Given: len(input)})
	}

	seq, err := bitstream.DecodeHex(input)
	if err != nil {
		return fail(StageDecode, err)
	}

	root, err := parsing.ParsePacket(bitstream.NewReader(seq), parsing.WithConfig(cfg), parsing.WithLogger(logger))
	if err != nil {
		return fail(StageParse, err)
	}
	res.Root = root
	res.VersionSum = evaluating.SumVersions(root)

	value, err := evaluating.Evaluate(root)
	if err != nil {
		return fail(StageEvaluate, err)
	}
	res.Value = value
	return res
}
