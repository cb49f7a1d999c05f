// Package validation checks decoded results against recorded answers.
//
// An answers file holds the expected version sum on its first line and the
// expected value on its second. An empty line leaves that part unchecked.
package validation

import (
	"fmt"
	"io/ioutil"
	"math/big"
	"strings"

	"github.com/spacemeshos/bits/processing"
)

type Part string

const (
	PartVersionSum Part = "version sum"
	PartValue      Part = "value"
)

type AnswerMismatchError struct {
	Part     Part
	Expected string
	Found    string
}

func (err AnswerMismatchError) Error() string {
	return fmt.Sprintf("invalid %s; expected: %s, given: %s", err.Part, err.Expected, err.Found)
}

// Expected holds the recorded answers. A nil part is not checked.
type Expected struct {
	VersionSum *big.Int
	Value      *big.Int
}

func ReadExpected(name string) (*Expected, error) {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("could not read answers file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("answers file %s too short; expected: >= 2 lines, given: %d", name, len(lines))
	}

	sum, err := parseAnswer(lines[0])
	if err != nil {
		return nil, fmt.Errorf("answers file %s, line 1: %w", name, err)
	}
	value, err := parseAnswer(lines[1])
	if err != nil {
		return nil, fmt.Errorf("answers file %s, line 2: %w", name, err)
	}

	return &Expected{VersionSum: sum, Value: value}, nil
}

func parseAnswer(line string) (*big.Int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(line, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid answer %q; expected a non-negative decimal integer", line)
	}
	return v, nil
}

// Validate compares res against exp. A part that is expected but couldn't be
// computed yields the line's own error.
func Validate(res *processing.Result, exp *Expected) error {
	if exp.VersionSum != nil {
		if !res.Parsed() {
			return res.Err
		}
		found := new(big.Int).SetUint64(res.VersionSum)
		if found.Cmp(exp.VersionSum) != 0 {
			return AnswerMismatchError{Part: PartVersionSum, Expected: exp.VersionSum.String(), Found: found.String()}
		}
	}

	if exp.Value != nil {
		if res.Value == nil {
			return res.Err
		}
		if res.Value.Cmp(exp.Value) != 0 {
			return AnswerMismatchError{Part: PartValue, Expected: exp.Value.String(), Found: res.Value.String()}
		}
	}

	return nil
}
