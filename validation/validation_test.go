package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/evaluating"
	"github.com/spacemeshos/bits/processing"
	"github.com/stretchr/testify/require"
)

func answersFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	return name
}

func TestReadExpected(t *testing.T) {
	req := require.New(t)

	exp, err := ReadExpected(answersFile(t, "20\n1\n"))
	req.NoError(err)
	req.Equal("20", exp.VersionSum.String())
	req.Equal("1", exp.Value.String())

	exp, err = ReadExpected(answersFile(t, "\n 54 \n"))
	req.NoError(err)
	req.Nil(exp.VersionSum)
	req.Equal("54", exp.Value.String())

	exp, err = ReadExpected(answersFile(t, "16\n"))
	req.NoError(err)
	req.Nil(exp.Value)
}

func TestReadExpected_Invalid(t *testing.T) {
	req := require.New(t)

	_, err := ReadExpected(answersFile(t, "16"))
	req.ErrorContains(err, "too short")

	_, err = ReadExpected(answersFile(t, "sixteen\n3\n"))
	req.ErrorContains(err, "line 1")

	_, err = ReadExpected(answersFile(t, "16\n-3\n"))
	req.ErrorContains(err, "line 2")

	_, err = ReadExpected(filepath.Join(t.TempDir(), "missing"))
	req.ErrorIs(err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	req := require.New(t)

	res := processing.Decode("9C0141080250320F1802104A08", config.DefaultConfig())
	req.NoError(Validate(res, &Expected{}))

	exp, err := ReadExpected(answersFile(t, "20\n1\n"))
	req.NoError(err)
	req.NoError(Validate(res, exp))

	exp, err = ReadExpected(answersFile(t, "21\n1\n"))
	req.NoError(err)
	var errMismatch AnswerMismatchError
	req.ErrorAs(Validate(res, exp), &errMismatch)
	req.Equal(AnswerMismatchError{Part: PartVersionSum, Expected: "21", Found: "20"}, errMismatch)

	exp, err = ReadExpected(answersFile(t, "\n0\n"))
	req.NoError(err)
	req.ErrorAs(Validate(res, exp), &errMismatch)
	req.Equal(PartValue, errMismatch.Part)
	req.Equal("invalid value; expected: 0, given: 1", errMismatch.Error())
}

func TestValidate_FailedLine(t *testing.T) {
	req := require.New(t)

	// Parsed, evaluation failed: the version sum can still be checked.
	res := processing.Decode("66000", config.DefaultConfig())
	exp, err := ReadExpected(answersFile(t, "3\n\n"))
	req.NoError(err)
	req.NoError(Validate(res, exp))

	exp, err = ReadExpected(answersFile(t, "3\n1\n"))
	req.NoError(err)
	var errEmpty evaluating.EmptySubpacketsError
	req.ErrorAs(Validate(res, exp), &errEmpty)

	res = processing.Decode("G", config.DefaultConfig())
	req.ErrorIs(Validate(res, exp), res.Err)
}
