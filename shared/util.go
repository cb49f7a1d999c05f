package shared

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/sha256-simd"
)

// NormalizeInput strips surrounding whitespace from a single input line.
func NormalizeInput(line string) string {
	return strings.TrimSpace(line)
}

// Digest returns the sha256 digest of the normalized input line. Hex case is
// folded so that "d2fe28" and "D2FE28" share a digest.
func Digest(line string) []byte {
	h := sha256.New()
	h.Write([]byte(strings.ToUpper(NormalizeInput(line))))
	return h.Sum(nil)
}

func GetReportsDir(datadir string) string {
	return filepath.Join(datadir, ReportsDirName)
}

func GetReportFilename(datadir string, digest []byte) string {
	return filepath.Join(GetReportsDir(datadir), hex.EncodeToString(digest))
}

func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// HashParent is the merkle parent function over result digests.
func HashParent(lChild, rChild []byte) []byte {
	message := make([]byte, len(lChild)+len(rChild))
	copy(message, lChild)
	copy(message[len(lChild):], rChild)
	res := sha256.Sum256(message)
	return res[:]
}
