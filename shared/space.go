package shared

import (
	"fmt"

	"github.com/ricochet2200/go-disk-usage/du"
)

func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// ValidateSpace checks that the filesystem holding path can take another
// required bytes.
func ValidateSpace(path string, required uint64) error {
	if available := AvailableSpace(path); available < required {
		return fmt.Errorf("%w; expected: >= %d bytes available, given: %d", ErrInsufficientSpace, required, available)
	}
	return nil
}
