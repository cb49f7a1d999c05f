package shared

import "os"

const (
	OwnerReadWrite     = os.FileMode(0600)
	OwnerReadWriteExec = os.FileMode(0700)

	// DigestSize is the size of an input digest, in bytes.
	DigestSize = 32

	// ReportsDirName is the datadir subdirectory holding persisted reports.
	ReportsDirName = "reports"
)
