package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/nullstyle/go-xdr/xdr3"

	"github.com/spacemeshos/bits/processing"
	"github.com/spacemeshos/bits/shared"
)

// Report is the persisted outcome of decoding one input line, keyed by the
// line digest. Value holds the decimal value; it is empty when evaluation
// failed.
type Report struct {
	Input      string
	Digest     []byte
	Parsed     bool
	VersionSum uint64
	Value      string
	Error      string
}

func NewReport(res *processing.Result) *Report {
	r := &Report{
		Input:      res.Input,
		Digest:     res.Digest,
		Parsed:     res.Parsed(),
		VersionSum: res.VersionSum,
	}
	if res.Value != nil {
		r.Value = res.Value.String()
	}
	if res.Err != nil {
		var errLine processing.LineError
		if errors.As(res.Err, &errLine) {
			errLine.Line = 0
			r.Error = errLine.Error()
		} else {
			r.Error = res.Err.Error()
		}
	}
	return r
}

func PersistReport(datadir string, report *Report) error {
	var w bytes.Buffer
	_, err := xdr.Marshal(&w, report)
	if err != nil {
		return fmt.Errorf("serialization failure: %v", err)
	}

	dir := shared.GetReportsDir(datadir)
	err = os.MkdirAll(dir, shared.OwnerReadWriteExec)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("dir creation failure: %v", err)
	}

	if err := shared.ValidateSpace(dir, uint64(w.Len())); err != nil {
		return err
	}

	filename := shared.GetReportFilename(datadir, report.Digest)
	err = ioutil.WriteFile(filename, w.Bytes(), shared.OwnerReadWrite)
	if err != nil {
		return fmt.Errorf("write to disk failure: %v", err)
	}

	return nil
}

func FetchReport(datadir string, digest []byte) (*Report, error) {
	filename := shared.GetReportFilename(datadir, digest)
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrReportNotExist
		}

		return nil, fmt.Errorf("read file failure: %v", err)
	}

	report := &Report{}
	_, err = xdr.Unmarshal(bytes.NewReader(data), report)
	if err != nil {
		return nil, err
	}

	return report, nil
}
