// 29 Apr 2020

// Package common holds the small things every tool in the module needs:
// exit codes, the special sequence characters, messages to stderr and
// a helper for writing temporary files in tests.
package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const (
	GapChar   byte = '-' // a minus sign is always used for gaps
	AmbigChar byte = 'N' // unknown base in a nucleotide sequence
	StopChar  byte = '*' // translation of a stop codon
	UnkAA     byte = 'X' // translation of anything we cannot read
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()
	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}
