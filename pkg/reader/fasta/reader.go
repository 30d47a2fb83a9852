// Package fasta provides a streaming reader for peptide sequence files
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ChrisMcGann/MassAlign/pkg/core"
)

// Record is a single named peptide sequence.
type Record struct {
	Name     string
	Sequence []core.AminoAcid
	// Dropped counts characters of the sequence text that did not decode
	// to a symbol.
	Dropped int
}

// Reader provides streaming access to FASTA files. Files without any header
// line are read as one sequence per line, named after their line number.
// Blank lines and lines starting with '#' or ';' are ignored.
type Reader struct {
	scanner       *bufio.Scanner
	lineNum       int
	pendingHeader string
	hasPending    bool
	current       *Record
	err           error
}

// NewReader creates a new FASTA reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	r.current = nil

	rec, err := r.readRecord()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = rec
	return true
}

// Record returns the current record
func (r *Reader) Record() *Record {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readRecord reads a single record
func (r *Reader) readRecord() (*Record, error) {
	var rec *Record
	var text strings.Builder

	if r.hasPending {
		rec = &Record{Name: r.pendingHeader}
		r.hasPending = false
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, ">") {
			name := strings.TrimSpace(strings.TrimPrefix(line, ">"))
			if name == "" {
				return nil, fmt.Errorf("line %d: empty sequence header", r.lineNum)
			}
			if rec != nil {
				// header of the following record
				r.pendingHeader = name
				r.hasPending = true
				return finish(rec, text.String()), nil
			}
			rec = &Record{Name: name}
			continue
		}

		if rec == nil {
			// headerless file: every line is a record
			return finish(&Record{Name: fmt.Sprintf("line%d", r.lineNum)}, line), nil
		}
		text.WriteString(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
	}
	if rec != nil {
		return finish(rec, text.String()), nil
	}
	return nil, io.EOF
}

func finish(rec *Record, text string) *Record {
	rec.Sequence = core.ParseSequence(text)
	rec.Dropped = len(text) - len(rec.Sequence)
	return rec
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader) ([]*Record, error) {
	reader := NewReader(r)
	var records []*Record
	for reader.Next() {
		records = append(records, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
