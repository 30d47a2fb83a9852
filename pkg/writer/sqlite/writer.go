// Package sqlite provides SQLite database writing for alignment hits
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ChrisMcGann/MassAlign/pkg/align"
	"github.com/ChrisMcGann/MassAlign/pkg/core"
	"github.com/ChrisMcGann/MassAlign/pkg/search"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	// schemaVersion is stored in HeaderTable.version
	schemaVersion = 1
)

// Writer handles writing hits to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	hitStmt    *sql.Stmt
	hitID      int
	mode       align.Mode
	finalized  bool
}

// NewWriter creates a new SQLite writer for hits aligned in the given mode
func NewWriter(outputPath string, mode align.Mode) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		hitID:      1,
		mode:       mode,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// Path returns the database file path
func (w *Writer) Path() string {
	return w.outputPath
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS AlignmentTable (
		AlignmentId INTEGER PRIMARY KEY,
		Query TEXT,
		Reference TEXT,
		QuerySequence TEXT,
		ReferenceSequence TEXT,
		QueryMass REAL,
		ReferenceMass REAL,
		Mode TEXT,
		Score INTEGER,
		StartA INTEGER,
		StartB INTEGER,
		LenA INTEGER,
		LenB INTEGER,
		Path TEXT,
		AlignedA TEXT,
		AlignedB TEXT,
		blobSteps BLOB,
		blobScores BLOB
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Mode TEXT,
		AlignmentCount INTEGER
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.hitStmt, err = w.db.Prepare(`
		INSERT INTO AlignmentTable (
			AlignmentId, Query, Reference, QuerySequence, ReferenceSequence,
			QueryMass, ReferenceMass,
			Mode, Score, StartA, StartB, LenA, LenB, Path, AlignedA, AlignedB,
			blobSteps, blobScores
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare alignment statement: %w", err)
	}

	return nil
}

// WriteHit writes a single hit to the database
func (w *Writer) WriteHit(hit *search.Hit) error {
	aln := &hit.Alignment

	_, err := w.hitStmt.Exec(
		w.hitID,                              // AlignmentId
		hit.Query,                            // Query
		hit.Reference,                        // Reference
		core.SequenceString(aln.SeqA),        // QuerySequence
		core.SequenceString(aln.SeqB),        // ReferenceSequence
		neutralMass(aln.SeqA),                // QueryMass
		neutralMass(aln.SeqB),                // ReferenceMass
		aln.Mode.String(),                    // Mode
		aln.Score,                            // Score
		aln.StartA,                           // StartA
		aln.StartB,                           // StartB
		aln.LenA(),                           // LenA
		aln.LenB(),                           // LenB
		aln.Short(),                          // Path
		core.SequenceString(aln.ConsumedA()), // AlignedA
		core.SequenceString(aln.ConsumedB()), // AlignedB
		encodeSteps(aln.Path),                // blobSteps
		encodeScores(aln.Path),               // blobScores
	)
	if err != nil {
		return fmt.Errorf("failed to insert alignment: %w", err)
	}

	w.hitID++
	return nil
}

// neutralMass returns nil for sequences with ambiguous residues so the column is NULL
func neutralMass(seq []core.AminoAcid) any {
	mass, ok := core.NeutralMass(seq)
	if !ok {
		return nil
	}
	return core.RoundFloat(mass, 6)
}

// encodeSteps encodes the path as (StepA, StepB) byte pairs
func encodeSteps(path []align.Piece) []byte {
	buf := make([]byte, 0, len(path)*2)
	for _, p := range path {
		buf = append(buf, p.StepA, p.StepB)
	}
	return buf
}

// encodeScores encodes the cumulative path scores as little-endian int64 blob
func encodeScores(path []align.Piece) []byte {
	buf := make([]byte, len(path)*8)
	for i, p := range path {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(int64(p.Score)))
	}
	return buf
}

// DecodeSteps reverses the blobSteps encoding.
func DecodeSteps(blob []byte) ([][2]uint8, error) {
	if len(blob)%2 != 0 {
		return nil, fmt.Errorf("steps blob has odd length %d", len(blob))
	}
	steps := make([][2]uint8, len(blob)/2)
	for i := range steps {
		steps[i] = [2]uint8{blob[2*i], blob[2*i+1]}
	}
	return steps, nil
}

// DecodeScores reverses the blobScores encoding.
func DecodeScores(blob []byte) ([]int, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("scores blob length %d is not a multiple of 8", len(blob))
	}
	scores := make([]int, len(blob)/8)
	for i := range scores {
		scores[i] = int(int64(binary.LittleEndian.Uint64(blob[i*8:])))
	}
	return scores, nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	// Write HeaderTable
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Mode, AlignmentCount)
		VALUES (?, ?, ?, ?)
	`, schemaVersion, time.Now().Format(headerDateFormat), w.mode.String(), w.hitID-1)
	if err != nil {
		w.db.Close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	if w.hitStmt != nil {
		w.hitStmt.Close()
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close finalizes the database if Finalize has not been called yet
func (w *Writer) Close() error {
	return w.Finalize()
}
