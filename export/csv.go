// Package export writes the pipeline's persisted artifacts: the mapping CSV
// and the coverage CSV. Writes are atomic at whole-file granularity: content
// goes to a temp file in the target directory and is renamed into place, so
// a failed run leaves no partial output behind.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sillsdev/SemDomCoverageTool/coverage"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
)

// Options control CSV rendering.
type Options struct {
	// QuoteAll forces quotes around every field, matching the historical
	// mapping-file format. Off, fields are quoted only when needed.
	QuoteAll bool
}

// WriteMappingCSV writes the mapping table to path.
func WriteMappingCSV(path string, t *mapping.Table, opts Options) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		cw := newWriter(w, opts)
		if err := cw.Write(mapping.Header); err != nil {
			return err
		}
		for _, row := range t.Rows {
			if err := cw.Write([]string{row.Code, row.SemDom, row.SemDomName}); err != nil {
				return err
			}
		}
		return cw.Flush()
	})
}

// WriteCoverageCSV writes a coverage result to path, one row per domain
// that received at least one match.
func WriteCoverageCSV(path string, res *coverage.Result, opts Options) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		cw := newWriter(w, opts)
		if err := cw.Write(coverage.Header); err != nil {
			return err
		}
		for _, row := range res.Rows {
			record := []string{
				row.SemDom,
				row.SemDomName,
				strconv.Itoa(row.Total),
				strconv.Itoa(row.UniqueWords),
				strconv.Itoa(row.UniqueRefs),
				row.CodesField(),
				row.WordsField(),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return cw.Flush()
	})
}

// writeFileAtomic writes via a temp file in path's directory and renames it
// into place on success.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename output into place: %w", err)
	}
	return nil
}

// recordWriter abstracts the two quoting modes behind the csv.Writer shape.
type recordWriter interface {
	Write(record []string) error
	Flush() error
}

func newWriter(w io.Writer, opts Options) recordWriter {
	if opts.QuoteAll {
		return &quoteAllWriter{w: w}
	}
	return stdWriter{csv.NewWriter(w)}
}

type stdWriter struct {
	*csv.Writer
}

func (s stdWriter) Flush() error {
	s.Writer.Flush()
	return s.Writer.Error()
}

// quoteAllWriter emits RFC 4180 records with every field quoted, which
// encoding/csv cannot be configured to do.
type quoteAllWriter struct {
	w   io.Writer
	err error
}

func (q *quoteAllWriter) Write(record []string) error {
	if q.err != nil {
		return q.err
	}
	parts := make([]string, len(record))
	for i, field := range record {
		parts[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	_, q.err = io.WriteString(q.w, strings.Join(parts, ",")+"\r\n")
	return q.err
}

func (q *quoteAllWriter) Flush() error {
	return q.err
}
