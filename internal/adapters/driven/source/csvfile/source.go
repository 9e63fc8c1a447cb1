// Package csvfile stores applicant records in a comma separated file.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/tabular"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.WatchableSource = (*Source)(nil)

// Source is a CSV backed driven.ApplicantSource. Rows whose fields did not
// change since the last read or write are saved as their original bytes,
// keeping quoting and line endings.
type Source struct {
	mu          sync.Mutex
	path        string
	fingerprint string
	lines       map[string][]byte
	crlf        bool
}

// New creates a CSV source at path. The file is not touched until Load or Save.
func New(path string) *Source {
	return &Source{path: path}
}

// Load reads every record from the file.
func (s *Source) Load(ctx context.Context) (domain.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecordSet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	rows, lines, err := split(data)
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	set, err := tabular.Decode(s.path, rows)
	if err != nil {
		return domain.RecordSet{}, err
	}
	s.remember(data, lines)
	return set, nil
}

// Save rewrites the whole file atomically.
func (s *Source) Save(ctx context.Context, set domain.RecordSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.encode(tabular.Encode(set))
	if err != nil {
		return &domain.PersistError{Path: s.path, Err: fmt.Errorf("encoding: %w", err)}
	}
	if err := tabular.WriteAtomic(s.path, data); err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}

	_, lines, err := split(data)
	if err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	s.remember(data, lines)
	return nil
}

func (s *Source) remember(data []byte, lines map[string][]byte) {
	s.fingerprint = tabular.Fingerprint(data)
	s.lines = lines
	if first := bytes.IndexByte(data, '\n'); first > 0 {
		s.crlf = data[first-1] == '\r'
	}
}

// encode writes rows, reusing the original bytes of unchanged rows.
// A reused last line without a terminator gets one only if more rows follow.
func (s *Source) encode(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = s.crlf
	newline := "\n"
	if s.crlf {
		newline = "\r\n"
	}

	open := false
	for _, row := range rows {
		w.Flush()
		if open {
			buf.WriteString(newline)
			open = false
		}
		if line, ok := s.lines[rowKey(row)]; ok {
			buf.Write(line)
			open = !bytes.HasSuffix(line, []byte("\n"))
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// split parses data and maps each row's fields to the bytes it was read from.
func split(data []byte) ([][]string, map[string][]byte, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	lines := make(map[string][]byte)
	var start int64
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		end := r.InputOffset()
		lines[rowKey(row)] = data[start:end]
		start = end
		rows = append(rows, row)
	}
}

// rowKey identifies a row by its fields, ignoring trailing empty ones so
// a short row matches its padded encoding.
func rowKey(row []string) string {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return strings.Join(row[:n], "\x00")
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Fingerprint returns the digest of the bytes last read or written.
func (s *Source) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprint
}
