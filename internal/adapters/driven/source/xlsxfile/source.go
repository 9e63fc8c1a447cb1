// Package xlsxfile stores applicant records in the first sheet of an
// Excel workbook.
package xlsxfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/tabular"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.WatchableSource = (*Source)(nil)

// DefaultSheet names the sheet of a workbook created by Save.
const DefaultSheet = "Sheet1"

// Source is an XLSX backed driven.ApplicantSource. Saving patches the
// workbook last read or written, so only changed cells are rewritten and
// cell types, styles and other sheets are kept.
type Source struct {
	mu          sync.Mutex
	path        string
	sheet       string
	fingerprint string
	workbook    []byte
	rowOf       map[string]int
	cells       map[int][]string
	nextRow     int
}

// New creates an XLSX source at path.
func New(path string) *Source {
	return &Source{path: path, sheet: DefaultSheet}
}

// Load reads every record from the first sheet.
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

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("opening workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.RecordSet{}, &domain.LoadError{Path: s.path, Missing: domain.MissingColumns(nil)}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("reading sheet %q of %s: %w", sheets[0], s.path, err)
	}

	set, err := tabular.Decode(s.path, rows)
	if err != nil {
		return domain.RecordSet{}, err
	}

	s.sheet = sheets[0]
	s.workbook = data
	s.fingerprint = tabular.Fingerprint(data)
	s.index(set.Columns, rows)
	return set, nil
}

// index records which sheet row holds each applicant and the text of
// every row. Sheet rows are 1-based with the header in row 1.
func (s *Source) index(columns []string, rows [][]string) {
	idCol := slices.Index(columns, domain.ColumnID)
	s.rowOf = make(map[string]int, len(rows))
	s.cells = make(map[int][]string, len(rows))
	s.nextRow = len(rows) + 1
	for i, row := range rows {
		s.cells[i+1] = row
		if i == 0 || idCol < 0 || idCol >= len(row) {
			continue
		}
		if id := strings.TrimSpace(row[idCol]); id != "" {
			s.rowOf[id] = i + 1
		}
	}
}

// Save writes set to the workbook atomically.
func (s *Source) Save(ctx context.Context, set domain.RecordSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	columns := set.Columns
	if len(columns) == 0 {
		columns = domain.DefaultColumns
	}
	rows := tabular.Encode(set)

	if s.workbook == nil {
		data, err := s.create(rows)
		if err == nil {
			err = tabular.WriteAtomic(s.path, data)
		}
		if err != nil {
			return &domain.PersistError{Path: s.path, Err: err}
		}
		s.saved(data)
		s.index(columns, rows)
		return nil
	}

	data, placed, err := s.patch(columns, rows)
	if err == nil {
		err = tabular.WriteAtomic(s.path, data)
	}
	if err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	s.saved(data)
	idCol := slices.Index(columns, domain.ColumnID)
	for n, row := range placed {
		s.cells[n] = row
		if n > 1 && idCol >= 0 {
			s.rowOf[strings.TrimSpace(row[idCol])] = n
		}
		s.nextRow = max(s.nextRow, n+1)
	}
	return nil
}

func (s *Source) saved(data []byte) {
	s.workbook = data
	s.fingerprint = tabular.Fingerprint(data)
}

// patch sets the cells of rows that differ from the workbook and returns
// the rows it wrote keyed by sheet row. Records without a sheet row are
// appended below the last one.
func (s *Source) patch(columns []string, rows [][]string) ([]byte, map[int][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(s.workbook))
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	idCol := slices.Index(columns, domain.ColumnID)
	if idCol < 0 {
		return nil, nil, fmt.Errorf("%w: no %s column", domain.ErrInvalidInput, domain.ColumnID)
	}
	placed := make(map[int][]string)
	next := s.nextRow
	for i, row := range rows {
		n := 1
		if i > 0 {
			var ok bool
			if n, ok = s.rowOf[strings.TrimSpace(row[idCol])]; !ok {
				n = next
				next++
			}
		}

		old, changed := s.cells[n], false
		for c, value := range row {
			if c < len(old) && old[c] == value || c >= len(old) && value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, n)
			if err != nil {
				return nil, nil, err
			}
			if err := f.SetCellValue(s.sheet, cell, value); err != nil {
				return nil, nil, fmt.Errorf("writing %s: %w", cell, err)
			}
			changed = true
		}
		if changed {
			placed[n] = row
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), placed, nil
}

// create builds a new workbook. Whole numbers are stored as numeric cells.
func (s *Source) create(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if s.sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, s.sheet); err != nil {
			return nil, fmt.Errorf("naming sheet: %w", err)
		}
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for c, text := range row {
			values[c] = cellValue(text)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(s.sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(text string) any {
	if n, err := strconv.Atoi(text); err == nil && strconv.Itoa(n) == text {
		return n
	}
	return text
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Sheet returns the name of the sheet records are read from.
func (s *Source) Sheet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet
}

// Fingerprint returns the digest of the bytes last read or written.
func (s *Source) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprint
}
