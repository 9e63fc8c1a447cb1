package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// Decode builds a record set from rows, the first of which is the header.
// Blank rows are skipped. A missing required column yields *domain.LoadError;
// an unknown status fails with domain.ErrUnknownStatus naming the row.
//
// Every record keeps its row text in Cells, so Encode writes untouched
// values back exactly as they were read.
func Decode(path string, rows [][]string) (domain.RecordSet, error) {
	if len(rows) == 0 {
		return domain.RecordSet{}, &domain.LoadError{Path: path, Missing: domain.MissingColumns(nil)}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = domain.NormaliseColumn(h)
	}
	if missing := domain.MissingColumns(header); len(missing) > 0 {
		return domain.RecordSet{}, &domain.LoadError{Path: path, Missing: missing}
	}

	set := domain.RecordSet{
		Columns: header,
		Header:  append([]string(nil), rows[0]...),
		Records: make([]domain.ApplicantRecord, 0, len(rows)-1),
	}
	for n, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		// Spreadsheet row number, counting the header as row 1.
		rowNum := n + 2
		rec, err := decodeRow(header, row, rowNum)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("load %s row %d: %w", path, rowNum, err)
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

func decodeRow(header, row []string, rowNum int) (domain.ApplicantRecord, error) {
	rec := domain.ApplicantRecord{
		Attributes: make(map[string]string),
		Cells:      make([]string, max(len(header), len(row))),
	}
	copy(rec.Cells, row)

	for i, col := range header {
		var value string
		if i < len(row) {
			value = row[i]
		}

		switch col {
		case domain.ColumnID:
			rec.ID = strings.TrimSpace(value)
		case domain.ColumnApplicationDate:
			rec.ApplicationDateRaw = value
			if t, ok := domain.ParseApplicationDate(value); ok {
				rec.ApplicationDate = t
			} else if strings.TrimSpace(value) != "" {
				logger.Debug("Row %d: unparseable application date %q", rowNum, value)
			}
		case domain.ColumnFullName:
			rec.FullName = strings.TrimSpace(value)
		case domain.ColumnStatus:
			status, err := domain.ParseStatus(value)
			if err != nil {
				return rec, err
			}
			rec.Status = status
		case domain.ColumnDetails:
			rec.Details = value
		case domain.ColumnRatingScore:
			score, ok := parseScore(value)
			if ok {
				rec.RatingScore = score
			} else {
				rec.Attributes[col] = value
			}
		case domain.ColumnActivityFeed:
			decodeActivity(&rec, value, rowNum)
		default:
			if col == "" {
				continue
			}
			rec.Attributes[col] = value
		}
	}
	return rec, nil
}

func decodeActivity(rec *domain.ApplicantRecord, value string, rowNum int) {
	if strings.TrimSpace(value) == "" {
		rec.Attributes[domain.ColumnActivityFeed] = value
		return
	}
	feed, err := domain.ParseActivityFeed(value)
	if err != nil {
		logger.Warn("Row %d: activity feed kept as text: %v", rowNum, err)
		rec.Attributes[domain.ColumnActivityFeed] = value
		return
	}
	if err := feed.Validate(); err != nil {
		logger.Warn("Row %d: %v", rowNum, err)
	}
	rec.Activity = feed
}

// parseScore accepts integers and whole floats such as "85.0", which
// spreadsheets produce for numeric cells.
func parseScore(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Encode renders set as rows with a header first. Columns keep the order
// they were loaded in; a set without columns uses domain.DefaultColumns.
// A value equal to what was read is written as the original cell text.
func Encode(set domain.RecordSet) [][]string {
	header := set.Columns
	if len(header) == 0 {
		header = domain.DefaultColumns
	}
	first := header
	if len(set.Header) == len(header) {
		first = set.Header
	}

	rows := make([][]string, 0, len(set.Records)+1)
	rows = append(rows, append([]string(nil), first...))
	for i := range set.Records {
		rows = append(rows, encodeRow(header, &set.Records[i]))
	}
	return rows
}

func encodeRow(header []string, rec *domain.ApplicantRecord) []string {
	row := make([]string, len(header), max(len(header), len(rec.Cells)))
	for i, col := range header {
		raw, read := "", i < len(rec.Cells)
		if read {
			raw = rec.Cells[i]
		}

		switch col {
		case domain.ColumnID:
			row[i] = keep(raw, read && strings.TrimSpace(raw) == rec.ID, rec.ID)
		case domain.ColumnApplicationDate:
			row[i] = rec.ApplicationDateRaw
			if row[i] == "" && rec.HasApplicationDate() {
				row[i] = rec.ApplicationDate.Format(domain.DisplayDateLayout)
			}
		case domain.ColumnFullName:
			row[i] = keep(raw, read && strings.TrimSpace(raw) == rec.FullName, rec.FullName)
		case domain.ColumnStatus:
			status, err := domain.ParseStatus(raw)
			row[i] = keep(raw, read && err == nil && status == rec.Status, rec.Status.String())
		case domain.ColumnDetails:
			row[i] = rec.Details
		case domain.ColumnRatingScore:
			if text, ok := rec.Attributes[col]; ok {
				row[i] = text
				break
			}
			score, ok := parseScore(raw)
			row[i] = keep(raw, read && ok && score == rec.RatingScore, strconv.Itoa(rec.RatingScore))
		case domain.ColumnActivityFeed:
			if len(rec.Activity) == 0 {
				row[i] = rec.Attributes[col]
				break
			}
			feed, err := domain.ParseActivityFeed(raw)
			row[i] = keep(raw, read && err == nil && feed.Equal(rec.Activity), rec.Activity.String())
		default:
			row[i] = keep(raw, read && (col == "" || rec.Attributes[col] == raw), rec.Attributes[col])
		}
	}
	if len(rec.Cells) > len(header) {
		row = append(row, rec.Cells[len(header):]...)
	}
	return row
}

// keep returns raw when it still holds the value, otherwise value.
func keep(raw string, same bool, value string) string {
	if same {
		return raw
	}
	return value
}
