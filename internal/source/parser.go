// Package source discovers and parses CSV and JSONL entry logs.
package source

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/goalpace/internal/model"
)

// ParseResult holds the output of parsing a single log file.
type ParseResult struct {
	Entries     []model.Entry
	ParseErrors int
	Err         error
}

var errMissingDate = errors.New("missing date")

// ParseFile reads one entry log. Rows that cannot be interpreted are
// skipped and counted in ParseErrors; only I/O failures set Err.
// Rows sharing an id within the file are deduplicated, keeping the last one.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var records []record
	var parseErrors int
	switch df.Format {
	case FormatJSONL:
		records, parseErrors, err = readJSONL(f)
	default:
		records, parseErrors, err = readCSV(f)
	}
	if err != nil {
		return ParseResult{Err: err}
	}

	index := make(map[string]int)
	var entries []model.Entry
	for _, rec := range records {
		e, err := rec.entry(df)
		if err != nil {
			parseErrors++
			continue
		}
		if i, ok := index[e.ID]; ok {
			entries[i] = e
			continue
		}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}

	return ParseResult{Entries: entries, ParseErrors: parseErrors}
}

// EntryID derives a stable entry ID from the log file path and the row's
// own id (or line number). Row ids are only unique within one file.
func EntryID(path, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path+"#"+key)).String()
}

// record is one row keyed by canonical field name.
type record struct {
	line   int
	fields map[string]string
}

func (r record) get(field string) string {
	return strings.TrimSpace(r.fields[field])
}

func readCSV(rd io.Reader) ([]record, int, error) {
	cr := csv.NewReader(bufio.NewReader(rd))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	columns := canonicalColumns(header)

	var records []record
	parseErrors := 0
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			parseErrors++
			continue
		}
		if err != nil {
			return nil, parseErrors, err
		}

		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if name != "" && i < len(row) {
				fields[name] = row[i]
			}
		}
		records = append(records, record{line: line, fields: fields})
	}
	return records, parseErrors, nil
}

// canonicalColumns maps each header position to its canonical field name,
// or "" when the column is unknown.
func canonicalColumns(header []string) []string {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}

	columns := make([]string, len(header))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := pos[alias]; ok {
				columns[i] = field
				break
			}
		}
	}
	return columns
}

func readJSONL(rd io.Reader) ([]record, int, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []record
	parseErrors := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			parseErrors++
			continue
		}

		lower := make(map[string]string, len(obj))
		for k, v := range obj {
			lower[strings.ToLower(k)] = jsonScalar(v)
		}
		fields := make(map[string]string, len(columnAliases))
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if v, ok := lower[alias]; ok {
					fields[field] = v
					break
				}
			}
		}
		records = append(records, record{line: line, fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, parseErrors, err
	}
	return records, parseErrors, nil
}

func jsonScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func (r record) entry(df DiscoveredFile) (model.Entry, error) {
	date, err := parseDate(r.get("date"))
	if err != nil {
		return model.Entry{}, err
	}

	key := r.get("id")
	if key == "" {
		key = fmt.Sprintf("line:%d", r.line)
	}
	e := model.Entry{
		ID:     EntryID(df.Path, key),
		Date:   date,
		Title:  r.get("title"),
		Amount: 1,
		Mood:   r.get("mood"),
		GoalID: r.get("goal"),
		Note:   r.get("note"),
		Source: df.Path,
	}
	if e.GoalID == "" {
		if src := r.get("source"); src != "" {
			e.GoalID = model.LegacyGoalID(src)
		}
	}

	if s := r.get("amount"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return model.Entry{}, fmt.Errorf("line %d: invalid amount %q", r.line, s)
		}
		e.Amount = v
	}
	if s := r.get("progress"); s != "" {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || v < 0 {
			return model.Entry{}, fmt.Errorf("line %d: invalid progress %q", r.line, s)
		}
		e.Progress = v
	}
	if s := r.get("created_at"); s != "" {
		e.CreatedAt, _ = parseTimestamp(s)
	}
	return e, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errMissingDate
	}
	if len(s) > len(model.DateLayout) {
		s = s[:len(model.DateLayout)]
	}
	return time.ParseInLocation(model.DateLayout, s, time.Local)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
