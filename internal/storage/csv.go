package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{"time", "title", "brand", "age_months", "asking_price", "min", "max", "reason", "llm_provider", "llm_model"}

// CSV appends records to a report file, writing the header when the file
// is new.
type CSV struct {
	path string
	mu   sync.Mutex
}

var _ SuggestionRepository = (*CSV)(nil)

func NewCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &CSV{path: path}, nil
}

func (c *CSV) Save(_ context.Context, rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write(marshalRow(rec)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (c *CSV) FindRecent(_ context.Context, limit int) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	records := []Record{}
	for line := 0; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 0 && slices.Equal(row, csvHeader) {
			continue
		}
		rec, err := unmarshalRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", c.path, line+1, err)
		}
		records = append(records, rec)
	}

	slices.Reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func marshalRow(rec Record) []string {
	return []string{
		rec.Time.Format(time.RFC3339Nano),
		rec.Title,
		rec.Brand,
		strconv.Itoa(rec.AgeMonths),
		strconv.FormatFloat(rec.AskingPrice, 'f', -1, 64),
		strconv.Itoa(rec.Min),
		strconv.Itoa(rec.Max),
		rec.Reason,
		rec.LLMProvider,
		rec.LLMModel,
	}
}

func unmarshalRow(row []string) (Record, error) {
	var (
		rec Record
		err error
	)
	if rec.Time, err = time.Parse(time.RFC3339Nano, row[0]); err != nil {
		return rec, err
	}
	rec.Title = row[1]
	rec.Brand = row[2]
	if rec.AgeMonths, err = strconv.Atoi(row[3]); err != nil {
		return rec, err
	}
	if rec.AskingPrice, err = strconv.ParseFloat(row[4], 64); err != nil {
		return rec, err
	}
	if rec.Min, err = strconv.Atoi(row[5]); err != nil {
		return rec, err
	}
	if rec.Max, err = strconv.Atoi(row[6]); err != nil {
		return rec, err
	}
	rec.Reason = row[7]
	rec.LLMProvider = row[8]
	rec.LLMModel = row[9]
	return rec, nil
}
