package amber

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoData marks a telemetry file that decoded cleanly but contained no
// usable data rows (header only, or nothing but blank rows). It is reported
// per file and never aborts a run.
var ErrNoData = errors.New("no usable data rows")

// ReadFile reads a telemetry CSV from disk. See ReadRecords.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadRecords decodes a raw telemetry byte stream into records. The source
// instrument is known to emit embedded NUL bytes and occasional invalid
// UTF-8; both are repaired line by line before the text ever reaches the CSV
// layer, so decoding never fails. The first decoded line is the header.
// Rows whose every field trims to empty are dropped silently.
func ReadRecords(r io.Reader) ([]Record, error) {
	cleaned, err := cleanLines(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(cleaned))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("read row: %w", err)
		}
		if blankRow(row) {
			continue
		}
		rec := NewRecord()
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec.Set(name, row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

func blankRow(fields []string) bool {
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cleanLines scrubs the stream line by line: NUL bytes become spaces before
// any decoding is attempted, then each line goes through the decode ladder.
func cleanLines(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var b strings.Builder
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.ReplaceAll(line, []byte{0x00}, []byte{' '})
			b.WriteString(decodeLine(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return b.String(), err
		}
	}
	return b.String(), nil
}

// decodeLine turns one raw line into text without ever failing. Valid UTF-8
// passes through; invalid sequences are substituted with U+FFFD; should the
// substituted text still not be valid UTF-8, Latin-1 is the last resort
// since it maps every byte value.
func decodeLine(line []byte) string {
	if utf8.Valid(line) {
		return string(line)
	}
	repaired := bytes.ToValidUTF8(line, []byte("�"))
	if utf8.Valid(repaired) {
		return string(repaired)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(line)
	if err != nil {
		// Latin-1 decoding is total; keep the repaired bytes if it
		// somehow reports an error anyway.
		return string(repaired)
	}
	return string(s)
}
