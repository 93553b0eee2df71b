package changelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadAll parses the log one entry at a time from the start. A missing file
// yields no records and no error. The file may be growing concurrently: a
// trailing line without a newline terminator is treated as not-yet-written
// and skipped rather than reported as corruption.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read changelog: %w", err)
	}
	defer f.Close()

	var records []Record
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// Partial trailing line: the writer has not finished it yet.
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return records, fmt.Errorf("read changelog: malformed entry: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Tail returns the most recent n records, newest first. A non-positive n
// returns every record.
func Tail(path string, n int) ([]Record, error) {
	records, err := ReadAll(path)
	if err != nil {
		return nil, err
	}
	reversed := make([]Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	if n > 0 && len(reversed) > n {
		reversed = reversed[:n]
	}
	return reversed, nil
}
