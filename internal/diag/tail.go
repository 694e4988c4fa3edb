package diag

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Tail returns at most maxLines from the end of the file at path. A
// missing file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Line is one console-encoded log record split into its columns.
type Line struct {
	Time    string
	Level   string
	Caller  string
	Message string
	Fields  string
}

// ParseLine splits a line written by the loggers in this package. Lines
// that do not match, such as stack traces, come back with only Message
// set.
func ParseLine(raw string) Line {
	parts := strings.Split(raw, "\t")
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Line{Message: raw}
	}
	line := Line{Time: parts[0], Level: parts[1]}
	rest := parts[2:]
	if len(rest) > 1 && strings.Contains(rest[0], ".go:") {
		line.Caller, rest = rest[0], rest[1:]
	}
	line.Message = rest[0]
	if len(rest) > 1 {
		line.Fields = strings.Join(rest[1:], " ")
	}
	return line
}

func isLevel(s string) bool {
	switch s {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}
