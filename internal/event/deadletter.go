package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// DeadLetterSchemaVersion versions the JSON-lines record format
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one event the publisher gave up on
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends abandoned events to a JSON-lines file
type DeadLetterWriter struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends one record. Writes after Close fail with os.ErrClosed.
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	_, err = w.file.Write(line)
	return err
}

// Close closes the file. Closing twice is a no-op.
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// ReadDeadLetters loads every record in the file at path. A missing file holds no records.
// Payloads come back as json.RawMessage; DecodePayload turns them into typed values.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), DeadLetterMaxLineBytes)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		entry, err := parseDeadLetter(scanner.Bytes())
		if err != nil {
			return entries, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

func parseDeadLetter(line []byte) (DeadLetterEntry, error) {
	var raw struct {
		DeadLetterEntry
		Event struct {
			Version  string          `json:"version"`
			Type     Type            `json:"type"`
			Payload  json.RawMessage `json:"payload"`
			Metadata Metadata        `json:"metadata"`
		} `json:"event"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return DeadLetterEntry{}, err
	}

	entry := raw.DeadLetterEntry
	entry.Event = Event{
		Version:  raw.Event.Version,
		Type:     raw.Event.Type,
		Payload:  raw.Event.Payload,
		Metadata: raw.Event.Metadata,
	}
	return entry, nil
}
