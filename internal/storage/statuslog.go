package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// StatusLogStorage is the flat-file log of payment callback events, one
// "order_id,STATUS" line per event. Reads resolve the last matching line.
type StatusLogStorage interface {
	Append(ctx context.Context, orderID, status string) error
	// LastStatus returns the status of the last line matching orderID, or
	// "" when the id never appears in the log.
	LastStatus(ctx context.Context, orderID string) (string, error)
}

type fileStatusLog struct {
	path string
	mu   sync.Mutex
}

// NewFileStatusLog creates a status log backed by the file at path. The file
// is created on first append.
func NewFileStatusLog(path string) StatusLogStorage {
	return &fileStatusLog{path: path}
}

func (l *fileStatusLog) Append(_ context.Context, orderID, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open status log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s,%s\n", orderID, status); err != nil {
		return fmt.Errorf("failed to append status log entry: %w", err)
	}
	return nil
}

func (l *fileStatusLog) LastStatus(_ context.Context, orderID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open status log: %w", err)
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 2)
		if len(parts) != 2 {
			// malformed line, skip it
			continue
		}
		if parts[0] == orderID {
			last = strings.TrimSpace(parts[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan status log: %w", err)
	}
	return last, nil
}
