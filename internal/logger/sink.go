package logger

import (
	"fmt"
	"os"
	"sync"
)

// Sink is the append-only log file that every external command's stdout and
// stderr are written to. It is opened once at suite start and passed
// explicitly to whoever runs commands, so nothing depends on ambient global
// state.
type Sink struct {
	mu sync.Mutex
	f  *os.File
}

// OpenSink opens (or creates) the log file at path in append mode.
func OpenSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open command log %s: %w", path, err)
	}
	return &Sink{f: f}, nil
}

// Append writes the captured output of one command to the sink.
func (s *Sink) Append(stdout, stderr []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(stdout); err != nil {
		return fmt.Errorf("append stdout to command log: %w", err)
	}
	if _, err := s.f.Write(stderr); err != nil {
		return fmt.Errorf("append stderr to command log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
