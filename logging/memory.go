package logging

import (
	"io"
	"sync"

	"go.uber.org/zap"
)

type LogsExporter interface {
	Export(io.Writer, bool) error
}

type logLine []byte

// memoryLogs is a fixed size ring of the last written log lines.
type memoryLogs struct {
	lock  sync.Mutex
	lines []logLine
	next  int
	count int
}

func NewMemoryLogger(size int) zap.Sink {
	return &memoryLogs{
		lines: make([]logLine, size),
	}
}

func (m *memoryLogs) Write(p []byte) (n int, err error) {
	l := make(logLine, len(p))
	copy(l, p)

	m.lock.Lock()
	defer m.lock.Unlock()
	m.lines[m.next] = l
	m.next = (m.next + 1) % len(m.lines)
	if m.count < len(m.lines) {
		m.count++
	}
	return len(p), nil
}

func (m *memoryLogs) Sync() error {
	return nil
}

func (m *memoryLogs) Close() error {
	return nil
}

func (m *memoryLogs) Export(w io.Writer, revert bool) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	oldest := (m.next - m.count + len(m.lines)) % len(m.lines)
	for i := 0; i < m.count; i++ {
		pos := i
		if revert {
			pos = m.count - 1 - i
		}
		if _, err := w.Write(m.lines[(oldest+pos)%len(m.lines)]); err != nil {
			return err
		}
	}
	return nil
}
