package memory

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bowerhall/novia/internal/logger"
)

// Store owns the two on-disk JSON documents: the relationship memory
// and the flat interaction log. Loads never fail (missing or corrupt
// files yield empty defaults) and failed saves are logged and
// swallowed, so a disk problem never kills an interactive session.
type Store struct {
	memoryPath string
	logPath    string
}

func NewStore(memoryPath, logPath string) *Store {
	return &Store{memoryPath: memoryPath, logPath: logPath}
}

func (s *Store) Load() *Memory {
	data, err := os.ReadFile(s.memoryPath)
	if err != nil {
		return NewMemory()
	}

	doc := NewMemory()
	if err := json.Unmarshal(data, doc); err != nil {
		logger.Warn("memory file unreadable, starting empty", "path", s.memoryPath, "error", err)
		return NewMemory()
	}

	return doc
}

func (s *Store) Save(doc *Memory) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Error("failed to encode memory", "error", err)
		return
	}

	if err := os.WriteFile(s.memoryPath, data, 0o644); err != nil {
		logger.Error("failed to save memory", "path", s.memoryPath, "error", err)
	}
}

func (s *Store) LoadLog() []Interaction {
	data, err := os.ReadFile(s.logPath)
	if err != nil {
		return []Interaction{}
	}

	var log []Interaction
	if err := json.Unmarshal(data, &log); err != nil {
		logger.Warn("interaction log unreadable, starting empty", "path", s.logPath, "error", err)
		return []Interaction{}
	}

	return log
}

func (s *Store) SaveLog(log []Interaction) {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		logger.Error("failed to encode interaction log", "error", err)
		return
	}

	if err := os.WriteFile(s.logPath, data, 0o644); err != nil {
		logger.Error("failed to save interaction log", "path", s.logPath, "error", err)
	}
}

// AppendInteraction records one exchange in the persistent log.
func (s *Store) AppendInteraction(userName, userText, aiResponse string) {
	now := time.Now()

	log := s.LoadLog()
	log = append(log, Interaction{
		Timestamp:   float64(now.UnixNano()) / 1e9,
		Date:        now.Format("2006-01-02 15:04:05"),
		UserName:    userName,
		UserMessage: userText,
		Response:    aiResponse,
	})

	s.SaveLog(log)
}

// MemoryPath returns the relationship memory file path.
func (s *Store) MemoryPath() string {
	return s.memoryPath
}

// LogPath returns the interaction log file path.
func (s *Store) LogPath() string {
	return s.logPath
}
