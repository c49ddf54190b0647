package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// BuildState is the outcome of the most recent build.
type BuildState string

const (
	StateIdle      BuildState = "idle"
	StateBuilding  BuildState = "building"
	StateCompleted BuildState = "completed"
	StateFailed    BuildState = "failed"
)

// Status tracks the latest build for reporting. Safe for concurrent use.
type Status struct {
	mu sync.Mutex

	state        BuildState
	phase        string
	hash         string
	publications int
	builds       int
	err          string
	updatedAt    time.Time
}

func NewStatus() *Status {
	return &Status{state: StateIdle, updatedAt: time.Now()}
}

// SetPhase marks a build in progress.
func (s *Status) SetPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateBuilding
	s.phase = phase
	s.updatedAt = time.Now()
}

// Complete records a successful build.
func (s *Status) Complete(hash string, publications int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateCompleted
	s.phase = "done"
	s.hash = hash
	s.publications = publications
	s.builds++
	s.err = ""
	s.updatedAt = time.Now()
}

// Fail records a failed build; the last good hash is kept.
func (s *Status) Fail(phase string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.phase = phase
	s.builds++
	s.err = err.Error()
	s.updatedAt = time.Now()
}

// StatusSnapshot is a read-only, JSON-safe copy of build state.
type StatusSnapshot struct {
	State        BuildState `json:"state"`
	Phase        string     `json:"phase"`
	ContentHash  string     `json:"content_hash,omitempty"`
	Publications int        `json:"publications"`
	Builds       int        `json:"builds"`
	Error        string     `json:"error,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the build state.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusSnapshot{
		State:        s.state,
		Phase:        s.phase,
		ContentHash:  s.hash,
		Publications: s.publications,
		Builds:       s.builds,
		Error:        s.err,
		UpdatedAt:    s.updatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
