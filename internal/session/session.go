package session

import (
	"time"

	"mock-interview/internal/catalog"
)

// TurnRole tags who produced a conversation turn.
type TurnRole string

const (
	TurnAI   TurnRole = "ai"
	TurnUser TurnRole = "user"
)

// Turn is one entry in a session transcript. Turns are append-only and
// insertion order is the only ordering guarantee.
type Turn struct {
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// maxPredefined caps how many predefined questions an interview may use,
// regardless of bank length.
const maxPredefined = 10

// Cursor points into a role's predefined question bank, or marks that the
// session has switched to fallback question generation. Once in fallback a
// cursor never returns to the bank.
type Cursor struct {
	fallback bool
	index    int
}

// IndexedCursor returns a cursor at position i in the bank.
func IndexedCursor(i int) Cursor {
	return Cursor{index: i}
}

// FallbackCursor returns a cursor in fallback mode.
func FallbackCursor() Cursor {
	return Cursor{fallback: true}
}

// InFallback reports whether the cursor has left the predefined bank.
func (c Cursor) InFallback() bool {
	return c.fallback
}

// Index returns the current bank position. The second result is false in
// fallback mode.
func (c Cursor) Index() (int, bool) {
	if c.fallback {
		return 0, false
	}
	return c.index, true
}

// Next advances the cursor within a bank of bankLen entries. It moves to the
// next bank position while one exists under the ten-question cap, and
// otherwise switches to fallback for good.
func (c Cursor) Next(bankLen int) Cursor {
	if c.fallback {
		return c
	}
	next := c.index + 1
	if next < bankLen && next < maxPredefined {
		return Cursor{index: next}
	}
	return Cursor{fallback: true}
}

// Session tracks one upload-through-feedback journey. All fields are owned
// by the Store and must only be touched inside View/Update callbacks.
type Session struct {
	ID         string
	ResumeText string
	FileName   string
	UploadTime time.Time

	Turns   []Turn
	Role    *catalog.Role
	RoleKey string
	Cursor  Cursor

	lastActivity time.Time
}

// AppendAI records a question produced by the interviewer side.
func (s *Session) AppendAI(text string) {
	s.Turns = append(s.Turns, Turn{Role: TurnAI, Text: text, Timestamp: time.Now()})
}

// AppendUser records a candidate answer.
func (s *Session) AppendUser(text string) {
	s.Turns = append(s.Turns, Turn{Role: TurnUser, Text: text, Timestamp: time.Now()})
}

// QuestionsAsked counts the interviewer turns so far.
func (s *Session) QuestionsAsked() int {
	n := 0
	for _, t := range s.Turns {
		if t.Role == TurnAI {
			n++
		}
	}
	return n
}
