package zoko

import (
	"fmt"
	"sync"
)

// dmContextPrefix is used in place of a guild ID for sessions started
// in a DM channel.
const dmContextPrefix = "dm"

// ChannelContextID returns the session key for channel-scoped games
// (XOX, taş-kağıt-makas, Wordle). Only one such game can be live per
// channel - starting a new one overwrites the old session.
func ChannelContextID(guildID, channelID string) string {
	if guildID == "" {
		return fmt.Sprintf("%s:%s", dmContextPrefix, channelID)
	}
	return fmt.Sprintf("%s:%s", guildID, channelID)
}

// UserContextID returns the session key for single-player games
// (Blackjack), which are scoped per channel *and* per user.
func UserContextID(guildID, channelID, userID string) string {
	if guildID == "" {
		guildID = dmContextPrefix
	}
	return fmt.Sprintf("%s:%s:%s", guildID, channelID, userID)
}

// SessionStore is a keyed registry of live game sessions. One store
// exists per game family, injected into its engine, so independent
// engine instances can run side by side in tests.
//
// The original bot ran on a single-threaded event loop and needed no
// locking. discordgo dispatches gateway events on separate goroutines,
// so here every engine transition must hold the store lock from first
// read to final mutation. Get/Put/Remove/Len assume the caller holds
// the lock; Count locks internally and is safe for observers (stats,
// API handlers).
type SessionStore[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

func NewSessionStore[T any]() *SessionStore[T] {
	return &SessionStore[T]{entries: map[string]T{}}
}

// Lock guards a full engine transition. No engine code may block or
// call out to Discord/the database while holding it.
func (s *SessionStore[T]) Lock() {
	s.mu.Lock()
}

func (s *SessionStore[T]) Unlock() {
	s.mu.Unlock()
}

// Get returns the session at key. The caller must hold the lock.
func (s *SessionStore[T]) Get(key string) (T, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Put stores a session at key, replacing any existing session
// silently. The caller must hold the lock.
func (s *SessionStore[T]) Put(key string, v T) {
	s.entries[key] = v
}

// Remove deletes the session at key, reporting whether one existed.
// The caller must hold the lock.
func (s *SessionStore[T]) Remove(key string) bool {
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Len returns the number of live sessions. The caller must hold the lock.
func (s *SessionStore[T]) Len() int {
	return len(s.entries)
}

// Count returns the number of live sessions, acquiring the lock itself.
func (s *SessionStore[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
