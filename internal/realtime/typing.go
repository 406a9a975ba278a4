package realtime

import (
	"sort"
	"sync"
	"time"
)

type typingEntry struct {
	started  time.Time
	lastSeen time.Time
}

// typingTracker derives the set of currently typing users per chat from
// userTyping events. Entries expire after the TTL so a peer that vanishes
// mid-keystroke doesn't stay "typing" forever.
type typingTracker struct {
	mu    sync.Mutex
	ttl   time.Duration
	chats map[string]map[string]typingEntry
}

func newTypingTracker(ttl time.Duration) *typingTracker {
	return &typingTracker{
		ttl:   ttl,
		chats: make(map[string]map[string]typingEntry),
	}
}

func (t *typingTracker) apply(ev *TypingEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !ev.Typing {
		if users, ok := t.chats[ev.ChatId]; ok {
			delete(users, ev.UserId)
		}
		return
	}

	users, ok := t.chats[ev.ChatId]
	if !ok {
		users = make(map[string]typingEntry)
		t.chats[ev.ChatId] = users
	}

	now := time.Now()
	entry, ok := users[ev.UserId]
	if !ok {
		entry.started = now
	}
	entry.lastSeen = now
	users[ev.UserId] = entry
}

// users returns user ids typing in the chat, ordered by when they started,
// pruning expired entries as a side effect.
func (t *typingTracker) users(chatId string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := []string{}
	entries, ok := t.chats[chatId]
	if !ok {
		return ids
	}

	cutoff := time.Now().Add(-t.ttl)
	for id, entry := range entries {
		if entry.lastSeen.Before(cutoff) {
			delete(entries, id)
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return entries[ids[i]].started.Before(entries[ids[j]].started)
	})

	return ids
}
