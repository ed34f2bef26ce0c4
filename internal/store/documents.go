package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/annoview/internal/webanno"
)

// Entry is an uploaded document held in memory.
type Entry struct {
	mu sync.Mutex

	ID          string
	Filename    string
	ContentHash string
	Size        int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Internal: replaced wholesale, never modified in place.
	doc *webanno.Document
}

// NewEntry builds an entry for a parsed upload. The ID is derived from the
// raw bytes, so uploading the same file again yields the same ID.
func NewEntry(filename string, data []byte, doc *webanno.Document) *Entry {
	now := time.Now()
	hash := ContentHashHex(data)
	return &Entry{
		ID:          hash[:16],
		Filename:    filename,
		ContentHash: hash,
		Size:        int64(len(data)),
		CreatedAt:   now,
		UpdatedAt:   now,
		doc:         doc,
	}
}

// Document returns the parsed document.
func (e *Entry) Document() *webanno.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Touch marks the entry as recently used.
func (e *Entry) Touch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UpdatedAt = time.Now()
}

func (e *Entry) updatedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.UpdatedAt
}

// EntrySnapshot is a read-only, JSON-safe summary of an entry.
type EntrySnapshot struct {
	ID          string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Format      string    `json:"format,omitempty"`
	ContentHash string    `json:"content_hash"`
	Size        int64     `json:"size"`
	Sections    int       `json:"sections"`
	Annotations int       `json:"annotations"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the entry state.
func (e *Entry) Snapshot() EntrySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := EntrySnapshot{
		ID:          e.ID,
		Filename:    e.Filename,
		ContentHash: e.ContentHash,
		Size:        e.Size,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.doc != nil {
		snap.Title = e.doc.Title
		snap.Format = e.doc.Format
		snap.Sections = len(e.doc.Sections)
		snap.Annotations = e.doc.AnnotationCount()
	}
	return snap
}

// DocumentStore is a thread-safe in-memory document registry with TTL eviction.
type DocumentStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDocumentStore(ttl time.Duration) *DocumentStore {
	return &DocumentStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
	}
}

// Put stores e, replacing any entry with the same ID.
func (s *DocumentStore) Put(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
}

func (s *DocumentStore) Get(id string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

// Delete removes an entry and reports whether it existed.
func (s *DocumentStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

// List returns snapshots of all entries, oldest first.
func (s *DocumentStore) List() []EntrySnapshot {
	s.mu.Lock()
	entries := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	snaps := make([]EntrySnapshot, 0, len(entries))
	for _, e := range entries {
		snaps = append(snaps, e.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].ID < snaps[j].ID
		}
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
	return snaps
}

func (s *DocumentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup removes expired entries and returns how many were dropped.
func (s *DocumentStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.updatedAt()) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Start runs Cleanup every interval until Stop is called or ctx is done.
func (s *DocumentStore) Start(ctx context.Context, interval time.Duration) {
	cleanupCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Stop halts the cleanup loop.
func (s *DocumentStore) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
