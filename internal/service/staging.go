package service

import (
	"sync"

	"questbot/internal/model"
)

// DraftStore holds at most one unconfirmed quest draft per admin. It is
// intentionally process-memory only: a restart discards staged drafts and
// the admin re-enters them, since confirmation is always explicit.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[int64]*model.QuestDraft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[int64]*model.QuestDraft),
	}
}

// Put stages a draft for the admin, replacing any previous one.
func (s *DraftStore) Put(adminID int64, draft *model.QuestDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[adminID] = draft
}

// Take returns the staged draft and clears it in one step.
func (s *DraftStore) Take(adminID int64) *model.QuestDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[adminID]
	delete(s.drafts, adminID)
	return draft
}

func (s *DraftStore) Peek(adminID int64) *model.QuestDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[adminID]
}
