package service

import (
	"sync"
	"testing"

	"questbot/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDraftStoreLastWriteWins(t *testing.T) {
	store := NewDraftStore()

	store.Put(1, &model.QuestDraft{Title: "first"})
	store.Put(1, &model.QuestDraft{Title: "second"})

	draft := store.Take(1)
	assert.NotNil(t, draft)
	assert.Equal(t, "second", draft.Title)

	assert.Nil(t, store.Take(1))
}

func TestDraftStoreTakeClears(t *testing.T) {
	store := NewDraftStore()
	store.Put(7, &model.QuestDraft{Title: "once"})

	assert.NotNil(t, store.Take(7))
	assert.Nil(t, store.Take(7))
	assert.Nil(t, store.Peek(7))
}

func TestDraftStorePeekDoesNotClear(t *testing.T) {
	store := NewDraftStore()
	store.Put(3, &model.QuestDraft{Title: "keep"})

	assert.NotNil(t, store.Peek(3))
	assert.NotNil(t, store.Take(3))
}

func TestDraftStoreSessionsAreIndependent(t *testing.T) {
	store := NewDraftStore()
	store.Put(1, &model.QuestDraft{Title: "one"})
	store.Put(2, &model.QuestDraft{Title: "two"})

	assert.Equal(t, "one", store.Take(1).Title)
	assert.Equal(t, "two", store.Take(2).Title)
}

func TestDraftStoreConcurrentTakeHasOneWinner(t *testing.T) {
	store := NewDraftStore()
	store.Put(9, &model.QuestDraft{Title: "contested"})

	const takers = 16
	var wg sync.WaitGroup
	results := make(chan *model.QuestDraft, takers)

	for i := 0; i < takers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Take(9)
		}()
	}
	wg.Wait()
	close(results)

	var won int
	for draft := range results {
		if draft != nil {
			won++
		}
	}
	assert.Equal(t, 1, won)
}
