package v1

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adanyl0v/go-todo-lists/internal/models"
	"github.com/adanyl0v/go-todo-lists/internal/services"
)

var errStorageDown = errors.New("storage down")

// memStore mimics the Postgres services: ids come from sequences, items are
// scoped to their list and deleting a list cascades to its items.
type memStore struct {
	mu         sync.Mutex
	now        time.Time
	nextListID int64
	nextItemID int64
	lists      map[int64]models.List
	items      map[int64]models.Item
	fail       bool
	calls      int
}

func newMemStore() *memStore {
	return &memStore{
		now:   time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		lists: make(map[int64]models.List),
		items: make(map[int64]models.Item),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) enter() error {
	s.calls++
	if s.fail {
		return errStorageDown
	}
	return nil
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

type fakeListService struct{ *memStore }

func (s fakeListService) CreateList(_ context.Context, params services.CreateListParams) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.List{}, err
	}

	s.nextListID++
	now := s.tick()
	list := models.List{
		ID:          s.nextListID,
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.lists[list.ID] = list
	return list, nil
}

func (s fakeListService) GetList(_ context.Context, listID int64) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.List{}, err
	}

	list, ok := s.lists[listID]
	if !ok {
		return models.List{}, services.ErrListNotFound
	}
	return list, nil
}

func (s fakeListService) GetLists(_ context.Context, offset, limit int) ([]models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}

	var all []models.List
	for id := int64(1); id <= s.nextListID; id++ {
		if list, ok := s.lists[id]; ok {
			all = append(all, list)
		}
	}
	return window(all, offset, limit), nil
}

func (s fakeListService) UpdateList(_ context.Context, params services.UpdateListParams) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.List{}, err
	}

	list, ok := s.lists[params.ID]
	if !ok {
		return models.List{}, services.ErrListNotFound
	}
	if params.Title != nil {
		list.Title = *params.Title
	}
	if params.Description != nil {
		list.Description = params.Description
	}
	list.UpdatedAt = s.tick()
	s.lists[list.ID] = list
	return list, nil
}

func (s fakeListService) DeleteList(_ context.Context, listID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return false, err
	}

	if _, ok := s.lists[listID]; !ok {
		return false, nil
	}
	delete(s.lists, listID)
	for id, item := range s.items {
		if item.ListID == listID {
			delete(s.items, id)
		}
	}
	return true, nil
}

type fakeItemService struct{ *memStore }

func (s fakeItemService) CreateItem(_ context.Context, params services.CreateItemParams) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.Item{}, err
	}

	if _, ok := s.lists[params.ListID]; !ok {
		return models.Item{}, services.ErrListNotFound
	}
	s.nextItemID++
	now := s.tick()
	item := models.Item{
		ID:          s.nextItemID,
		ListID:      params.ListID,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.StatusNotCompleted,
		DueAt:       params.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items[item.ID] = item
	return item, nil
}

func (s fakeItemService) GetItem(_ context.Context, listID, itemID int64) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.Item{}, err
	}

	item, ok := s.items[itemID]
	if !ok || item.ListID != listID {
		return models.Item{}, services.ErrItemNotFound
	}
	return item, nil
}

func (s fakeItemService) GetItems(_ context.Context, listID int64, offset, limit int) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}

	var all []models.Item
	for id := int64(1); id <= s.nextItemID; id++ {
		if item, ok := s.items[id]; ok && item.ListID == listID {
			all = append(all, item)
		}
	}
	return window(all, offset, limit), nil
}

func (s fakeItemService) UpdateItem(_ context.Context, params services.UpdateItemParams) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return models.Item{}, err
	}

	item, ok := s.items[params.ID]
	if !ok || item.ListID != params.ListID {
		return models.Item{}, services.ErrItemNotFound
	}
	if params.Title != nil {
		item.Title = *params.Title
	}
	if params.Description != nil {
		item.Description = params.Description
	}
	if params.DueAt != nil {
		item.DueAt = params.DueAt
	}
	if params.Status != nil {
		item.Status = *params.Status
	}
	item.UpdatedAt = s.tick()
	s.items[item.ID] = item
	return item, nil
}

func (s fakeItemService) DeleteItem(_ context.Context, listID, itemID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return false, err
	}

	item, ok := s.items[itemID]
	if !ok || item.ListID != listID {
		return false, nil
	}
	delete(s.items, itemID)
	return true, nil
}
