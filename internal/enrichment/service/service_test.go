package service

import (
	"context"
	"testing"
	"time"

	"claimdesk_backend/internal/enrichment/client"
	invdomain "claimdesk_backend/internal/inventory/domain"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeItemStore struct {
	items map[uuid.UUID]invdomain.Item
}

func (f *fakeItemStore) GetByID(_ context.Context, id uuid.UUID) (invdomain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return invdomain.Item{}, apperr.NotFound("inventory item not found")
	}
	return item, nil
}

func (f *fakeItemStore) Update(_ context.Context, item invdomain.Item) (invdomain.Item, error) {
	f.items[item.ID] = item
	return item, nil
}

type fakeSuggester struct {
	suggestion client.Suggestion
	calls      int
}

func (f *fakeSuggester) Suggest(_ context.Context, _, _, _, _ string) (client.Suggestion, error) {
	f.calls++
	return f.suggestion, nil
}

func TestEnrichItem_FillsBlankFieldsOnly(t *testing.T) {
	itemID := uuid.New()
	owned := 450.0
	store := &fakeItemStore{items: map[uuid.UUID]invdomain.Item{
		itemID: {
			ID:               itemID,
			Status:           invdomain.StatusActive,
			Name:             "Espresso Machine",
			Brand:            "Breville",
			Description:      "Owner-written description",
			ReplacementValue: &owned,
		},
	}}
	suggester := &fakeSuggester{suggestion: client.Suggestion{
		Category:         "Appliances",
		Description:      "Model-written description",
		ReplacementValue: 700,
		Confidence:       0.9,
	}}

	svc := New(store, suggester, nil, 0, logger.New("development"))
	if err := svc.EnrichItem(context.Background(), itemID); err != nil {
		t.Fatalf("EnrichItem returned error: %v", err)
	}

	item := store.items[itemID]
	if item.Category != "Appliances" {
		t.Errorf("Category = %q, want Appliances", item.Category)
	}
	if item.Description != "Owner-written description" {
		t.Errorf("Description overwritten: %q", item.Description)
	}
	if item.ReplacementValue == nil || *item.ReplacementValue != 450 {
		t.Error("owner's replacement value should be kept")
	}
	if suggester.calls != 1 {
		t.Errorf("suggester calls = %d, want 1", suggester.calls)
	}
}

func TestEnrichItem_CachesSuggestionsByIdentity(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	firstID, secondID := uuid.New(), uuid.New()
	store := &fakeItemStore{items: map[uuid.UUID]invdomain.Item{
		firstID:  {ID: firstID, Status: invdomain.StatusActive, Name: "Road Bike", Brand: "Trek"},
		secondID: {ID: secondID, Status: invdomain.StatusActive, Name: "Road Bike", Brand: "Trek"},
	}}
	suggester := &fakeSuggester{suggestion: client.Suggestion{
		Category:         "Sporting Goods",
		Description:      "Aluminum frame road bicycle",
		ReplacementValue: 1100,
		Confidence:       0.8,
	}}

	svc := New(store, suggester, cache, time.Hour, logger.New("development"))
	if err := svc.EnrichItem(context.Background(), firstID); err != nil {
		t.Fatalf("first EnrichItem returned error: %v", err)
	}
	if err := svc.EnrichItem(context.Background(), secondID); err != nil {
		t.Fatalf("second EnrichItem returned error: %v", err)
	}

	if suggester.calls != 1 {
		t.Errorf("suggester calls = %d, want 1 (second item should hit the cache)", suggester.calls)
	}
	if got := store.items[secondID].Category; got != "Sporting Goods" {
		t.Errorf("second item Category = %q, want Sporting Goods", got)
	}
}

func TestEnrichItem_SkipsArchivedItems(t *testing.T) {
	itemID := uuid.New()
	store := &fakeItemStore{items: map[uuid.UUID]invdomain.Item{
		itemID: {ID: itemID, Status: invdomain.StatusArchived, Name: "Old TV"},
	}}
	suggester := &fakeSuggester{}

	svc := New(store, suggester, nil, 0, logger.New("development"))
	if err := svc.EnrichItem(context.Background(), itemID); err != nil {
		t.Fatalf("EnrichItem returned error: %v", err)
	}
	if suggester.calls != 0 {
		t.Errorf("suggester calls = %d, want 0 for archived items", suggester.calls)
	}
}
