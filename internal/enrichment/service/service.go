// Package service runs inventory item enrichment. Suggestions come from the
// Gemini client, are cached in Redis keyed by the item's identity fields, and
// only ever fill fields the owner left blank.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"claimdesk_backend/internal/enrichment/client"
	invdomain "claimdesk_backend/internal/inventory/domain"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "enrichment:item:"

// ItemStore is the slice of the inventory repository the enricher needs.
type ItemStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (invdomain.Item, error)
	Update(ctx context.Context, item invdomain.Item) (invdomain.Item, error)
}

// Suggester produces enrichment suggestions for an item.
type Suggester interface {
	Suggest(ctx context.Context, name, brand, model, notes string) (client.Suggestion, error)
}

// Service enriches inventory items with suggested metadata.
type Service struct {
	items    ItemStore
	suggest  Suggester
	cache    *redis.Client
	cacheTTL time.Duration
	log      *logger.Logger
}

// New creates a new enrichment service. The Redis cache is optional; a nil
// client disables caching.
func New(items ItemStore, suggest Suggester, cache *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		items:    items,
		suggest:  suggest,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// EnrichItem loads an item, obtains a suggestion, and fills the fields the
// owner left blank. Items in terminal states are skipped.
func (s *Service) EnrichItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Status == invdomain.StatusArchived || item.Status == invdomain.StatusRejected {
		s.log.Info("skipping enrichment for inactive item", "itemId", itemID.String(), "status", string(item.Status))
		return nil
	}

	suggestion, err := s.suggestionFor(ctx, item)
	if err != nil {
		return err
	}

	changed := false
	if item.Category == "" && suggestion.Category != "" {
		item.Category = suggestion.Category
		changed = true
	}
	if item.Description == "" && suggestion.Description != "" {
		item.Description = suggestion.Description
		changed = true
	}
	if item.ReplacementValue == nil && suggestion.ReplacementValue > 0 {
		value := suggestion.ReplacementValue
		item.ReplacementValue = &value
		changed = true
	}

	if !changed {
		s.log.Info("enrichment produced no new fields", "itemId", itemID.String())
		return nil
	}

	if _, err := s.items.Update(ctx, item); err != nil {
		return fmt.Errorf("apply enrichment: %w", err)
	}
	s.log.Info("item enriched",
		"itemId", itemID.String(),
		"category", item.Category,
		"confidence", suggestion.Confidence,
	)
	return nil
}

// suggestionFor returns a cached suggestion when the item's identity fields
// are unchanged, calling the model otherwise.
func (s *Service) suggestionFor(ctx context.Context, item invdomain.Item) (client.Suggestion, error) {
	key := cacheKey(item)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var suggestion client.Suggestion
			if err := json.Unmarshal([]byte(cached), &suggestion); err == nil {
				return suggestion, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("enrichment cache read failed", "error", err)
		}
	}

	suggestion, err := s.suggest.Suggest(ctx, item.Name, item.Brand, item.Model, item.Description)
	if err != nil {
		return client.Suggestion{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(suggestion); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.log.Warn("enrichment cache write failed", "error", err)
			}
		}
	}
	return suggestion, nil
}

func cacheKey(item invdomain.Item) string {
	fingerprint := strings.ToLower(strings.Join([]string{item.Name, item.Brand, item.Model}, "|"))
	sum := sha256.Sum256([]byte(fingerprint))
	return cacheKeyPrefix + hex.EncodeToString(sum[:8])
}
