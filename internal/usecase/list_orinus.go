package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/goddivor/Orinu-hub/internal/domain"
)

const (
	trendingCount     = 6
	categoryCount     = 8
	newOriginalsStart = 6
	newOriginalsEnd   = 10
)

// Landing holds the sections of the landing page.
type Landing struct {
	Day          domain.PublishDay `json:"day"`
	Category     domain.Category   `json:"category"`
	Trending     []domain.Orinu    `json:"trending"`
	Weekly       []domain.Orinu    `json:"weekly"`
	ByCategory   []domain.Orinu    `json:"byCategory"`
	NewOriginals []domain.Orinu    `json:"newOriginals"`
}

// Catalog serves catalog listings.
type Catalog struct {
	repo   domain.OrinuRepository
	logger *slog.Logger
}

// NewCatalog creates the catalog usecase.
func NewCatalog(repo domain.OrinuRepository, logger *slog.Logger) *Catalog {
	return &Catalog{repo: repo, logger: logger.With("component", "catalog")}
}

// ListOrinus filters, sorts and limits the catalog.
func (c *Catalog) ListOrinus(ctx context.Context, filter domain.OrinuFilter) ([]domain.Orinu, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", domain.ErrInvalidInput, filter.Limit)
	}

	all, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	out := make([]domain.Orinu, 0, len(all))
	for _, o := range all {
		if filter.Matches(o) {
			out = append(out, o)
		}
	}

	switch filter.SortBy {
	case domain.SortViews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	case domain.SortLikes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// GetOrinu returns one series.
func (c *Catalog) GetOrinu(ctx context.Context, id string) (*domain.Orinu, error) {
	return c.repo.FindByID(ctx, id)
}

// Landing builds the landing page for the selected day and category.
// An empty day selects the default day; an empty category selects all.
func (c *Catalog) Landing(ctx context.Context, day domain.PublishDay, category domain.Category) (*Landing, error) {
	if day == "" {
		day = domain.DefaultPublishDay
	}
	if category == "" {
		category = domain.CategoryAll
	}

	all, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	weekly, err := c.ListOrinus(ctx, domain.OrinuFilter{Day: day})
	if err != nil {
		return nil, err
	}
	byCategory, err := c.ListOrinus(ctx, domain.OrinuFilter{Category: category, Limit: categoryCount})
	if err != nil {
		return nil, err
	}

	landing := &Landing{
		Day:          day,
		Category:     category,
		Trending:     window(all, 0, trendingCount),
		Weekly:       weekly,
		ByCategory:   byCategory,
		NewOriginals: window(all, newOriginalsStart, newOriginalsEnd),
	}

	c.logger.DebugContext(ctx, "landing built",
		"day", day,
		"category", category,
		"weekly", len(weekly),
		"by_category", len(byCategory))

	return landing, nil
}

// window returns orinus[from:to] clamped to the slice bounds.
func window(orinus []domain.Orinu, from, to int) []domain.Orinu {
	if from > len(orinus) {
		from = len(orinus)
	}
	if to > len(orinus) {
		to = len(orinus)
	}
	return append([]domain.Orinu(nil), orinus[from:to]...)
}
