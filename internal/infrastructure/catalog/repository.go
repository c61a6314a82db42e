// Package catalog serves the Orinu catalog from an embedded YAML seed.
package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/utils/validator"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Orinus []domain.Orinu `yaml:"orinus"`
}

// MemoryRepository is a read-only, in-memory catalog. Seed order is preserved.
// Implements domain.OrinuRepository.
type MemoryRepository struct {
	orinus []domain.Orinu
	byID   map[string]int
}

// NewSeedRepository loads the embedded seed catalog.
func NewSeedRepository() (*MemoryRepository, error) {
	return Load(seedYAML)
}

// Load parses and validates a YAML catalog.
func Load(data []byte) (*MemoryRepository, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	v := validator.New()
	repo := &MemoryRepository{
		orinus: make([]domain.Orinu, 0, len(seed.Orinus)),
		byID:   make(map[string]int, len(seed.Orinus)),
	}
	for i, o := range seed.Orinus {
		if err := v.Validate(o); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, o.ID, err)
		}
		if _, dup := repo.byID[o.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, o.ID)
		}
		repo.byID[o.ID] = len(repo.orinus)
		repo.orinus = append(repo.orinus, o)
	}
	return repo, nil
}

// List returns a copy of the catalog in seed order.
func (r *MemoryRepository) List(_ context.Context) ([]domain.Orinu, error) {
	out := make([]domain.Orinu, len(r.orinus))
	copy(out, r.orinus)
	return out, nil
}

// FindByID returns the series with the given id, or domain.ErrOrinuNotFound.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.Orinu, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrinuNotFound, id)
	}
	o := r.orinus[i]
	return &o, nil
}
