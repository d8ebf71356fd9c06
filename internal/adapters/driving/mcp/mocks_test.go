package mcp

import (
	"context"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driving"
	"github.com/custodia-labs/petmatch/internal/core/services"
)

// mockMatchService is a mock implementation of driving.MatchService.
type mockMatchService struct {
	result *domain.MatchResult
	animal *domain.Animal
	err    error

	gotPrefs domain.Preferences
	gotK     int
}

func (m *mockMatchService) FindMatches(_ context.Context, prefs domain.Preferences, k int) (*domain.MatchResult, error) {
	m.gotPrefs = prefs
	m.gotK = k
	return m.result, m.err
}

func (m *mockMatchService) LookupAnimal(_ context.Context, _ int64) (*domain.Animal, error) {
	return m.animal, m.err
}

func (m *mockMatchService) BuildQuery(prefs domain.Preferences) string {
	return services.BuildQuery(prefs)
}

func (m *mockMatchService) Status() driving.EngineStatus {
	return driving.EngineStatus{Ready: m.err == nil}
}
