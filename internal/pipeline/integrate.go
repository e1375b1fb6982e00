package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
)

// StateIntegrator implements Integrator using the domain join selected by
// JOIN_MODE.
type StateIntegrator struct {
	mode   domain.JoinMode
	logger *slog.Logger
}

// NewIntegrator creates a StateIntegrator. An unrecognised mode falls back to
// the disaster-driven join.
func NewIntegrator(mode domain.JoinMode, logger *slog.Logger) *StateIntegrator {
	if mode != domain.JoinPopulation {
		mode = domain.JoinDisasters
	}
	return &StateIntegrator{mode: mode, logger: logger}
}

func (i *StateIntegrator) Integrate(census *domain.CensusData, disasters *domain.DisasterIndex) ([]domain.IntegratedRecord, domain.SkipCounts) {
	i.logger.Debug("integrating", "join_mode", i.mode)
	if i.mode == domain.JoinPopulation {
		return domain.IntegrateFromPopulation(census, disasters)
	}
	return domain.Integrate(census, disasters)
}
