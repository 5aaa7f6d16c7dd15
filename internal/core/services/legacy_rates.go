package services

import "github.com/SscSPs/btc_tracker/internal/core/domain"

// LegacyRates returns the legacy projection of the current EUR rates.
func (s *RateStore) LegacyRates() domain.LegacyRates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ProjectLegacyRates(s.ratesFromEUR)
}
