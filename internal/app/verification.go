package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/verify"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
	"github.com/o4villegas/gameday-bingo/pkg/metrics"
)

// RunVerification fetches game data (or uses manualText when provided), asks
// the analyzer to verify the period's events, and parks the result as
// pending approval. At most one result may be pending at a time.
func (s *Service) RunVerification(ctx context.Context, period string, manualText string) (verify.Result, error) {
	if !catalog.ValidPeriod(period) {
		return verify.Result{}, fmt.Errorf("%w: %s", verify.ErrInvalidPeriod, period)
	}
	if s.analyzer == nil {
		return verify.Result{}, verify.ErrMissingAPIKey
	}

	vs, err := s.loadVerification(ctx)
	if err != nil {
		return verify.Result{}, err
	}
	if vs.PendingApproval != nil {
		return verify.Result{}, verify.ErrPendingApproval
	}

	gameData := manualText
	if gameData == "" {
		if s.source == nil {
			return verify.Result{}, verify.ErrNoSourceConfigured
		}
		gameData, err = s.source.FetchGameData(ctx)
		if err != nil {
			metrics.RecordVerificationFailure()
			return verify.Result{}, fmt.Errorf("%w: %w", verify.ErrUpstream, err)
		}
	}

	p := catalog.Period(period)
	events := s.periodEvents(p)

	metrics.RecordVerificationRun()
	result, err := s.analyzer.VerifyPeriod(ctx, p, events, gameData)
	if err != nil {
		metrics.RecordVerificationFailure()
		return verify.Result{}, err
	}

	vs.PendingApproval = &result
	if err := s.saveVerification(ctx, vs); err != nil {
		return verify.Result{}, err
	}

	s.logger.Info(ctx, "verification pending approval",
		logger.String("period", period),
		logger.Int("verdicts", len(result.Events)),
	)
	return result, nil
}

// VerificationStatus returns the pending result (if any) and the applied
// history.
func (s *Service) VerificationStatus(ctx context.Context) (verify.State, error) {
	return s.loadVerification(ctx)
}

// ApproveVerification applies the pending result to the outcome map and
// moves it to the applied history. Application is monotonic: outcomes only
// flip false to true, and only for confident "occurred" verdicts.
func (s *Service) ApproveVerification(ctx context.Context) (game.Outcomes, error) {
	vs, err := s.loadVerification(ctx)
	if err != nil {
		return nil, err
	}
	if vs.PendingApproval == nil {
		return nil, verify.ErrNothingPending
	}

	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}
	applied := 0
	for _, ev := range vs.PendingApproval.Events {
		if verify.Approvable(ev) && !outcomes[ev.EventID] {
			outcomes[ev.EventID] = true
			applied++
		}
	}
	if err := s.saveOutcomes(ctx, outcomes); err != nil {
		return nil, err
	}

	result := *vs.PendingApproval
	vs.AppliedResults = append(vs.AppliedResults, result)
	vs.PendingApproval = nil
	if err := s.saveVerification(ctx, vs); err != nil {
		return nil, err
	}

	if err := s.markPeriodVerified(ctx, string(result.Period)); err != nil {
		return nil, err
	}

	metrics.RecordVerificationApproval()
	s.logger.Info(ctx, "verification approved",
		logger.String("period", string(result.Period)),
		logger.Int("outcomesApplied", applied),
	)
	return outcomes, nil
}

// DismissVerification discards the pending result without touching outcomes.
func (s *Service) DismissVerification(ctx context.Context) error {
	vs, err := s.loadVerification(ctx)
	if err != nil {
		return err
	}
	if vs.PendingApproval == nil {
		return verify.ErrNothingPending
	}
	vs.PendingApproval = nil
	return s.saveVerification(ctx, vs)
}

func (s *Service) periodEvents(p catalog.Period) []catalog.Event {
	var out []catalog.Event
	for _, ev := range s.catalog.Events() {
		if ev.Period == p {
			out = append(out, ev)
		}
	}
	return out
}

func (s *Service) markPeriodVerified(ctx context.Context, period string) error {
	state, err := s.loadState(ctx)
	if err != nil {
		return err
	}
	for _, p := range state.PeriodsVerified {
		if p == period {
			return nil
		}
	}
	state.PeriodsVerified = append(state.PeriodsVerified, period)
	return s.saveState(ctx, state)
}

func (s *Service) loadVerification(ctx context.Context) (verify.State, error) {
	raw, ok, err := s.store.Get(ctx, verificationKey)
	if err != nil {
		return verify.State{}, fmt.Errorf("load verification: %w", err)
	}
	if !ok {
		return verify.State{}, nil
	}
	var vs verify.State
	if err := json.Unmarshal(raw, &vs); err != nil {
		return verify.State{}, fmt.Errorf("decode verification: %w", err)
	}
	return vs, nil
}

func (s *Service) saveVerification(ctx context.Context, vs verify.State) error {
	raw, err := json.Marshal(vs)
	if err != nil {
		return fmt.Errorf("encode verification: %w", err)
	}
	if err := s.store.Put(ctx, verificationKey, raw); err != nil {
		return fmt.Errorf("persist verification: %w", err)
	}
	return nil
}
