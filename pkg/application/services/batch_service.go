package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/polebom/pkg/application/dto"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// BatchOptions controls a batch run
type BatchOptions struct {
	// DefaultPoleWidthMm applies to crossarm requests that carry no pole width
	DefaultPoleWidthMm int
	// ValidateOnly finalizes into a throwaway session and skips aggregation
	ValidateOnly bool
}

// BatchService finalizes a list of component requests into one session and
// aggregates the result
type BatchService struct {
	configurator *Configurator
	logger       *zap.Logger
}

// NewBatchService creates a batch service over a configurator
func NewBatchService(configurator *Configurator, logger *zap.Logger) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{configurator: configurator, logger: logger}
}

// Run finalizes every request in order. Rejected requests are collected and
// do not stop the run; aggregation only happens when every request was accepted.
func (s *BatchService) Run(
	ctx context.Context,
	requests []entities.ComponentRequest,
	opts BatchOptions,
) (*dto.BOMResult, error) {
	start := time.Now()

	sessionID, err := s.configurator.NewSession()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.configurator.CloseSession(sessionID); err != nil {
			s.logger.Warn("failed to close session", zap.String("session_id", string(sessionID)), zap.Error(err))
		}
	}()

	result := &dto.BOMResult{SessionID: sessionID}

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch cancelled: %w", err)
		}

		poleWidth := req.PoleWidthMm
		if req.Kind == entities.KindCrossarm && !req.HasPoleWidth() {
			poleWidth = opts.DefaultPoleWidthMm
		}

		_, err := s.configurator.FinalizeComponent(sessionID, req.Kind, req.Selections, poleWidth)
		if err != nil {
			result.Rejected = append(result.Rejected, dto.RejectedRequest{
				Line:            req.Line,
				Kind:            req.Kind.String(),
				BuildIdentifier: s.configurator.ComputeLiveBuildIdentifier(req.Kind, req.Selections),
				Error:           err.Error(),
			})
			continue
		}
	}

	result.Components, err = s.configurator.Components(sessionID)
	if err != nil {
		return nil, err
	}

	if !opts.ValidateOnly && result.Valid() {
		result.PickList, err = s.configurator.Aggregate(sessionID)
		if err != nil {
			return nil, err
		}
	}

	result.Elapsed = time.Since(start)
	s.logger.Info("batch complete",
		zap.Int("requests", len(requests)),
		zap.Int("components", len(result.Components)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}
