package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/calculator"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/queue"
)

// Calculator produces the output stored with a portfolio.
type Calculator interface {
	Calculate(ctx context.Context, input models.PropertyInput) (models.PropertyOutput, bool)
}

type directCalculator struct{}

func (directCalculator) Calculate(_ context.Context, input models.PropertyInput) (models.PropertyOutput, bool) {
	return calculator.CalculatePropertyKPIs(input), false
}

// Service creates, updates and recalculates portfolios. Outputs are computed once on
// write and returned verbatim on read.
type Service struct {
	store     Store
	calc      Calculator
	queue     *queue.PortfolioQueue
	batchSize int
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService wires a store with a calculator and an optional recalculation queue.
// A nil calc computes without cache; a nil queue recalculates synchronously.
func NewService(store Store, calc Calculator, q *queue.PortfolioQueue, batchSize int, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if calc == nil {
		calc = directCalculator{}
	}

	return &Service{
		store:     store,
		calc:      calc,
		queue:     q,
		batchSize: batchSize,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Portfolio, error) {
	if !ValidUserID(userID) {
		return nil, ErrInvalidUser
	}
	return s.store.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (models.Portfolio, error) {
	if !ValidUserID(userID) {
		return models.Portfolio{}, ErrInvalidUser
	}
	return s.store.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, req models.PortfolioRequest) (models.Portfolio, error) {
	if !ValidUserID(userID) {
		return models.Portfolio{}, ErrInvalidUser
	}

	now := s.now()
	output, _ := s.calc.Calculate(ctx, req.Input)
	p := models.Portfolio{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
		Input:      req.Input,
		Output:     &output,
	}

	if err := s.store.Save(ctx, &p); err != nil {
		return models.Portfolio{}, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"portfolio_id": p.ID,
	}).Info("Created portfolio")
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, req models.PortfolioRequest) (models.Portfolio, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Portfolio{}, err
	}

	output, _ := s.calc.Calculate(ctx, req.Input)
	existing.Name = req.Name
	existing.Address = req.Address
	existing.PostalCode = req.PostalCode
	existing.Input = req.Input
	existing.Output = &output
	existing.UpdatedAt = s.now()

	if err := s.store.Save(ctx, &existing); err != nil {
		return models.Portfolio{}, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if !ValidUserID(userID) {
		return ErrInvalidUser
	}
	if err := s.store.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"portfolio_id": id,
	}).Info("Deleted portfolio")
	return nil
}

// Recalculate refreshes the stored outputs of all portfolios of a user and returns how
// many were queued (or recalculated, without a queue).
func (s *Service) Recalculate(ctx context.Context, userID string) (int, error) {
	portfolios, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	batch := make([]*models.Portfolio, 0, len(portfolios))
	for i := range portfolios {
		batch = append(batch, &portfolios[i])
	}

	if s.queue == nil {
		updates := make([]OutputUpdate, 0, len(batch))
		for _, p := range batch {
			u := NewOutputUpdate(p)
			s.Refresh(ctx, p)
			u.Output, u.UpdatedAt = *p.Output, p.UpdatedAt
			updates = append(updates, u)
		}
		written, err := s.store.UpdateOutputs(ctx, updates)
		if err != nil {
			return 0, fmt.Errorf("failed to save recalculated portfolios: %w", err)
		}
		return written, nil
	}

	queued, err := s.queue.PushAll(batch, s.batchSize)
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"queued":  queued,
		"total":   len(batch),
	}).Info("Queued portfolios for recalculation")
	if err != nil {
		return queued, fmt.Errorf("failed to queue recalculation: %w", err)
	}
	return queued, nil
}

// Refresh recomputes the output of p in place.
func (s *Service) Refresh(ctx context.Context, p *models.Portfolio) {
	output, _ := s.calc.Calculate(ctx, p.Input)
	p.Output = &output
	p.UpdatedAt = s.now()
}
