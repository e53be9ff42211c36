package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/repository"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/pkg/utils"
)

const (
	metricsCacheKeyFormat = "caja:metrics:period:%d"
	metricsCacheTTL       = 5 * time.Minute
)

type MetricsService struct {
	EntryRepo  repository.EntryRepository
	EgressRepo repository.EgressRepository
	LoanRepo   repository.LoanRepository
	PeriodRepo repository.PeriodRepository
	redis      *redis.Client
}

func NewMetricsService(
	entryRepo repository.EntryRepository,
	egressRepo repository.EgressRepository,
	loanRepo repository.LoanRepository,
	periodRepo repository.PeriodRepository,
	redisClient *redis.Client,
) *MetricsService {
	return &MetricsService{
		EntryRepo:  entryRepo,
		EgressRepo: egressRepo,
		LoanRepo:   loanRepo,
		PeriodRepo: periodRepo,
		redis:      redisClient,
	}
}

// GetMetrics computes the cooperative's cash position for a period: opening
// balances plus everything tendered in, minus everything tendered out, with
// the unpaid loan principal still on the street. Cached briefly in Redis
// since the dashboard polls it.
func (s *MetricsService) GetMetrics(ctx context.Context, periodID int64) (*domain.Metrics, error) {
	if cached := s.readCachedMetrics(ctx, periodID); cached != nil {
		return cached, nil
	}

	period, err := s.PeriodRepo.GetByID(ctx, periodID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapNotFound("period", periodID)
	}
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	entryCash, entryTransfer, err := s.EntryRepo.SumTendered(ctx, periodID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	egressCash, egressTransfer, err := s.EgressRepo.SumTendered(ctx, periodID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	outstanding, err := s.LoanRepo.SumOutstandingPrincipal(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	cashTotal := utils.RoundMoney(period.InitCash.Add(entryCash).Sub(egressCash))
	transferTotal := utils.RoundMoney(period.InitTransfer.Add(entryTransfer).Sub(egressTransfer))

	metrics := &domain.Metrics{
		Total:               utils.RoundMoney(cashTotal.Add(transferTotal)),
		CashTotal:           cashTotal,
		TransferTotal:       transferTotal,
		LoanTotalDispatched: utils.RoundMoney(outstanding),
	}

	s.writeCachedMetrics(ctx, periodID, metrics)

	return metrics, nil
}

// GetTypeMetrics breaks the period down per charge type: opening amount plus
// entry inflow minus egress outflow for every catalog type.
func (s *MetricsService) GetTypeMetrics(ctx context.Context, periodID int64) ([]domain.TypeMetric, error) {
	types, err := s.EntryRepo.ListTypes(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	entrySums, err := s.EntryRepo.SumByType(ctx, periodID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	egressSums, err := s.EgressRepo.SumByType(ctx, periodID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	openings, err := s.PeriodRepo.ListTypeOpenings(ctx, periodID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	sums := make(map[int]decimal.Decimal, len(types))
	for _, opening := range openings {
		sums[opening.TypeID] = sums[opening.TypeID].Add(opening.StartAmount)
	}
	for _, entry := range entrySums {
		sums[entry.ID] = sums[entry.ID].Add(entry.Sum)
	}
	for _, egress := range egressSums {
		sums[egress.ID] = sums[egress.ID].Sub(egress.Sum)
	}

	metrics := make([]domain.TypeMetric, 0, len(types))
	for _, entryType := range types {
		metrics = append(metrics, domain.TypeMetric{
			ID:          entryType.ID,
			Description: entryType.Description,
			Sum:         utils.RoundMoney(sums[entryType.ID]),
		})
	}

	return metrics, nil
}

func (s *MetricsService) readCachedMetrics(ctx context.Context, periodID int64) *domain.Metrics {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, fmt.Sprintf(metricsCacheKeyFormat, periodID)).Bytes()
	if err != nil {
		return nil
	}

	var metrics domain.Metrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil
	}

	return &metrics
}

func (s *MetricsService) writeCachedMetrics(ctx context.Context, periodID int64, metrics *domain.Metrics) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(metrics)
	if err != nil {
		return
	}

	s.redis.Set(ctx, fmt.Sprintf(metricsCacheKeyFormat, periodID), payload, metricsCacheTTL)
}
