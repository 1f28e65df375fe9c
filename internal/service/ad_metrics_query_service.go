package service

import (
	"context"
	"strings"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

// AdMetricsQueryService 报表查询，直接读取日聚合，不做缓存
type AdMetricsQueryService struct {
	metricRepo repository.AdMetricRepository
}

// NewAdMetricsQueryService 创建报表查询服务
func NewAdMetricsQueryService(metricRepo repository.AdMetricRepository) *AdMetricsQueryService {
	return &AdMetricsQueryService{metricRepo: metricRepo}
}

// SummaryQuery 按天汇总查询
type SummaryQuery struct {
	From       string
	To         string
	SlotID     uint
	CreativeID uint
}

// TopQuery 排行查询
type TopQuery struct {
	Kind       string
	From       string
	To         string
	Limit      int
	SlotID     uint
	CreativeID uint
}

// Summary 按天汇总，日期升序，起止日期均包含
func (s *AdMetricsQueryService) Summary(ctx context.Context, query SummaryQuery) ([]repository.AdMetricSummaryRow, error) {
	filter, err := buildRangeFilter(query.From, query.To, query.SlotID, query.CreativeID)
	if err != nil {
		return nil, err
	}
	rows, err := s.metricRepo.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.AdMetricSummaryRow{}
	}
	return rows, nil
}

// Top 广告位或素材排行
func (s *AdMetricsQueryService) Top(ctx context.Context, query TopQuery) ([]repository.AdMetricTopRow, error) {
	filter, err := buildRangeFilter(query.From, query.To, query.SlotID, query.CreativeID)
	if err != nil {
		return nil, err
	}
	limit := clampTopLimit(query.Limit)

	var rows []repository.AdMetricTopRow
	switch strings.ToLower(strings.TrimSpace(query.Kind)) {
	case "", constants.AdTopKindSlot:
		rows, err = s.metricRepo.TopSlots(ctx, filter, limit)
	case constants.AdTopKindCreative:
		rows, err = s.metricRepo.TopCreatives(ctx, filter, limit)
	default:
		return nil, invalidf(ErrInvalidMetricsQuery, "kind must be slot or creative")
	}
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.AdMetricTopRow{}
	}
	return rows, nil
}

func buildRangeFilter(from, to string, slotID, creativeID uint) (repository.AdMetricRangeFilter, error) {
	fromDate, err := models.ParseDate(strings.TrimSpace(from))
	if err != nil {
		return repository.AdMetricRangeFilter{}, invalidf(ErrInvalidMetricsQuery, "from must be YYYY-MM-DD")
	}
	toDate, err := models.ParseDate(strings.TrimSpace(to))
	if err != nil {
		return repository.AdMetricRangeFilter{}, invalidf(ErrInvalidMetricsQuery, "to must be YYYY-MM-DD")
	}
	if fromDate > toDate {
		return repository.AdMetricRangeFilter{}, invalidf(ErrInvalidMetricsQuery, "from must not be after to")
	}
	return repository.AdMetricRangeFilter{
		From:       fromDate.String(),
		To:         toDate.String(),
		SlotID:     slotID,
		CreativeID: creativeID,
	}, nil
}

// clampTopLimit 未传（0）取默认值，其余收敛到 1..50
func clampTopLimit(limit int) int {
	if limit == 0 {
		return constants.AdTopDefaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > constants.AdTopMaxLimit {
		return constants.AdTopMaxLimit
	}
	return limit
}
