package service

import (
	"context"

	"github.com/carson-networks/spend-analytics/internal/analytics"
	"github.com/carson-networks/spend-analytics/internal/storage"
)

const (
	summaryCacheKey  = "summary"
	trendsCacheKey   = "trends"
	insightsCacheKey = "insights"
)

// AnalyticsService serves the derived views of the stored batch. Results are
// cached on the batch they were computed from, so an upload invalidates them.
type AnalyticsService struct {
	storage        *storage.Storage
	currencySymbol string
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *storage.Storage, currencySymbol string) *AnalyticsService {
	if currencySymbol == "" {
		currencySymbol = analytics.DefaultCurrencySymbol
	}
	return &AnalyticsService{storage: store, currencySymbol: currencySymbol}
}

// Summary returns the per-category summary. An empty store yields a zeroed
// result, not an error.
func (s *AnalyticsService) Summary(ctx context.Context) analytics.SummaryResult {
	snapshot := s.storage.Snapshot()
	if cached, ok := snapshot.CacheGet(summaryCacheKey); ok {
		return cached.(analytics.SummaryResult)
	}

	result := analytics.Summarize(snapshot.Transactions())
	if result.TotalTransactions > 0 {
		snapshot.CachePut(summaryCacheKey, result)
	}
	return result
}

// Trends returns monthly trends. It fails with *analytics.InvalidDateError
// when a stored date cannot be parsed.
func (s *AnalyticsService) Trends(ctx context.Context) (*analytics.TrendResult, error) {
	snapshot := s.storage.Snapshot()
	if cached, ok := snapshot.CacheGet(trendsCacheKey); ok {
		return cached.(*analytics.TrendResult), nil
	}

	result, err := analytics.MonthlyTrends(snapshot.Transactions())
	if err != nil {
		return nil, err
	}
	snapshot.CachePut(trendsCacheKey, result)
	return result, nil
}

// CategoryDetails returns the drill-down of one category.
func (s *AnalyticsService) CategoryDetails(ctx context.Context, category string) (*analytics.DetailResult, error) {
	return analytics.CategoryDetails(s.storage.Current(), category)
}

// Insights returns the insight sentences for the stored batch.
func (s *AnalyticsService) Insights(ctx context.Context) []string {
	snapshot := s.storage.Snapshot()
	if cached, ok := snapshot.CacheGet(insightsCacheKey); ok {
		return cached.([]string)
	}

	insights := analytics.GenerateInsights(snapshot.Transactions(), s.currencySymbol)
	snapshot.CachePut(insightsCacheKey, insights)
	return insights
}
