package aggregator

import (
	"sort"

	"clinic-stats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTopServicesLimit = 5

// SelectServiceStrategy picks the fallback when the pre-aggregated
// computation failed or produced no rows.
func SelectServiceStrategy(primary []entity.TopServiceRow, primaryErr error) entity.ServiceStrategy {
	if primaryErr != nil || len(primary) == 0 {
		return entity.ServiceStrategyFallback
	}
	return entity.ServiceStrategyPrimary
}

// EmptyServiceStats is the degraded result: both lists empty, never nil.
func EmptyServiceStats(strategy entity.ServiceStrategy) entity.ServiceStats {
	return entity.ServiceStats{
		TopServices:     []entity.TopService{},
		ServicesRevenue: []entity.ServiceRevenue{},
		Strategy:        strategy,
	}
}

// ServiceStatsFromPreAggregated projects rows that are already sorted upstream.
func ServiceStatsFromPreAggregated(rows []entity.TopServiceRow, limit int) entity.ServiceStats {
	limit = normalizeLimit(limit)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	stats := EmptyServiceStats(entity.ServiceStrategyPrimary)
	for _, row := range rows {
		stats.TopServices = append(stats.TopServices, entity.TopService{Name: row.Name, Count: row.Count})
		stats.ServicesRevenue = append(stats.ServicesRevenue, entity.ServiceRevenue{
			Name:    row.Name,
			Count:   row.Count,
			Revenue: row.Revenue,
		})
	}
	return stats
}

type serviceGroup struct {
	name    string
	count   int
	revenue decimal.Decimal
}

// AggregateServicesFallback groups raw joined rows by service, counting
// appointments and summing the service price, then keeps the top services by
// count. Ties keep first-seen order.
//
// Revenue covers every appointment of the service whatever its status.
// Rows without a joined service are skipped and reported in SkippedRows.
func AggregateServicesFallback(rows []entity.ServiceAppointmentRow, limit int) entity.ServiceStats {
	limit = normalizeLimit(limit)
	stats := EmptyServiceStats(entity.ServiceStrategyFallback)

	groups := make([]*serviceGroup, 0)
	index := make(map[uuid.UUID]*serviceGroup)
	for _, row := range rows {
		if row.ServiceID == nil || row.ServiceName == nil || !row.Price.Valid {
			stats.SkippedRows++
			continue
		}

		group, ok := index[*row.ServiceID]
		if !ok {
			group = &serviceGroup{name: *row.ServiceName, revenue: decimal.Zero}
			index[*row.ServiceID] = group
			groups = append(groups, group)
		}
		group.count++
		group.revenue = group.revenue.Add(row.Price.Decimal)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}

	for _, group := range groups {
		stats.TopServices = append(stats.TopServices, entity.TopService{Name: group.name, Count: group.count})
		stats.ServicesRevenue = append(stats.ServicesRevenue, entity.ServiceRevenue{
			Name:    group.name,
			Count:   group.count,
			Revenue: group.revenue,
		})
	}
	return stats
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopServicesLimit
	}
	return limit
}
