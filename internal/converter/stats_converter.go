package converter

import (
	"clinic-stats/internal/delivery/dto"
	"clinic-stats/internal/domain/entity"
)

func DateRangeToResponse(window entity.DateRange) *dto.DateRangeResponse {
	return &dto.DateRangeResponse{
		From: window.From,
		To:   window.To,
	}
}

func AppointmentStatsToResponse(stats entity.AppointmentStats) *dto.AppointmentStatsResponse {
	perDay := make([]dto.DailyAppointmentsResponse, 0, len(stats.PerDay))
	for _, day := range stats.PerDay {
		perDay = append(perDay, dto.DailyAppointmentsResponse{
			Date:      day.Date,
			Total:     day.Total,
			Completed: day.Completed,
			Scheduled: day.Scheduled,
			Cancelled: day.Cancelled,
		})
	}

	return &dto.AppointmentStatsResponse{
		Total: stats.Total,
		StatusDistribution: dto.StatusDistributionResponse{
			Completed: stats.StatusDistribution.Completed,
			Scheduled: stats.StatusDistribution.Scheduled,
			Cancelled: stats.StatusDistribution.Cancelled,
		},
		PerDay: perDay,
	}
}

func ServiceStatsToResponse(stats entity.ServiceStats) *dto.ServiceStatsResponse {
	topServices := make([]dto.TopServiceResponse, 0, len(stats.TopServices))
	for _, service := range stats.TopServices {
		topServices = append(topServices, dto.TopServiceResponse{
			Name:  service.Name,
			Count: service.Count,
		})
	}

	revenue := make([]dto.ServiceRevenueResponse, 0, len(stats.ServicesRevenue))
	for _, service := range stats.ServicesRevenue {
		revenue = append(revenue, dto.ServiceRevenueResponse{
			Name:    service.Name,
			Count:   service.Count,
			Revenue: service.Revenue,
		})
	}

	return &dto.ServiceStatsResponse{
		TopServices:     topServices,
		ServicesRevenue: revenue,
		Strategy:        string(stats.Strategy),
		SkippedRows:     stats.SkippedRows,
	}
}

func DemographicStatsToResponse(stats entity.DemographicStats) *dto.DemographicStatsResponse {
	species := make([]dto.SpeciesCountResponse, 0, len(stats.Species))
	for _, s := range stats.Species {
		species = append(species, dto.SpeciesCountResponse{
			Species: string(s.Species),
			Count:   s.Count,
		})
	}

	bands := make([]dto.AgeBandCountResponse, 0, len(stats.AgeBands))
	for _, b := range stats.AgeBands {
		bands = append(bands, dto.AgeBandCountResponse{
			Band:  string(b.Band),
			Count: b.Count,
		})
	}

	return &dto.DemographicStatsResponse{
		Species:     species,
		AgeBands:    bands,
		SkippedAges: stats.SkippedAges,
	}
}

func RatingStatsToResponse(stats entity.RatingStats) *dto.RatingStatsResponse {
	histogram := make([]dto.RatingBucketResponse, 0, len(stats.Histogram))
	for _, bucket := range stats.Histogram {
		histogram = append(histogram, dto.RatingBucketResponse{
			Rating: bucket.Rating,
			Count:  bucket.Count,
		})
	}

	return &dto.RatingStatsResponse{
		AverageRating: stats.Average,
		TotalReviews:  stats.TotalReviews,
		Histogram:     histogram,
	}
}

func SummaryToResponse(summary entity.Summary) *dto.SummaryResponse {
	return &dto.SummaryResponse{
		TotalAppointments: summary.TotalAppointments,
		AverageRating:     summary.AverageRating,
		TotalRevenue:      summary.TotalRevenue,
		UniquePatients:    summary.UniquePatients,
	}
}

// DashboardToResponse nests every section without repeating the window
func DashboardToResponse(clinicID string, window entity.DateRange, dashboard entity.Dashboard) *dto.DashboardResponse {
	degraded := dashboard.Degraded
	if degraded == nil {
		degraded = []string{}
	}

	return &dto.DashboardResponse{
		ClinicID:     clinicID,
		Window:       *DateRangeToResponse(window),
		Appointments: *AppointmentStatsToResponse(dashboard.Appointments),
		Services:     *ServiceStatsToResponse(dashboard.Services),
		Demographics: *DemographicStatsToResponse(dashboard.Demographics),
		Ratings:      *RatingStatsToResponse(dashboard.Ratings),
		Summary:      *SummaryToResponse(dashboard.Summary),
		Degraded:     degraded,
	}
}
