package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsQueryRequest is built from the route variable and the query string.
type StatsQueryRequest struct {
	ClinicID string `json:"clinic_id" validate:"required,uuid"`
	From     string `json:"from" validate:"omitempty,max=35"`
	To       string `json:"to" validate:"omitempty,max=35"`
}

type DateRangeResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type StatusDistributionResponse struct {
	Completed int `json:"completed"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
}

type DailyAppointmentsResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Scheduled int    `json:"scheduled"`
	Cancelled int    `json:"cancelled"`
}

type AppointmentStatsResponse struct {
	ClinicID           string                      `json:"clinic_id,omitempty"`
	Window             *DateRangeResponse          `json:"window,omitempty"`
	Total              int                         `json:"total"`
	StatusDistribution StatusDistributionResponse  `json:"status_distribution"`
	PerDay             []DailyAppointmentsResponse `json:"per_day"`
}

type TopServiceResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ServiceRevenueResponse struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ServiceStatsResponse struct {
	ClinicID        string                   `json:"clinic_id,omitempty"`
	Window          *DateRangeResponse       `json:"window,omitempty"`
	TopServices     []TopServiceResponse     `json:"top_services"`
	ServicesRevenue []ServiceRevenueResponse `json:"services_revenue"`
	Strategy        string                   `json:"strategy"`
	SkippedRows     int                      `json:"skipped_rows"`
}

type SpeciesCountResponse struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

type AgeBandCountResponse struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

type DemographicStatsResponse struct {
	ClinicID    string                 `json:"clinic_id,omitempty"`
	Window      *DateRangeResponse     `json:"window,omitempty"`
	Species     []SpeciesCountResponse `json:"species"`
	AgeBands    []AgeBandCountResponse `json:"age_bands"`
	SkippedAges int                    `json:"skipped_ages"`
}

type RatingBucketResponse struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type RatingStatsResponse struct {
	ClinicID      string                 `json:"clinic_id,omitempty"`
	Window        *DateRangeResponse     `json:"window,omitempty"`
	AverageRating float64                `json:"average_rating"`
	TotalReviews  int                    `json:"total_reviews"`
	Histogram     []RatingBucketResponse `json:"histogram"`
}

type SummaryResponse struct {
	ClinicID          string             `json:"clinic_id,omitempty"`
	Window            *DateRangeResponse `json:"window,omitempty"`
	TotalAppointments int                `json:"total_appointments"`
	AverageRating     float64            `json:"average_rating"`
	TotalRevenue      decimal.Decimal    `json:"total_revenue"`
	UniquePatients    int                `json:"unique_patients"`
}

type DashboardResponse struct {
	ClinicID     string                   `json:"clinic_id"`
	Window       DateRangeResponse        `json:"window"`
	Appointments AppointmentStatsResponse `json:"appointments"`
	Services     ServiceStatsResponse     `json:"services"`
	Demographics DemographicStatsResponse `json:"demographics"`
	Ratings      RatingStatsResponse      `json:"ratings"`
	Summary      SummaryResponse          `json:"summary"`
	Degraded     []string                 `json:"degraded"`
}
