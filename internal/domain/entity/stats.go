package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is a closed [From, To] window
type DateRange struct {
	From time.Time
	To   time.Time
}

type StatusDistribution struct {
	Completed int
	Scheduled int
	Cancelled int
}

// Sum returns the number of appointments with a recognized status
func (d StatusDistribution) Sum() int {
	return d.Completed + d.Scheduled + d.Cancelled
}

type DailyAppointments struct {
	Date      string // YYYY-MM-DD
	Total     int
	Completed int
	Scheduled int
	Cancelled int
}

type AppointmentStats struct {
	Total              int
	StatusDistribution StatusDistribution
	PerDay             []DailyAppointments
}

// ServiceStrategy identifies which computation produced service statistics
type ServiceStrategy string

const (
	ServiceStrategyPrimary  ServiceStrategy = "primary"
	ServiceStrategyFallback ServiceStrategy = "fallback"
)

type TopService struct {
	Name  string
	Count int
}

type ServiceRevenue struct {
	Name    string
	Count   int
	Revenue decimal.Decimal
}

type ServiceStats struct {
	TopServices     []TopService
	ServicesRevenue []ServiceRevenue
	Strategy        ServiceStrategy
	SkippedRows     int
}

type SpeciesCount struct {
	Species SpeciesGroup
	Count   int
}

type AgeBandCount struct {
	Band  AgeBand
	Count int
}

type DemographicStats struct {
	Species     []SpeciesCount
	AgeBands    []AgeBandCount
	SkippedAges int
}

type RatingBucket struct {
	Rating int
	Count  int
}

type RatingStats struct {
	Average      float64
	TotalReviews int
	Histogram    []RatingBucket
	Dropped      int
}

type Summary struct {
	TotalAppointments int
	AverageRating     float64
	TotalRevenue      decimal.Decimal
	UniquePatients    int
}

// Dashboard is every statistic of a clinic for one window.
// Degraded lists the sections that could not be computed and are zero-valued.
type Dashboard struct {
	Appointments AppointmentStats
	Services     ServiceStats
	Demographics DemographicStats
	Ratings      RatingStats
	Summary      Summary
	Degraded     []string
}
