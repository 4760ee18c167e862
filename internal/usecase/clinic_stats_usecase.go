package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"clinic-stats/internal/aggregator"
	"clinic-stats/internal/converter"
	"clinic-stats/internal/delivery/dto"
	"clinic-stats/internal/domain/entity"
	"clinic-stats/internal/domain/repository"
	"clinic-stats/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"
)

var (
	ErrClinicNotFound  = errors.New("clinic not found")
	ErrInvalidClinicID = errors.New("invalid clinic id")
)

// Section names, also used as metric labels
const (
	SectionAppointments = "appointments"
	SectionServices     = "services"
	SectionDemographics = "demographics"
	SectionRatings      = "ratings"
	SectionSummary      = "summary"

	viewDashboard = "dashboard"
)

type ClinicStatsUsecase interface {
	GetAppointmentStats(ctx context.Context, req *dto.StatsQueryRequest) (*dto.AppointmentStatsResponse, error)
	GetServiceStats(ctx context.Context, req *dto.StatsQueryRequest) (*dto.ServiceStatsResponse, error)
	GetDemographicStats(ctx context.Context, req *dto.StatsQueryRequest) (*dto.DemographicStatsResponse, error)
	GetRatingStats(ctx context.Context, req *dto.StatsQueryRequest) (*dto.RatingStatsResponse, error)
	GetSummary(ctx context.Context, req *dto.StatsQueryRequest) (*dto.SummaryResponse, error)
	GetDashboard(ctx context.Context, req *dto.StatsQueryRequest) (*dto.DashboardResponse, error)
}

type ClinicStatsOptions struct {
	TopServicesLimit int
	// DashboardTimeout bounds a shared dashboard computation once it no
	// longer belongs to a single request.
	DashboardTimeout time.Duration
}

type clinicStatsUsecase struct {
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	statsRepo  repository.StatsRepository
	resolver   *aggregator.DateRangeResolver
	metrics    *metrics.Metrics
	opts       ClinicStatsOptions

	dashboards singleflight.Group
}

func NewClinicStatsUsecase(
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	statsRepo repository.StatsRepository,
	resolver *aggregator.DateRangeResolver,
	metrics *metrics.Metrics,
	opts ClinicStatsOptions,
) ClinicStatsUsecase {
	if opts.TopServicesLimit <= 0 {
		opts.TopServicesLimit = aggregator.DefaultTopServicesLimit
	}
	if opts.DashboardTimeout <= 0 {
		opts.DashboardTimeout = 15 * time.Second
	}

	return &clinicStatsUsecase{
		log:        log,
		clinicRepo: clinicRepo,
		statsRepo:  statsRepo,
		resolver:   resolver,
		metrics:    metrics,
		opts:       opts,
	}
}

func (u *clinicStatsUsecase) GetAppointmentStats(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.AppointmentStatsResponse, err error) {
	defer u.observe(SectionAppointments, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stats, err := u.appointmentStats(ctx, clinicID, window)
	if _, err := u.contain(clinicID, err); err != nil {
		u.log.Warnf("Failed to get appointment stats: %+v", err)
		return nil, err
	}

	resp = converter.AppointmentStatsToResponse(stats)
	resp.ClinicID = clinicID.String()
	resp.Window = converter.DateRangeToResponse(window)
	return resp, nil
}

func (u *clinicStatsUsecase) GetServiceStats(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.ServiceStatsResponse, err error) {
	defer u.observe(SectionServices, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stats, err := u.serviceStats(ctx, clinicID, window)
	if _, err := u.contain(clinicID, err); err != nil {
		u.log.Warnf("Failed to get service stats: %+v", err)
		return nil, err
	}

	resp = converter.ServiceStatsToResponse(stats)
	resp.ClinicID = clinicID.String()
	resp.Window = converter.DateRangeToResponse(window)
	return resp, nil
}

func (u *clinicStatsUsecase) GetDemographicStats(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.DemographicStatsResponse, err error) {
	defer u.observe(SectionDemographics, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stats, err := u.demographicStats(ctx, clinicID, window)
	if _, err := u.contain(clinicID, err); err != nil {
		u.log.Warnf("Failed to get demographic stats: %+v", err)
		return nil, err
	}

	resp = converter.DemographicStatsToResponse(stats)
	resp.ClinicID = clinicID.String()
	resp.Window = converter.DateRangeToResponse(window)
	return resp, nil
}

func (u *clinicStatsUsecase) GetRatingStats(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.RatingStatsResponse, err error) {
	defer u.observe(SectionRatings, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stats, err := u.ratingStats(ctx, clinicID, window)
	if _, err := u.contain(clinicID, err); err != nil {
		u.log.Warnf("Failed to get rating stats: %+v", err)
		return nil, err
	}

	resp = converter.RatingStatsToResponse(stats)
	resp.ClinicID = clinicID.String()
	resp.Window = converter.DateRangeToResponse(window)
	return resp, nil
}

func (u *clinicStatsUsecase) GetSummary(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.SummaryResponse, err error) {
	defer u.observe(SectionSummary, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	summary, err := u.summary(ctx, clinicID, window)
	if _, err := u.contain(clinicID, err); err != nil {
		u.log.Warnf("Failed to get summary: %+v", err)
		return nil, err
	}

	resp = converter.SummaryToResponse(summary)
	resp.ClinicID = clinicID.String()
	resp.Window = converter.DateRangeToResponse(window)
	return resp, nil
}

// GetDashboard computes every section concurrently. Identical in-flight
// requests share one computation.
func (u *clinicStatsUsecase) GetDashboard(ctx context.Context, req *dto.StatsQueryRequest) (resp *dto.DashboardResponse, err error) {
	defer u.observe(viewDashboard, time.Now(), &err)

	clinicID, window, err := u.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d|%d", clinicID, window.From.UnixNano(), window.To.UnixNano())
	ch := u.dashboards.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.DashboardTimeout)
		defer cancel()
		dashboard, err := u.dashboard(shared, clinicID, window)
		if err != nil {
			return nil, err
		}
		return dashboard, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			u.log.Warnf("Failed to get dashboard: %+v", res.Err)
			return nil, res.Err
		}
		return converter.DashboardToResponse(clinicID.String(), window, res.Val.(entity.Dashboard)), nil
	}
}

func (u *clinicStatsUsecase) dashboard(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.Dashboard, error) {
	var (
		dashboard entity.Dashboard
		mu        sync.Mutex
	)

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	run := func(section string, compute func(ctx context.Context) error) {
		p.Go(func(ctx context.Context) error {
			degraded, err := u.contain(clinicID, compute(ctx))
			if err != nil {
				return err
			}
			if degraded {
				mu.Lock()
				dashboard.Degraded = append(dashboard.Degraded, section)
				mu.Unlock()
			}
			return nil
		})
	}

	run(SectionAppointments, func(ctx context.Context) (err error) {
		dashboard.Appointments, err = u.appointmentStats(ctx, clinicID, window)
		return err
	})
	run(SectionServices, func(ctx context.Context) (err error) {
		dashboard.Services, err = u.serviceStats(ctx, clinicID, window)
		return err
	})
	run(SectionDemographics, func(ctx context.Context) (err error) {
		dashboard.Demographics, err = u.demographicStats(ctx, clinicID, window)
		return err
	})
	run(SectionRatings, func(ctx context.Context) (err error) {
		dashboard.Ratings, err = u.ratingStats(ctx, clinicID, window)
		return err
	})
	run(SectionSummary, func(ctx context.Context) (err error) {
		dashboard.Summary, err = u.summary(ctx, clinicID, window)
		return err
	})

	if err := p.Wait(); err != nil {
		return entity.Dashboard{}, err
	}

	slices.Sort(dashboard.Degraded)
	return dashboard, nil
}

// prepare resolves the window and checks the clinic exists. No section runs
// unless it succeeds.
func (u *clinicStatsUsecase) prepare(ctx context.Context, req *dto.StatsQueryRequest) (uuid.UUID, entity.DateRange, error) {
	window, err := u.resolver.Resolve(req.From, req.To)
	if err != nil {
		u.log.Warnf("Failed to resolve date range: %+v", err)
		return uuid.Nil, entity.DateRange{}, err
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return uuid.Nil, entity.DateRange{}, fmt.Errorf("%w: %q", ErrInvalidClinicID, req.ClinicID)
	}

	exists, err := u.clinicRepo.Exists(ctx, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check clinic existence: %+v", err)
		if abortsRequest(err) {
			return uuid.Nil, entity.DateRange{}, err
		}
		return uuid.Nil, entity.DateRange{}, ErrClinicNotFound
	}
	if !exists {
		return uuid.Nil, entity.DateRange{}, ErrClinicNotFound
	}

	return clinicID, window, nil
}

// abortsRequest reports failures that no section can recover from: the store
// is unreachable or the request ran out of time.
func abortsRequest(err error) bool {
	return errors.Is(err, repository.ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// contain keeps a section failure local: it is logged, counted and reported
// as degraded. Transport failures and timeouts are returned for the whole request.
func (u *clinicStatsUsecase) contain(clinicID uuid.UUID, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if abortsRequest(err) {
		return false, err
	}

	section := "unknown"
	var aggErr *aggregator.AggregationError
	if errors.As(err, &aggErr) {
		section = aggErr.Section
	}

	u.log.WithFields(logrus.Fields{
		"clinic_id": clinicID,
		"section":   section,
		"error":     err.Error(),
	}).Warn("Statistics section degraded to an empty result")
	u.metrics.DegradedSectionsTotal.WithLabelValues(section).Inc()

	return true, nil
}

func (u *clinicStatsUsecase) observe(view string, started time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	if err := *errp; err != nil {
		var validationErr *aggregator.ValidationError
		switch {
		case errors.As(err, &validationErr), errors.Is(err, ErrInvalidClinicID):
			outcome = metrics.OutcomeInvalid
		case errors.Is(err, ErrClinicNotFound):
			outcome = metrics.OutcomeNotFound
		default:
			outcome = metrics.OutcomeError
		}
	}
	u.metrics.ObserveRequest(view, outcome, started)
}

func (u *clinicStatsUsecase) appointmentStats(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.AppointmentStats, error) {
	rows, err := u.statsRepo.FetchAppointments(ctx, clinicID, window)
	if err != nil {
		return aggregator.AggregateAppointments(nil, u.resolver.Location()), &aggregator.AggregationError{Section: SectionAppointments, Err: err}
	}
	return aggregator.AggregateAppointments(rows, u.resolver.Location()), nil
}

// serviceStats prefers the pre-aggregated store function and recomputes from
// joined rows when it fails or finds nothing.
func (u *clinicStatsUsecase) serviceStats(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.ServiceStats, error) {
	primary, primaryErr := u.statsRepo.FetchTopServicesPreAggregated(ctx, clinicID, window, u.opts.TopServicesLimit)
	strategy := aggregator.SelectServiceStrategy(primary, primaryErr)
	u.metrics.ServiceStrategyTotal.WithLabelValues(string(strategy)).Inc()

	if strategy == entity.ServiceStrategyPrimary {
		return aggregator.ServiceStatsFromPreAggregated(primary, u.opts.TopServicesLimit), nil
	}

	entry := u.log.WithField("clinic_id", clinicID)
	if primaryErr != nil {
		entry = entry.WithField("primary_error", primaryErr.Error())
	}
	entry.Debug("Computing service statistics with fallback strategy")

	rows, err := u.statsRepo.FetchServicesJoinedAppointments(ctx, clinicID, window)
	if err != nil {
		return aggregator.EmptyServiceStats(strategy), &aggregator.AggregationError{Section: SectionServices, Err: err}
	}

	stats := aggregator.AggregateServicesFallback(rows, u.opts.TopServicesLimit)
	if stats.SkippedRows > 0 {
		u.metrics.FallbackSkippedRows.Add(float64(stats.SkippedRows))
		entry.WithField("skipped_rows", stats.SkippedRows).Debug("Skipped appointments without a joined service")
	}
	return stats, nil
}

func (u *clinicStatsUsecase) demographicStats(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.DemographicStats, error) {
	rows, err := u.statsRepo.FetchPetsJoinedAppointments(ctx, clinicID, window)
	if err != nil {
		return aggregator.AggregateDemographics(nil), &aggregator.AggregationError{Section: SectionDemographics, Err: err}
	}
	return aggregator.AggregateDemographics(rows), nil
}

func (u *clinicStatsUsecase) ratingStats(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.RatingStats, error) {
	rows, err := u.statsRepo.FetchReviews(ctx, clinicID, window)
	if err != nil {
		return aggregator.AggregateRatings(nil), &aggregator.AggregationError{Section: SectionRatings, Err: err}
	}
	return aggregator.AggregateRatings(rows), nil
}

// summary degrades each of its three inputs on its own; a failed input
// leaves its figures at zero.
func (u *clinicStatsUsecase) summary(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) (entity.Summary, error) {
	summary := entity.Summary{TotalRevenue: decimal.Zero}
	var errs []error

	appointments, err := u.statsRepo.FetchAppointments(ctx, clinicID, window)
	if err != nil {
		errs = append(errs, &aggregator.AggregationError{Section: SectionSummary, Err: fmt.Errorf("appointments: %w", err)})
	} else {
		summary.TotalAppointments, summary.UniquePatients = aggregator.SummarizeAppointments(appointments)
	}

	reviews, err := u.statsRepo.FetchReviews(ctx, clinicID, window)
	if err != nil {
		errs = append(errs, &aggregator.AggregationError{Section: SectionSummary, Err: fmt.Errorf("reviews: %w", err)})
	} else {
		summary.AverageRating = aggregator.AggregateRatings(reviews).Average
	}

	joined, err := u.statsRepo.FetchServicesJoinedAppointments(ctx, clinicID, window)
	if err != nil {
		errs = append(errs, &aggregator.AggregationError{Section: SectionSummary, Err: fmt.Errorf("revenue: %w", err)})
	} else {
		summary.TotalRevenue = aggregator.CompletedRevenue(joined)
	}

	return summary, errors.Join(errs...)
}
