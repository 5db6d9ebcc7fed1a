// Package discovery runs the locate, search, normalize and load pipeline that
// fills the restaurant list.
package discovery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/location"
	"github.com/octobees/nearby-restaurants/internal/logging"
	"github.com/octobees/nearby-restaurants/internal/places"
	"github.com/octobees/nearby-restaurants/internal/presentation"
)

const tracerName = "github.com/octobees/nearby-restaurants/internal/discovery"

// PlacesSearcher issues a nearby search around a fix.
type PlacesSearcher interface {
	Search(ctx context.Context, center entity.Coordinate) ([]places.RawPlace, error)
}

// Normalizer turns raw places into restaurants.
type Normalizer interface {
	Normalize(raw []places.RawPlace) []entity.Restaurant
}

// Session owns one list state and runs at most one discovery at a time
// against it.
type Session struct {
	searcher   PlacesSearcher
	normalizer Normalizer
	state      *presentation.ListState
	logger     *slog.Logger
	tracer     trace.Tracer
	inflight   *semaphore.Weighted

	mu     sync.Mutex
	closed bool
}

// NewSession wires a discovery session. A nil logger discards output.
func NewSession(searcher PlacesSearcher, normalizer Normalizer, state *presentation.ListState, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		searcher:   searcher,
		normalizer: normalizer,
		state:      state,
		logger:     logger.With(slog.String("component", "discovery")),
		tracer:     otel.Tracer(tracerName),
		inflight:   semaphore.NewWeighted(1),
	}
}

// Discover asks provider for a fix, searches around it and loads the result.
// Any stage failure leaves an empty list and is returned as a *StageError.
// The loading flag is raised for the duration of the run. Once Close has been
// called the state is no longer written.
func (s *Session) Discover(ctx context.Context, provider location.Provider) error {
	if !s.inflight.TryAcquire(1) {
		return ErrInFlight
	}
	defer s.inflight.Release(1)

	if !s.commit(func(st *presentation.ListState) { st.SetLoading(true) }) {
		return ErrClosed
	}
	defer s.commit(func(st *presentation.ListState) { st.SetLoading(false) })

	ctx, span := s.tracer.Start(ctx, "Discover")
	defer span.End()

	restaurants, err := s.run(ctx, provider)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		outcome := outcomeOf(err)
		runsTotal.WithLabelValues(outcome).Inc()
		s.logger.WarnContext(ctx, "Discovery failed, showing no restaurants",
			logging.Fields(ctx, slog.String("outcome", outcome), slog.Any("error", err))...)

		if !s.commit(func(st *presentation.ListState) { st.Load(nil) }) {
			s.logger.DebugContext(ctx, "Session closed, dropping failed discovery", logging.Fields(ctx)...)
		}
		return err
	}

	if !s.commit(func(st *presentation.ListState) { st.Load(restaurants) }) {
		runsTotal.WithLabelValues(outcomeDiscarded).Inc()
		s.logger.InfoContext(ctx, "Session closed, discarding discovered restaurants",
			logging.Fields(ctx, slog.Int("count", len(restaurants)))...)
		return ErrClosed
	}

	span.SetAttributes(attribute.Int("restaurants.count", len(restaurants)))
	runsTotal.WithLabelValues(outcomeSuccess).Inc()
	s.logger.InfoContext(ctx, "Discovered nearby restaurants", logging.Fields(ctx, slog.Int("count", len(restaurants)))...)
	return nil
}

// Close tears the session down. Runs still in flight finish without
// touching the state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) run(ctx context.Context, provider location.Provider) ([]entity.Restaurant, error) {
	center, err := s.locate(ctx, provider)
	if err != nil {
		return nil, err
	}

	raw, err := s.search(ctx, center)
	if err != nil {
		return nil, err
	}

	return s.normalizer.Normalize(raw), nil
}

func (s *Session) locate(ctx context.Context, provider location.Provider) (entity.Coordinate, error) {
	ctx, span := s.tracer.Start(ctx, "Locate")
	defer span.End()

	permission, err := provider.RequestPermission(ctx)
	if err != nil {
		return entity.Coordinate{}, &StageError{Stage: StagePermission, Err: err}
	}
	span.SetAttributes(attribute.String("location.permission", permission.String()))
	if permission != location.PermissionGranted {
		return entity.Coordinate{}, &StageError{Stage: StagePermission, Err: location.ErrPermissionDenied}
	}

	fix, err := provider.CurrentFix(ctx)
	if err != nil {
		return entity.Coordinate{}, &StageError{Stage: StageLocation, Err: err}
	}
	return fix, nil
}

func (s *Session) search(ctx context.Context, center entity.Coordinate) ([]places.RawPlace, error) {
	ctx, span := s.tracer.Start(ctx, "SearchNearby", trace.WithAttributes(
		attribute.Float64("location.latitude", center.Latitude),
		attribute.Float64("location.longitude", center.Longitude),
	))
	defer span.End()

	start := time.Now()
	raw, err := s.searcher.Search(ctx, center)
	searchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &StageError{Stage: StageSearch, Err: err}
	}

	span.SetAttributes(attribute.Int("places.count", len(raw)))
	return raw, nil
}

// commit applies fn to the state unless the session is closed.
func (s *Session) commit(fn func(*presentation.ListState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn(s.state)
	return true
}
