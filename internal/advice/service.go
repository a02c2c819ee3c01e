package advice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runweather/running-advisor/internal/cache"
	"github.com/runweather/running-advisor/internal/forecast"
	"github.com/runweather/running-advisor/internal/geo"
)

// Resolver resolves a parsed location query to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, q geo.Query) (geo.Location, error)
}

// Fetcher retrieves an hourly forecast for a coordinate pair.
type Fetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64, days int) (*forecast.HourlyDataset, error)
}

// Service runs the advice pipeline: cache lookup, resolution, fetch, cache
// write, window filtering, ranking, formatting. It is stateless across runs;
// concurrent invocations share nothing but the cache store.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	store    cache.Store
	log      *logrus.Logger
	clock    func() time.Time
}

func NewService(resolver Resolver, fetcher Fetcher, store cache.Store, log *logrus.Logger) *Service {
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		store:    store,
		log:      log,
		clock:    time.Now,
	}
}

// WithClock replaces the wall clock. The clock is read once per run and the
// same instant is threaded through cache expiry and window filtering, which
// keeps those steps deterministic under test.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Advise produces a recommendation for the given raw location, time-of-day
// block, and forecast duration (1 or 3 days). Every failure comes back as a
// kind-tagged *Error; no transport or parse error escapes raw.
func (s *Service) Advise(ctx context.Context, location string, block TimeBlock, durationDays int) (*Result, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, newError(KindInputInvalid, msgInputLocation, nil)
	}
	if durationDays != 1 && durationDays != 3 {
		return nil, newError(KindInputInvalid, msgInputDuration, nil)
	}

	now := s.clock()
	key := cache.Key(location, durationDays)

	if data, ok := s.store.Read(key, now); ok {
		s.log.Debugf("cache hit for %q", key)
		return s.rankAndFormat(location, "", block, durationDays, data, now)
	}
	s.log.Debugf("cache miss for %q", key)

	q := geo.ParseQuery(location)
	if q.City == "" {
		return nil, newError(KindInputInvalid, msgInputLocation, nil)
	}

	resolved, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			return nil, newError(KindNotFound, msgNotFound, err)
		}
		s.log.Warnf("location lookup failed for %q: %v", q.City, err)
		return nil, newError(KindLookupFailed, msgLookupFailed, err)
	}

	data, err := s.fetcher.Fetch(ctx, resolved.Latitude, resolved.Longitude, forecast.FetchDays)
	if err != nil {
		if errors.Is(err, forecast.ErrMalformedResponse) {
			s.log.Warnf("malformed forecast response for %q: %v", location, err)
			return nil, newError(KindMalformedResponse, msgMalformed, err)
		}
		s.log.Warnf("forecast fetch failed for %q: %v", location, err)
		return nil, newError(KindFetchFailed, msgFetchFailed, err)
	}

	// Best-effort: a failed cache write never fails the request.
	if err := s.store.Write(key, data, now); err != nil {
		s.log.Warnf("cache write failed for %q: %v", key, err)
	}

	return s.rankAndFormat(location, resolved.Region, block, durationDays, data, now)
}

func (s *Service) rankAndFormat(location, region string, block TimeBlock, durationDays int, data *forecast.HourlyDataset, now time.Time) (*Result, error) {
	candidates := SelectCandidates(data, block, durationDays, now)
	if len(candidates) == 0 {
		return nil, newError(KindNoCandidates, NoCandidatesMessage, nil)
	}
	return Format(location, region, block, Rank(candidates), now), nil
}
