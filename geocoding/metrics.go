package geocoding

import (
	"context"
	"errors"

	"bitbucket.org/kleinnic74/geodist/domain/gps"
	"bitbucket.org/kleinnic74/geodist/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const outcomeResolved = "resolved"

var lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "geocoding_lookups_total",
	Help: "Number of geocoding lookups by outcome",
}, []string{"outcome"})

// Instrumented counts the outcome of every lookup of its delegate and logs
// failures with their cause.
type Instrumented struct {
	delegate Resolver
	outcomes *prometheus.CounterVec
}

func NewInstrumented(r Resolver) *Instrumented {
	return &Instrumented{delegate: r, outcomes: lookups}
}

func (i *Instrumented) Geocode(ctx context.Context, name string) (gps.Coordinates, error) {
	log, ctx := logging.FromWithNameAndFields(ctx, "geocoder", zap.String("query", name))
	coords, err := i.delegate.Geocode(ctx, name)
	if err != nil {
		reason := ReasonOf(err)
		if reason == "" {
			reason = ReasonTransport
			if !errors.Is(err, ErrUnresolved) {
				err = NewLookupError(name, reason, err)
			}
		}
		i.outcomes.WithLabelValues(string(reason)).Inc()
		log.Info("Place not resolved", zap.String("reason", string(reason)), zap.Error(err))
		return gps.Coordinates{}, err
	}
	i.outcomes.WithLabelValues(outcomeResolved).Inc()
	log.Debug("Place resolved", zap.Stringer("pos", coords))
	return coords, nil
}
