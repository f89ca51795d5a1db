//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

package resolver

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/beaconfix/internal/beacon"
)

const tracerName = "github.com/agbru/beaconfix/internal/resolver"

// Result is the combined outcome of a resolved round.
type Result struct {
	// Location is the trilaterated position of the sender.
	Location beacon.Point
	// Message holds the recovered words; unrecoverable positions are blank.
	Message []string
}

// Text joins the recovered words with single spaces.
func (r Result) Text() string { return strings.Join(r.Message, " ") }

// Resolver turns the three readings of a round into a Result.
type Resolver interface {
	// Resolve computes the location and message for an arranged round.
	Resolve(ctx context.Context, set beacon.Set) (Result, error)
}

// Func is a function adapter that implements Resolver.
type Func func(ctx context.Context, set beacon.Set) (Result, error)

// Resolve calls the underlying function.
func (f Func) Resolve(ctx context.Context, set beacon.Set) (Result, error) { return f(ctx, set) }

// Locator resolves the position of an arranged round.
type Locator interface {
	LocateSet(set beacon.Set) (beacon.Point, error)
}

// Decoder recovers a message from three copies given in identity order.
type Decoder interface {
	Decode(a, b, c []string) ([]string, error)
}

// Service is the default Resolver. It runs location and message recovery
// concurrently and reports the location failure first when both fail.
type Service struct {
	locator Locator
	decoder Decoder
}

// New creates a Service from its two collaborators.
func New(locator Locator, decoder Decoder) *Service {
	return &Service{locator: locator, decoder: decoder}
}

// Resolve implements Resolver.
//
// Parameters:
//   - ctx: The context for cancellation and tracing.
//   - set: The readings arranged by beacon identity.
//
// Returns:
//   - Result: The location and message of the round.
//   - error: The location error, the message error, or the context error.
func (s *Service) Resolve(ctx context.Context, set beacon.Set) (Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "resolver.Resolve")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var (
		result    Result
		locateErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		result.Location, locateErr = s.locator.LocateSet(set)
		return locateErr
	})
	g.Go(func() error {
		msgs := set.Messages()
		var err error
		result.Message, err = s.decoder.Decode(msgs[beacon.Kenobi], msgs[beacon.Skywalker], msgs[beacon.Sato])
		return err
	})

	if err := g.Wait(); err != nil {
		// Wait reports whichever failure returned first; location wins.
		if locateErr != nil {
			err = locateErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Float64("location.x", result.Location.X),
		attribute.Float64("location.y", result.Location.Y),
		attribute.Int("message.words", len(result.Message)),
	)
	return result, nil
}

// ResolveReadings arranges raw readings by identity and resolves them. It is
// the single-shot path used when all three readings arrive together.
func ResolveReadings(ctx context.Context, r Resolver, readings []beacon.Reading) (Result, error) {
	set, err := beacon.Arrange(readings)
	if err != nil {
		return Result{}, err
	}
	return r.Resolve(ctx, set)
}
