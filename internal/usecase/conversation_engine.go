package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
	"fare-tracker-service/pkg/metrics"
	"fare-tracker-service/pkg/utils"
)

// ConversationEngine turns chat lines into tracked flights. Each owner's
// lines are handled one at a time under the pending store's owner lock.
type ConversationEngine struct {
	flightRepo  repository.TrackedFlightRepository
	offerRepo   repository.OfferRepository
	pendingRepo repository.PendingAddRepository
	discovery   *RouteDiscovery
	router      CommandRouter
	logger      logger.Logger
	metrics     *metrics.Metrics
	maxFlights  int
	currency    string
}

// NewConversationEngine creates an engine and registers its commands on router
func NewConversationEngine(
	flightRepo repository.TrackedFlightRepository,
	offerRepo repository.OfferRepository,
	pendingRepo repository.PendingAddRepository,
	discovery *RouteDiscovery,
	router CommandRouter,
	logger logger.Logger,
	metrics *metrics.Metrics,
	maxFlights int,
	currency string,
) *ConversationEngine {
	e := &ConversationEngine{
		flightRepo:  flightRepo,
		offerRepo:   offerRepo,
		pendingRepo: pendingRepo,
		discovery:   discovery,
		router:      router,
		logger:      logger.With("component", "conversation"),
		metrics:     metrics,
		maxFlights:  maxFlights,
		currency:    currency,
	}

	router.Register(&addCommand{engine: e})
	router.Register(&deleteCommand{engine: e})
	router.Register(&listCommand{engine: e})
	router.Register(&clearCommand{engine: e})
	router.Register(&cancelCommand{engine: e})
	router.Register(&textCommand{verbs: []string{"HELP"}, reply: utils.MSG_HELP})
	router.Register(&textCommand{verbs: []string{"START"}, reply: utils.MSG_WELCOME})

	return e
}

// Handle interprets one chat line from ownerID and returns the reply.
// Known verbs always win; any other line from an owner with a pending ADD
// is read as "<date> <origin> <dest>".
func (e *ConversationEngine) Handle(ctx context.Context, ownerID int64, text string) string {
	unlock := e.pendingRepo.Lock(ownerID)
	defer unlock()

	cmd, ok := utils.ParseCommand(text)
	if !ok {
		return utils.MSG_UNKNOWN
	}

	if handler := e.router.GetHandler(cmd.Verb); handler != nil {
		e.metrics.CommandsHandled.WithLabelValues(strings.ToLower(cmd.Verb)).Inc()
		return handler.Handle(ctx, ownerID, cmd.Args)
	}

	if code, ok := e.pendingRepo.Get(ownerID); ok {
		e.metrics.CommandsHandled.WithLabelValues("continuation").Inc()
		return e.continueAdd(ctx, ownerID, code, text)
	}

	e.metrics.CommandsHandled.WithLabelValues("unknown").Inc()
	return utils.MSG_UNKNOWN
}

// trackRequest is a validated full-form ADD
type trackRequest struct {
	FlightCode  string
	Date        time.Time
	Origin      string
	Destination string
}

func parseFlightCode(raw string) (string, error) {
	code := utils.NormalizeFlightCode(raw)
	if !utils.IsValidFlightCode(code) {
		return "", newError(ErrValidation, nil, "Invalid flight code %q. Use e.g. FR1234 or FR 1234.", raw)
	}
	return code, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, newError(ErrValidation, err, "Invalid date %q. Use YYYY-MM-DD.", raw)
	}
	return date, nil
}

func parseTrackRequest(code, date, origin, destination string) (trackRequest, error) {
	var req trackRequest
	var err error
	if req.FlightCode, err = parseFlightCode(code); err != nil {
		return req, err
	}
	if req.Date, err = parseDate(date); err != nil {
		return req, err
	}
	req.Origin = strings.ToUpper(origin)
	req.Destination = strings.ToUpper(destination)
	if !utils.IsAirportCode(req.Origin) || !utils.IsAirportCode(req.Destination) {
		return req, newError(ErrValidation, nil, "Airport codes must be exactly 3 letters, got %s and %s.", origin, destination)
	}
	return req, nil
}

// continueAdd completes a pending ADD. The pending code stays in place
// until a flight is actually stored.
func (e *ConversationEngine) continueAdd(ctx context.Context, ownerID int64, code, text string) string {
	tokens := strings.Fields(strings.ToUpper(text))
	if len(tokens) != 3 {
		return fmt.Sprintf(utils.MSG_REPROMPT_ROUTE, code)
	}

	req, err := parseTrackRequest(code, tokens[0], tokens[1], tokens[2])
	if err != nil {
		return ReplyFor(err) + "\n" + fmt.Sprintf(utils.MSG_REPROMPT_ROUTE, code)
	}

	flight, err := e.track(ctx, ownerID, req)
	if err != nil {
		return e.replyError(ownerID, err)
	}

	e.pendingRepo.Delete(ownerID)
	return e.confirmation(flight)
}

// ensureCapacity fails with ErrCapacity when the owner is at the limit
func (e *ConversationEngine) ensureCapacity(ctx context.Context, ownerID int64) error {
	existing, err := e.flightRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return newError(ErrPersistence, err, "⚠️ Could not read your tracked flights, please try again later.")
	}
	if len(existing) >= e.maxFlights {
		return newError(ErrCapacity, nil, "Limit reached! Max %d flights. DELETE one first.", e.maxFlights)
	}
	return nil
}

// track runs the full-form ADD: capacity, lookup on the given route, match, insert
func (e *ConversationEngine) track(ctx context.Context, ownerID int64, req trackRequest) (*entity.TrackedFlight, error) {
	if err := e.ensureCapacity(ctx, ownerID); err != nil {
		return nil, err
	}

	day := req.Date.Format(entity.DateLayout)
	offers, err := e.offerRepo.FindOffers(ctx, entity.SingleDay(req.Origin, req.Destination, req.Date))
	if err != nil {
		e.metrics.OfferLookups.WithLabelValues("add", "error").Inc()
		return nil, newError(ErrUpstream, err, "⚠️ Flight search is temporarily unavailable, please try again later.")
	}
	e.metrics.OfferLookups.WithLabelValues("add", "ok").Inc()

	if len(offers) == 0 {
		return nil, newError(ErrNotFound, nil, "No flights found for %s->%s on %s.", req.Origin, req.Destination, day)
	}

	match := utils.MatchOffer(offers, req.FlightCode)
	if match == nil {
		return nil, newError(ErrNotFound, nil, "Flight %s not found on %s for %s->%s. Available on that route/date: %s.",
			req.FlightCode, day, req.Origin, req.Destination, strings.Join(utils.OfferCodes(offers), ", "))
	}

	return e.save(ctx, ownerID, req, match.Price)
}

// trackDiscovered runs ADD <code> <date>: capacity, route discovery, insert
func (e *ConversationEngine) trackDiscovered(ctx context.Context, ownerID int64, code string, date time.Time) (*entity.TrackedFlight, error) {
	if err := e.ensureCapacity(ctx, ownerID); err != nil {
		return nil, err
	}

	offer, err := e.discovery.Find(ctx, code, date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, newError(ErrUpstream, err, "⚠️ Flight search was interrupted, please try again.")
	}

	req := trackRequest{
		FlightCode:  code,
		Date:        date,
		Origin:      strings.ToUpper(offer.Origin),
		Destination: strings.ToUpper(offer.Destination),
	}
	return e.save(ctx, ownerID, req, offer.Price)
}

func (e *ConversationEngine) save(ctx context.Context, ownerID int64, req trackRequest, price float64) (*entity.TrackedFlight, error) {
	flight := &entity.TrackedFlight{
		OwnerID:     ownerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date,
		FlightCode:  req.FlightCode,
		LastPrice:   price,
	}
	if err := e.flightRepo.Create(ctx, flight); err != nil {
		return nil, newError(ErrPersistence, err, "⚠️ Could not save the flight, please try again later.")
	}

	e.metrics.FlightsTracked.Inc()
	e.logger.Info("Flight tracked", "ownerId", ownerID, "flightId", flight.ID, "flightCode", flight.FlightCode,
		"origin", flight.Origin, "destination", flight.Destination, "date", flight.DateString(), "price", price)
	return flight, nil
}

func (e *ConversationEngine) confirmation(flight *entity.TrackedFlight) string {
	return fmt.Sprintf(utils.MSG_TRACKING, flight.FlightCode, flight.Origin, flight.Destination,
		flight.DateString(), flight.LastPrice, e.currency)
}

// replyError logs failures worth an operator's attention and returns the reply
func (e *ConversationEngine) replyError(ownerID int64, err error) string {
	switch {
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrPersistence):
		e.logger.Error("Command failed", "ownerId", ownerID, "error", err)
	default:
		e.logger.Debug("Command rejected", "ownerId", ownerID, "error", err)
	}
	return ReplyFor(err)
}
