package usecase

import (
	"context"
	"fmt"
	"strings"

	"fare-tracker-service/pkg/utils"
)

type addCommand struct {
	engine *ConversationEngine
}

func (c *addCommand) CanHandle(verb string) bool {
	return verb == "ADD"
}

// Handle serves ADD <code>, ADD <code> <date> and ADD <code> <date> <origin> <dest>
func (c *addCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	e := c.engine
	switch len(args) {
	case 1:
		code, err := parseFlightCode(args[0])
		if err != nil {
			return ReplyFor(err)
		}
		e.pendingRepo.Put(ownerID, code)
		return fmt.Sprintf(utils.MSG_ASK_ROUTE, code)

	case 2:
		code, err := parseFlightCode(args[0])
		if err != nil {
			return ReplyFor(err)
		}
		date, err := parseDate(args[1])
		if err != nil {
			return ReplyFor(err)
		}
		flight, err := e.trackDiscovered(ctx, ownerID, code, date)
		if err != nil {
			return e.replyError(ownerID, err)
		}
		return e.confirmation(flight)

	case 4:
		req, err := parseTrackRequest(args[0], args[1], args[2], args[3])
		if err != nil {
			return ReplyFor(err)
		}
		flight, err := e.track(ctx, ownerID, req)
		if err != nil {
			return e.replyError(ownerID, err)
		}
		return e.confirmation(flight)

	default:
		return utils.MSG_USAGE_ADD
	}
}

type deleteCommand struct {
	engine *ConversationEngine
}

func (c *deleteCommand) CanHandle(verb string) bool {
	return verb == "DELETE" || verb == "REMOVE"
}

// Handle removes every row of the owner with the code. Zero rows is a normal outcome.
func (c *deleteCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	if len(args) != 1 {
		return utils.MSG_USAGE_DELETE
	}
	code := utils.NormalizeFlightCode(args[0])
	deleted, err := c.engine.flightRepo.DeleteByOwnerAndCode(ctx, ownerID, code)
	if err != nil {
		return c.engine.replyError(ownerID, newError(ErrPersistence, err, "⚠️ Could not delete %s, please try again later.", code))
	}
	c.engine.logger.Info("Flights deleted", "ownerId", ownerID, "flightCode", code, "count", deleted)
	return fmt.Sprintf(utils.MSG_DELETED, deleted, code)
}

type listCommand struct {
	engine *ConversationEngine
}

func (c *listCommand) CanHandle(verb string) bool {
	return verb == "LIST"
}

func (c *listCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	if len(args) != 0 {
		return fmt.Sprintf(utils.MSG_USAGE_BARE, "LIST")
	}
	flights, err := c.engine.flightRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return c.engine.replyError(ownerID, newError(ErrPersistence, err, "⚠️ Could not read your tracked flights, please try again later."))
	}
	if len(flights) == 0 {
		return utils.MSG_EMPTY_LIST
	}

	lines := make([]string, 0, len(flights)+1)
	lines = append(lines, utils.MSG_LIST_HEADER)
	for _, f := range flights {
		lines = append(lines, fmt.Sprintf(utils.MSG_LIST_ITEM, f.FlightCode, f.Origin, f.Destination,
			f.DateString(), f.LastPrice, c.engine.currency))
	}
	return strings.Join(lines, "\n")
}

type clearCommand struct {
	engine *ConversationEngine
}

func (c *clearCommand) CanHandle(verb string) bool {
	return verb == "CLEAR"
}

func (c *clearCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	if len(args) != 0 {
		return fmt.Sprintf(utils.MSG_USAGE_BARE, "CLEAR")
	}
	deleted, err := c.engine.flightRepo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return c.engine.replyError(ownerID, newError(ErrPersistence, err, "⚠️ Could not delete your tracking data, please try again later."))
	}
	c.engine.pendingRepo.Delete(ownerID)
	c.engine.logger.Info("Owner cleared", "ownerId", ownerID, "count", deleted)
	return utils.MSG_CLEARED
}

type cancelCommand struct {
	engine *ConversationEngine
}

func (c *cancelCommand) CanHandle(verb string) bool {
	return verb == "CANCEL"
}

func (c *cancelCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	if len(args) != 0 {
		return fmt.Sprintf(utils.MSG_USAGE_BARE, "CANCEL")
	}
	code, ok := c.engine.pendingRepo.Get(ownerID)
	if !ok {
		return utils.MSG_NOTHING_TO_CANCEL
	}
	c.engine.pendingRepo.Delete(ownerID)
	return fmt.Sprintf(utils.MSG_CANCELLED, code)
}

// textCommand answers fixed verbs with a fixed text
type textCommand struct {
	verbs []string
	reply string
}

func (c *textCommand) CanHandle(verb string) bool {
	for _, v := range c.verbs {
		if v == verb {
			return true
		}
	}
	return false
}

func (c *textCommand) Handle(ctx context.Context, ownerID int64, args []string) string {
	return c.reply
}
