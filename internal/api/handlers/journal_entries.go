package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
)

func (r *Router) journalRoute(method string, rest []string) handlerFunc {
	return collection{
		create: r.createJournalEntry,
		list:   r.listJournalEntries,
		get:    r.getJournalEntry,
		update: r.updateJournalEntry,
		remove: r.deleteJournalEntry,
		actions: map[string]handlerFunc{
			"post": r.postJournalEntry,
		},
	}.route(method, rest)
}

func (r *Router) createJournalEntry(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req journal.CreateJournalEntryRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	entry, err := r.svc.Journal.CreateJournalEntry(ctx, companyID, c.rc.ActorID, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(entry, c.requestID()), nil
}

func (r *Router) listJournalEntries(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	filter := journal.JournalEntryFilter{}
	if s := c.query("state"); s != "" {
		state, err := journal.ParseState(s)
		if err != nil {
			return events.APIGatewayProxyResponse{}, errors.NewValidationError(err.Error())
		}
		filter.State = state
	}
	if filter.Skip, err = c.queryInt("skip"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if filter.Limit, err = c.queryInt("limit"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	filter = filter.Normalize()

	list, err := r.svc.Journal.ListJournalEntries(ctx, companyID, filter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.SuccessWithPagination(list.JournalEntries, &response.Pagination{
		Total: list.TotalCount,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}, http.StatusOK, c.requestID()), nil
}

func (r *Router) getJournalEntry(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	entry, err := r.ownedJournalEntry(ctx, c)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(entry, c.requestID()), nil
}

func (r *Router) updateJournalEntry(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	var req journal.UpdateJournalEntryRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := r.ownedJournalEntry(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	entry, err := r.svc.Journal.UpdateJournalEntry(ctx, c.id(), &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(entry, c.requestID()), nil
}

func (r *Router) deleteJournalEntry(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if _, err := r.ownedJournalEntry(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := r.svc.Journal.DeleteJournalEntry(ctx, c.id()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

func (r *Router) postJournalEntry(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if c.rc.ActorID == "" {
		return events.APIGatewayProxyResponse{}, errors.NewAuthenticationError("posting requires an authenticated actor")
	}
	if _, err := r.ownedJournalEntry(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	entry, err := r.svc.Poster.Post(ctx, c.id(), c.rc.ActorID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("journal entry posted", "entryNumber", entry.EntryNumber, "actorId", c.rc.ActorID)
	return response.OK(entry, c.requestID()), nil
}

func (r *Router) ownedJournalEntry(ctx context.Context, c call) (*journal.JournalEntry, error) {
	entry, err := r.svc.Journal.GetJournalEntry(ctx, c.id())
	if err != nil {
		return nil, err
	}
	if err := c.owned(entry.CompanyID, "journal entry"); err != nil {
		return nil, err
	}
	return entry, nil
}
