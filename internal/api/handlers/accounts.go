package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

func (r *Router) accountRoute(method string, rest []string) handlerFunc {
	return collection{
		create: r.createAccount,
		list:   r.listAccounts,
		get:    r.getAccount,
		update: r.updateAccount,
		remove: r.deleteAccount,
	}.route(method, rest)
}

func (r *Router) createAccount(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req account.CreateAccountRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	acc, err := r.svc.Accounts.CreateAccount(ctx, companyID, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(acc, c.requestID()), nil
}

// listAccounts serves the flat list, or the tree when view=tree.
func (r *Router) listAccounts(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if c.query("view") == "tree" {
		tree, err := r.svc.Accounts.Hierarchy(ctx, companyID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return response.OK(tree, c.requestID()), nil
	}

	filter := account.AccountFilter{}
	if t := c.query("type"); t != "" {
		accountType, err := account.ParseAccountType(t)
		if err != nil {
			return events.APIGatewayProxyResponse{}, errors.NewValidationError(err.Error())
		}
		filter.AccountType = accountType
	}
	if filter.ActiveOnly, err = c.queryBool("active_only"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if filter.Skip, err = c.queryInt("skip"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if filter.Limit, err = c.queryInt("limit"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	filter = filter.Normalize()

	list, err := r.svc.Accounts.ListAccounts(ctx, companyID, filter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.SuccessWithPagination(list.Accounts, &response.Pagination{
		Total: list.TotalCount,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}, http.StatusOK, c.requestID()), nil
}

// accountWithPosition is the detail view of an account
type accountWithPosition struct {
	*account.Account
	Position *account.Position `json:"position"`
}

func (r *Router) getAccount(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	acc, err := r.svc.Accounts.GetAccount(ctx, c.id())
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := c.owned(acc.CompanyID, "account"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	pos, err := r.svc.Accounts.GetPosition(ctx, acc.AccountID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(accountWithPosition{Account: acc, Position: pos}, c.requestID()), nil
}

func (r *Router) updateAccount(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	var req account.UpdateAccountRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := r.checkAccount(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	acc, err := r.svc.Accounts.UpdateAccount(ctx, c.id(), &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(acc, c.requestID()), nil
}

func (r *Router) deleteAccount(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if err := r.checkAccount(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := r.svc.Accounts.DeleteAccount(ctx, c.id()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

func (r *Router) checkAccount(ctx context.Context, c call) error {
	acc, err := r.svc.Accounts.GetAccount(ctx, c.id())
	if err != nil {
		return err
	}
	return c.owned(acc.CompanyID, "account")
}
