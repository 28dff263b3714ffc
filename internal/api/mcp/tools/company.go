package tools

import (
	"context"
	"fmt"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// companyFor picks the company a tool acts on. A company pinned by the
// request context wins; a different argument is refused.
func companyFor(ctx context.Context, argument string) (string, error) {
	rc, _ := middleware.FromContext(ctx)
	switch {
	case rc.CompanyID == "" && argument == "":
		return "", errors.NewValidationError("companyId is required")
	case rc.CompanyID == "":
		return argument, nil
	case argument == "" || argument == rc.CompanyID:
		return rc.CompanyID, nil
	default:
		return "", errors.NewNotFoundError(fmt.Sprintf("company %s not found", argument))
	}
}

// message returns the user-facing part of err.
func message(err error) string {
	var appErr errors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
