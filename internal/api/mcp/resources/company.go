package resources

import (
	"context"
	"fmt"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// companyFor refuses a company other than the one pinned by the request.
func companyFor(ctx context.Context, companyID string) (string, error) {
	rc, _ := middleware.FromContext(ctx)
	if rc.CompanyID != "" && companyID != rc.CompanyID {
		return "", errors.NewNotFoundError(fmt.Sprintf("company %s not found", companyID))
	}
	return companyID, nil
}
