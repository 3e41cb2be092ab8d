package directory

import (
	"context"
	"strings"

	"github.com/dmoreira/callsync/internal/types"
	"github.com/rs/zerolog"
)

// Lister is the subset of the CRM client used for directory lookups.
type Lister interface {
	GetDepartments(ctx context.Context) ([]types.CRMDepartment, error)
	GetUsersByDepartment(ctx context.Context, departmentID string) ([]types.CRMUser, error)
}

// Resolver builds the per-run set of target users from the CRM
// directory.
type Resolver struct {
	crm        Lister
	department string
	excluded   map[string]bool
	logger     zerolog.Logger
}

// NewResolver creates a new directory resolver
func NewResolver(crm Lister, department string, excluded map[string]bool, logger zerolog.Logger) *Resolver {
	return &Resolver{
		crm:        crm,
		department: department,
		excluded:   excluded,
		logger:     logger,
	}
}

// Resolve returns user id -> display name for every member of the
// target department not on the denylist. Department matching is exact
// and case-sensitive. Any directory failure is logged and yields an
// empty map; the caller treats that as "no target users".
func (r *Resolver) Resolve(ctx context.Context) types.TargetUsers {
	departments, err := r.crm.GetDepartments(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list departments")
		return types.TargetUsers{}
	}

	var departmentID string
	for _, dept := range departments {
		if dept.Name == r.department {
			departmentID = string(dept.ID)
			break
		}
	}
	if departmentID == "" {
		r.logger.Error().Str("department", r.department).Msg("target department not found")
		return types.TargetUsers{}
	}

	users, err := r.crm.GetUsersByDepartment(ctx, departmentID)
	if err != nil {
		r.logger.Error().Err(err).Str("department_id", departmentID).Msg("failed to list department users")
		return types.TargetUsers{}
	}

	target := make(types.TargetUsers)
	for _, user := range users {
		if r.excluded[string(user.ID)] {
			continue
		}
		target[string(user.ID)] = strings.TrimSpace(user.Name + " " + user.LastName)
	}

	r.logger.Info().Int("users", len(target)).Str("department", r.department).Msg("target users resolved")
	return target
}
