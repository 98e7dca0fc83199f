package domain

import (
	"context"

	"github.com/faktur-app/faktur/pkg/db/pagination"
)

type ListRequest struct {
	PageToken  string
	PageSize   int32
	Action     string
	TargetType string
	TargetID   string
}

type ListResponse struct {
	pagination.PageInfo
	Entries []AuditLog `json:"entries"`
}

// Service records actions for the activity log. Record failures are
// logged and swallowed by callers; an unwritable audit trail must not
// fail the action it describes.
type Service interface {
	Record(ctx context.Context, actor ActorType, action, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
