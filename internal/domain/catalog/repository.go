package catalog

import (
	"context"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceItemRepository defines the persistence interface for catalog items
type ServiceItemRepository interface {
	Save(ctx context.Context, item *ServiceItem) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ServiceItem, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*ServiceItem, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ServiceItem], error)
}

// StudentRepository defines the persistence interface for student records
type StudentRepository interface {
	Save(ctx context.Context, student *Student) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Student, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Student, error)
}
