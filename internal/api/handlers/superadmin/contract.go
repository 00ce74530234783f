package superadmin

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/superadmin/models"
)

type SuperAdminService interface {
	List(ctx context.Context, actor domain.Principal) ([]models.BusinessSummary, error)
	Create(ctx context.Context, actor domain.Principal, req *models.CreateBusinessRequest) (*models.CreateBusinessResponse, error)
	Update(ctx context.Context, actor domain.Principal, code string, req *models.UpdateBusinessRequest) (*models.BusinessSummary, error)
	Delete(ctx context.Context, actor domain.Principal, code string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
