package catalog

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, code string) ([]models.ServiceResponse, error)
	CreateService(ctx context.Context, actor domain.Principal, code string, req *models.ServiceRequest) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, actor domain.Principal, code string, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	DeleteService(ctx context.Context, actor domain.Principal, code string, id int64) error
	ReorderServices(ctx context.Context, actor domain.Principal, code string, ids []int64) error

	ListStaff(ctx context.Context, code string) ([]models.StaffResponse, error)
	CreateStaff(ctx context.Context, actor domain.Principal, code string, req *models.StaffRequest) (*models.StaffResponse, error)
	UpdateStaff(ctx context.Context, actor domain.Principal, code string, id int64, req *models.StaffRequest) (*models.StaffResponse, error)
	DeleteStaff(ctx context.Context, actor domain.Principal, code string, id int64) error
	ReorderStaff(ctx context.Context, actor domain.Principal, code string, ids []int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
