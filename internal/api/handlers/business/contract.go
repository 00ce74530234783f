package business

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/business/models"
)

type BusinessService interface {
	Get(ctx context.Context, code string) (*models.BusinessResponse, error)
	GetStorefront(ctx context.Context, code string) (*models.StorefrontResponse, error)
	UpdateSchedule(ctx context.Context, actor domain.Principal, code string, req *models.UpdateScheduleRequest) (*models.BusinessResponse, error)
	UpdateCategories(ctx context.Context, actor domain.Principal, code string, req *models.UpdateCategoriesRequest) ([]string, error)
	UpdateReviewOrder(ctx context.Context, actor domain.Principal, code string, req *models.UpdateReviewOrderRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
