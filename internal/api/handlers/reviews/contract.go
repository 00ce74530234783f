package reviews

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
)

type ReviewsService interface {
	ListApproved(ctx context.Context, code string) ([]models.ReviewResponse, error)
	ListAll(ctx context.Context, actor domain.Principal, code string) ([]models.ReviewResponse, error)
	Create(ctx context.Context, actor domain.Principal, code string, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	Moderate(ctx context.Context, actor domain.Principal, code string, id int64, approved *bool) error
	Delete(ctx context.Context, actor domain.Principal, code string, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
