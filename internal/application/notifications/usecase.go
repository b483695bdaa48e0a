package notifications

import (
	"context"

	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

const defaultLimit = 50

// UseCase avisos de usuario (incluye los broadcast con user_id nulo).
type UseCase struct {
	repo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List últimos avisos visibles para el usuario.
func (uc *UseCase) List(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListForUser(ctx, userID, defaultLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca un aviso propio como leído.
func (uc *UseCase) MarkRead(ctx context.Context, id, userID int64) error {
	return uc.repo.MarkRead(ctx, id, userID)
}
