// Package analytics casos de uso de tablero y alertas de inventario.
package analytics

import (
	"context"

	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

// DashboardUseCase contadores del tablero y alertas de stock bajo.
type DashboardUseCase struct {
	recordRepo   repository.RecordRepository
	materialRepo repository.RawMaterialRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(recordRepo repository.RecordRepository, materialRepo repository.RawMaterialRepository) *DashboardUseCase {
	return &DashboardUseCase{recordRepo: recordRepo, materialRepo: materialRepo}
}

// GetStats contadores para el usuario: total de registros propios,
// pendientes de verificación y aprobados en todo el sistema.
func (uc *DashboardUseCase) GetStats(ctx context.Context, userID int64) (*dto.DashboardStatsResponse, error) {
	total, err := uc.recordRepo.CountByOperator(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := uc.recordRepo.CountByStatus(ctx, entity.StatusSigned)
	if err != nil {
		return nil, err
	}
	approved, err := uc.recordRepo.CountByStatus(ctx, entity.StatusApproved)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalRecords:        total,
		PendingVerification: pending,
		ApprovedRecords:     approved,
	}, nil
}

// GetLowStockAlerts materias primas activas con stock <= min_stock.
func (uc *DashboardUseCase) GetLowStockAlerts(ctx context.Context) ([]dto.RawMaterialResponse, error) {
	list, err := uc.materialRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.RawMaterialResponse{
			ID:        m.ID,
			Code:      m.Code,
			Name:      m.Name,
			Unit:      m.Unit,
			Stock:     m.Stock,
			MinStock:  m.MinStock,
			MaxStock:  m.MaxStock,
			UnitPrice: m.UnitPrice,
			Supplier:  m.Supplier,
		})
	}
	return out, nil
}
