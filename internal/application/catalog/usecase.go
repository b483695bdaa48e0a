// Package catalog casos de uso del catálogo (productos, materias primas,
// materiales de empaque) y los cálculos de lote expuestos por la API.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/application/audit"
	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/formulation"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

const boxFactorKey = "packaging_box_factor"

// UseCase casos de uso del catálogo.
type UseCase struct {
	productRepo   repository.ProductRepository
	formulaRepo   repository.FormulationRepository
	materialRepo  repository.RawMaterialRepository
	packagingRepo repository.PackagingMaterialRepository
	settingRepo   repository.SettingRepository
	audit         *audit.Service
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	formulaRepo repository.FormulationRepository,
	materialRepo repository.RawMaterialRepository,
	packagingRepo repository.PackagingMaterialRepository,
	settingRepo repository.SettingRepository,
	auditSvc *audit.Service,
) *UseCase {
	return &UseCase{
		productRepo:   productRepo,
		formulaRepo:   formulaRepo,
		materialRepo:  materialRepo,
		packagingRepo: packagingRepo,
		settingRepo:   settingRepo,
		audit:         auditSvc,
	}
}

// CreateProduct alta de producto (solo admin). Código repetido -> ErrDuplicate.
func (uc *UseCase) CreateProduct(ctx context.Context, actorID int64, in dto.CreateProductRequest, meta audit.RequestMeta) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		Code:         in.Code,
		Name:         in.Name,
		Presentation: in.Presentation,
		Description:  in.Description,
		Unit:         in.Unit,
		IsActive:     true,
		CreatedBy:    actorID,
	}
	id, err := uc.productRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	uc.audit.Log(ctx, &actorID, nil, "product_created",
		map[string]any{"productId": id, "code": in.Code, "name": in.Name}, meta)
	return toProductResponse(p), nil
}

// GetProduct producto activo por id.
func (uc *UseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts productos activos ordenados por nombre.
func (uc *UseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetFormulation renglones de la receta ordenados por item_number.
func (uc *UseCase) GetFormulation(ctx context.Context, productID int64) ([]dto.FormulationItemResponse, error) {
	items, err := uc.formulaRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FormulationItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.FormulationItemResponse{
			ItemNumber:    it.ItemNumber,
			RawMaterialID: it.RawMaterialID,
			Code:          it.RawMaterialCode,
			Name:          it.RawMaterialName,
			Unit:          it.RawMaterialUnit,
			Stock:         it.RawMaterialStock,
			Percentage:    it.Percentage,
		})
	}
	return out, nil
}

// CreateRawMaterial alta de materia prima (solo admin).
func (uc *UseCase) CreateRawMaterial(ctx context.Context, actorID int64, in dto.CreateRawMaterialRequest, meta audit.RequestMeta) (*dto.RawMaterialResponse, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.RawMaterial{
		Code:      in.Code,
		Name:      in.Name,
		Unit:      in.Unit,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		MaxStock:  in.MaxStock,
		UnitPrice: in.UnitPrice,
		Supplier:  in.Supplier,
		IsActive:  true,
		CreatedBy: actorID,
	}
	id, err := uc.materialRepo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id

	uc.audit.Log(ctx, &actorID, nil, "raw_material_created",
		map[string]any{"materialId": id, "code": in.Code, "name": in.Name}, meta)
	return toRawMaterialResponse(m), nil
}

// ListRawMaterials materias primas activas ordenadas por nombre.
func (uc *UseCase) ListRawMaterials(ctx context.Context) ([]dto.RawMaterialResponse, error) {
	list, err := uc.materialRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toRawMaterialResponse(m))
	}
	return out, nil
}

// ListPackagingMaterials materiales de empaque activos.
func (uc *UseCase) ListPackagingMaterials(ctx context.Context) ([]dto.PackagingMaterialResponse, error) {
	list, err := uc.packagingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackagingMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.PackagingMaterialResponse{
			ID:    m.ID,
			Code:  m.Code,
			Name:  m.Name,
			Type:  m.Type,
			Unit:  m.Unit,
			Stock: m.Stock,
		})
	}
	return out, nil
}

// Calculate cálculo de formulación para producir quantity unidades del
// producto. Sin renglones -> ErrFormulationNotFound (404).
func (uc *UseCase) Calculate(ctx context.Context, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	if in.ProductID == 0 || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.formulaRepo.ListByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	res, err := formulation.Calculate(items, in.Quantity)
	if err != nil {
		return nil, err
	}

	out := &dto.CalculateResponse{
		ProductID:         in.ProductID,
		QuantityToProduce: in.Quantity,
		Formulation:       make([]dto.CalculationLine, 0, len(res.Formulation)),
		Totals: dto.CalculationTotals{
			Percentage:          res.Totals.Percentage,
			TheoreticalQuantity: res.Totals.TheoreticalQuantity,
			PercentageValid:     res.Totals.PercentageValid,
		},
	}
	for _, line := range res.Formulation {
		out.Formulation = append(out.Formulation, dto.CalculationLine{
			ItemNumber:          line.ItemNumber,
			RawMaterialID:       line.RawMaterialID,
			RawMaterialName:     line.RawMaterialName,
			Percentage:          line.Percentage,
			Unit:                line.Unit,
			TheoreticalQuantity: line.TheoreticalQuantity,
			CurrentStock:        line.CurrentStock,
			StockSufficient:     line.StockSufficient,
		})
	}
	return out, nil
}

// CalculatePackaging cálculo de empaque. El factor de cajas sale de
// system_settings (packaging_box_factor) y cae al valor por defecto si
// no está configurado.
func (uc *UseCase) CalculatePackaging(ctx context.Context, in dto.CalculatePackagingRequest) (*dto.CalculatePackagingResponse, error) {
	boxFactor := formulation.DefaultBoxFactor
	if raw, err := uc.settingRepo.Get(ctx, boxFactorKey); err == nil && raw != "" {
		if f, err := decimal.NewFromString(raw); err == nil {
			boxFactor = f
		}
	}

	res, err := formulation.CalculatePackaging(in.Units, boxFactor)
	if err != nil {
		return nil, err
	}

	out := &dto.CalculatePackagingResponse{
		Units:      res.Units,
		Materials:  make(map[string]dto.PackagingComponentResponse, len(res.Materials)),
		TotalItems: res.TotalItems,
	}
	for name, comp := range res.Materials {
		out.Materials[name] = dto.PackagingComponentResponse{Quantity: comp.Quantity, Unit: comp.Unit}
	}
	return out, nil
}

// CalculateTime tiempo de producción entre dos horas HH:MM.
func (uc *UseCase) CalculateTime(in dto.CalculateTimeRequest) (*dto.CalculateTimeResponse, error) {
	if in.StartTime == "" || in.EndTime == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := formulation.CalculateTime(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	return &dto.CalculateTimeResponse{
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		HoursWorked:   res.HoursWorked,
		MinutesWorked: res.MinutesWorked,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Presentation: p.Presentation,
		Description:  p.Description,
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
	}
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Unit:      m.Unit,
		Stock:     m.Stock,
		MinStock:  m.MinStock,
		MaxStock:  m.MaxStock,
		UnitPrice: m.UnitPrice,
		Supplier:  m.Supplier,
	}
}
