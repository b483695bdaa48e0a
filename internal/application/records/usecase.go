// Package records implementa la máquina de estados del registro de lote:
//
//	draft -> signed -> {approved | rejected}
//
// Las guardas de transición viven en el WHERE del UPDATE condicional del
// repositorio: un UPDATE que no alcanza filas devuelve ErrNotFound sin
// distinguir entre "no existe", "no es suyo" y "ya cambió de estado".
// Esa ambigüedad es el comportamiento observable del sistema.
package records

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/application/audit"
	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

// UseCase casos de uso del registro de lote.
type UseCase struct {
	recordRepo repository.RecordRepository
	lineRepo   repository.BatchFormulationRepository
	sigRepo    repository.SignatureRepository
	txRunner   TxRunner
	signer     Signer
	pdfGen     PDFGenerator
	audit      *audit.Service
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	recordRepo repository.RecordRepository,
	lineRepo repository.BatchFormulationRepository,
	sigRepo repository.SignatureRepository,
	txRunner TxRunner,
	signer Signer,
	pdfGen PDFGenerator,
	auditSvc *audit.Service,
) *UseCase {
	return &UseCase{
		recordRepo: recordRepo,
		lineRepo:   lineRepo,
		sigRepo:    sigRepo,
		txRunner:   txRunner,
		signer:     signer,
		pdfGen:     pdfGen,
		audit:      auditSvc,
	}
}

// Create inserta un registro en draft con el hash SHA-256 del form_data
// para detección posterior de manipulación. Un batch_number repetido
// devuelve ErrDuplicate (409).
func (uc *UseCase) Create(ctx context.Context, operatorID int64, in dto.CreateRecordRequest, meta audit.RequestMeta) (*dto.RecordResponse, error) {
	if in.BatchNumber == "" || in.ProductName == "" || len(in.FormData) == 0 {
		return nil, domain.ErrInvalidInput
	}

	formData, err := compactJSON(in.FormData)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	record := &entity.BatchRecord{
		BatchNumber:    in.BatchNumber,
		OperatorID:     operatorID,
		ProductName:    in.ProductName,
		Quantity:       in.Quantity,
		ProductionDate: in.ProductionDate,
		FormData:       formData,
		DataHash:       uc.signer.HashData(formData),
		Status:         entity.StatusDraft,
	}
	id, err := uc.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	uc.audit.Log(ctx, &operatorID, &id, "record_created",
		map[string]any{"batchNumber": in.BatchNumber, "productName": in.ProductName}, meta)

	return toRecordResponse(record, false), nil
}

// Sign transición draft->signed. Solo el operador dueño puede firmar y
// solo en draft; la guarda es un único UPDATE condicional. Antes de la
// transición se genera la firma digital del form_data con la llave
// privada del usuario y se inserta la fila de firma.
func (uc *UseCase) Sign(ctx context.Context, operatorID, recordID int64, meta audit.RequestMeta) error {
	record, err := uc.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record == nil || record.OperatorID != operatorID || record.Status != entity.StatusDraft {
		// Misma respuesta para los tres casos; ver doc del paquete.
		return domain.ErrNotFound
	}

	key, err := uc.sigRepo.GetActiveKey(ctx, operatorID)
	if err != nil {
		return err
	}
	if key == nil {
		return domain.ErrNotFound
	}

	signatureData, err := uc.signer.Sign(record.FormData, key.PrivateKeyEncrypted)
	if err != nil {
		return err
	}
	if err := uc.sigRepo.InsertRecordSignature(ctx, &entity.RecordSignature{
		RecordID:      recordID,
		UserID:        operatorID,
		SignatureData: signatureData,
		SignatureType: "operator_sign",
	}); err != nil {
		return err
	}

	if err := uc.recordRepo.MarkSigned(ctx, recordID, operatorID); err != nil {
		return err
	}

	uc.audit.Log(ctx, &operatorID, &recordID, "record_signed",
		map[string]any{"signatureType": "operator_sign"}, meta)
	return nil
}

// Verify transición signed->{approved|rejected} por un verificador.
// approved y rejected son terminales. No se impide que un verificador
// apruebe trabajo propio; no hay restricción de auto-verificación.
func (uc *UseCase) Verify(ctx context.Context, verificadorID, recordID int64, approved bool, meta audit.RequestMeta) (string, error) {
	if err := uc.recordRepo.MarkVerified(ctx, recordID, verificadorID, approved); err != nil {
		return "", err
	}

	newStatus := entity.StatusRejected
	if approved {
		newStatus = entity.StatusApproved
	}
	uc.audit.Log(ctx, &verificadorID, &recordID, "record_verified",
		map[string]any{"approved": approved, "newStatus": newStatus}, meta)
	return newStatus, nil
}

// CreateComplete alta de registro con snapshot de formulación en una
// sola transacción. Las líneas con actual_quantity descuentan el stock
// de la materia prima y generan un movimiento OUT; cualquier fallo
// revierte todo (all-or-nothing).
func (uc *UseCase) CreateComplete(ctx context.Context, operatorID int64, in dto.CreateCompleteRecordRequest, meta audit.RequestMeta) (*dto.RecordResponse, error) {
	// Una formulación vacía es válida: el registro queda sin renglones.
	if in.BatchNumber == "" || in.ProductID == 0 || in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}

	formData, err := json.Marshal(map[string]any{
		"productId":      in.ProductID,
		"productName":    in.ProductName,
		"quantity":       in.Quantity,
		"productionDate": in.ProductionDate,
		"formulation":    in.Formulation,
		"packaging":      in.Packaging,
		"qualityControl": in.QualityControl,
		"productionTime": in.ProductionTime,
	})
	if err != nil {
		return nil, err
	}

	record := &entity.BatchRecord{
		BatchNumber:    in.BatchNumber,
		OperatorID:     operatorID,
		ProductName:    in.ProductName,
		Quantity:       in.Quantity,
		ProductionDate: in.ProductionDate,
		FormData:       formData,
		DataHash:       uc.signer.HashData(formData),
		Status:         entity.StatusDraft,
	}

	err = uc.txRunner.Run(ctx, func(
		recordRepo repository.RecordRepository,
		lineRepo repository.BatchFormulationRepository,
		materialRepo repository.RawMaterialRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		id, err := recordRepo.Create(ctx, record)
		if err != nil {
			return err
		}
		record.ID = id

		for _, item := range in.Formulation {
			line := &entity.BatchFormulationLine{
				RecordID:            id,
				RawMaterialID:       item.RawMaterialID,
				ItemNumber:          item.ItemNumber,
				Percentage:          item.Percentage,
				TheoreticalQuantity: item.TheoreticalQuantity,
				ActualQuantity:      item.ActualQuantity,
				LotNumber:           item.LotNumber,
				DispensedBy:         item.DispensedBy,
			}
			if err := lineRepo.Insert(ctx, line); err != nil {
				return err
			}

			if item.ActualQuantity == nil || item.ActualQuantity.LessThanOrEqual(decimal.Zero) {
				continue
			}
			if err := materialRepo.DecrementStock(ctx, item.RawMaterialID, *item.ActualQuantity); err != nil {
				return err
			}
			if err := movementRepo.Insert(ctx, &entity.StockMovement{
				MaterialType:  entity.MaterialTypeRaw,
				MaterialID:    item.RawMaterialID,
				MovementType:  entity.MovementTypeOUT,
				Quantity:      *item.ActualQuantity,
				ReferenceType: entity.ReferenceTypeBatchRecord,
				ReferenceID:   id,
				CreatedBy:     operatorID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, &operatorID, &record.ID, "batch_record_created",
		map[string]any{"batchNumber": in.BatchNumber, "productName": in.ProductName}, meta)

	return toRecordResponse(record, false), nil
}

// GetComplete registro más su snapshot de formulación.
func (uc *UseCase) GetComplete(ctx context.Context, recordID int64) (*dto.CompleteRecordResponse, error) {
	record, err := uc.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	lines, err := uc.lineRepo.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	out := &dto.CompleteRecordResponse{
		RecordResponse: *toRecordResponse(record, true),
		Formulation:    make([]dto.FormulationLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Formulation = append(out.Formulation, dto.FormulationLineResponse{
			ID:                  l.ID,
			RawMaterialID:       l.RawMaterialID,
			RawMaterialName:     l.RawMaterialName,
			Unit:                l.Unit,
			ItemNumber:          l.ItemNumber,
			Percentage:          l.Percentage,
			TheoreticalQuantity: l.TheoreticalQuantity,
			ActualQuantity:      l.ActualQuantity,
			LotNumber:           l.LotNumber,
			DispensedBy:         l.DispensedBy,
		})
	}
	return out, nil
}

// RenderPDF genera la representación imprimible del registro con su
// snapshot de formulación.
func (uc *UseCase) RenderPDF(ctx context.Context, recordID int64) ([]byte, error) {
	record, err := uc.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.lineRepo.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateRecordPDF(ctx, record, lines)
}

// List visibilidad por rol: admin y verificador ven todo, el operador
// solo sus registros.
func (uc *UseCase) List(ctx context.Context, userID int64, role string) ([]dto.RecordResponse, error) {
	var (
		list []*entity.BatchRecord
		err  error
	)
	if role == entity.RoleAdmin || role == entity.RoleVerificador {
		list, err = uc.recordRepo.List(ctx)
	} else {
		list, err = uc.recordRepo.ListByOperator(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecordResponse(r, true))
	}
	return out, nil
}

// compactJSON valida y compacta el blob recibido; el hash se calcula
// sobre esta codificación.
func compactJSON(raw json.RawMessage) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func toRecordResponse(r *entity.BatchRecord, includeFormData bool) *dto.RecordResponse {
	out := &dto.RecordResponse{
		ID:              r.ID,
		BatchNumber:     r.BatchNumber,
		OperatorID:      r.OperatorID,
		OperatorName:    r.OperatorName,
		VerificadorName: r.VerificadorName,
		ProductName:     r.ProductName,
		Quantity:        r.Quantity,
		ProductionDate:  r.ProductionDate,
		Status:          r.Status,
		SignedAt:        r.SignedAt,
		VerifiedAt:      r.VerifiedAt,
		CreatedAt:       r.CreatedAt,
	}
	if includeFormData {
		out.FormData = r.FormData
	}
	return out
}
