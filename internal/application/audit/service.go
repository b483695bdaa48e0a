// Package audit implementa el audit trail best-effort del sistema.
//
// Contrato de durabilidad: los fallos al escribir un asiento se
// registran en el log y se descartan; nunca bloquean ni revierten la
// operación que los originó. Esto es distinto del libro de movimientos
// de stock, que se escribe dentro de la transacción de negocio.
package audit

import (
	"context"
	"encoding/json"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
	"github.com/dmorales/batch-records-api/pkg/logger"
)

// RequestMeta datos de la petición HTTP que acompañan cada asiento.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Service escritor del audit trail.
type Service struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewService construye el servicio.
func NewService(repo repository.AuditRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Log escribe un asiento. details se serializa a JSON; si la
// serialización o el insert fallan se deja constancia en el log y se
// continúa.
func (s *Service) Log(ctx context.Context, userID, recordID *int64, action string, details any, meta RequestMeta) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("audit: serializar detalles")
		payload = nil
	}

	entry := &entity.AuditEntry{
		UserID:    userID,
		RecordID:  recordID,
		Action:    action,
		Details:   payload,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("audit: insertar asiento")
	}
}
