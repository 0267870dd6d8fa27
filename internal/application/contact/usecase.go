package contact

import (
	"context"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// UseCase reenvía formularios de contacto/oferta al webhook configurado.
// El payload se trata como JSON opaco: el webhook decide qué campos le importan.
type UseCase struct {
	relay ports.ContactRelay
	log   *logger.Logger
}

// NewUseCase construye el caso de uso con el puerto de reenvío.
func NewUseCase(relay ports.ContactRelay, log *logger.Logger) *UseCase {
	return &UseCase{relay: relay, log: log.Component("contact")}
}

// Send reenvía el formulario. SpotsLeft viene poblado solo si el webhook
// reporta capacidad restante de la oferta.
func (uc *UseCase) Send(ctx context.Context, in dto.ContactRequest) (*dto.ContactResponse, error) {
	spotsLeft, err := uc.relay.Send(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("fields", len(in)).Msg("formulario de contacto reenviado")
	return &dto.ContactResponse{OK: true, SpotsLeft: spotsLeft}, nil
}
