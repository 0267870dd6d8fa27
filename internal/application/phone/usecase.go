package phone

import (
	"context"
	"fmt"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// UseCase provisión de numeración telefónica: búsqueda y compra a través del
// puerto PhoneProvider. Al comprar, el número queda fusionado en la sección
// phone de la sesión de setup del workspace.
type UseCase struct {
	provider ports.PhoneProvider
	setupUC  *setup.UseCase
	log      *logger.Logger
}

// NewUseCase construye el caso de uso con el proveedor elegido en el arranque.
func NewUseCase(provider ports.PhoneProvider, setupUC *setup.UseCase, log *logger.Logger) *UseCase {
	return &UseCase{provider: provider, setupUC: setupUC, log: log.Component("phone")}
}

// Search busca números disponibles en el país (y area code opcional).
// Una lista vacía es flujo normal, no error.
func (uc *UseCase) Search(ctx context.Context, country, areaCode string) (*dto.SearchNumbersResponse, error) {
	numbers, err := uc.provider.Search(ctx, country, areaCode)
	if err != nil {
		return nil, fmt.Errorf("buscar números: %w", err)
	}
	out := make([]dto.AvailableNumberResponse, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, dto.AvailableNumberResponse{
			PhoneNumber:  n.PhoneNumber,
			FriendlyName: n.FriendlyName,
			Locality:     n.Locality,
			Region:       n.Region,
			Capabilities: dto.NumberCapabilities{Voice: n.Voice, SMS: n.SMS, MMS: n.MMS},
		})
	}
	return &dto.SearchNumbersResponse{Numbers: out}, nil
}

// Purchase compra el número y lo registra en la sesión de setup. Si la compra
// falla, la sesión queda intacta y el usuario puede reintentar.
func (uc *UseCase) Purchase(ctx context.Context, workspaceID string, in dto.PurchaseNumberRequest) (*dto.PurchaseNumberResponse, error) {
	result, err := uc.provider.Purchase(ctx, in.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("comprar número %s: %w", in.PhoneNumber, err)
	}

	useExisting := false
	newNumber := entity.ProvisionedNumber{Number: result.PhoneNumber, SID: result.SID}
	uc.setupUC.UpdatePhone(ctx, workspaceID, dto.PhonePatch{
		UseExistingNumber: &useExisting,
		NewNumber:         &newNumber,
	})

	uc.log.Info().
		Str("workspace_id", workspaceID).
		Str("phone_number", result.PhoneNumber).
		Msg("número provisionado")

	return &dto.PurchaseNumberResponse{
		Success:     result.Success,
		SID:         result.SID,
		PhoneNumber: result.PhoneNumber,
	}, nil
}
