package launch

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// wizardSteps total de pasos del asistente; el último es la revisión, así que
// el checklist exige completados los pasos 1..wizardSteps-1.
const wizardSteps = 7

// NotLaunchableError checklist de go-live incumplido. Reasons lleva las rutas
// JSON de los requisitos que faltan, para que la UI marque cada sección.
type NotLaunchableError struct {
	Reasons []string
}

func (e *NotLaunchableError) Error() string {
	return "requisitos de lanzamiento incumplidos: " + strings.Join(e.Reasons, ", ")
}

func (e *NotLaunchableError) Unwrap() error { return domain.ErrNotLaunchable }

// UseCase activación del recepcionista (go-live). Verifica el checklist de
// lanzamiento, notifica al endpoint externo y solo si este responde bien
// aplica los cambios de estado. Cualquier fallo deja la sesión como estaba.
type UseCase struct {
	notifier      ports.LaunchNotifier
	setupUC       *setup.UseCase
	workspaceRepo repository.WorkspaceRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(notifier ports.LaunchNotifier, setupUC *setup.UseCase, workspaceRepo repository.WorkspaceRepository, log *logger.Logger) *UseCase {
	return &UseCase{notifier: notifier, setupUC: setupUC, workspaceRepo: workspaceRepo, log: log.Component("launch")}
}

// launchBlockers evalúa el checklist sobre un snapshot de la sesión: opt-in,
// perfil con nombre de negocio, numeración resuelta (exactamente una de las
// dos opciones) y asistente recorrido hasta la revisión.
func launchBlockers(s *entity.SetupSession, enabled bool) []string {
	var reasons []string

	if !enabled {
		reasons = append(reasons, "review.enabled")
	}
	if s.Account.BusinessName == "" {
		reasons = append(reasons, "account.businessName")
	}

	switch {
	case s.Phone.UseExistingNumber && s.Phone.NewNumber.Number != "":
		// Ambas opciones pobladas: la elección es ambigua.
		reasons = append(reasons, "phone.useExistingNumber")
	case s.Phone.UseExistingNumber && s.Phone.ExistingNumber == "":
		reasons = append(reasons, "phone.existingNumber")
	case !s.Phone.UseExistingNumber && s.Phone.NewNumber.Number == "":
		reasons = append(reasons, "phone.newNumber.number")
	}

	for step := 1; step < wizardSteps; step++ {
		if !slices.Contains(s.CompletedSteps, step) {
			reasons = append(reasons, fmt.Sprintf("completedSteps.%d", step))
		}
	}
	return reasons
}

// Launch ejecuta el go-live del workspace. El orden importa: primero el
// checklist sobre el estado actual, luego el notificador, y solo con su OK
// se muta la sesión; un fallo en cualquier punto la deja intacta.
func (uc *UseCase) Launch(ctx context.Context, workspaceID string, in dto.LaunchRequest) (*dto.LaunchResponse, error) {
	session := uc.setupUC.Get(ctx, workspaceID)
	if reasons := launchBlockers(session, in.Enabled); len(reasons) > 0 {
		return nil, &NotLaunchableError{Reasons: reasons}
	}

	if err := uc.notifier.Launch(ctx, workspaceID, in.Enabled); err != nil {
		return nil, fmt.Errorf("notificar lanzamiento: %w", err)
	}

	enabled, launched := true, true
	uc.setupUC.UpdateReview(ctx, workspaceID, dto.ReviewPatch{Enabled: &enabled, Launched: &launched})
	uc.setupUC.Complete(ctx, workspaceID)

	if err := uc.workspaceRepo.UpdateStatus(workspaceID, entity.WorkspaceLive); err != nil {
		// El lanzamiento ya ocurrió; el estado del workspace se reconcilia después.
		uc.log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("actualizar estado del workspace falló")
	}

	uc.log.Info().Str("workspace_id", workspaceID).Msg("recepcionista activado")
	return &dto.LaunchResponse{Launched: true}, nil
}
