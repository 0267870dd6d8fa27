// Package setup implementa el almacén de la sesión de onboarding: estado
// canónico en memoria por workspace, mutado solo vía merges parciales por
// sección, con persistencia write-through en cada mutación.
package setup

import (
	"context"
	"sync"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// UseCase casos de uso de la sesión de setup.
//
// El estado en memoria es el canónico; la persistencia es un side-effect de
// cada mutación y su fallo no es fatal (se registra y la sesión en memoria
// sigue siendo válida, el usuario puede reintentar). La password del account
// jamás llega al repositorio: toda escritura pasa por Sanitized().
type UseCase struct {
	repo repository.SessionRepository
	log  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*entity.SetupSession
}

// NewUseCase construye el caso de uso con el puerto de persistencia.
func NewUseCase(repo repository.SessionRepository, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:     repo,
		log:      log.Component("setup"),
		sessions: make(map[string]*entity.SetupSession),
	}
}

// session devuelve la sesión canónica del workspace. Debe llamarse con mu tomado.
// Si no está en memoria intenta rehidratar desde el repositorio; si tampoco
// existe ahí, arranca con los defaults completos (nunca hay estados parciales).
func (uc *UseCase) session(ctx context.Context, workspaceID string) *entity.SetupSession {
	if s, ok := uc.sessions[workspaceID]; ok {
		return s
	}
	s, err := uc.repo.Get(ctx, workspaceID)
	if err != nil {
		uc.log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("rehidratar sesión falló, usando defaults")
		s = nil
	}
	if s == nil {
		s = entity.DefaultSetupSession()
	}
	uc.sessions[workspaceID] = s
	return s
}

// persist escribe la sesión sanitizada. El fallo se degrada a warning: la
// sesión en memoria queda intacta y la próxima mutación vuelve a intentar.
func (uc *UseCase) persist(ctx context.Context, workspaceID string, s *entity.SetupSession) {
	if err := uc.repo.Save(ctx, workspaceID, s.Sanitized()); err != nil {
		uc.log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("persistir sesión falló")
	}
}

// Get devuelve un snapshot inmutable de la sesión (copia profunda).
func (uc *UseCase) Get(ctx context.Context, workspaceID string) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session(ctx, workspaceID).Clone()
}

// UpdateStep fija el paso activo sin validar rangos: el control de límites es
// responsabilidad del caller (el asistente conoce cuántos pasos tiene).
func (uc *UseCase) UpdateStep(ctx context.Context, workspaceID string, step int) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	s.CurrentStep = step
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// MarkStepCompleted agrega el paso al set de completados (idempotente).
func (uc *UseCase) MarkStepCompleted(ctx context.Context, workspaceID string, step int) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	s.MarkStepCompleted(step)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// Complete marca el asistente entero como terminado. No valida que las
// secciones estén pobladas: esa verificación la hace el paso de revisión
// antes de invocar esto.
func (uc *UseCase) Complete(ctx context.Context, workspaceID string) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	s.IsCompleted = true
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// Reset restaura la sesión completa a los defaults documentados.
func (uc *UseCase) Reset(ctx context.Context, workspaceID string) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := entity.DefaultSetupSession()
	uc.sessions[workspaceID] = s
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// ── Merges parciales por sección ──────────────────────────────────────────────
//
// Contrato: solo cambian los campos presentes en el patch; los hermanos de la
// sección y las demás secciones quedan byte-idénticos. Los merges son
// idempotentes y seguros desde closures obsoletos: aplicar el mismo patch dos
// veces deja el mismo estado.

// UpdateAccount merge parcial de la sección account.
func (uc *UseCase) UpdateAccount(ctx context.Context, workspaceID string, p dto.AccountPatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	a := &s.Account
	setString(&a.FullName, p.FullName)
	setString(&a.WorkEmail, p.WorkEmail)
	setString(&a.Password, p.Password)
	setString(&a.BusinessName, p.BusinessName)
	setString(&a.Timezone, p.Timezone)
	setString(&a.WorkspaceID, p.WorkspaceID)
	setString(&a.UserID, p.UserID)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdateBusinessProfile merge parcial de la sección businessProfile.
// OpeningHours se fusiona por día: los siete días siguen siempre presentes.
func (uc *UseCase) UpdateBusinessProfile(ctx context.Context, workspaceID string, p dto.BusinessProfilePatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	b := &s.BusinessProfile
	setString(&b.Category, p.Category)
	setString(&b.Website, p.Website)
	if p.ServiceAreas != nil {
		b.ServiceAreas = append([]string(nil), (*p.ServiceAreas)...)
	}
	for day, hours := range p.OpeningHours {
		if _, ok := b.OpeningHours[day]; ok {
			b.OpeningHours[day] = hours
		}
	}
	if p.Languages != nil {
		b.Languages = append([]string(nil), (*p.Languages)...)
	}
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdateCalendar merge parcial de la sección calendar.
func (uc *UseCase) UpdateCalendar(ctx context.Context, workspaceID string, p dto.CalendarPatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	c := &s.Calendar
	setBool(&c.Connected, p.Connected)
	setString(&c.Provider, p.Provider)
	if p.AppointmentTypes != nil {
		c.AppointmentTypes = append([]entity.AppointmentType(nil), (*p.AppointmentTypes)...)
	}
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdatePhone merge parcial de la sección phone. NewNumber y Routing se
// reemplazan completos cuando vienen presentes.
func (uc *UseCase) UpdatePhone(ctx context.Context, workspaceID string, p dto.PhonePatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	ph := &s.Phone
	setBool(&ph.UseExistingNumber, p.UseExistingNumber)
	setString(&ph.ExistingNumber, p.ExistingNumber)
	if p.NewNumber != nil {
		ph.NewNumber = *p.NewNumber
	}
	if p.Routing != nil {
		routing := *p.Routing
		routing.RingNumbers = append([]string(nil), p.Routing.RingNumbers...)
		ph.Routing = routing
	}
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdateKnowledgeBase merge parcial de la sección knowledgeBase.
func (uc *UseCase) UpdateKnowledgeBase(ctx context.Context, workspaceID string, p dto.KnowledgeBasePatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	kb := &s.KnowledgeBase
	if p.Services != nil {
		services := make([]entity.ServiceItem, 0, len(*p.Services))
		for _, in := range *p.Services {
			services = append(services, entity.ServiceItem{
				Name:            in.Name,
				DurationMinutes: in.DurationMinutes,
				Price:           in.Price,
			})
		}
		kb.Services = services
	}
	if p.FAQs != nil {
		kb.FAQs = append([]entity.FAQ(nil), (*p.FAQs)...)
	}
	if p.Policies != nil {
		kb.Policies = *p.Policies
	}
	if p.IntakeQuestions != nil {
		kb.IntakeQuestions = append([]string(nil), (*p.IntakeQuestions)...)
	}
	if p.Files != nil {
		kb.Files = append([]entity.UploadedFile(nil), (*p.Files)...)
	}
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// AppendFAQs agrega FAQs al final de la lista existente (usado por el scrape).
func (uc *UseCase) AppendFAQs(ctx context.Context, workspaceID string, faqs []entity.FAQ) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	s.KnowledgeBase.FAQs = append(s.KnowledgeBase.FAQs, faqs...)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// AppendFile agrega un descriptor de archivo subido.
func (uc *UseCase) AppendFile(ctx context.Context, workspaceID string, file entity.UploadedFile) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	s.KnowledgeBase.Files = append(s.KnowledgeBase.Files, file)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdateCallFlow merge parcial de la sección callFlow.
func (uc *UseCase) UpdateCallFlow(ctx context.Context, workspaceID string, p dto.CallFlowPatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	cf := &s.CallFlow
	setString(&cf.Greeting, p.Greeting)
	if p.Purposes != nil {
		cf.Purposes = *p.Purposes
	}
	if p.QualifyingQuestions != nil {
		cf.QualifyingQuestions = append([]string(nil), (*p.QualifyingQuestions)...)
	}
	if p.TransferRules != nil {
		cf.TransferRules = *p.TransferRules
	}
	setString(&cf.FallbackUtterance, p.FallbackUtterance)
	if p.Compliance != nil {
		cf.Compliance = *p.Compliance
	}
	setString(&cf.Tone, p.Tone)
	setString(&cf.PronunciationGuide, p.PronunciationGuide)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

// UpdateReview merge parcial de la sección review.
func (uc *UseCase) UpdateReview(ctx context.Context, workspaceID string, p dto.ReviewPatch) *entity.SetupSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := uc.session(ctx, workspaceID)
	setBool(&s.Review.Enabled, p.Enabled)
	setBool(&s.Review.Launched, p.Launched)
	uc.persist(ctx, workspaceID, s)
	return s.Clone()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
