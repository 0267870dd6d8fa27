package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// Patches de sección para el merge parcial: un campo nil no se toca, un campo
// presente reemplaza el valor de la sesión. Los objetos anidados (routing,
// transferRules, compliance...) se reemplazan completos, nunca se hace deep-merge:
// quien quiera cambiar un campo anidado debe leer-modificar-escribir el objeto.

// AccountPatch merge parcial sobre la sección account.
type AccountPatch struct {
	FullName     *string `json:"fullName"`
	WorkEmail    *string `json:"workEmail"`
	Password     *string `json:"password"`
	BusinessName *string `json:"businessName"`
	Timezone     *string `json:"timezone"`
	WorkspaceID  *string `json:"workspaceId"`
	UserID       *string `json:"userId"`
}

// BusinessProfilePatch merge parcial sobre la sección businessProfile.
// OpeningHours patchea por día: solo los días presentes en el mapa cambian.
type BusinessProfilePatch struct {
	Category     *string                    `json:"category"`
	Website      *string                    `json:"website"`
	ServiceAreas *[]string                  `json:"serviceAreas"`
	OpeningHours map[string]entity.DayHours `json:"openingHours"`
	Languages    *[]string                  `json:"languages"`
}

// CalendarPatch merge parcial sobre la sección calendar.
type CalendarPatch struct {
	Connected        *bool                     `json:"connected"`
	Provider         *string                   `json:"provider"`
	AppointmentTypes *[]entity.AppointmentType `json:"appointmentTypes"`
}

// PhonePatch merge parcial sobre la sección phone.
type PhonePatch struct {
	UseExistingNumber *bool                     `json:"useExistingNumber"`
	ExistingNumber    *string                   `json:"existingNumber"`
	NewNumber         *entity.ProvisionedNumber `json:"newNumber"`
	Routing           *entity.PhoneRouting      `json:"routing"`
}

// ServiceItemInput servicio con el precio como string decimal ("45.00").
type ServiceItemInput struct {
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// KnowledgeBasePatch merge parcial sobre la sección knowledgeBase.
type KnowledgeBasePatch struct {
	Services        *[]ServiceItemInput    `json:"services"`
	FAQs            *[]entity.FAQ          `json:"faqs"`
	Policies        *entity.Policies       `json:"policies"`
	IntakeQuestions *[]string              `json:"intakeQuestions"`
	Files           *[]entity.UploadedFile `json:"files"`
}

// CallFlowPatch merge parcial sobre la sección callFlow.
type CallFlowPatch struct {
	Greeting            *string                      `json:"greeting"`
	Purposes            *entity.PurposeFlags         `json:"purposes"`
	QualifyingQuestions *[]string                    `json:"qualifyingQuestions"`
	TransferRules       *entity.TransferRules        `json:"transferRules"`
	FallbackUtterance   *string                      `json:"fallbackUtterance"`
	Compliance          *entity.ComplianceDisclosure `json:"compliance"`
	Tone                *string                      `json:"tone"`
	PronunciationGuide  *string                      `json:"pronunciationGuide"`
}

// ReviewPatch merge parcial sobre la sección review.
type ReviewPatch struct {
	Enabled  *bool `json:"enabled"`
	Launched *bool `json:"launched"`
}

// UpdateStepRequest cambio del paso activo del asistente.
type UpdateStepRequest struct {
	Step int `json:"step" validate:"required,min=1"`
}

// SessionResponse snapshot completo de la sesión para las pantallas de
// revisión/preview. La password siempre viaja en blanco hacia afuera.
type SessionResponse struct {
	Session *entity.SetupSession `json:"session"`
}
