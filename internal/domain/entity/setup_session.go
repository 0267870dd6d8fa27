package entity

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// SetupSession estado canónico del asistente de onboarding de un workspace.
// Se divide en siete secciones lógicas; cada una se muta por merge parcial
// desde el caso de uso de setup, nunca por asignación directa desde fuera.
type SetupSession struct {
	Account         AccountSection         `json:"account"`
	BusinessProfile BusinessProfileSection `json:"businessProfile"`
	Calendar        CalendarSection        `json:"calendar"`
	Phone           PhoneSection           `json:"phone"`
	KnowledgeBase   KnowledgeBaseSection   `json:"knowledgeBase"`
	CallFlow        CallFlowSection        `json:"callFlow"`
	Review          ReviewSection          `json:"review"`

	CurrentStep    int   `json:"currentStep"`
	CompletedSteps []int `json:"completedSteps"`
	IsCompleted    bool  `json:"isCompleted"`
}

// AccountSection identidad y credenciales preparadas para el alta de cuenta.
// Password vive solo en memoria: el repositorio la serializa siempre como "".
type AccountSection struct {
	FullName     string `json:"fullName"`
	WorkEmail    string `json:"workEmail"`
	Password     string `json:"password"`
	BusinessName string `json:"businessName"`
	Timezone     string `json:"timezone"`
	WorkspaceID  string `json:"workspaceId"` // asignado por el servidor tras crear la cuenta
	UserID       string `json:"userId"`
}

// DayHours horario de un día de la semana. Si Closed es true, Open/Close se ignoran.
type DayHours struct {
	Open   string `json:"open"`  // HH:MM
	Close  string `json:"close"` // HH:MM
	Closed bool   `json:"closed"`
}

// Días de la semana usados como claves de OpeningHours (siempre presentes los siete).
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// BusinessProfileSection metadatos descriptivos del negocio.
type BusinessProfileSection struct {
	Category     string              `json:"category"`
	Website      string              `json:"website"`
	ServiceAreas []string            `json:"serviceAreas"`
	OpeningHours map[string]DayHours `json:"openingHours"`
	Languages    []string            `json:"languages"` // códigos ISO 639-1
}

// Proveedores de calendario soportados.
const (
	CalendarProviderNone      = "none"
	CalendarProviderGoogle    = "google"
	CalendarProviderMicrosoft = "microsoft"
)

// AppointmentType definición de un tipo de cita agendable.
type AppointmentType struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	BufferMinutes   int    `json:"bufferMinutes"`
	MinNoticeHours  int    `json:"minNoticeHours"`
}

// CalendarSection estado de conexión del calendario externo.
type CalendarSection struct {
	Connected        bool              `json:"connected"`
	Provider         string            `json:"provider"` // ver constantes CalendarProvider*
	AppointmentTypes []AppointmentType `json:"appointmentTypes"`
}

// Acciones fuera de horario y estrategias de timbrado.
const (
	AfterHoursTransfer  = "transfer"
	AfterHoursVoicemail = "voicemail"
	AfterHoursBook      = "book"

	RingSequential = "sequential"
	RingAll        = "all"
)

// PhoneRouting política de enrutamiento de llamadas entrantes.
type PhoneRouting struct {
	RingNumbers      []string `json:"ringNumbers"` // orden de timbrado
	AfterHoursAction string   `json:"afterHoursAction"`
	RingStrategy     string   `json:"ringStrategy"`
	MaxRingSeconds   int      `json:"maxRingSeconds"`
}

// ProvisionedNumber número nuevo comprado al proveedor.
type ProvisionedNumber struct {
	Number string `json:"number"` // formato E.164
	SID    string `json:"sid"`
}

// PhoneSection elección de numeración: número existente o número nuevo provisionado.
// A mitad de flujo ambos pueden estar vacíos; al enviar, exactamente uno es significativo.
type PhoneSection struct {
	UseExistingNumber bool              `json:"useExistingNumber"`
	ExistingNumber    string            `json:"existingNumber"`
	NewNumber         ProvisionedNumber `json:"newNumber"`
	Routing           PhoneRouting      `json:"routing"`
}

// ServiceItem servicio ofrecido por el negocio (precio exacto en decimal).
type ServiceItem struct {
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// FAQ par pregunta/respuesta de la base de conocimiento.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Policies políticas del negocio en texto libre.
type Policies struct {
	Cancellation string `json:"cancellation"`
	Reschedule   string `json:"reschedule"`
	Deposit      string `json:"deposit"`
}

// Estados de indexación de archivos subidos.
const (
	FileStatusPending = "pending"
	FileStatusIndexed = "indexed"
)

// UploadedFile descriptor de un archivo subido a la base de conocimiento.
type UploadedFile struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status string `json:"status"` // pending | indexed
}

// KnowledgeBaseSection contenido que alimenta al recepcionista.
type KnowledgeBaseSection struct {
	Services        []ServiceItem  `json:"services"`
	FAQs            []FAQ          `json:"faqs"`
	Policies        Policies       `json:"policies"`
	IntakeQuestions []string       `json:"intakeQuestions"`
	Files           []UploadedFile `json:"files"`
}

// PurposeFlags propósitos de llamada que el recepcionista debe detectar.
type PurposeFlags struct {
	Booking    bool `json:"booking"`
	Reschedule bool `json:"reschedule"`
	FAQ        bool `json:"faq"`
	Complaint  bool `json:"complaint"`
	Sales      bool `json:"sales"`
}

// TransferRules descripciones libres de cuándo transferir a un humano.
type TransferRules struct {
	WhenAsksHuman string `json:"whenAsksHuman"`
	WhenEmergency string `json:"whenEmergency"`
	WhenComplex   string `json:"whenComplex"`
}

// ComplianceDisclosure aviso legal de grabación/IA al inicio de la llamada.
type ComplianceDisclosure struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

// Tonos de voz disponibles.
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneCasual       = "casual"
	ToneFormal       = "formal"
)

// CallFlowSection comportamiento conversacional del recepcionista.
type CallFlowSection struct {
	Greeting            string               `json:"greeting"`
	Purposes            PurposeFlags         `json:"purposes"`
	QualifyingQuestions []string             `json:"qualifyingQuestions"`
	TransferRules       TransferRules        `json:"transferRules"`
	FallbackUtterance   string               `json:"fallbackUtterance"`
	Compliance          ComplianceDisclosure `json:"compliance"`
	Tone                string               `json:"tone"` // ver constantes Tone*
	PronunciationGuide  string               `json:"pronunciationGuide"`
}

// ReviewSection estado del paso final de revisión y lanzamiento.
type ReviewSection struct {
	Enabled  bool `json:"enabled"`  // el operador optó por salir en vivo
	Launched bool `json:"launched"` // la acción de lanzamiento terminó con éxito
}

// DefaultSetupSession crea una sesión con todos los valores por defecto documentados.
// Nunca hay estados parciales: las siete secciones quedan pobladas desde el inicio,
// con los siete días presentes en OpeningHours.
func DefaultSetupSession() *SetupSession {
	return &SetupSession{
		Account: AccountSection{
			Timezone: "America/Bogota",
		},
		BusinessProfile: BusinessProfileSection{
			ServiceAreas: []string{},
			OpeningHours: map[string]DayHours{
				"monday":    {Open: "09:00", Close: "18:00"},
				"tuesday":   {Open: "09:00", Close: "18:00"},
				"wednesday": {Open: "09:00", Close: "18:00"},
				"thursday":  {Open: "09:00", Close: "18:00"},
				"friday":    {Open: "09:00", Close: "18:00"},
				"saturday":  {Closed: true},
				"sunday":    {Closed: true},
			},
			Languages: []string{"es"},
		},
		Calendar: CalendarSection{
			Provider:         CalendarProviderNone,
			AppointmentTypes: []AppointmentType{},
		},
		Phone: PhoneSection{
			Routing: PhoneRouting{
				RingNumbers:      []string{},
				AfterHoursAction: AfterHoursVoicemail,
				RingStrategy:     RingSequential,
				MaxRingSeconds:   25,
			},
		},
		KnowledgeBase: KnowledgeBaseSection{
			Services:        []ServiceItem{},
			FAQs:            []FAQ{},
			IntakeQuestions: []string{},
			Files:           []UploadedFile{},
		},
		CallFlow: CallFlowSection{
			Greeting:            "¡Hola! Gracias por llamar. ¿En qué puedo ayudarte hoy?",
			Purposes:            PurposeFlags{Booking: true, Reschedule: true, FAQ: true},
			QualifyingQuestions: []string{},
			FallbackUtterance:   "Disculpa, no entendí bien. ¿Podrías repetirlo?",
			Tone:                ToneProfessional,
		},
		CurrentStep:    1,
		CompletedSteps: []int{},
	}
}

// Clone devuelve una copia profunda de la sesión. Los lectores reciben siempre
// un snapshot para que no puedan mutar el estado canónico.
func (s *SetupSession) Clone() *SetupSession {
	c := *s

	c.CompletedSteps = slices.Clone(s.CompletedSteps)

	c.BusinessProfile.ServiceAreas = slices.Clone(s.BusinessProfile.ServiceAreas)
	c.BusinessProfile.Languages = slices.Clone(s.BusinessProfile.Languages)
	c.BusinessProfile.OpeningHours = maps.Clone(s.BusinessProfile.OpeningHours)

	c.Calendar.AppointmentTypes = slices.Clone(s.Calendar.AppointmentTypes)
	c.Phone.Routing.RingNumbers = slices.Clone(s.Phone.Routing.RingNumbers)

	c.KnowledgeBase.Services = slices.Clone(s.KnowledgeBase.Services)
	c.KnowledgeBase.FAQs = slices.Clone(s.KnowledgeBase.FAQs)
	c.KnowledgeBase.IntakeQuestions = slices.Clone(s.KnowledgeBase.IntakeQuestions)
	c.KnowledgeBase.Files = slices.Clone(s.KnowledgeBase.Files)

	c.CallFlow.QualifyingQuestions = slices.Clone(s.CallFlow.QualifyingQuestions)

	return &c
}

// Sanitized devuelve una copia lista para persistir: idéntica a la sesión en
// memoria salvo que la contraseña queda siempre en blanco.
func (s *SetupSession) Sanitized() *SetupSession {
	c := s.Clone()
	c.Account.Password = ""
	return c
}

// MarkStepCompleted agrega el paso al conjunto de completados (semántica de set:
// los duplicados colapsan, el orden es irrelevante).
func (s *SetupSession) MarkStepCompleted(step int) {
	for _, n := range s.CompletedSteps {
		if n == step {
			return
		}
	}
	s.CompletedSteps = append(s.CompletedSteps, step)
}
