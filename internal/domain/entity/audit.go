package entity

import "time"

// AuditInputs registro plano de entradas del auditor de ingresos.
// Mezcla respuestas directas del operador (categóricas y numéricas) con campos
// derivados que se recalculan a partir de las categóricas en lugar de preguntarse.
type AuditInputs struct {
	// Paso 1: volumen y conversión
	BusinessName          string  `json:"businessName"`
	Industry              string  `json:"industry"`
	AvgMonthlyLeads       float64 `json:"avgMonthlyLeads"`
	AvgLeadToBookingRate  float64 `json:"avgLeadToBookingRate"` // porcentaje 0-100
	ResponseTimeToInquiry string  `json:"responseTimeToInquiry"`

	// Paso 2: valor del cliente y manejo de llamadas
	AvgCustomerLifetimeValue float64 `json:"avgCustomerLifetimeValue"`
	AfterHoursCallHandling   string  `json:"afterHoursCallHandling"`
	AutomatedFollowUpSystem  string  `json:"automatedFollowUpSystem"`

	// Paso 3: carga administrativa y gasto actual
	AdminPingPongHours string  `json:"adminPingPongHours"` // bucket: 0-5, 5-10, 10-20, 20+
	CurrentToolSpend   float64 `json:"currentToolSpend"`
	ContactName        string  `json:"contactName"`
	ContactEmail       string  `json:"contactEmail"`

	// Derivados (recalculados en la fase A; nunca se piden directamente)
	AvgBookingValue          float64 `json:"avgBookingValue"`
	EstMonthlyPhoneCalls     float64 `json:"estMonthlyPhoneCalls"`
	AvgMissedCallRate        float64 `json:"avgMissedCallRate"` // porcentaje 0-100
	FollowUpRate             float64 `json:"followUpRate"`
	FollowUpTargetRate       float64 `json:"followUpTargetRate"`
	ReceptionistHourlySalary float64 `json:"receptionistHourlySalary"`
	ReceptionistMonthlyHours float64 `json:"receptionistMonthlyHours"`
	AISubscriptionCost       float64 `json:"aiSubscriptionCost"`
	AICaptureRate            float64 `json:"aiCaptureRate"` // porcentaje 0-100
}

// AuditBaseline situación actual del negocio sin el recepcionista AI.
type AuditBaseline struct {
	BookingsPerMonth float64 `json:"bookingsPerMonth"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
}

// AuditRecovery leads perdidos que el recepcionista recupera.
type AuditRecovery struct {
	MissedLeads       float64 `json:"missedLeads"`
	RecoveredLeads    float64 `json:"recoveredLeads"`
	RecoveredBookings float64 `json:"recoveredBookings"`
	RecoveredRevenue  float64 `json:"recoveredRevenue"`
}

// AuditFollowUp mejora por seguimiento automatizado.
type AuditFollowUp struct {
	AddedBookings float64 `json:"addedBookings"`
	AddedRevenue  float64 `json:"addedRevenue"`
}

// AuditSavings ahorro por reducción de horas de recepción.
type AuditSavings struct {
	StaffingSavings float64 `json:"staffingSavings"`
}

// AuditTotals totales mensuales/anuales de la proyección.
type AuditTotals struct {
	MonthlyUplift     float64 `json:"monthlyUplift"`  // bruto: recuperado + seguimiento + ahorro
	MonthlyNetGain    float64 `json:"monthlyNetGain"` // bruto − suscripción AI + gasto actual en herramientas
	AnnualUplift      float64 `json:"annualUplift"`
	PaybackMonths     float64 `json:"paybackMonths"` // 0 si el uplift anual no es positivo
	MonthlyHoursSaved float64 `json:"monthlyHoursSaved"`
}

// AuditAssumptions constantes de supuestos usadas en el cálculo, expuestas al usuario.
type AuditAssumptions struct {
	AICaptureRate        float64 `json:"aiCaptureRate"`        // porcentaje 0-100
	FollowUpUpliftPct    float64 `json:"followUpUpliftPct"`    // fracción (0.3)
	StaffingReductionPct float64 `json:"staffingReductionPct"` // fracción (0.5)
}

// AuditResults proyección financiera completa. Inmutable una vez calculada.
// Todas las salidas monetarias y de conteo van redondeadas a entero,
// salvo PaybackMonths que conserva un decimal.
type AuditResults struct {
	Baseline    AuditBaseline    `json:"baseline"`
	Recovery    AuditRecovery    `json:"recovery"`
	FollowUp    AuditFollowUp    `json:"followUp"`
	Savings     AuditSavings     `json:"savings"`
	Totals      AuditTotals      `json:"totals"`
	Assumptions AuditAssumptions `json:"assumptions"`
}

// AuditReport inputs + results persistidos juntos para la pantalla de resultados.
type AuditReport struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspaceId"`
	Inputs      AuditInputs  `json:"inputs"`
	Results     AuditResults `json:"results"`
	CreatedAt   time.Time    `json:"createdAt"`
}
