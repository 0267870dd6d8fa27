package audit

import "github.com/tu-usuario/recepta-api/internal/domain/entity"

// Pasos de recolección de entradas del auditor.
const (
	StepVolume = 1 // volumen de leads y conversión
	StepValue  = 2 // valor del cliente y manejo de llamadas
	StepAdmin  = 3 // carga administrativa y contacto

	FinalStep = StepAdmin
)

// MissingFields devuelve los nombres de los campos requeridos que faltan para
// avanzar desde el paso indicado. Predicado puro: no muta nada; avanzar se
// rechaza si la lista no viene vacía.
func MissingFields(step int, in entity.AuditInputs) []string {
	var missing []string
	switch step {
	case StepVolume:
		if in.BusinessName == "" {
			missing = append(missing, "businessName")
		}
		if in.AvgMonthlyLeads <= 0 {
			missing = append(missing, "avgMonthlyLeads")
		}
		if in.AvgLeadToBookingRate <= 0 {
			missing = append(missing, "avgLeadToBookingRate")
		}
		if in.ResponseTimeToInquiry == "" {
			missing = append(missing, "responseTimeToInquiry")
		}
	case StepValue:
		if in.AvgCustomerLifetimeValue <= 0 {
			missing = append(missing, "avgCustomerLifetimeValue")
		}
		if in.AfterHoursCallHandling == "" {
			missing = append(missing, "afterHoursCallHandling")
		}
		if in.AutomatedFollowUpSystem == "" {
			missing = append(missing, "automatedFollowUpSystem")
		}
	case StepAdmin:
		if in.AdminPingPongHours == "" {
			missing = append(missing, "adminPingPongHours")
		}
		if in.ContactEmail == "" {
			missing = append(missing, "contactEmail")
		}
	}
	return missing
}
