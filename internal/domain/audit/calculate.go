package audit

import (
	"math"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// Supuestos fijos de la proyección, expuestos en los resultados.
const (
	// FollowUpUpliftPct fracción de mejora de conversión por seguimiento automatizado.
	FollowUpUpliftPct = 0.3
	// StaffingReductionPct fracción de horas de recepción que el AI absorbe.
	StaffingReductionPct = 0.5

	// Componentes de horas ahorradas
	hoursPerAICall        = 0.067 // ~4 min por llamada atendida por el AI
	hoursPerManualFollow  = 0.033 // ~2 min por lead perseguido a mano
	reminderHoursFraction = 0.10  // recordatorios automatizados
	aiCallRateCapPct      = 30.0  // tope de tasa usado para horas de llamadas AI
)

// Calculate aplica la fase B sobre un registro ya derivado (ver Derive) y
// produce la proyección completa. Nunca falla: con los respaldos de la fase A
// no hay divisiones por cero ni NaN posibles.
//
// Redondeo: todos los montos y conteos a entero; PaybackMonths a un decimal,
// y 0 cuando el uplift anual no es positivo.
func Calculate(in entity.AuditInputs) entity.AuditResults {
	bookingRate := in.AvgLeadToBookingRate / 100
	missedRate := in.AvgMissedCallRate / 100
	captureRate := in.AICaptureRate / 100
	followUpRate := in.FollowUpRate / 100
	followUpTarget := in.FollowUpTargetRate / 100

	// Línea base
	bookingsPerMonth := in.AvgMonthlyLeads * bookingRate
	monthlyRevenue := bookingsPerMonth * in.AvgBookingValue

	// Recuperación de llamadas perdidas
	missedLeads := in.AvgMonthlyLeads * missedRate
	recoveredLeads := missedLeads * captureRate
	recoveredBookings := recoveredLeads * bookingRate
	recoveredRevenue := recoveredBookings * in.AvgBookingValue

	// Mejora por seguimiento automatizado
	addedBookings := in.AvgMonthlyLeads * followUpTarget * (bookingRate * FollowUpUpliftPct)
	addedRevenue := addedBookings * in.AvgBookingValue

	// Ahorro de personal
	staffingHoursSaved := in.ReceptionistMonthlyHours * StaffingReductionPct
	staffingSavings := in.ReceptionistHourlySalary * staffingHoursSaved

	// Horas ahorradas: cuatro componentes aditivos
	aiCallRate := math.Min(missedRate, aiCallRateCapPct/100)
	aiCallHours := in.EstMonthlyPhoneCalls * aiCallRate * hoursPerAICall
	var manualFollowUpHours float64
	if in.AutomatedFollowUpSystem == FollowUpNo || in.AutomatedFollowUpSystem == FollowUpManual {
		manualFollowUpHours = in.AvgMonthlyLeads * (1 - followUpRate) * hoursPerManualFollow
	}
	reminderHours := in.ReceptionistMonthlyHours * reminderHoursFraction
	hoursSaved := staffingHoursSaved + aiCallHours + manualFollowUpHours + reminderHours

	// Totales
	monthlyUplift := recoveredRevenue + addedRevenue + staffingSavings
	monthlyNetGain := monthlyUplift - in.AISubscriptionCost + in.CurrentToolSpend
	annualUplift := monthlyNetGain * 12

	var paybackMonths float64
	if annualUplift > 0 {
		paybackMonths = round1(in.AISubscriptionCost * 12 / annualUplift)
	}

	return entity.AuditResults{
		Baseline: entity.AuditBaseline{
			BookingsPerMonth: math.Round(bookingsPerMonth),
			MonthlyRevenue:   math.Round(monthlyRevenue),
		},
		Recovery: entity.AuditRecovery{
			MissedLeads:       math.Round(missedLeads),
			RecoveredLeads:    math.Round(recoveredLeads),
			RecoveredBookings: math.Round(recoveredBookings),
			RecoveredRevenue:  math.Round(recoveredRevenue),
		},
		FollowUp: entity.AuditFollowUp{
			AddedBookings: math.Round(addedBookings),
			AddedRevenue:  math.Round(addedRevenue),
		},
		Savings: entity.AuditSavings{
			StaffingSavings: math.Round(staffingSavings),
		},
		Totals: entity.AuditTotals{
			MonthlyUplift:     math.Round(monthlyUplift),
			MonthlyNetGain:    math.Round(monthlyNetGain),
			AnnualUplift:      math.Round(annualUplift),
			PaybackMonths:     paybackMonths,
			MonthlyHoursSaved: math.Round(hoursSaved),
		},
		Assumptions: entity.AuditAssumptions{
			AICaptureRate:        in.AICaptureRate,
			FollowUpUpliftPct:    FollowUpUpliftPct,
			StaffingReductionPct: StaffingReductionPct,
		},
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
