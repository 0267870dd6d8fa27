// Package audit implementa el auditor de ingresos: la proyección financiera
// que estima cuánto dinero recupera un negocio al contratar el recepcionista AI.
//
// El cálculo va en dos fases:
//
//	Fase A (Derive)    — deriva los supuestos internos a partir de las
//	                     respuestas categóricas, vía tablas de lookup.
//	Fase B (Calculate) — aplica el conjunto fijo de fórmulas sobre el
//	                     registro ya derivado.
//
// Ambas fases son puras: sin I/O, sin estado, siempre devuelven resultado.
package audit

import "github.com/tu-usuario/recepta-api/internal/domain/entity"

// Valores de respuesta categóricos reconocidos por las tablas de derivación.
const (
	ResponseUnder5Min   = "Under 5 minutes"
	ResponseWithin30Min = "Within 30 minutes"
	ResponseWithin2Hr   = "Within 2 hours"
	ResponseNextDay     = "Next business day"
	ResponseOftenMiss   = "We often miss them"

	AfterHoursWeMissThem = "We miss them"
	AfterHoursVoicemail  = "Goes to voicemail"

	FollowUpYes    = "Yes"
	FollowUpManual = "We try to follow up manually"
	FollowUpNo     = "No"
)

// Constantes de respaldo cuando un campo numérico viene en cero o sin definir.
// Evitan divisiones por cero y NaN en la fase B.
const (
	fallbackBookingValue  = 150.0
	fallbackHourlySalary  = 30.0
	fallbackCaptureRate   = 70.0 // porcentaje
	fallbackSubscription  = 79.0
	fallbackMonthlyHours  = 160.0
	fallbackFollowUpRate  = 40.0
	fallbackFollowUpGoal  = 80.0
	callsPerLeadRatio     = 0.5 // llamadas telefónicas estimadas por lead
	bookingValueLTVFactor = 3.0 // valor de reserva = LTV / 3
)

// baseMissedCallRate tasa base de llamadas perdidas (porcentaje) según el
// tiempo de respuesta declarado. Tabla de datos, no cadena de condicionales:
// agregar una categoría nueva es un cambio de datos.
var baseMissedCallRate = map[string]float64{
	ResponseUnder5Min:   5,
	ResponseWithin30Min: 15,
	ResponseWithin2Hr:   40,
	ResponseNextDay:     60,
	ResponseOftenMiss:   80,
}

// afterHoursAdjustment puntos porcentuales que se suman a la tasa base según
// el manejo de llamadas fuera de horario.
var afterHoursAdjustment = map[string]float64{
	AfterHoursWeMissThem: 20,
	AfterHoursVoicemail:  10,
}

// followUpRates tasa actual y tasa objetivo de seguimiento (porcentajes)
// según el sistema de seguimiento declarado.
var followUpRates = map[string]struct{ Current, Target float64 }{
	FollowUpYes:    {Current: 70, Target: 90},
	FollowUpManual: {Current: 40, Target: 80},
	FollowUpNo:     {Current: 10, Target: 80},
}

// receptionistHoursByBucket horas mensuales de recepción según el bucket de
// horas administrativas declarado.
var receptionistHoursByBucket = map[string]float64{
	"0-5":   20,
	"5-10":  60,
	"10-20": 120,
	"20+":   160,
}

// Derive aplica la fase A: recalcula los campos derivados del registro a
// partir de las respuestas categóricas y rellena los respaldos documentados.
// Devuelve una copia; el registro de entrada no se muta.
//
// El orden de la tasa de llamadas perdidas se preserva exactamente:
// base, luego ajuste aditivo, luego clamp a 100. No se clampa la base antes
// del ajuste.
func Derive(in entity.AuditInputs) entity.AuditInputs {
	out := in

	// Valor promedio de reserva a partir del LTV
	if in.AvgCustomerLifetimeValue > 0 {
		out.AvgBookingValue = in.AvgCustomerLifetimeValue / bookingValueLTVFactor
	}
	if out.AvgBookingValue <= 0 {
		out.AvgBookingValue = fallbackBookingValue
	}

	// Tasa de llamadas perdidas: base + ajuste fuera de horario, con tope en 100
	rate := baseMissedCallRate[in.ResponseTimeToInquiry]
	rate += afterHoursAdjustment[in.AfterHoursCallHandling]
	if rate > 100 {
		rate = 100
	}
	if rate > 0 {
		out.AvgMissedCallRate = rate
	}

	// Tasas de seguimiento
	if fu, ok := followUpRates[in.AutomatedFollowUpSystem]; ok {
		out.FollowUpRate = fu.Current
		out.FollowUpTargetRate = fu.Target
	} else {
		// Sin respuesta: conservar lo existente o aplicar el default 40/80
		if out.FollowUpRate <= 0 {
			out.FollowUpRate = fallbackFollowUpRate
		}
		if out.FollowUpTargetRate <= 0 {
			out.FollowUpTargetRate = fallbackFollowUpGoal
		}
	}

	// Horas mensuales de recepción según bucket administrativo
	if hours, ok := receptionistHoursByBucket[in.AdminPingPongHours]; ok {
		out.ReceptionistMonthlyHours = hours
	} else if out.ReceptionistMonthlyHours <= 0 {
		out.ReceptionistMonthlyHours = fallbackMonthlyHours
	}

	// Llamadas telefónicas mensuales estimadas
	out.EstMonthlyPhoneCalls = in.AvgMonthlyLeads * callsPerLeadRatio

	// Respaldos para el resto de campos numéricos
	if out.ReceptionistHourlySalary <= 0 {
		out.ReceptionistHourlySalary = fallbackHourlySalary
	}
	if out.AICaptureRate <= 0 {
		out.AICaptureRate = fallbackCaptureRate
	}
	if out.AISubscriptionCost <= 0 {
		out.AISubscriptionCost = fallbackSubscription
	}

	return out
}
