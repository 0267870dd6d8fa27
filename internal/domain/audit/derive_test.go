package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/recepta-api/internal/domain/audit"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Derive — fase A: tablas de lookup y respaldos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el valor de reserva se deriva del LTV dividido por 3.
func TestDerive_BookingValueDesdeLTV(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{AvgCustomerLifetimeValue: 450})
	assert.Equal(t, 150.0, out.AvgBookingValue,
		"el valor de reserva debe ser LTV/3")
}

// Caso 2: sin LTV el valor de reserva cae al respaldo.
func TestDerive_BookingValueRespaldo(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{})
	assert.Equal(t, 150.0, out.AvgBookingValue,
		"sin LTV debe usarse el respaldo de 150")
}

// Caso 3: tasa de llamadas perdidas = base por tiempo de respuesta + ajuste
// fuera de horario, en ese orden.
func TestDerive_MissedRateBaseMasAjuste(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{
		ResponseTimeToInquiry:  audit.ResponseWithin2Hr,
		AfterHoursCallHandling: audit.AfterHoursVoicemail,
	})
	assert.Equal(t, 50.0, out.AvgMissedCallRate,
		"base 40 ('Within 2 hours') + ajuste 10 ('Goes to voicemail') = 50")
}

// Caso 4: la tasa combinada nunca supera 100 (clamp después del ajuste).
func TestDerive_MissedRateTopeEn100(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{
		ResponseTimeToInquiry:  audit.ResponseOftenMiss,
		AfterHoursCallHandling: audit.AfterHoursWeMissThem,
	})
	// 80 + 20 = 100 exacto; con cualquier combinación mayor se clampa.
	assert.LessOrEqual(t, out.AvgMissedCallRate, 100.0,
		"la tasa de llamadas perdidas no puede superar el 100%")
	assert.Equal(t, 100.0, out.AvgMissedCallRate)
}

// Caso 5: respuestas categóricas desconocidas no tocan la tasa preexistente.
func TestDerive_CategoriaDesconocidaConservaTasa(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{
		ResponseTimeToInquiry: "algo que no existe",
		AvgMissedCallRate:     25,
	})
	assert.Equal(t, 25.0, out.AvgMissedCallRate,
		"una categoría no reconocida no debe pisar la tasa existente")
}

// Caso 6: tasas de seguimiento según el sistema declarado.
func TestDerive_TasasDeSeguimiento(t *testing.T) {
	casos := []struct {
		sistema         string
		current, target float64
	}{
		{audit.FollowUpYes, 70, 90},
		{audit.FollowUpManual, 40, 80},
		{audit.FollowUpNo, 10, 80},
	}
	for _, tc := range casos {
		out := audit.Derive(entity.AuditInputs{AutomatedFollowUpSystem: tc.sistema})
		assert.Equal(t, tc.current, out.FollowUpRate, "tasa actual para %q", tc.sistema)
		assert.Equal(t, tc.target, out.FollowUpTargetRate, "tasa objetivo para %q", tc.sistema)
	}
}

// Caso 7: horas de recepción según el bucket administrativo.
func TestDerive_HorasPorBucket(t *testing.T) {
	casos := map[string]float64{
		"0-5":   20,
		"5-10":  60,
		"10-20": 120,
		"20+":   160,
	}
	for bucket, horas := range casos {
		out := audit.Derive(entity.AuditInputs{AdminPingPongHours: bucket})
		assert.Equal(t, horas, out.ReceptionistMonthlyHours,
			"horas mensuales para el bucket %q", bucket)
	}
}

// Caso 8: llamadas mensuales estimadas = leads × 0.5.
func TestDerive_LlamadasEstimadas(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{AvgMonthlyLeads: 200})
	assert.Equal(t, 100.0, out.EstMonthlyPhoneCalls)
}

// Caso 9: con el registro completamente vacío todos los respaldos quedan
// aplicados y ningún campo queda en cero peligroso.
func TestDerive_RegistroVacioRellenaRespaldos(t *testing.T) {
	out := audit.Derive(entity.AuditInputs{})

	assert.Equal(t, 150.0, out.AvgBookingValue)
	assert.Equal(t, 30.0, out.ReceptionistHourlySalary)
	assert.Equal(t, 70.0, out.AICaptureRate)
	assert.Equal(t, 79.0, out.AISubscriptionCost)
	assert.Equal(t, 160.0, out.ReceptionistMonthlyHours)
	assert.Equal(t, 40.0, out.FollowUpRate)
	assert.Equal(t, 80.0, out.FollowUpTargetRate)
}

// Caso 10: Derive no muta el registro de entrada.
func TestDerive_NoMutaEntrada(t *testing.T) {
	in := entity.AuditInputs{AvgCustomerLifetimeValue: 450}
	_ = audit.Derive(in)
	assert.Equal(t, 0.0, in.AvgBookingValue,
		"Derive debe operar sobre una copia, no sobre el registro original")
}
