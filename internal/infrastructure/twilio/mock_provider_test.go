package twilio_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/recepta-api/internal/infrastructure/twilio"
)

// ──────────────────────────────────────────────────────────────────────────────
// Proveedor simulado
// ──────────────────────────────────────────────────────────────────────────────

func TestMockSearch_CatalogoFijo(t *testing.T) {
	p := twilio.NewMockProviderWithDelay(0)

	numbers, err := p.Search(context.Background(), "US", "")
	require.NoError(t, err)
	require.Len(t, numbers, 5, "el catálogo simulado tiene cinco números")

	for _, n := range numbers {
		assert.True(t, strings.HasPrefix(n.PhoneNumber, "+1"), "todos los números son US E.164")
		assert.True(t, n.Voice, "todos los números soportan voz")
		assert.NotEmpty(t, n.Locality)
		assert.NotEmpty(t, n.Region)
	}

	// FriendlyName viene ya formateado para la UI.
	assert.Equal(t, "(415) 555-0132", numbers[0].FriendlyName)
}

func TestMockSearch_CapacidadesVariadas(t *testing.T) {
	p := twilio.NewMockProviderWithDelay(0)

	numbers, err := p.Search(context.Background(), "US", "415")
	require.NoError(t, err)

	conMMS := 0
	for _, n := range numbers {
		if n.MMS {
			conMMS++
		}
	}
	assert.Greater(t, conMMS, 0, "algunos números tienen MMS")
	assert.Less(t, conMMS, len(numbers), "pero no todos")
}

func TestMockPurchase_SiempreExitosa(t *testing.T) {
	p := twilio.NewMockProviderWithDelay(0)

	res, err := p.Purchase(context.Background(), "+14155550132")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "+14155550132", res.PhoneNumber)
	assert.True(t, strings.HasPrefix(res.SID, "PN"), "el SID sintético usa el prefijo de Twilio")

	// Cada compra genera un SID distinto.
	otro, err := p.Purchase(context.Background(), "+14155550132")
	require.NoError(t, err)
	assert.NotEqual(t, res.SID, otro.SID)
}

func TestMock_RespetaCancelacion(t *testing.T) {
	p := twilio.NewMockProviderWithDelay(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Search(ctx, "US", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = p.Purchase(ctx, "+14155550132")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formateo y países
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatNumber(t *testing.T) {
	casos := []struct {
		in, want string
	}{
		{"+14155550132", "(415) 555-0132"},
		{"+12125550148", "(212) 555-0148"},
		{"+573001234567", "+573001234567"}, // no NANP: se respeta tal cual
		{"+1415555", "+1415555"},           // longitud inesperada
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, twilio.FormatNumber(c.in), "entrada %q", c.in)
	}
}

func TestCountryNameToCode(t *testing.T) {
	casos := []struct {
		in, want string
	}{
		{"United States", "US"},
		{"Estados Unidos", "US"},
		{"Canadá", "CA"},
		{"méxico", "MX"},
		{"us", "US"},       // código de dos letras: se normaliza
		{" GB ", "GB"},     // con espacios
		{"Atlantis", "US"}, // desconocido: cae a US
	}
	for _, c := range casos {
		assert.Equal(t, c.want, twilio.CountryNameToCode(c.in), "entrada %q", c.in)
	}
}
