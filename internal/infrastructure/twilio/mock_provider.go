package twilio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/recepta-api/internal/application/ports"
)

// Verificar en tiempo de compilación que MockProvider implementa PhoneProvider.
var _ ports.PhoneProvider = (*MockProvider)(nil)

// mockDelay latencia simulada por llamada para que el flujo del asistente
// se comporte igual que con el proveedor real.
const mockDelay = 1200 * time.Millisecond

// MockProvider implementación simulada de PhoneProvider para entornos sin
// credenciales de Twilio. Devuelve un catálogo fijo de números US y compra
// siempre con éxito, generando un SID sintético por llamada.
type MockProvider struct {
	delay time.Duration
}

// NewMockProvider construye el proveedor simulado con la latencia por defecto.
func NewMockProvider() *MockProvider {
	return &MockProvider{delay: mockDelay}
}

// NewMockProviderWithDelay permite ajustar la latencia simulada (tests).
func NewMockProviderWithDelay(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay}
}

// cannedNumbers catálogo fijo de números disponibles del proveedor simulado.
var cannedNumbers = []ports.AvailableNumber{
	{PhoneNumber: "+14155550132", Locality: "San Francisco", Region: "CA", Voice: true, SMS: true, MMS: true},
	{PhoneNumber: "+14155550176", Locality: "San Francisco", Region: "CA", Voice: true, SMS: true, MMS: false},
	{PhoneNumber: "+12125550148", Locality: "New York", Region: "NY", Voice: true, SMS: true, MMS: true},
	{PhoneNumber: "+13055550119", Locality: "Miami", Region: "FL", Voice: true, SMS: true, MMS: true},
	{PhoneNumber: "+17375550163", Locality: "Austin", Region: "TX", Voice: true, SMS: false, MMS: false},
}

// Search devuelve el catálogo enlatado tras la latencia simulada.
// country y areaCode se ignoran salvo para respetar la cancelación del contexto.
func (p *MockProvider) Search(ctx context.Context, country, areaCode string) ([]ports.AvailableNumber, error) {
	if err := p.sleep(ctx); err != nil {
		return nil, err
	}
	numbers := make([]ports.AvailableNumber, len(cannedNumbers))
	copy(numbers, cannedNumbers)
	for i := range numbers {
		numbers[i].FriendlyName = FormatNumber(numbers[i].PhoneNumber)
	}
	return numbers, nil
}

// Purchase simula la compra: siempre exitosa, con SID sintético.
func (p *MockProvider) Purchase(ctx context.Context, phoneNumber string) (*ports.PurchaseResult, error) {
	if err := p.sleep(ctx); err != nil {
		return nil, err
	}
	return &ports.PurchaseResult{
		Success:     true,
		SID:         "PN" + uuid.NewString(),
		PhoneNumber: phoneNumber,
	}, nil
}

// sleep espera la latencia simulada respetando la cancelación del contexto.
func (p *MockProvider) sleep(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("proveedor simulado: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
