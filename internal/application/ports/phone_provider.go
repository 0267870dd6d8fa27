package ports

import "context"

// AvailableNumber número telefónico disponible según el proveedor.
type AvailableNumber struct {
	PhoneNumber  string // E.164
	FriendlyName string
	Locality     string
	Region       string
	Voice        bool
	SMS          bool
	MMS          bool
}

// PurchaseResult resultado de la compra de un número.
type PurchaseResult struct {
	Success     bool
	SID         string
	PhoneNumber string
}

// PhoneProvider puerto del proveedor de numeración telefónica.
// Dos implementaciones en infrastructure/twilio: la real contra la API REST y
// la simulada con números enlatados; se elige una al construir la aplicación,
// nunca por branch en runtime sobre la presencia de credenciales.
type PhoneProvider interface {
	Search(ctx context.Context, country, areaCode string) ([]AvailableNumber, error)
	Purchase(ctx context.Context, phoneNumber string) (*PurchaseResult, error)
}
