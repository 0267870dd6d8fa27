package dto

// AvailableNumberResponse número disponible para compra.
type AvailableNumberResponse struct {
	PhoneNumber  string             `json:"phoneNumber"`
	FriendlyName string             `json:"friendlyName"`
	Locality     string             `json:"locality"`
	Region       string             `json:"region"`
	Capabilities NumberCapabilities `json:"capabilities"`
}

// NumberCapabilities capacidades de un número.
type NumberCapabilities struct {
	Voice bool `json:"voice"`
	SMS   bool `json:"sms"`
	MMS   bool `json:"mms"`
}

// SearchNumbersResponse listado de búsqueda.
type SearchNumbersResponse struct {
	Numbers []AvailableNumberResponse `json:"numbers"`
}

// PurchaseNumberRequest compra de un número concreto.
type PurchaseNumberRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// PurchaseNumberResponse resultado de la compra.
type PurchaseNumberResponse struct {
	Success     bool   `json:"success"`
	SID         string `json:"sid,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
}
