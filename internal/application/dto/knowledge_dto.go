package dto

import "github.com/tu-usuario/recepta-api/internal/domain/entity"

// ScrapeFAQsRequest URL del sitio a rastrear en busca de FAQs.
type ScrapeFAQsRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ScrapeFAQsResponse FAQs extraídas y ya fusionadas en la sesión.
type ScrapeFAQsResponse struct {
	FAQs []entity.FAQ `json:"faqs"`
}

// UploadFileResponse descriptor del archivo registrado en la base de conocimiento.
type UploadFileResponse struct {
	File entity.UploadedFile `json:"file"`
}

// LaunchRequest activación del recepcionista.
type LaunchRequest struct {
	Enabled bool `json:"isEnabled"`
}

// LaunchResponse estado tras el intento de lanzamiento.
type LaunchResponse struct {
	Launched bool `json:"launched"`
}

// ContactRequest payload arbitrario del formulario de contacto/oferta.
type ContactRequest map[string]interface{}

// ContactResponse eco del webhook; SpotsLeft solo si el webhook lo reporta.
type ContactResponse struct {
	OK        bool `json:"ok"`
	SpotsLeft *int `json:"spotsLeft,omitempty"`
}
