package dto

import "github.com/tu-usuario/recepta-api/internal/domain/entity"

// ValidateStepRequest entradas acumuladas + paso desde el que se quiere avanzar.
type ValidateStepRequest struct {
	Step   int                `json:"step" validate:"required,min=1,max=3"`
	Inputs entity.AuditInputs `json:"inputs"`
}

// ValidateStepResponse resultado del predicado de validación.
type ValidateStepResponse struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}

// CalculateAuditRequest entradas finalizadas del auditor.
type CalculateAuditRequest struct {
	Inputs entity.AuditInputs `json:"inputs"`
}

// AuditReportResponse reporte persistido: entradas derivadas + resultados.
type AuditReportResponse struct {
	ID        string              `json:"id"`
	Inputs    entity.AuditInputs  `json:"inputs"`
	Results   entity.AuditResults `json:"results"`
	CreatedAt string              `json:"createdAt"`
}
