package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/domain"
	domaudit "github.com/tu-usuario/recepta-api/internal/domain/audit"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// UseCase orquesta el auditor de ingresos: valida pasos, deriva supuestos,
// calcula la proyección y la persiste junto con una copia de las entradas.
type UseCase struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso con el puerto de persistencia.
func NewUseCase(repo repository.AuditRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.Component("audit")}
}

// ValidateStep ejecuta el checklist de campos requeridos del paso. Puro:
// no muta nada; el caller bloquea la navegación si Valid es false.
func (uc *UseCase) ValidateStep(in dto.ValidateStepRequest) dto.ValidateStepResponse {
	missing := domaudit.MissingFields(in.Step, in.Inputs)
	return dto.ValidateStepResponse{Valid: len(missing) == 0, Missing: missing}
}

// Calculate finaliza el auditor: exige que los tres pasos estén completos,
// deriva la fase A, aplica la fase B y persiste el reporte. La proyección se
// calcula una sola vez; el reporte no se muta después.
func (uc *UseCase) Calculate(ctx context.Context, workspaceID string, in dto.CalculateAuditRequest) (*dto.AuditReportResponse, error) {
	for step := domaudit.StepVolume; step <= domaudit.FinalStep; step++ {
		if missing := domaudit.MissingFields(step, in.Inputs); len(missing) > 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	derived := domaudit.Derive(in.Inputs)
	results := domaudit.Calculate(derived)

	report := &entity.AuditReport{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Inputs:      derived,
		Results:     results,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Save(ctx, report); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("workspace_id", workspaceID).
		Str("report_id", report.ID).
		Float64("annual_uplift", results.Totals.AnnualUplift).
		Msg("auditoría calculada")
	return toReportResponse(report), nil
}

// GetByID obtiene un reporte por ID, acotado al workspace del caller: un
// reporte de otro workspace se responde igual que uno inexistente.
func (uc *UseCase) GetByID(ctx context.Context, workspaceID, id string) (*dto.AuditReportResponse, error) {
	report, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil || report.WorkspaceID != workspaceID {
		return nil, nil
	}
	return toReportResponse(report), nil
}

// Latest obtiene el reporte más reciente del workspace.
func (uc *UseCase) Latest(ctx context.Context, workspaceID string) (*dto.AuditReportResponse, error) {
	report, err := uc.repo.GetLatest(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}
	return toReportResponse(report), nil
}

// Report devuelve la entidad completa (para los generadores de PDF/XLSX),
// con el mismo acotamiento por workspace que GetByID.
func (uc *UseCase) Report(ctx context.Context, workspaceID, id string) (*entity.AuditReport, error) {
	report, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil || report.WorkspaceID != workspaceID {
		return nil, nil
	}
	return report, nil
}

func toReportResponse(r *entity.AuditReport) *dto.AuditReportResponse {
	return &dto.AuditReportResponse{
		ID:        r.ID,
		Inputs:    r.Inputs,
		Results:   r.Results,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
