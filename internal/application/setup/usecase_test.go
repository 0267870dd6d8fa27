package setup_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testWorkspace = "00000000-0000-0000-0000-0000000000ws"

// fakeSessionRepo repositorio en memoria que captura exactamente lo que el
// caso de uso intenta persistir, para poder inspeccionar el registro escrito.
type fakeSessionRepo struct {
	mu       sync.Mutex
	saved    map[string]*entity.SetupSession
	failSave bool
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

func newFakeRepo() *fakeSessionRepo {
	return &fakeSessionRepo{saved: make(map[string]*entity.SetupSession)}
}

func (r *fakeSessionRepo) Save(_ context.Context, workspaceID string, s *entity.SetupSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("base de datos caída")
	}
	r.saved[workspaceID] = s
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, workspaceID string) (*entity.SetupSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[workspaceID], nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, workspaceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saved, workspaceID)
	return nil
}

func (r *fakeSessionRepo) lastSaved(workspaceID string) *entity.SetupSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[workspaceID]
}

func newUC(repo repository.SessionRepository) *setup.UseCase {
	return setup.NewUseCase(repo, logger.Nop())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// Defaults y snapshots
// ──────────────────────────────────────────────────────────────────────────────

// La primera lectura de un workspace desconocido entrega los defaults
// completos: siete secciones pobladas, siete días en openingHours, paso 1.
func TestGet_WorkspaceNuevoEntregaDefaults(t *testing.T) {
	uc := newUC(newFakeRepo())
	s := uc.Get(context.Background(), testWorkspace)

	assert.Equal(t, 1, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.False(t, s.IsCompleted)
	assert.Len(t, s.BusinessProfile.OpeningHours, 7,
		"los siete días deben estar presentes desde el inicio")
	assert.True(t, s.BusinessProfile.OpeningHours["saturday"].Closed)
	assert.Equal(t, []string{"es"}, s.BusinessProfile.Languages)
	assert.Equal(t, entity.ToneProfessional, s.CallFlow.Tone)
	assert.Equal(t, 25, s.Phone.Routing.MaxRingSeconds)
}

// Los snapshots son copias: mutar lo devuelto no toca el estado canónico.
func TestGet_SnapshotEsCopia(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	snap := uc.Get(ctx, testWorkspace)
	snap.BusinessProfile.OpeningHours["monday"] = entity.DayHours{Closed: true}
	snap.CallFlow.Greeting = "mutado desde fuera"

	fresh := uc.Get(ctx, testWorkspace)
	assert.False(t, fresh.BusinessProfile.OpeningHours["monday"].Closed,
		"mutar el snapshot no debe afectar la sesión canónica")
	assert.NotEqual(t, "mutado desde fuera", fresh.CallFlow.Greeting)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge parcial
// ──────────────────────────────────────────────────────────────────────────────

// Propiedad central del merge: los campos presentes cambian, los hermanos y
// las demás secciones quedan idénticos.
func TestUpdateAccount_MergeParcialNoTocaHermanos(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	uc.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{
		FullName:  strPtr("Ana Gómez"),
		WorkEmail: strPtr("ana@clinica.co"),
	})
	s := uc.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{
		BusinessName: strPtr("Clínica Sonrisa"),
	})

	assert.Equal(t, "Ana Gómez", s.Account.FullName,
		"el segundo patch no debe pisar campos que no trae")
	assert.Equal(t, "ana@clinica.co", s.Account.WorkEmail)
	assert.Equal(t, "Clínica Sonrisa", s.Account.BusinessName)
	assert.Equal(t, "America/Bogota", s.Account.Timezone, "el default se conserva")
}

// Aplicar el mismo patch dos veces deja el mismo estado (seguro desde
// closures obsoletos).
func TestUpdateBusinessProfile_MergeIdempotente(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()
	patch := dto.BusinessProfilePatch{
		Category: strPtr("dental"),
		OpeningHours: map[string]entity.DayHours{
			"monday": {Open: "08:00", Close: "14:00"},
		},
	}

	first := uc.UpdateBusinessProfile(ctx, testWorkspace, patch)
	second := uc.UpdateBusinessProfile(ctx, testWorkspace, patch)

	assert.Equal(t, first, second, "el mismo patch aplicado dos veces no cambia nada")
}

// OpeningHours patchea día a día: cambiar el lunes no toca el resto y los
// siete días siguen presentes.
func TestUpdateBusinessProfile_OpeningHoursPorDia(t *testing.T) {
	uc := newUC(newFakeRepo())
	s := uc.UpdateBusinessProfile(context.Background(), testWorkspace, dto.BusinessProfilePatch{
		OpeningHours: map[string]entity.DayHours{
			"monday": {Open: "07:00", Close: "12:00"},
			// un día inexistente se ignora sin romper la invariante de 7 claves
			"someday": {Open: "00:00", Close: "01:00"},
		},
	})

	require.Len(t, s.BusinessProfile.OpeningHours, 7)
	assert.Equal(t, "07:00", s.BusinessProfile.OpeningHours["monday"].Open)
	assert.Equal(t, "09:00", s.BusinessProfile.OpeningHours["tuesday"].Open,
		"los días no incluidos en el patch no cambian")
	assert.NotContains(t, s.BusinessProfile.OpeningHours, "someday")
}

func TestUpdatePhone_ReemplazaObjetosCompletos(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	s := uc.UpdatePhone(ctx, testWorkspace, dto.PhonePatch{
		UseExistingNumber: boolPtr(false),
		NewNumber:         &entity.ProvisionedNumber{Number: "+14155550132", SID: "PNabc"},
		Routing: &entity.PhoneRouting{
			RingNumbers:      []string{"+573001112233"},
			AfterHoursAction: entity.AfterHoursBook,
			RingStrategy:     entity.RingAll,
			MaxRingSeconds:   40,
		},
	})

	assert.Equal(t, "+14155550132", s.Phone.NewNumber.Number)
	assert.Equal(t, entity.AfterHoursBook, s.Phone.Routing.AfterHoursAction)
	assert.Equal(t, 40, s.Phone.Routing.MaxRingSeconds)

	// Un patch posterior sin routing conserva el routing anterior completo.
	s = uc.UpdatePhone(ctx, testWorkspace, dto.PhonePatch{ExistingNumber: strPtr("+576015550100")})
	assert.Equal(t, entity.RingAll, s.Phone.Routing.RingStrategy)
	assert.Equal(t, []string{"+573001112233"}, s.Phone.Routing.RingNumbers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasos
// ──────────────────────────────────────────────────────────────────────────────

// MarkStepCompleted tiene semántica de set: los duplicados colapsan.
func TestMarkStepCompleted_Idempotente(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	uc.MarkStepCompleted(ctx, testWorkspace, 2)
	uc.MarkStepCompleted(ctx, testWorkspace, 3)
	s := uc.MarkStepCompleted(ctx, testWorkspace, 2)

	assert.ElementsMatch(t, []int{2, 3}, s.CompletedSteps,
		"completar dos veces el mismo paso no lo duplica")
}

func TestUpdateStep_CambiaPasoActivo(t *testing.T) {
	uc := newUC(newFakeRepo())
	s := uc.UpdateStep(context.Background(), testWorkspace, 4)
	assert.Equal(t, 4, s.CurrentStep)
}

func TestComplete_MarcaTerminado(t *testing.T) {
	uc := newUC(newFakeRepo())
	s := uc.Complete(context.Background(), testWorkspace)
	assert.True(t, s.IsCompleted)
}

// Reset restaura exactamente los defaults documentados (igualdad profunda).
func TestReset_RestauraDefaults(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	uc.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{FullName: strPtr("Ana")})
	uc.MarkStepCompleted(ctx, testWorkspace, 1)
	uc.UpdateStep(ctx, testWorkspace, 5)

	s := uc.Reset(ctx, testWorkspace)
	assert.Equal(t, entity.DefaultSetupSession(), s,
		"tras reset la sesión debe ser idéntica a los defaults")
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia
// ──────────────────────────────────────────────────────────────────────────────

// La password vive solo en memoria: el registro persistido la lleva siempre
// en blanco, mientras el snapshot en memoria la conserva.
func TestPersistencia_PasswordNuncaSeEscribe(t *testing.T) {
	repo := newFakeRepo()
	uc := newUC(repo)
	ctx := context.Background()

	s := uc.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{
		WorkEmail: strPtr("ana@clinica.co"),
		Password:  strPtr("super-secreta-123"),
	})
	assert.Equal(t, "super-secreta-123", s.Account.Password,
		"en memoria la password sigue disponible para el alta de cuenta")

	persisted := repo.lastSaved(testWorkspace)
	require.NotNil(t, persisted)
	assert.Empty(t, persisted.Account.Password,
		"el registro persistido jamás debe contener la password")
	assert.Equal(t, "ana@clinica.co", persisted.Account.WorkEmail,
		"el resto de la sección sí se persiste")
}

// Un fallo de persistencia no corrompe ni pierde el estado en memoria.
func TestPersistencia_FalloNoPierdeEstado(t *testing.T) {
	repo := newFakeRepo()
	repo.failSave = true
	uc := newUC(repo)
	ctx := context.Background()

	s := uc.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{FullName: strPtr("Ana")})
	assert.Equal(t, "Ana", s.Account.FullName,
		"la mutación en memoria sobrevive al fallo del repositorio")

	s = uc.Get(ctx, testWorkspace)
	assert.Equal(t, "Ana", s.Account.FullName)
}

// Con la memoria fría, la sesión se rehidrata desde el repositorio.
func TestPersistencia_RehidrataDesdeRepositorio(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	primera := newUC(repo)
	primera.UpdateAccount(ctx, testWorkspace, dto.AccountPatch{BusinessName: strPtr("Clínica Sonrisa")})

	// Nueva instancia del caso de uso: simula un reinicio del proceso.
	segunda := newUC(repo)
	s := segunda.Get(ctx, testWorkspace)
	assert.Equal(t, "Clínica Sonrisa", s.Account.BusinessName,
		"tras un reinicio la sesión persistida debe rehidratarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Base de conocimiento incremental
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendFAQs_AcumulaSinPisar(t *testing.T) {
	uc := newUC(newFakeRepo())
	ctx := context.Background()

	uc.AppendFAQs(ctx, testWorkspace, []entity.FAQ{{Question: "¿Horario?", Answer: "9 a 18"}})
	s := uc.AppendFAQs(ctx, testWorkspace, []entity.FAQ{{Question: "¿Dirección?", Answer: "Calle 10"}})

	require.Len(t, s.KnowledgeBase.FAQs, 2)
	assert.Equal(t, "¿Horario?", s.KnowledgeBase.FAQs[0].Question)
}

func TestAppendFile_RegistraPendiente(t *testing.T) {
	uc := newUC(newFakeRepo())
	s := uc.AppendFile(context.Background(), testWorkspace, entity.UploadedFile{
		Name:   "tarifas.pdf",
		URL:    "https://storage.example/tarifas.pdf",
		Status: entity.FileStatusPending,
	})
	require.Len(t, s.KnowledgeBase.Files, 1)
	assert.Equal(t, entity.FileStatusPending, s.KnowledgeBase.Files[0].Status)
}
