package launch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/launch"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	saved map[string]*entity.SetupSession
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{saved: make(map[string]*entity.SetupSession)}
}

func (r *fakeSessionRepo) Save(_ context.Context, workspaceID string, s *entity.SetupSession) error {
	r.saved[workspaceID] = s
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, workspaceID string) (*entity.SetupSession, error) {
	return r.saved[workspaceID], nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, workspaceID string) error {
	delete(r.saved, workspaceID)
	return nil
}

type fakeNotifier struct {
	err   error
	calls int
}

func (n *fakeNotifier) Launch(_ context.Context, _ string, _ bool) error {
	n.calls++
	return n.err
}

type fakeWorkspaceRepo struct {
	status map[string]string
}

var _ repository.WorkspaceRepository = (*fakeWorkspaceRepo)(nil)

func (r *fakeWorkspaceRepo) Create(_ *entity.Workspace) error { return nil }

func (r *fakeWorkspaceRepo) GetByID(_ string) (*entity.Workspace, error) { return nil, nil }

func (r *fakeWorkspaceRepo) UpdateStatus(id, status string) error {
	if r.status == nil {
		r.status = make(map[string]string)
	}
	r.status[id] = status
	return nil
}

// prepareLaunchable deja la sesión del workspace cumpliendo todo el checklist:
// nombre de negocio, número provisionado y pasos 1..6 completados.
func prepareLaunchable(t *testing.T, setupUC *setup.UseCase, workspaceID string) {
	t.Helper()
	ctx := context.Background()
	name := "Clínica Dental Sonrisa"
	setupUC.UpdateAccount(ctx, workspaceID, dto.AccountPatch{BusinessName: &name})
	setupUC.UpdatePhone(ctx, workspaceID, dto.PhonePatch{
		NewNumber: &entity.ProvisionedNumber{Number: "+14155550132", SID: "PN1"},
	})
	for step := 1; step <= 6; step++ {
		setupUC.MarkStepCompleted(ctx, workspaceID, step)
	}
}

func buildLaunch(notifier *fakeNotifier) (*launch.UseCase, *setup.UseCase, *fakeWorkspaceRepo) {
	setupUC := setup.NewUseCase(newFakeSessionRepo(), logger.Nop())
	wsRepo := &fakeWorkspaceRepo{}
	return launch.NewUseCase(notifier, setupUC, wsRepo, logger.Nop()), setupUC, wsRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Checklist de lanzamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestLaunch_ChecklistIncompletoListaRazones(t *testing.T) {
	uc, _, _ := buildLaunch(&fakeNotifier{})

	_, err := uc.Launch(context.Background(), "ws-1", dto.LaunchRequest{Enabled: true})
	require.ErrorIs(t, err, domain.ErrNotLaunchable)

	var notLaunchable *launch.NotLaunchableError
	require.ErrorAs(t, err, &notLaunchable)
	assert.Contains(t, notLaunchable.Reasons, "account.businessName")
	assert.Contains(t, notLaunchable.Reasons, "phone.newNumber.number")
	assert.Contains(t, notLaunchable.Reasons, "completedSteps.1")
}

func TestLaunch_SinOptInNoLanza(t *testing.T) {
	notifier := &fakeNotifier{}
	uc, setupUC, _ := buildLaunch(notifier)
	prepareLaunchable(t, setupUC, "ws-1")

	_, err := uc.Launch(context.Background(), "ws-1", dto.LaunchRequest{Enabled: false})
	require.ErrorIs(t, err, domain.ErrNotLaunchable)

	var notLaunchable *launch.NotLaunchableError
	require.ErrorAs(t, err, &notLaunchable)
	assert.Equal(t, []string{"review.enabled"}, notLaunchable.Reasons)
	assert.Zero(t, notifier.calls, "el notificador no se llama con el checklist incompleto")
}

// La elección de numeración es excluyente: con las dos opciones pobladas el
// lanzamiento se rechaza en vez de adivinar.
func TestLaunch_NumeracionAmbiguaBloquea(t *testing.T) {
	uc, setupUC, _ := buildLaunch(&fakeNotifier{})
	prepareLaunchable(t, setupUC, "ws-1")

	useExisting := true
	existing := "+573001234567"
	setupUC.UpdatePhone(context.Background(), "ws-1", dto.PhonePatch{
		UseExistingNumber: &useExisting,
		ExistingNumber:    &existing,
	})

	_, err := uc.Launch(context.Background(), "ws-1", dto.LaunchRequest{Enabled: true})
	require.ErrorIs(t, err, domain.ErrNotLaunchable)

	var notLaunchable *launch.NotLaunchableError
	require.ErrorAs(t, err, &notLaunchable)
	assert.Contains(t, notLaunchable.Reasons, "phone.useExistingNumber")
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de efectos
// ──────────────────────────────────────────────────────────────────────────────

// Un notificador caído no debe dejar rastro: la sesión queda exactamente
// como estaba y el usuario reintenta desde el mismo estado.
func TestLaunch_FalloDelNotificadorNoMutaLaSesion(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("gateway caído")}
	uc, setupUC, wsRepo := buildLaunch(notifier)
	prepareLaunchable(t, setupUC, "ws-1")

	antes := setupUC.Get(context.Background(), "ws-1")

	_, err := uc.Launch(context.Background(), "ws-1", dto.LaunchRequest{Enabled: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotLaunchable, "un fallo del gateway no es un 409")

	despues := setupUC.Get(context.Background(), "ws-1")
	assert.Equal(t, antes, despues, "la sesión debe quedar intacta tras el fallo")
	assert.False(t, despues.Review.Enabled)
	assert.False(t, despues.Review.Launched)
	assert.Empty(t, wsRepo.status, "el workspace tampoco cambia de estado")
}

func TestLaunch_ExitoAplicaCambios(t *testing.T) {
	notifier := &fakeNotifier{}
	uc, setupUC, wsRepo := buildLaunch(notifier)
	prepareLaunchable(t, setupUC, "ws-1")

	out, err := uc.Launch(context.Background(), "ws-1", dto.LaunchRequest{Enabled: true})
	require.NoError(t, err)
	assert.True(t, out.Launched)
	assert.Equal(t, 1, notifier.calls)

	s := setupUC.Get(context.Background(), "ws-1")
	assert.True(t, s.Review.Enabled)
	assert.True(t, s.Review.Launched)
	assert.True(t, s.IsCompleted)
	assert.Equal(t, entity.WorkspaceLive, wsRepo.status["ws-1"])
}
