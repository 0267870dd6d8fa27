package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/recepta-api/internal/application/ports"
)

// Verificar en tiempo de compilación que LaunchClient implementa LaunchNotifier.
var _ ports.LaunchNotifier = (*LaunchClient)(nil)

// LaunchClient notifica al orquestador de telefonía que el recepcionista
// de un workspace debe activarse o desactivarse.
type LaunchClient struct {
	url        string
	httpClient *http.Client
}

// NewLaunchClient construye el adaptador. Si url está vacío las llamadas
// devuelven error descriptivo en lugar de panic.
func NewLaunchClient(url string) *LaunchClient {
	return &LaunchClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type launchPayload struct {
	WorkspaceID string `json:"workspaceId"`
	IsEnabled   bool   `json:"isEnabled"`
}

// Launch envía la señal de activación. Cualquier respuesta non-2xx es fallo duro.
func (c *LaunchClient) Launch(ctx context.Context, workspaceID string, enabled bool) error {
	if c.url == "" {
		return fmt.Errorf("launch: LAUNCH_URL no configurado")
	}

	body, err := json.Marshal(launchPayload{WorkspaceID: workspaceID, IsEnabled: enabled})
	if err != nil {
		return fmt.Errorf("launch: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("launch: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("launch: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("launch: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rawBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		return fmt.Errorf("launch: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return nil
}
