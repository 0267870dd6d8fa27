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

// Verificar en tiempo de compilación que ContactClient implementa ContactRelay.
var _ ports.ContactRelay = (*ContactClient)(nil)

// ContactClient reenvía formularios de contacto/oferta al webhook configurado.
// El payload es JSON arbitrario; el webhook puede responder con un contador
// opcional de plazas restantes.
type ContactClient struct {
	url        string
	httpClient *http.Client
}

// NewContactClient construye el adaptador. Si url está vacío las llamadas
// devuelven error descriptivo en lugar de panic.
func NewContactClient(url string) *ContactClient {
	return &ContactClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type contactResponse struct {
	SpotsLeft *int `json:"spotsLeft"`
}

// Send reenvía el payload tal cual. Devuelve el contador de plazas restantes
// si el webhook lo reporta; nil en caso contrario.
func (c *ContactClient) Send(ctx context.Context, payload map[string]interface{}) (*int, error) {
	if c.url == "" {
		return nil, fmt.Errorf("contact: CONTACT_WEBHOOK_URL no configurado")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("contact: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contact: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("contact: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("contact: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("contact: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("contact: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	// El cuerpo de respuesta es opcional; un 200 sin JSON sigue siendo éxito.
	var parsed contactResponse
	if len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, &parsed); err != nil {
			return nil, nil
		}
	}
	return parsed.SpotsLeft, nil
}
