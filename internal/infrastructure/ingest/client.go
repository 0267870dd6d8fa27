package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa KnowledgeIngestor.
var _ ports.KnowledgeIngestor = (*Client)(nil)

// Client adaptador HTTP del servicio de ingesta de base de conocimiento:
// rastreo de FAQs de un sitio web y subida de documentos.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. Si baseURL está vacío las llamadas
// devuelven error descriptivo en lugar de panic.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// El scraping de un sitio completo puede tardar; timeout generoso.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type scrapeRequest struct {
	URL string `json:"url"`
}

type scrapeResponse struct {
	FAQs []entity.FAQ `json:"faqs"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// ScrapeFAQs pide al servicio de ingesta que rastree el sitio y extraiga
// pares pregunta/respuesta.
func (c *Client) ScrapeFAQs(ctx context.Context, siteURL string) ([]entity.FAQ, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("ingesta: INGEST_BASE_URL no configurado")
	}

	body, err := json.Marshal(scrapeRequest{URL: siteURL})
	if err != nil {
		return nil, fmt.Errorf("ingesta: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape-faqs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ingesta: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	rawBody, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var scraped scrapeResponse
	if err := json.Unmarshal(rawBody, &scraped); err != nil {
		return nil, fmt.Errorf("ingesta: deserializar respuesta de scraping: %w", err)
	}
	return scraped.FAQs, nil
}

// UploadFile sube el documento como multipart y devuelve la URL de
// almacenamiento asignada por el servicio.
func (c *Client) UploadFile(ctx context.Context, filename string, content []byte) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ingesta: INGEST_BASE_URL no configurado")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("ingesta: preparar multipart: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("ingesta: escribir multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("ingesta: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &buf)
	if err != nil {
		return "", fmt.Errorf("ingesta: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	rawBody, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(rawBody, &uploaded); err != nil {
		return "", fmt.Errorf("ingesta: deserializar respuesta de subida: %w", err)
	}
	if uploaded.URL == "" {
		return "", fmt.Errorf("ingesta: el servicio no devolvió URL de almacenamiento")
	}
	return uploaded.URL, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ingesta: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ingesta: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ingesta: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ingesta: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return rawBody, nil
}
