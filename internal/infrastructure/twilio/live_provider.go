package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/domain"
)

// Verificar en tiempo de compilación que LiveProvider implementa PhoneProvider.
var _ ports.PhoneProvider = (*LiveProvider)(nil)

const defaultTwilioBaseURL = "https://api.twilio.com"

// LiveProvider adaptador que implementa PhoneProvider usando la API REST de Twilio.
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type LiveProvider struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

// NewLiveProvider construye el adaptador real.
// baseURL vacío usa el endpoint público de Twilio; se parametriza para tests.
// Si accountSID está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewLiveProvider(accountSID, authToken, baseURL string) *LiveProvider {
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}
	return &LiveProvider{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ── Estructuras internas del protocolo REST de Twilio ─────────────────────────

type twilioAvailableNumber struct {
	PhoneNumber  string `json:"phone_number"`
	FriendlyName string `json:"friendly_name"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	Capabilities struct {
		Voice bool `json:"voice"`
		SMS   bool `json:"SMS"`
		MMS   bool `json:"MMS"`
	} `json:"capabilities"`
}

type twilioSearchResponse struct {
	AvailablePhoneNumbers []twilioAvailableNumber `json:"available_phone_numbers"`
}

type twilioIncomingNumber struct {
	SID         string `json:"sid"`
	PhoneNumber string `json:"phone_number"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Search consulta los números locales disponibles en el país y prefijo indicados.
func (p *LiveProvider) Search(ctx context.Context, country, areaCode string) ([]ports.AvailableNumber, error) {
	if p.accountSID == "" {
		return nil, fmt.Errorf("twilio: TWILIO_ACCOUNT_SID no configurado")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/AvailablePhoneNumbers/%s/Local.json",
		p.baseURL, p.accountSID, country)
	query := url.Values{}
	if areaCode != "" {
		query.Set("AreaCode", areaCode)
	}
	query.Set("VoiceEnabled", "true")
	query.Set("PageSize", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("twilio: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)

	rawBody, err := p.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var searchResp twilioSearchResponse
	if err := json.Unmarshal(rawBody, &searchResp); err != nil {
		return nil, fmt.Errorf("twilio: deserializar respuesta de búsqueda: %w", err)
	}

	numbers := make([]ports.AvailableNumber, 0, len(searchResp.AvailablePhoneNumbers))
	for _, n := range searchResp.AvailablePhoneNumbers {
		numbers = append(numbers, ports.AvailableNumber{
			PhoneNumber:  n.PhoneNumber,
			FriendlyName: n.FriendlyName,
			Locality:     n.Locality,
			Region:       n.Region,
			Voice:        n.Capabilities.Voice,
			SMS:          n.Capabilities.SMS,
			MMS:          n.Capabilities.MMS,
		})
	}
	return numbers, nil
}

// Purchase compra el número indicado y lo asigna a la cuenta.
func (p *LiveProvider) Purchase(ctx context.Context, phoneNumber string) (*ports.PurchaseResult, error) {
	if p.accountSID == "" {
		return nil, fmt.Errorf("twilio: TWILIO_ACCOUNT_SID no configurado")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/IncomingPhoneNumbers.json",
		p.baseURL, p.accountSID)
	form := url.Values{}
	form.Set("PhoneNumber", phoneNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("twilio: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rawBody, err := p.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var incoming twilioIncomingNumber
	if err := json.Unmarshal(rawBody, &incoming); err != nil {
		return nil, fmt.Errorf("twilio: deserializar respuesta de compra: %w", err)
	}

	return &ports.PurchaseResult{
		Success:     true,
		SID:         incoming.SID,
		PhoneNumber: incoming.PhoneNumber,
	}, nil
}

// do ejecuta la petición y devuelve el body crudo; los errores de Twilio
// (non-2xx) se traducen a ErrProviderUnavailable con el mensaje del proveedor.
func (p *LiveProvider) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("twilio: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("twilio: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("twilio: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var twErr twilioError
		if jsonErr := json.Unmarshal(rawBody, &twErr); jsonErr == nil && twErr.Message != "" {
			return nil, fmt.Errorf("%w: Twilio %d (%s)", domain.ErrProviderUnavailable, twErr.Code, twErr.Message)
		}
		return nil, fmt.Errorf("%w: Twilio HTTP %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
	return rawBody, nil
}
