package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// maxErrorBody ограничивает объем тела ответа, читаемого при ошибке
const maxErrorBody = 4 << 10

// Client клиент для работы с сервисом доступности (Availability Gateway)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// baseURL - префикс API, например http://localhost:8080/api/v1
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetSettings получает глобальные настройки бронирования
func (c *Client) GetSettings(ctx context.Context) (*domain.BookingSettings, error) {
	var resp SettingsResponse
	if err := c.getJSON(ctx, "/settings", nil, &resp); err != nil {
		return nil, err
	}

	if resp.Enabled && resp.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration_minutes %d", ErrInvalidResponse, resp.DurationMinutes)
	}
	if resp.MaxAdvanceDays < 0 {
		return nil, fmt.Errorf("%w: negative max_advance_days %d", ErrInvalidResponse, resp.MaxAdvanceDays)
	}

	return &domain.BookingSettings{
		Enabled:         resp.Enabled,
		DurationMinutes: resp.DurationMinutes,
		MaxAdvanceDays:  resp.MaxAdvanceDays,
	}, nil
}

// GetMonthAvailability получает флаги доступности дней месяца.
// Записи вне запрошенного месяца отбрасываются.
func (c *Client) GetMonthAvailability(ctx context.Context, month types.YearMonth) (map[types.CalendarDate]bool, error) {
	var resp []DayAvailability
	query := url.Values{"month": []string{month.String()}}
	if err := c.getJSON(ctx, "/availability", query, &resp); err != nil {
		return nil, err
	}

	result := make(map[types.CalendarDate]bool, len(resp))
	for _, day := range resp {
		date, err := types.ParseDate(day.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: availability entry: %v", ErrInvalidResponse, err)
		}
		if !month.Contains(date) {
			c.log.Warn("Gateway: availability for %s returned foreign date %s, skipped", month, date)
			continue
		}
		result[date] = day.Available
	}

	return result, nil
}

// GetDaySlots получает слоты дня в порядке, в котором их вернул сервис
func (c *Client) GetDaySlots(ctx context.Context, date types.CalendarDate) ([]domain.TimeSlot, error) {
	var resp []SlotResponse
	query := url.Values{"date": []string{date.String()}}
	if err := c.getJSON(ctx, "/slots", query, &resp); err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(resp))
	for _, s := range resp {
		t, err := types.ParseTimeOfDay(s.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: slot entry: %v", ErrInvalidResponse, err)
		}
		slots = append(slots, domain.TimeSlot{Time: t, Available: s.Available})
	}

	return slots, nil
}

// CreateBooking резервирует слот. Повторных попыток нет: повтор без идемпотентности
// может создать двойное бронирование.
func (c *Client) CreateBooking(ctx context.Context, req *BookingRequest) (*domain.ConfirmedBooking, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/booking", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		apiErr := readAPIError(resp)
		c.log.Warn("Gateway: booking %s %s rejected: status=%d message=%q", req.Date, req.Time, apiErr.StatusCode, apiErr.Message)
		return nil, apiErr
	}

	var envelope BookingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return toConfirmedBooking(envelope.Booking)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// readAPIError извлекает сообщение об ошибке: {"message": ...} или сырой текст тела
func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := ""
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func toConfirmedBooking(p BookingPayload) (*domain.ConfirmedBooking, error) {
	date, err := types.ParseDate(p.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: booking date: %v", ErrInvalidResponse, err)
	}
	t, err := types.ParseTimeOfDay(p.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: booking time: %v", ErrInvalidResponse, err)
	}
	if p.MeetingLink == "" {
		return nil, fmt.Errorf("%w: booking without meeting_link", ErrInvalidResponse)
	}
	if p.Duration <= 0 {
		return nil, fmt.Errorf("%w: non-positive booking duration %d", ErrInvalidResponse, p.Duration)
	}

	return &domain.ConfirmedBooking{
		Date:            date,
		Time:            t,
		DurationMinutes: p.Duration,
		MeetingLink:     p.MeetingLink,
	}, nil
}
