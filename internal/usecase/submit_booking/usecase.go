package submit_booking

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ConsultationService/internal/integrations/gateway"
)

// UseCase use case отправки бронирования
type UseCase struct {
	gateway GatewayClient
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway GatewayClient, logger Logger) *UseCase {
	return &UseCase{
		gateway: gateway,
		logger:  logger,
	}
}

// Execute валидирует данные и выполняет ровно один запрос на бронирование, без повторов.
// Ошибки сервиса возвращаются как *SubmissionError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	valid, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitBooking: date=%s, time=%s, email=%s", valid.Date, valid.Time, valid.Details.Email)

	booking, err := uc.gateway.CreateBooking(ctx, toBookingRequest(valid))
	if err != nil {
		return nil, uc.toSubmissionError(err)
	}

	uc.logger.Info("SubmitBooking: confirmed date=%s, time=%s, link=%s", booking.Date, booking.Time, booking.MeetingLink)

	return &Response{Booking: *booking, Details: valid.Details}, nil
}

func (uc *UseCase) toSubmissionError(err error) *SubmissionError {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		uc.logger.Warn("SubmitBooking: rejected by gateway: status=%d message=%q", apiErr.StatusCode, apiErr.Message)
		return &SubmissionError{Message: apiErr.Message, Err: err}
	}

	uc.logger.Error("SubmitBooking: request failed: %v", err)
	return &SubmissionError{Message: GenericFailureMessage, Err: err}
}

func toBookingRequest(req *Request) *gateway.BookingRequest {
	return &gateway.BookingRequest{
		FirstName: req.Details.FirstName,
		LastName:  req.Details.LastName,
		Email:     req.Details.Email,
		Phone:     req.Details.Phone,
		Company:   req.Details.Company,
		Date:      req.Date.String(),
		Time:      req.Time.String(),
	}
}
