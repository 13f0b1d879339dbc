package list_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// ToServiceRequest разбирает query параметры from, to (YYYY-MM-DD) и include_cancelled
func ToServiceRequest(from, to, includeCancelled string) (*models.ListBookingsRequest, error) {
	fromDate, err := types.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	toDate, err := types.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	req := &models.ListBookingsRequest{From: fromDate, To: toDate}
	if includeCancelled != "" {
		req.IncludeCancelled, err = strconv.ParseBool(includeCancelled)
		if err != nil {
			return nil, fmt.Errorf("include_cancelled: %w", err)
		}
	}
	return req, nil
}
