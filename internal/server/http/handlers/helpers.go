package handlers

import (
	"errors"
	"net/http"

	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/server/http/dto"
	"github.com/adonay-express/orderflow/internal/usecase"
)

// statusForError maps domain failures onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrTerminalStatus):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrNoLines):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrEmptyBatchTag):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrStoreOffline):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toModelLines(lines []dto.OrderLine) []model.OrderLine {
	result := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		result = append(result, model.OrderLine{
			Product: model.ProductRef{
				ID:       l.Product.ID,
				Name:     l.Product.Name,
				Code:     l.Product.Code,
				Price:    l.Product.Price,
				Category: model.ProductCategory(l.Product.Category),
			},
			Quantity: l.Quantity,
		})
	}
	return result
}

func toDTOLines(lines []model.OrderLine) []dto.OrderLine {
	result := make([]dto.OrderLine, 0, len(lines))
	for _, l := range lines {
		result = append(result, dto.OrderLine{
			Product: dto.ProductRef{
				ID:       l.Product.ID,
				Name:     l.Product.Name,
				Code:     l.Product.Code,
				Price:    l.Product.Price,
				Category: string(l.Product.Category),
			},
			Quantity: l.Quantity,
		})
	}
	return result
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          order.ID,
		Number:      order.ShortNumber(),
		CustomerID:  order.CustomerID,
		Nickname:    order.CustomerNickname,
		Lines:       toDTOLines(order.Lines),
		Status:      string(order.Status),
		PlacedAt:    order.PlacedAt,
		Total:       order.Total,
		BatchTag:    order.BatchTag,
		StaffPlaced: order.StaffPlaced,
	}
}

func toTransitionResponse(result *usecase.TransitionResult) dto.TransitionResponse {
	response := dto.TransitionResponse{
		Order:   toOrderResponse(*result.Order),
		Changed: result.Changed,
	}
	if result.Notify != nil {
		notification := &dto.NotificationResponse{MessageID: result.Notify.MessageID}
		if result.Notify.Err != nil {
			notification.Error = result.Notify.Err.Error()
		}
		response.Notification = notification
	}
	return response
}
