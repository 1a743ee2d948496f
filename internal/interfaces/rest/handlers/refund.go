package handlers

import (
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
	"github.com/shopspring/decimal"
)

type RefundRequest struct {
	Amount string `json:"amount" validate:"required" example:"5.00"`
	Reason string `json:"reason" example:"damaged in transit"`
}

// HandleRefund processes a refund request
// @Summary      Refund an order
// @Description  Asks the backend to refund part or all of a paid order. Only processing, on-hold and completed orders are refundable. A granted refund marks the order refunded and stores the URL where the customer collects it.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        number   path      string               true  "Shop order number"
// @Param        request  body      RefundRequest        true  "Refund amount in the order currency and reason"
// @Success      200      {object}  rest.SuccessResponse{data=rest.RefundResponse}
// @Failure      400      {object}  rest.ErrorResponse   "Invalid amount"
// @Failure      404      {object}  rest.ErrorResponse   "Order not found"
// @Failure      409      {object}  rest.ErrorResponse   "Order status does not allow a refund"
// @Failure      502      {object}  rest.ErrorResponse   "Backend refused or failed the refund"
// @Router       /orders/{number}/refund [post]
func (h *Handlers) HandleRefund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := rest.DecodeJSON(w, r, h.validate, &req); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	cmd := services.RefundCommand{
		OrderNumber: r.PathValue("number"),
		Amount:      amount,
		Reason:      req.Reason,
	}
	if user, ok := h.actor(r); ok {
		cmd.Actor = user
	}

	result, err := h.refunds.Refund(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.SuccessResponse{
		Success: true,
		Data:    rest.ToRefundResponse(result),
	})
}
