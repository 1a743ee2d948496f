package handlers

import (
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
)

type CheckoutRequest struct {
	SessionID string `json:"session_id" validate:"required" example:"5c1f0a"`
}

// HandleCheckout creates the backend order and returns the payment page.
//
// A failed checkout answers with an error envelope whose message and backend_*
// fields are meant for the shop administrator. Only error.user_message may be
// relayed to the shopper.
//
// @Summary      Start payment
// @Description  Checks the backend's protocol version and currency, submits the contract and returns the URL the shopper must visit to pay. On failure the order is cancelled. Only error.user_message may be shown to the shopper; error.message and the backend_* fields are for the administrator.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        number   path      string                 true  "Shop order number"
// @Param        request  body      CheckoutRequest        true  "Browser session whose cart is checked out"
// @Success      200      {object}  rest.SuccessResponse{data=rest.CheckoutResponse}
// @Failure      400      {object}  rest.ErrorResponse     "Invalid request"
// @Failure      404      {object}  rest.ErrorResponse     "Order not found"
// @Failure      409      {object}  rest.ErrorResponse     "Order status does not allow payment"
// @Failure      502      {object}  rest.ErrorResponse     "Backend unreachable or rejecting the order"
// @Failure      503      {object}  rest.ErrorResponse     "Backend protocol version or currency incompatible"
// @Router       /orders/{number}/checkout [post]
func (h *Handlers) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := rest.DecodeJSON(w, r, h.validate, &req); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	cmd := services.CheckoutCommand{OrderNumber: r.PathValue("number")}
	if user, ok := h.actor(r); ok {
		cmd.Actor = user
	}

	result, err := h.checkout.SubmitOrder(r.Context(), cmd, h.carts.ForSession(req.SessionID))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.SuccessResponse{
		Success: true,
		Data:    rest.ToCheckoutResponse(result),
	})
}
