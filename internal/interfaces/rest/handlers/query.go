package handlers

import (
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
	"github.com/swaggo/swag"
)

// HandleGetOrder
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        number  path      string  true  "Shop order number"
// @Success      200     {object}  rest.SuccessResponse{data=rest.OrderResponse}
// @Failure      404     {object}  rest.ErrorResponse  "Order not found"
// @Router       /orders/{number} [get]
func (h *Handlers) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.query.GetOrder(r.Context(), r.PathValue("number"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.SuccessResponse{
		Success: true,
		Data:    rest.ToOrderResponse(view),
	})
}

// HandleSetupStatus reports whether the backend needs configuring
// @Summary      Backend setup status
// @Description  needs_setup is true when the backend cannot be reached or speaks an incompatible protocol version.
// @Tags         setup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rest.SuccessResponse{data=rest.SetupStatusResponse}
// @Router       /setup/status [get]
func (h *Handlers) HandleSetupStatus(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.SuccessResponse{
		Success: true,
		Data:    rest.SetupStatusResponse{NeedsSetup: h.setup.NeedsSetup(r.Context())},
	})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) HandleDocs(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
