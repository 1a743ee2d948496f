package handlers

import (
	"net/http"
	"net/url"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

const noticeMaxAge = 60

// HandleCallback is the fulfillment URL the wallet returns the shopper to
// @Summary      Fulfillment callback
// @Description  Checks with the backend whether the order was paid and redirects the shopper. Failures are reported in the notice cookie, never as an error page.
// @Tags         shop
// @Param        callback  query  string  true   "Gateway id"
// @Param        order_id  query  string  false  "Order id as <key>-<number>"
// @Success      302  "Redirect to the order-received page, the cart, the shop or the account page"
// @Failure      404  "Not a callback for this gateway"
// @Router       / [get]
func (h *Handlers) HandleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var callback string
	if err := runtime.BindQueryParameter("form", true, true, "callback", query, &callback); err != nil || callback != h.settings.GatewayID {
		http.NotFound(w, r)
		return
	}

	var orderID *string
	if err := runtime.BindQueryParameter("form", true, false, "order_id", query, &orderID); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	cmd := services.CallbackCommand{HasOrderID: orderID != nil}
	if orderID != nil {
		cmd.OrderID = *orderID
	}
	if user, ok := h.actor(r); ok {
		cmd.Actor = user
		cmd.Authenticated = true
	}

	result := h.confirmer.CheckPayment(r.Context(), cmd, h.sessionCart(r))

	if result.Notice != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     h.settings.NoticeCookie,
			Value:    url.QueryEscape(result.Notice),
			Path:     "/",
			MaxAge:   noticeMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}

func (h *Handlers) sessionCart(r *http.Request) application.Cart {
	sessionID := ""
	if c, err := r.Cookie(h.settings.SessionCookie); err == nil {
		sessionID = c.Value
	}
	return h.carts.ForSession(sessionID)
}
