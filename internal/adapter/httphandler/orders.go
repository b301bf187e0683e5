package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/marketplace/internal/core/port"
)

// PATCH v1/orders/{id}/status JSON {"status": string} (200 OK, 400, 404, 500)

type OrdersHandler struct {
	updater port.OrderStatusUpdater
}

func RegisterOrders(mux *http.ServeMux, updater port.OrderStatusUpdater) {
	h := OrdersHandler{updater}
	mux.HandleFunc("PATCH /v1/orders/{id}/status", h.PatchStatus)
}

func (h OrdersHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PatchStatus"
	orderID := r.PathValue("id")
	log := slog.With("op", op, "orderID", orderID)

	var req StatusRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	o, err := h.updater.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, orderResponse(o))
	log.Info("status updated", "status", o.Status)
}
