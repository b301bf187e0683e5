package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/marketplace/internal/core/port"
)

// A StoresHandler serves the session scoped cart, compare list and wishlist.
// The session is identified by the X-Session-ID header.
type StoresHandler struct {
	stores port.StoresOpener
}

func RegisterStores(mux *http.ServeMux, stores port.StoresOpener) {
	h := StoresHandler{stores}

	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddToCart)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveFromCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)

	mux.HandleFunc("GET /v1/compare", h.GetCompare)
	mux.HandleFunc("POST /v1/compare/items", h.AddToCompare)
	mux.HandleFunc("DELETE /v1/compare/items/{id}", h.RemoveFromCompare)
	mux.HandleFunc("DELETE /v1/compare", h.ClearCompare)

	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/items", h.AddToWishlist)
	mux.HandleFunc("DELETE /v1/wishlist/items/{id}", h.RemoveFromWishlist)
}

func (h StoresHandler) openCart(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (port.CartStore, bool) {
	sid, ok := requireHeader(w, r, log, sessionHeader)
	if !ok {
		return nil, false
	}
	return h.stores.OpenCart(r.Context(), sid), true
}

func (h StoresHandler) openCompare(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (port.CompareStore, bool) {
	sid, ok := requireHeader(w, r, log, sessionHeader)
	if !ok {
		return nil, false
	}
	return h.stores.OpenCompare(r.Context(), sid), true
}

func (h StoresHandler) openWishlist(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (port.WishlistStore, bool) {
	sid, ok := requireHeader(w, r, log, sessionHeader)
	if !ok {
		return nil, false
	}
	return h.stores.OpenWishlist(r.Context(), sid), true
}

func (h StoresHandler) writeCart(
	w http.ResponseWriter, log *slog.Logger, cart port.CartStore,
) {
	res := cartResponse(cart.Lines(), cart.TotalItems(), cart.TotalPrice())
	writeJSON(w, log, http.StatusOK, res)
}

func (h StoresHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.GetCart"
	log := slog.With("op", op)

	cart, ok := h.openCart(w, r, log)
	if !ok {
		return
	}
	h.writeCart(w, log, cart)
}

func (h StoresHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.AddToCart"
	log := slog.With("op", op)

	cart, ok := h.openCart(w, r, log)
	if !ok {
		return
	}

	var p Product
	if !decodeJSON(w, r, log, &p) {
		return
	}

	dp := p.toDomain()
	if !storeResult(w, log, cart.AddToCart(r.Context(), &dp)) {
		return
	}
	h.writeCart(w, log, cart)
}

func (h StoresHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.UpdateQuantity"
	log := slog.With("op", op)

	cart, ok := h.openCart(w, r, log)
	if !ok {
		return
	}

	var req QuantityRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	err := cart.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	if !storeResult(w, log, err) {
		return
	}
	h.writeCart(w, log, cart)
}

func (h StoresHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.RemoveFromCart"
	log := slog.With("op", op)

	cart, ok := h.openCart(w, r, log)
	if !ok {
		return
	}

	if !storeResult(w, log, cart.RemoveFromCart(r.Context(), r.PathValue("id"))) {
		return
	}
	h.writeCart(w, log, cart)
}

func (h StoresHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.ClearCart"
	log := slog.With("op", op)

	cart, ok := h.openCart(w, r, log)
	if !ok {
		return
	}

	if !storeResult(w, log, cart.ClearCart(r.Context())) {
		return
	}
	h.writeCart(w, log, cart)
}

func (h StoresHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.GetCompare"
	log := slog.With("op", op)

	compare, ok := h.openCompare(w, r, log)
	if !ok {
		return
	}
	writeJSON(w, log, http.StatusOK, compareResponse(compare.Entries()))
}

func (h StoresHandler) AddToCompare(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.AddToCompare"
	log := slog.With("op", op)

	compare, ok := h.openCompare(w, r, log)
	if !ok {
		return
	}

	var p Product
	if !decodeJSON(w, r, log, &p) {
		return
	}

	if !storeResult(w, log, compare.AddToCompare(r.Context(), p.toDomain())) {
		return
	}
	writeJSON(w, log, http.StatusOK, compareResponse(compare.Entries()))
}

func (h StoresHandler) RemoveFromCompare(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.RemoveFromCompare"
	log := slog.With("op", op)

	compare, ok := h.openCompare(w, r, log)
	if !ok {
		return
	}

	err := compare.RemoveFromCompare(r.Context(), r.PathValue("id"))
	if !storeResult(w, log, err) {
		return
	}
	writeJSON(w, log, http.StatusOK, compareResponse(compare.Entries()))
}

func (h StoresHandler) ClearCompare(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.ClearCompare"
	log := slog.With("op", op)

	compare, ok := h.openCompare(w, r, log)
	if !ok {
		return
	}

	if !storeResult(w, log, compare.ClearCompare(r.Context())) {
		return
	}
	writeJSON(w, log, http.StatusOK, compareResponse(compare.Entries()))
}

func (h StoresHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.GetWishlist"
	log := slog.With("op", op)

	wishlist, ok := h.openWishlist(w, r, log)
	if !ok {
		return
	}
	writeJSON(w, log, http.StatusOK, wishlistResponse(wishlist.Entries()))
}

func (h StoresHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.AddToWishlist"
	log := slog.With("op", op)

	wishlist, ok := h.openWishlist(w, r, log)
	if !ok {
		return
	}

	var p Product
	if !decodeJSON(w, r, log, &p) {
		return
	}

	if !storeResult(w, log, wishlist.AddToWishlist(r.Context(), p.toDomain())) {
		return
	}
	writeJSON(w, log, http.StatusOK, wishlistResponse(wishlist.Entries()))
}

func (h StoresHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.RemoveFromWishlist"
	log := slog.With("op", op)

	wishlist, ok := h.openWishlist(w, r, log)
	if !ok {
		return
	}

	err := wishlist.RemoveFromWishlist(r.Context(), r.PathValue("id"))
	if !storeResult(w, log, err) {
		return
	}
	writeJSON(w, log, http.StatusOK, wishlistResponse(wishlist.Entries()))
}
