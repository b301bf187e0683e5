package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/marketplace/internal/core/port"
)

// POST v1/bids/place JSON {"productId", "amount"} Headers X-User-ID (201, 400, 500)
// GET v1/bids/{productId} (200 OK, amount descending)
// GET v1/bids/{productId}/summary (200 OK)

type BidsHandler struct {
	placer  port.BidPlacer
	lister  port.BidLister
	summary port.BidSummaryReader
}

func RegisterBids(
	mux *http.ServeMux,
	placer port.BidPlacer,
	lister port.BidLister,
	summary port.BidSummaryReader,
) {
	h := BidsHandler{placer, lister, summary}
	mux.HandleFunc("POST /v1/bids/place", h.PlaceBid)
	mux.HandleFunc("GET /v1/bids/{productId}", h.ListBids)
	mux.HandleFunc("GET /v1/bids/{productId}/summary", h.Summary)
}

func (h BidsHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	const op = "BidsHandler.PlaceBid"
	log := slog.With("op", op)

	bidderID, ok := requireHeader(w, r, log, userHeader)
	if !ok {
		return
	}

	var req PlaceBidRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	b, err := h.placer.PlaceBid(r.Context(), req.ProductID, bidderID, req.Amount)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, Bid(b))
	log.Info("bid placed", "productID", b.ProductID, "amount", b.Amount)
}

func (h BidsHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	const op = "BidsHandler.ListBids"
	log := slog.With("op", op)

	bids, err := h.lister.ListBids(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, bidsResponse(bids))
}

func (h BidsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "BidsHandler.Summary"
	log := slog.With("op", op)

	s, err := h.summary.BidSummary(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, BidSummaryResponse(s))
}

// GET v1/auctions/{productId} (200 OK, 404)
// POST v1/auctions/{productId}/bids JSON {"amount"} Headers X-User-ID (201, 400, 404, 409)

type AuctionsHandler struct {
	viewer port.AuctionViewer
}

func RegisterAuctions(mux *http.ServeMux, viewer port.AuctionViewer) {
	h := AuctionsHandler{viewer}
	mux.HandleFunc("GET /v1/auctions/{productId}", h.GetAuction)
	mux.HandleFunc("POST /v1/auctions/{productId}/bids", h.SubmitBid)
}

func (h AuctionsHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	const op = "AuctionsHandler.GetAuction"
	log := slog.With("op", op)

	v, err := h.viewer.ViewAuction(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, auctionResponse(v))
}

func (h AuctionsHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	const op = "AuctionsHandler.SubmitBid"
	productID := r.PathValue("productId")
	log := slog.With("op", op, "productID", productID)

	bidderID, ok := requireHeader(w, r, log, userHeader)
	if !ok {
		return
	}

	var req SubmitBidRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	v, err := h.viewer.SubmitBid(r.Context(), productID, bidderID, req.Amount)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, auctionResponse(v))
}
