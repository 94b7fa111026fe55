// Package api exposes the order engine over JSON HTTP for the tablet
// frontend.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"comanda-be/internal/auth"
	"comanda-be/internal/logger"
	"comanda-be/internal/menu"
	"comanda-be/internal/order"
	"comanda-be/internal/printer"
	"comanda-be/internal/table"
)

type Handler struct {
	tokens  *auth.Service
	tables  *table.Registry
	orders  order.Service
	printer *printer.Dispatcher
	catalog *menu.Catalog
}

func NewHandler(tokens *auth.Service, tables *table.Registry, orders order.Service, dispatcher *printer.Dispatcher, catalog *menu.Catalog) *Handler {
	return &Handler{
		tokens:  tokens,
		tables:  tables,
		orders:  orders,
		printer: dispatcher,
		catalog: catalog,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}

	token, err := h.tokens.Login(req.Email, req.Password)
	if err != nil {
		writeProblem(w, http.StatusUnauthorized, "invalid_credentials", "email or password incorrect")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	filter := table.Filter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = table.FilterAll
	}

	views, err := h.tables.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Current(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.CreateOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int             `json:"id"`
		Quantity int             `json:"quantity"`
		Options  menu.Selections `json:"options"`
		Notes    string          `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	o, err := h.orders.AddItem(r.Context(), r.PathValue("id"), req.ID, req.Quantity, req.Options, req.Notes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("itemId"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "item id must be numeric")
		return
	}
	addedAt, _ := strconv.ParseInt(r.URL.Query().Get("addedAt"), 10, 64)

	o, err := h.orders.RemoveItem(r.Context(), r.PathValue("id"), itemID, addedAt)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("itemId"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "item id must be numeric")
		return
	}

	var req struct {
		Quantity int   `json:"quantity"`
		AddedAt  int64 `json:"addedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}

	if err := h.orders.UpdateQuantity(r.Context(), r.PathValue("id"), itemID, req.AddedAt, req.Quantity); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	// body is optional, default payment applies
	_ = json.NewDecoder(r.Body).Decode(&req)

	o, err := h.orders.CloseOrder(r.Context(), r.PathValue("id"), req.PaymentMethod)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) PrintOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.printer.PrintOrder(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"printed": true})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	from := time.UnixMilli(0)
	to := time.Now()

	if v := r.URL.Query().Get("from"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "bad_request", "from must be unix milliseconds")
			return
		}
		from = time.UnixMilli(ms)
	}
	if v := r.URL.Query().Get("to"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "bad_request", "to must be unix milliseconds")
			return
		}
		to = time.UnixMilli(ms)
	}

	orders, err := h.orders.History(r.Context(), from, to, r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// WatchOrder streams live-order snapshots for one table as
// server-sent events until the client goes away.
func (h *Handler) WatchOrder(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "streaming_unsupported", "response writer cannot stream")
		return
	}

	snapshots, cancel, err := h.orders.Watch(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case o, open := <-snapshots:
			if !open {
				return
			}
			payload, err := json.Marshal(o)
			if err != nil {
				continue
			}
			if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// fail maps domain errors to HTTP problems.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrTableNotFound):
		writeProblem(w, http.StatusNotFound, "table_not_found", err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		writeProblem(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, order.ErrItemNotFound):
		writeProblem(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, order.ErrMenuItemNotFound):
		writeProblem(w, http.StatusNotFound, "menu_item_not_found", err.Error())
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrNoteTooLong),
		errors.Is(err, menu.ErrValidationFailed):
		writeProblem(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, printer.ErrNothingToPrint):
		writeProblem(w, http.StatusConflict, "nothing_to_print", err.Error())
	case errors.Is(err, printer.ErrTransportUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "printer_unavailable", err.Error())
	case errors.Is(err, printer.ErrPrintFailed):
		writeProblem(w, http.StatusBadGateway, "print_failed", err.Error())
	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}
