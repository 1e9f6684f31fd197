package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/brintopos/brintopos/internal/domain"
)

// --- till ---

func (h *handlers) menu(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.till.Menu(cat))
}

func (h *handlers) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Categories())
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.till.Order())
}

func (h *handlers) clearOrder(w http.ResponseWriter, r *http.Request) {
	h.till.ClearOrder()
	writeJSON(w, http.StatusOK, h.till.Order())
}

func (h *handlers) selectTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table int `json:"table"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.till.SelectTable(req.Table); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.till.Order())
}

func (h *handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.till.AddItem(req.ItemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.till.Order())
}

func (h *handlers) updateLine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Quantity     *int    `json:"quantity"`
		Instructions *string `json:"special_instructions"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		writeError(w, domain.NewValidationError("quantity", "must not be negative, got %d", *req.Quantity))
		return
	}
	if req.Instructions != nil {
		if err := h.till.SetInstructions(id, *req.Instructions); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Quantity != nil {
		if err := h.till.SetQuantity(id, *req.Quantity); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.till.Order())
}

func (h *handlers) removeItem(w http.ResponseWriter, r *http.Request) {
	h.till.RemoveItem(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, h.till.Order())
}

func (h *handlers) beginCheckout(w http.ResponseWriter, r *http.Request) {
	q, err := h.till.BeginCheckout()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *handlers) cancelCheckout(w http.ResponseWriter, r *http.Request) {
	h.till.CancelCheckout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) chooseMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.till.ChooseMethod(m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"method":       string(m),
		"display_name": m.DisplayName(),
	})
}

func (h *handlers) tenderCash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tendered string `json:"tendered"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := domain.ParseMoney("tendered", req.Tendered)
	if err != nil {
		writeError(w, err)
		return
	}
	change, err := h.till.TenderCash(amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"change": change.StringFixed(2)})
}

func (h *handlers) completeCheckout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.till.CompleteCheckout()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *handlers) kitchenTicket(w http.ResponseWriter, r *http.Request) {
	kt, err := h.till.KitchenTicket(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kt)
}

// --- admin ---

func (h *handlers) adminMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Menu(domain.CategoryAll))
}

func (h *handlers) addMenuItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeMenuItem(w, r)
	if !ok {
		return
	}
	added, err := h.dash.AddMenuItem(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *handlers) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeMenuItem(w, r)
	if !ok {
		return
	}
	item.ID = mux.Vars(r)["id"]
	updated, err := h.dash.UpdateMenuItem(item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handlers) removeMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.dash.RemoveMenuItem(id) {
		writeError(w, domain.NewNotFoundError("menu item", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) decodeMenuItem(w http.ResponseWriter, r *http.Request) (domain.MenuItem, bool) {
	var req domain.MenuItemConfig
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return domain.MenuItem{}, false
	}
	item, err := req.ToMenuItem()
	if err != nil {
		writeError(w, err)
		return domain.MenuItem{}, false
	}
	return item, true
}

func (h *handlers) listInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Invoices())
}

func (h *handlers) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.dash.Invoice(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *handlers) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TableNumber   *int    `json:"table_number"`
		PaymentMethod *string `json:"payment_method"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch := domain.InvoicePatch{TableNumber: req.TableNumber}
	if req.PaymentMethod != nil {
		m, err := domain.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.PaymentMethod = &m
	}

	inv, err := h.dash.UpdateInvoice(mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// voidInvoice needs the void credential on top of the admin gate.
func (h *handlers) voidInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	inv, err := h.dash.VoidInvoice(mux.Vars(r)["id"], r.Header.Get(HeaderVoidCredential), strings.TrimSpace(req.Reason))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Summary())
}
