package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/items-api/internal/service"
)

// ItemHandler handles item CRUD requests.
//
// Ownership is checked against the owner/userId the client sends. The value
// is not tied to any login, so any caller who knows an owner id can act as
// that owner.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

type itemRequest struct {
	Name      string         `json:"name"`
	Owner     string         `json:"owner"`
	CreatedAt timestampField `json:"createdAt"`
	UpdatedAt timestampField `json:"updatedAt"`
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:      req.Name,
		Owner:     req.Owner,
		CreatedAt: string(req.CreatedAt),
		UpdatedAt: string(req.UpdatedAt),
	}
}

// maxEpochMillis is the largest magnitude a JavaScript Date accepts.
const maxEpochMillis = 8.64e15

// timestampField takes a JSON string or a number of milliseconds since the
// Unix epoch. Any other JSON value is kept as its raw text, which the item
// service then rejects as an invalid timestamp for that field.
type timestampField string

func (f *timestampField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = timestampField(s)
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil && ms >= -maxEpochMillis && ms <= maxEpochMillis {
		*f = timestampField(time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano))
		return nil
	}

	*f = timestampField(data)
	return nil
}

// HandleList returns every item, most recently updated first.
// GET /items
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list items", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// HandleCreate stores a new item.
// POST /items
// Request:  {"name":"...","owner":"...","createdAt":"...","updatedAt":"..."}
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.items.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, "create item", err)
		return
	}

	slog.Info("item created", "item_id", item.ID, "owner", item.Owner)
	writeJSON(w, http.StatusCreated, toItemDTO(item))
}

// HandleUpdate overwrites an item's name and timestamps.
// PUT /items/{id}
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req itemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.items.Update(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, "update item", err)
		return
	}

	slog.Info("item updated", "item_id", item.ID)
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

// HandleDelete removes an item.
// DELETE /items/{id}?userId=...
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := r.URL.Query().Get("userId")

	if err := h.items.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, "delete item", err)
		return
	}

	slog.Info("item deleted", "item_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
