package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/overview"
	"walletadmin/internal/domain/transaction"
)

// Overview is the read side of the admin dashboard
type Overview interface {
	ListRequests(ctx context.Context, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListTransactions(ctx context.Context, userID int64, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListUsers(ctx context.Context, c activity.Criteria) ([]overview.UserRow, error)
	GetUser(ctx context.Context, id int64) (*overview.UserDetail, error)
	Activity(ctx context.Context, userID int64) ([]activity.DateGroup[overview.ActivityItem], error)
	PendingBacklog(ctx context.Context) (overview.Backlog, error)
}

// Transitioner submits status changes
type Transitioner interface {
	Transition(ctx context.Context, params transaction.TransitionParams) (*transaction.TransitionRequest, error)
}

type AdminHandler struct {
	overview    Overview
	transitions Transitioner
}

func NewAdminHandler(ov Overview, transitions Transitioner) *AdminHandler {
	return &AdminHandler{overview: ov, transitions: transitions}
}

type transitionBody struct {
	Status string `json:"status"`
	Actor  string `json:"actor,omitempty"`
}

// HandleListRequests returns bank requests grouped by day, filtered by the
// type, status and search query parameters.
func (h *AdminHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	groups, err := h.overview.ListRequests(r.Context(), activity.CriteriaFromQuery(r.URL.Query()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, groups)
}

// HandleListTransactions returns transaction history grouped by day. The
// optional user_id parameter narrows it to one user.
func (h *AdminHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, http.StatusBadRequest, "user_id must be a positive integer")
			return
		}
		userID = id
	}

	groups, err := h.overview.ListTransactions(r.Context(), userID, activity.CriteriaFromQuery(r.URL.Query()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, groups)
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.overview.ListUsers(r.Context(), activity.CriteriaFromQuery(r.URL.Query()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rows)
}

func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	detail, err := h.overview.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (h *AdminHandler) HandleUserActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	groups, err := h.overview.Activity(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, groups)
}

func (h *AdminHandler) HandleBacklog(w http.ResponseWriter, r *http.Request) {
	b, err := h.overview.PendingBacklog(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, b)
}

// HandleRequestStatus moves a bank request to the status in the body.
func (h *AdminHandler) HandleRequestStatus(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, transaction.KindRequest)
}

// HandleTransactionStatus moves a transaction history entry to the status in the body.
func (h *AdminHandler) HandleTransactionStatus(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, transaction.KindHistory)
}

// handleTransition answers 202: the change is handed off, not yet applied.
func (h *AdminHandler) handleTransition(w http.ResponseWriter, r *http.Request, kind transaction.Kind) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid record id")
		return
	}

	var body transitionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.transitions.Transition(r.Context(), transaction.TransitionParams{
		Kind:     kind,
		RecordID: id,
		Status:   body.Status,
		Actor:    body.Actor,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, req)
}
