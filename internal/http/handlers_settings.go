package http

import (
	"net/http"
	"strings"

	"gagyebu/internal/core"
	"gagyebu/internal/registry"
	"gagyebu/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.settings.Get())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req settings.Profile
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.settings.UpdateProfile(req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	var req settings.Notifications
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.settings.UpdateNotifications(req))
}

func (s *Server) handleUpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	var req settings.Privacy
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.settings.UpdatePrivacy(req))
}

// parseTxType turns the type query/body value into a partition key,
// defaulting to expense.
func parseTxType(v string) (core.TxType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "expense":
		return core.Expense, true
	case "income":
		return core.Income, true
	}
	return "", false
}

type categoryRequest struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	t, ok := parseTxType(r.URL.Query().Get("type"))
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}
	cats := s.settingsCategories(t)
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) settingsCategories(t core.TxType) []registry.Category {
	cats := s.registry.Categories(t)
	if cats == nil {
		cats = []registry.Category{}
	}
	return cats
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := parseTxType(req.Type)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "category name must not be empty")
		return
	}

	s.registry.AddCategory(t, strings.TrimSpace(req.Name), req.Color)
	s.invalidateSummaries()
	respondJSON(w, http.StatusCreated, s.settingsCategories(t))
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := parseTxType(req.Type)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}

	s.registry.RemoveCategory(t, req.Name)
	s.invalidateSummaries()
	respondJSON(w, http.StatusOK, s.settingsCategories(t))
}

type paymentMethodRequest struct {
	Type   string `json:"type"`
	Method string `json:"method"`
}

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	t, ok := parseTxType(r.URL.Query().Get("type"))
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}
	respondJSON(w, http.StatusOK, emptyList(s.registry.PaymentMethods(t)))
}

func (s *Server) handleAddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := parseTxType(req.Type)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}
	if strings.TrimSpace(req.Method) == "" {
		respondError(w, http.StatusUnprocessableEntity, "payment method must not be empty")
		return
	}

	s.registry.AddPaymentMethod(t, strings.TrimSpace(req.Method))
	respondJSON(w, http.StatusCreated, emptyList(s.registry.PaymentMethods(t)))
}

func (s *Server) handleRemovePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := parseTxType(req.Type)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}

	s.registry.RemovePaymentMethod(t, req.Method)
	respondJSON(w, http.StatusOK, emptyList(s.registry.PaymentMethods(t)))
}

type budgetRequest struct {
	Category string `json:"category"`
	Budget   int64  `json:"budget"`
}

// handleSetBudget overrides one category budget. A zero or negative
// budget clears the override back to the default.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		respondError(w, http.StatusUnprocessableEntity, "category must not be empty")
		return
	}

	s.registry.SetBudget(req.Category, req.Budget)
	s.invalidateSummaries()
	respondJSON(w, http.StatusOK, budgetRequest{
		Category: req.Category,
		Budget:   s.registry.Budget(req.Category),
	})
}
