package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateBookingTrx):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// ===== auth =====

type loginRequest struct {
	Secret string `json:"secret"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if s.adminSecret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(s.adminSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("web: mint session token failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.auth.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ===== products =====

type productRequest struct {
	Name           string   `json:"name"`
	Tagline        string   `json:"tagline"`
	About          string   `json:"about"`
	Price          int64    `json:"price"`
	Capacity       int      `json:"capacity"`
	DurationMonths int      `json:"duration_months"`
	IsPopular      bool     `json:"is_popular"`
	Keypoints      []string `json:"keypoints"`
	Thumbnail      string   `json:"thumbnail"`
	Photo          string   `json:"photo"`
}

func (req productRequest) toInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:           req.Name,
		Tagline:        req.Tagline,
		About:          req.About,
		Price:          req.Price,
		Capacity:       req.Capacity,
		DurationMonths: req.DurationMonths,
		IsPopular:      req.IsPopular,
		Keypoints:      req.Keypoints,
		Thumbnail:      req.Thumbnail,
		Photo:          req.Photo,
	}
}

func (s *Server) productCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	p, err := s.catalogUC.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) productsListHandler(w http.ResponseWriter, r *http.Request) {
	ps, err := s.catalogUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Product `json:"data"`
	}{Data: ps})
}

func (s *Server) productGetHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalogUC.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := struct {
		Product        *model.Product `json:"product"`
		PricingDefined bool           `json:"pricing_defined"`
		Quote          *usecase.Quote `json:"quote,omitempty"`
	}{Product: d.Product, PricingDefined: d.PricingDefined}
	if d.PricingDefined {
		q := d.Quote
		resp.Quote = &q
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) productUpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	p, err := s.catalogUC.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) productDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) productRestoreHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogUC.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// productQuoteHandler previews pricing through the same engine used at
// booking time.
func (s *Server) productQuoteHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalogUC.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !d.PricingDefined {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	writeJSON(w, http.StatusOK, d.Quote)
}

// ===== subscriptions =====

type subscriptionCreateRequest struct {
	ProductID     string `json:"product_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
}

func (s *Server) subscriptionCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req subscriptionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sub, err := s.subUC.CreateDraft(r.Context(), req.ProductID, model.Customer{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Email: req.CustomerEmail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) subscriptionsListHandler(w http.ResponseWriter, r *http.Request) {
	var (
		subs []*model.ProductSubscription
		err  error
	)
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		subs, err = s.subUC.ListByProduct(r.Context(), productID)
	} else {
		subs, err = s.subUC.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("unpaid") == "true" {
		filtered := subs[:0]
		for _, sub := range subs {
			if !sub.IsPaid {
				filtered = append(filtered, sub)
			}
		}
		subs = filtered
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.ProductSubscription `json:"data"`
	}{Data: subs})
}

func (s *Server) unpaidCountHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.subUC.CountUnpaid(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unpaid": n})
}

func (s *Server) subscriptionGetHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// subscriptionByTrxHandler resolves a booking by its customer-facing
// reference, e.g. PTGN-01J8ZC3A9JK2M4N6P8Q0RS2TV4.
func (s *Server) subscriptionByTrxHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subUC.GetByBookingTrxID(r.Context(), chi.URLParam(r, "trxID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

type paymentRequest struct {
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	BankNumber  string `json:"bank_number"`
	Proof       string `json:"proof"`
}

func (s *Server) subscriptionPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sub, err := s.subUC.AttachPayment(r.Context(), chi.URLParam(r, "id"), usecase.PaymentDetails{
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
		BankNumber:  req.BankNumber,
		Proof:       req.Proof,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// subscriptionApproveHandler approves the booking and places it into a group
// in one admin action.
func (s *Server) subscriptionApproveHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := s.subUC.Approve(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.allocUC.Allocate(r.Context(), id, 1)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Subscription *model.ProductSubscription `json:"subscription"`
		GroupID      string                     `json:"group_id"`
		OpenedGroup  bool                       `json:"opened_group"`
	}{Subscription: sub, GroupID: res.Group.ID, OpenedGroup: res.OpenedGroup})
}

func (s *Server) subscriptionDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.subUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) subscriptionRestoreHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.subUC.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== groups =====

func (s *Server) groupsListHandler(w http.ResponseWriter, r *http.Request) {
	var (
		views []*usecase.GroupView
		err   error
	)
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		views, err = s.groupUC.ListByProduct(r.Context(), productID)
	} else {
		views, err = s.groupUC.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*usecase.GroupView `json:"data"`
	}{Data: views})
}

type allocateRequest struct {
	SubscriptionID string `json:"subscription_id"`
	StartCount     int    `json:"start_count"`
}

func (s *Server) groupAllocateHandler(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	res, err := s.allocUC.Allocate(r.Context(), req.SubscriptionID, req.StartCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Group       *model.SubscriptionGroup `json:"group"`
		OpenedGroup bool                     `json:"opened_group"`
	}{Group: res.Group, OpenedGroup: res.OpenedGroup})
}

func (s *Server) groupDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.groupUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) groupGetHandler(w http.ResponseWriter, r *http.Request) {
	v, err := s.groupUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) groupMessagesHandler(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.groupUC.Messages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.GroupMessage `json:"data"`
	}{Data: msgs})
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) groupAddMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	m, err := s.groupUC.AddMessage(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) groupParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	ps, err := s.groupUC.Participants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.GroupParticipant `json:"data"`
	}{Data: ps})
}

// ===== stats =====

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.statsUC.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
