package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/server/auth"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type placeOrderResponse struct {
	Message string `json:"message"`
	OrderID int    `json:"orderId"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "Customer registered successfully!")
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, common.ErrorDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "User already exists")
	default:
		s.logger.Error(r.Context(), "registration failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error processing request")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ok, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeMessage(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error processing request")
		return
	}
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(req.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "token signing failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error processing request")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: "Customer login successful!", Success: true, AccessToken: token})
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if !decodeJSON(w, r, &in) {
		return
	}

	id, err := s.orders.Place(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, placeOrderResponse{Message: "Order placed successfully!", OrderID: id})
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "Invalid order data")
	default:
		s.logger.Error(r.Context(), "placing order failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error processing order")
	}
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value(emailKey).(string)

	list, err := s.orders.ListByEmail(r.Context(), email)
	if err != nil {
		s.logger.Error(r.Context(), "listing orders failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error loading orders")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.messages.Record(r.Context(), req.Name, req.Email, req.Message)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "Message received successfully!")
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	default:
		s.logger.Error(r.Context(), "saving message failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error saving message")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// status plus one record count per collection, e.g. {"status":"ok","users":3}
	resp := map[string]any{"status": "ok"}
	status := http.StatusOK

	for _, c := range s.collections {
		n, err := c.Len(r.Context())
		if err != nil {
			s.logger.Warn(r.Context(), "collection unavailable", "collection", c.Name(), "error", err)
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
			n = -1
		}
		resp[c.Name()] = n
	}

	writeJSON(w, status, resp)
}
