package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/libauth/internal/common"
	"github.com/dmitrijs2005/libauth/internal/server/models"
	"github.com/dmitrijs2005/libauth/internal/server/users"
	"github.com/dmitrijs2005/libauth/internal/server/validation"
)

type registerRequest struct {
	UserType  string `json:"userType" validate:"required,oneof=ADMIN EMPLOYEE PATRON"`
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
}

type loginResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Storage string `json:"storage,omitempty"`
}

// decode reads a JSON body into dst and validates it. On failure it has
// already written the 400 response.
func (r *Router) decode(w http.ResponseWriter, req *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeValidationError(w, "invalid JSON body", nil)
		return false
	}

	if err := r.validator.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeValidationError(w, verr.Error(), verr.Fields)
		} else {
			writeValidationError(w, err.Error(), nil)
		}
		return false
	}
	return true
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var payload registerRequest
	if !r.decode(w, req, &payload) {
		return
	}

	userType, err := models.ParseUserType(payload.UserType)
	if err != nil {
		writeValidationError(w, err.Error(), map[string]string{"userType": err.Error()})
		return
	}

	user, err := r.accounts.Register(req.Context(), users.RegisterInput{
		UserType:  userType,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		r.logger.Error(req.Context(), "registration failed", "kind", common.KindOf(err).String(), "error", err)
		writeMessage(w, http.StatusInternalServerError, "Unable to register user at this time")
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User successfully created", User: user})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload loginRequest
	if !r.decode(w, req, &payload) {
		return
	}

	res, err := r.accounts.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		switch kind := common.KindOf(err); kind {
		case common.KindUserNotFound, common.KindInvalidCredentials:
			r.logger.Info(req.Context(), "login rejected", "kind", kind.String())
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		default:
			r.logger.Error(req.Context(), "login failed", "kind", kind.String(), "error", err)
			writeMessage(w, http.StatusInternalServerError, "Unable to login at this time")
		}
		return
	}

	if r.cookie != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     r.cookie.Name,
			Value:    res.Token,
			Path:     "/",
			MaxAge:   int(r.cookie.MaxAge / time.Second),
			HttpOnly: true,
			Secure:   r.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}

// handleLogout clears the auth cookie. Tokens stay valid until they expire.
func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	if r.cookie != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     r.cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   r.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) handleAccount(w http.ResponseWriter, req *http.Request) {
	id, ok := IdentityFromContext(req.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := r.accounts.GetProfile(req.Context(), id.ID)
	if err != nil {
		if common.KindOf(err) == common.KindUserNotFound {
			writeMessage(w, http.StatusNotFound, "account not found")
			return
		}
		r.logger.Error(req.Context(), "account lookup failed", "user_id", id.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Unable to load account at this time")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	resp := healthResponse{Status: "ok", Message: "Server is running properly"}
	if r.storage != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.storage(ctx); err != nil {
			r.logger.Warn(req.Context(), "storage ping failed", "error", err)
			resp.Storage = "down"
		} else {
			resp.Storage = "up"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
