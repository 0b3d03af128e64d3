package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nestfeed/server/internal/application"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		profile, err := h.service.CurrentUser(r.Context(), raw)
		if err != nil {
			status, code, msg := mapDomainError(err)
			writeError(w, status, code, msg)
			return
		}

		ctx := contextWithProfile(r.Context(), profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "register", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}

	h.setRefreshCookie(w, res.RefreshToken, h.refreshTTL)
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	req.Origin = readIP(r)

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "login", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}

	h.setRefreshCookie(w, res.RefreshToken, h.refreshTTL)
	writeSuccess(w, http.StatusOK, res)
}

// refresh rotates the session named by the refresh cookie. The superseded
// token stops working the moment the new cookie is set.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Refresh(r.Context(), refreshTokenFromCookie(r))
	if err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "refresh", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}

	h.setRefreshCookie(w, res.RefreshToken, h.refreshTTL)
	writeSuccess(w, http.StatusOK, res)
}

// logout always clears the cookie and reports success, even when no session
// matches the presented token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), refreshTokenFromCookie(r)); err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "logout", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}

	h.clearRefreshCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.service.Activate(r.Context(), token); err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "activate", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "Account activated successfully")
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "forgot_password", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "If the email exists, a password reset link has been sent")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req application.ResetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	req.Token = chi.URLParam(r, "token")

	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		status, code, msg := mapDomainError(err)
		logHTTPOperationError(r.Context(), "reset_password", status, code, msg, err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "Password reset successful. You can now login with your new password.")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	writeSuccess(w, http.StatusOK, profile)
}
