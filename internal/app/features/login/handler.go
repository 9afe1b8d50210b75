// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"time"

	adminstore "github.com/dalemusser/mediateam/internal/app/store/admins"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authutil"
	"github.com/dalemusser/mediateam/internal/app/system/ratelimit"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgBadCredentials = "Invalid email or password"
	msgTooManyTries   = "Too many login attempts for this account. Please wait a few minutes."

	// attempts allowed per account per attemptWindow
	accountAttempts = 5
	attemptWindow   = 5 * time.Minute
)

// Handler serves token login for portal users and administrators.
type Handler struct {
	Log      *zap.Logger
	Users    *userstore.Store
	Admins   *adminstore.Store
	Tokens   *auth.Tokens
	Activity *auditlog.Logger
	Attempts *ratelimit.AccountLimiter
}

func NewHandler(db *mongo.Database, tokens *auth.Tokens, activity *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Users:    userstore.New(db),
		Admins:   adminstore.New(db),
		Tokens:   tokens,
		Activity: activity,
		Attempts: ratelimit.NewAccountLimiter(accountAttempts, attemptWindow),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,loginemail"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   any       `json:"account"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// HandleUserLogin signs in a portal user. Only active accounts get a token.
func (h *Handler) HandleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode login", err)
		return
	}

	if !h.Attempts.Allow(string(auth.KindUser), req.Email) {
		respond.Fail(w, http.StatusTooManyRequests, msgTooManyTries)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == userstore.ErrNotFound {
		respond.Unauthorized(w, msgBadCredentials)
		return
	}
	if err != nil {
		respond.Internal(w, h.Log, "user lookup failed", err)
		return
	}
	if !authutil.CheckPassword(u.PasswordHash, req.Password) {
		h.Log.Info("login failed", zap.String("user_id", u.ID.Hex()), zap.String("reason", "bad_password"))
		respond.Unauthorized(w, msgBadCredentials)
		return
	}

	h.Attempts.Reset(string(auth.KindUser), req.Email)

	switch u.Status {
	case models.UserStatusActive:
	case models.UserStatusPending:
		respond.Forbidden(w, "Your application is still pending approval")
		return
	default:
		respond.Forbidden(w, "Your account is not active")
		return
	}

	token, exp, err := h.Tokens.Issue(auth.Principal{ID: u.ID, Kind: auth.KindUser, Email: u.Email, Name: u.FullName})
	if err != nil {
		respond.Internal(w, h.Log, "issue token", err)
		return
	}
	if err := h.Users.TouchLogin(ctx, u.ID); err != nil {
		h.Log.Warn("failed to record login time", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	respond.OKMessage(w, "Login successful", loginResponse{Token: token, ExpiresAt: exp, Account: u})
}

// HandleAdminLogin signs in an administrator and records the login.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode admin login", err)
		return
	}

	if !h.Attempts.Allow(string(auth.KindAdmin), req.Email) {
		respond.Fail(w, http.StatusTooManyRequests, msgTooManyTries)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err == adminstore.ErrNotFound {
		respond.Unauthorized(w, msgBadCredentials)
		return
	}
	if err != nil {
		respond.Internal(w, h.Log, "admin lookup failed", err)
		return
	}
	if !authutil.CheckPassword(a.PasswordHash, req.Password) {
		h.Log.Info("admin login failed", zap.String("admin_id", a.ID.Hex()))
		respond.Unauthorized(w, msgBadCredentials)
		return
	}
	h.Attempts.Reset(string(auth.KindAdmin), req.Email)

	if a.Status != adminstore.StatusActive {
		respond.Forbidden(w, "Your account is not active")
		return
	}

	token, exp, err := h.Tokens.Issue(auth.Principal{ID: a.ID, Kind: auth.KindAdmin, Email: a.Email, Name: a.FullName})
	if err != nil {
		respond.Internal(w, h.Log, "issue token", err)
		return
	}
	if err := h.Admins.TouchLogin(ctx, a.ID); err != nil {
		h.Log.Warn("failed to record admin login time", zap.String("admin_id", a.ID.Hex()), zap.Error(err))
	}

	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     a.ID,
		Action:      models.ActionAdminLogin,
		Target:      auditlog.SystemTarget(),
		Description: a.FullName + " signed in",
	})

	respond.OKMessage(w, "Login successful", loginResponse{Token: token, ExpiresAt: exp, Account: a})
}

// ServeMe returns the signed-in account.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized, no token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		account any
		err     error
	)
	if p.IsAdmin() {
		account, err = h.Admins.GetByID(ctx, p.ID)
	} else {
		account, err = h.Users.GetByID(ctx, p.ID)
	}
	if err != nil {
		respond.Error(w, h.Log, "load account", err)
		return
	}
	respond.OK(w, map[string]any{"kind": p.Kind, "account": account})
}

// HandleChangePassword replaces the signed-in account's password after
// checking the current one.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized, no token")
		return
	}
	var req passwordRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode password change", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var current string
	if p.IsAdmin() {
		a, err := h.Admins.GetByID(ctx, p.ID)
		if err != nil {
			respond.Error(w, h.Log, "load admin", err)
			return
		}
		current = a.PasswordHash
	} else {
		u, err := h.Users.GetByID(ctx, p.ID)
		if err != nil {
			respond.Error(w, h.Log, "load user", err)
			return
		}
		current = u.PasswordHash
	}
	if !authutil.CheckPassword(current, req.CurrentPassword) {
		respond.BadRequest(w, "Current password is incorrect")
		return
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if p.IsAdmin() {
		err = h.Admins.SetPassword(ctx, p.ID, hash)
	} else {
		err = h.Users.SetPassword(ctx, p.ID, hash)
	}
	if err != nil {
		respond.Error(w, h.Log, "set password", err)
		return
	}
	respond.OKMessage(w, "Password updated", nil)
}
