package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/service"
)

// AuthHandler 注册/登录 Handler
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

// NewAuthHandler 创建注册/登录 Handler
func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch r.URL.Path {
	case "/api/auth/register":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Register(w, r)
	case "/api/auth/login":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Register 用户注册
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if _, err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, domain.NewError(domain.ErrInvalidInput, "invalid JSON payload"))
		return
	}

	userID, err := h.auth.Register(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "registration successful",
		"user_id": userID,
	})
}

// Login 用户登录
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if _, err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, domain.NewError(domain.ErrInvalidInput, "invalid JSON payload"))
		return
	}

	result, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "login successful",
		"user_id": result.UserID,
		"token":   result.Token,
	})
}
