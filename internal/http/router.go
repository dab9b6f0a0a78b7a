package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterEventRoutes 注册事件上报/查询路由
func (r *Router) RegisterEventRoutes(h *EventHandler) {
	r.HandleHandler("/api/events", h)
	r.HandleHandler("/api/events/", h)
}

// RegisterAuthRoutes 注册认证路由
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.HandleHandler("/api/auth/register", h)
	r.HandleHandler("/api/auth/login", h)
}

// RegisterCameraRoutes 注册摄像头路由
func (r *Router) RegisterCameraRoutes(h *CameraHandler) {
	r.HandleHandler("/api/cameras", h)
}

// RegisterFeedbackRoutes 注册误报反馈路由
func (r *Router) RegisterFeedbackRoutes(h *FeedbackHandler) {
	r.HandleHandler("/api/feedback", h)
}

// RegisterReportRoutes 注册报表路由
func (r *Router) RegisterReportRoutes(h *ReportHandler) {
	r.HandleHandler("/api/reports", h)
	r.HandleHandler("/api/reports/export", h)
}

// RegisterHealthRoutes 注册根路径与连通性检查路由
func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("/", h.Home)
	r.Handle("/api/test_db", h.TestDB)
}
