package httpapi

import (
	"errors"
	"expvar"
	"log"
	"net/http"
	"strings"
	"time"

	"searchdesk/internal/models"
	"searchdesk/internal/otp"
	"searchdesk/internal/search"
	"searchdesk/internal/store"
)

const sessionCookie = "searchdesk_session"

type Options struct {
	DailyLimit     int
	SessionTTL     time.Duration
	MaxUploadBytes int64
}

type Handler struct {
	store store.Store
	otp   *otp.Service
	opts  Options
}

func NewHandler(st store.Store, otpService *otp.Service, opts Options) *Handler {
	if opts.DailyLimit <= 0 {
		opts.DailyLimit = 10
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 8 * time.Hour
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Handler{store: st, otp: otpService, opts: opts}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", expvar.Handler())
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/login", h.handleLoginPage)
	mux.HandleFunc("/send-otp", h.handleSendOTP)
	mux.HandleFunc("/verify-otp", h.handleVerifyOTP)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/app", h.handleApp)
	mux.HandleFunc("/search", h.handleSearch)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := h.currentSession(r); ok {
		http.Redirect(w, r, "/app", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.render(w, http.StatusOK, "login", nil)
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	email := normalizeEmail(r.FormValue("email"))
	if email == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	code, echo, err := h.otp.Issue(r.Context(), email)
	if err != nil {
		h.renderError(w, "could not send the login code")
		return
	}
	if !echo {
		code = ""
	}
	h.render(w, http.StatusOK, "code_sent", struct {
		Email string
		Code  string
	}{Email: email, Code: code})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	email := normalizeEmail(r.FormValue("email"))
	code := strings.TrimSpace(r.FormValue("otp"))

	ok, err := h.otp.Verify(r.Context(), email, code)
	if err != nil {
		h.renderError(w, "internal server error")
		return
	}
	if !ok {
		h.render(w, http.StatusOK, "invalid_code", nil)
		return
	}

	session, err := h.store.CreateSession(r.Context(), email, time.Now().UTC().Add(h.opts.SessionTTL))
	if err != nil {
		h.renderError(w, "internal server error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/app", http.StatusFound)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.store.DeleteSession(r.Context(), cookie.Value); err != nil {
			log.Printf("delete session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) handleApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	day := time.Now().Format(models.DayLayout)
	usage, err := h.store.GetUsage(r.Context(), session.Email, day)
	if err != nil {
		h.renderError(w, "internal server error")
		return
	}
	h.render(w, http.StatusOK, "app", struct {
		Email string
		Count int
		Limit int
	}{Email: session.Email, Count: usage.Count, Limit: h.opts.DailyLimit})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		h.renderError(w, err.Error())
		return
	}
	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		h.renderError(w, "query is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, "file is required")
		return
	}
	defer file.Close()

	// Quota is consumed before the file is looked at; an unsupported format
	// or a failed parse still counts as a search, like any admitted request.
	day := time.Now().Format(models.DayLayout)
	if _, err := h.store.IncrementUsage(r.Context(), session.Email, day, h.opts.DailyLimit); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			h.render(w, http.StatusOK, "quota_exceeded", nil)
			return
		}
		h.renderError(w, "internal server error")
		return
	}

	result, err := search.Search(file, header.Filename, query)
	if err != nil {
		if errors.Is(err, search.ErrUnsupportedFormat) {
			h.render(w, http.StatusOK, "unsupported", nil)
			return
		}
		h.renderError(w, err.Error())
		return
	}
	if len(result.Rows) == 0 {
		h.render(w, http.StatusOK, "no_results", struct{ Query string }{Query: query})
		return
	}
	h.render(w, http.StatusOK, "results", struct {
		Query   string
		Headers []string
		Rows    [][]string
	}{Query: query, Headers: result.Headers, Rows: result.Rows})
}

func (h *Handler) currentSession(r *http.Request) (models.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return models.Session{}, false
	}
	session, err := h.store.GetSession(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Printf("get session: %v", err)
		}
		return models.Session{}, false
	}
	return session, true
}

// requireSession redirects anonymous requests to the login page; protected
// pages never surface an explicit auth error.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := h.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return models.Session{}, false
	}
	return session, true
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, message string) {
	h.render(w, http.StatusOK, "error", struct{ Message string }{Message: message})
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
