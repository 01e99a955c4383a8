// Package server exposes the chatbot over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"fosschat/internal/service"
)

// Fixed boundary messages.
const (
	emptyQuestionMessage = "Please ask about FOSS-CIT!"
	internalErrorMessage = "Sorry, error occurred."
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>FOSS-CIT Bot</title></head>
<body>
<h1>FOSS-CIT AI Assistant</h1>
<p><a href="/chat.html">Start chatting</a> &middot; <a href="/health">Status</a></p>
</body>
</html>`

// chatRequest accepts both historical field names for the question.
type chatRequest struct {
	Question string `json:"question"`
	Message  string `json:"message"`
}

type chatResponse struct {
	Answer      string `json:"answer"`
	Status      string `json:"status"`
	SourcesUsed int    `json:"sources_used,omitempty"`
	Method      string `json:"search_method,omitempty"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Chunks       int    `json:"chunks"`
	VectorSearch string `json:"vector_search"`
	Strategy     string `json:"strategy"`
}

// Server routes HTTP requests into the chat service.
type Server struct {
	svc       *service.ChatService
	staticDir string
	logger    *zap.SugaredLogger
	handler   http.Handler
}

// New builds the router with CORS and panic recovery applied.
func New(svc *service.ChatService, staticDir string, allowedOrigins []string, logger *zap.SugaredLogger) *Server {
	s := &Server{svc: svc, staticDir: staticDir, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/chat.html", s.handleChatPage).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(s.recover(r))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infow("listening", "addr", addr)
	return http.ListenAndServe(addr, s.handler)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Answer: emptyQuestionMessage, Status: "error"})
		return
	}
	question := req.Question
	if question == "" {
		question = req.Message
	}

	reply, err := s.svc.Answer(r.Context(), question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			writeJSON(w, http.StatusBadRequest, chatResponse{Answer: emptyQuestionMessage, Status: "error"})
			return
		}
		s.logger.Errorw("chat failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, chatResponse{Answer: internalErrorMessage, Status: "error"})
		return
	}
	s.logger.Infow("answered", "question", question, "method", reply.Method, "sources", reply.Sources)
	writeJSON(w, http.StatusOK, chatResponse{
		Answer:      reply.Answer,
		Status:      "success",
		SourcesUsed: reply.Sources,
		Method:      reply.Method,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.svc.Health()
	vector := "disconnected"
	if h.VectorSearch {
		vector = "connected"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "online",
		Chunks:       h.Chunks,
		VectorSearch: vector,
		Strategy:     h.Strategy,
	})
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	page := filepath.Join(s.staticDir, "chat.html")
	if _, err := os.Stat(page); err != nil {
		http.Error(w, "Chat interface not found.", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, page)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

// recover converts an unexpected panic into a generic 500. Details stay in
// the server log.
func (s *Server) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Errorw("panic in handler", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, chatResponse{Answer: internalErrorMessage, Status: "error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
