package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	summarizeBodyLimit = 10 << 20
	shareBodyLimit     = 1 << 20

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 5 * time.Minute
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Summarizer produces a final summary for a transcript and an instruction.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, instruction string) (string, error)
}

// MailSender delivers a summary to a list of recipients.
type MailSender interface {
	Send(ctx context.Context, summary string, recipients []string) error
}

// Server is the thin HTTP boundary in front of the summarization core.
type Server struct {
	addr       string
	summarizer Summarizer
	mailer     MailSender
	log        *slog.Logger

	listener net.Listener
	server   *http.Server
}

func New(
	addr string,
	summarizer Summarizer,
	mailer MailSender,
	log *slog.Logger,
) *Server {
	srv := &Server{
		addr:       addr,
		summarizer: summarizer,
		mailer:     mailer,
		log:        log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/summarize", srv.handleSummarize)
	mux.HandleFunc("/api/share", srv.handleShare)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return srv
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	go func() {
		if serveErr := s.server.Serve(listener); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			s.log.ErrorContext(ctx, "HTTP server error",
				"error", serveErr,
				"addr", s.addr)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := s.server.Shutdown(shutdownCtx); shutdownErr != nil {
			s.log.ErrorContext(ctx, "HTTP server shutdown error",
				"error", shutdownErr,
				"addr", s.addr)
		}
	}()

	s.log.InfoContext(ctx, "HTTP server is listening",
		"addr", listener.Addr().String())

	return nil
}

type summarizeRequest struct {
	Transcript  string `json:"transcript"`
	Instruction string `json:"instruction"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")

		return
	}

	var req summarizeRequest
	if !s.decodeJSON(w, r, summarizeBodyLimit, &req) {
		return
	}

	if strings.TrimSpace(req.Transcript) == "" {
		s.writeError(w, http.StatusBadRequest, "transcript is required")

		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		s.writeError(w, http.StatusBadRequest, "instruction is required")

		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), req.Transcript, req.Instruction)
	if err != nil {
		// Internal detail stays in the logs; callers get an opaque message.
		s.log.ErrorContext(r.Context(), "Summarization failed",
			"error", err,
			"transcriptChars", len(req.Transcript))
		s.writeError(w, http.StatusInternalServerError, "summarization failed")

		return
	}

	s.writeJSON(w, http.StatusOK, summarizeResponse{Summary: summary})
}

type shareRequest struct {
	Summary    string   `json:"summary"`
	Recipients []string `json:"recipients"`
}

type shareResponse struct {
	Sent int `json:"sent"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")

		return
	}

	var req shareRequest
	if !s.decodeJSON(w, r, shareBodyLimit, &req) {
		return
	}

	if strings.TrimSpace(req.Summary) == "" {
		s.writeError(w, http.StatusBadRequest, "summary is required")

		return
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, recipient := range req.Recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient != "" {
			recipients = append(recipients, recipient)
		}
	}
	if len(recipients) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one recipient is required")

		return
	}

	if err := s.mailer.Send(r.Context(), req.Summary, recipients); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to send summary email",
			"error", err,
			"recipientCount", len(recipients))
		s.writeError(w, http.StatusInternalServerError, "failed to send email")

		return
	}

	s.writeJSON(w, http.StatusOK, shareResponse{Sent: len(recipients)})
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")

		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	limit int64,
	dst any,
) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")

		return false
	}

	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to encode response",
			"error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
