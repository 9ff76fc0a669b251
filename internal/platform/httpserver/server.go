package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	poolengine "fundpool/contexts/pool-coordination/pool-engine"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
	pooltransport "fundpool/contexts/pool-coordination/pool-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "fundpool/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	pool   poolengine.Module
}

func New(pool poolengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		pool:   pool,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/pool/v1/initialize", s.handleInitializePool)
	s.mux.HandleFunc("POST /api/pool/v1/contributions", s.handleContribute)
	s.mux.HandleFunc("GET /api/pool/v1/contributions/{participant_id}", s.handleGetContribution)
	s.mux.HandleFunc("POST /api/pool/v1/proposals", s.handleSubmitProposal)
	s.mux.HandleFunc("GET /api/pool/v1/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /api/pool/v1/proposals/winner", s.handleWinner)
	s.mux.HandleFunc("POST /api/pool/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/pool/v1/withdrawals", s.handleWithdraw)
	s.mux.HandleFunc("POST /api/pool/v1/execute", s.handleExecute)
	s.mux.HandleFunc("POST /api/pool/v1/refunds", s.handleClaimRefund)
	s.mux.HandleFunc("GET /api/pool/v1/info", s.handlePoolInfo)
}

func (s *Server) handleInitializePool(w http.ResponseWriter, r *http.Request) {
	var req pooltransport.InitializePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.pool.Handler.InitializePoolHandler(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	participantID, ok := requireParticipant(w, r)
	if !ok {
		return
	}
	var req pooltransport.ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.pool.Handler.ContributeHandler(r.Context(), participantID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContribution(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pool.Handler.ContributionHandler(r.Context(), r.PathValue("participant_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	participantID, ok := requireParticipant(w, r)
	if !ok {
		return
	}
	var req pooltransport.SubmitProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.pool.Handler.SubmitProposalHandler(r.Context(), participantID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pool.Handler.ProposalsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pool.Handler.WinnerHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	participantID, ok := requireParticipant(w, r)
	if !ok {
		return
	}
	var req pooltransport.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.pool.Handler.CastVoteHandler(r.Context(), participantID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	participantID, ok := requireParticipant(w, r)
	if !ok {
		return
	}
	resp, err := s.pool.Handler.WithdrawHandler(r.Context(), participantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pool.Handler.ExecuteHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimRefund(w http.ResponseWriter, r *http.Request) {
	participantID, ok := requireParticipant(w, r)
	if !ok {
		return
	}
	var req pooltransport.ClaimRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.pool.Handler.ClaimRefundHandler(r.Context(), participantID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePoolInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pool.Handler.PoolInfoHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireParticipant(w http.ResponseWriter, r *http.Request) (string, bool) {
	participantID := r.Header.Get("X-Participant-Id")
	if participantID == "" {
		writeError(w, http.StatusUnauthorized, "missing_participant", "X-Participant-Id header is required")
		return "", false
	}
	return participantID, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidParameters),
		errors.Is(err, domainerrors.ErrZeroAmount),
		errors.Is(err, domainerrors.ErrInvalidProposalData):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrContributionLimit),
		errors.Is(err, domainerrors.ErrInsufficientContribution):
		writeError(w, http.StatusUnprocessableEntity, "not_eligible", err.Error())
	case errors.Is(err, domainerrors.ErrProposalNotFound),
		errors.Is(err, domainerrors.ErrParticipantNotFound),
		errors.Is(err, domainerrors.ErrNothingToWithdraw):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrPhase),
		errors.Is(err, domainerrors.ErrNotInitialized),
		errors.Is(err, domainerrors.ErrAlreadyInitialized),
		errors.Is(err, domainerrors.ErrAlreadyVoted),
		errors.Is(err, domainerrors.ErrAlreadyWithdrawn),
		errors.Is(err, domainerrors.ErrAlreadyRefunded),
		errors.Is(err, domainerrors.ErrAlreadyExecuted),
		errors.Is(err, domainerrors.ErrRefundNotAvailable),
		errors.Is(err, domainerrors.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domainerrors.ErrTransferFailed):
		writeError(w, http.StatusBadGateway, "transfer_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pooltransport.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
