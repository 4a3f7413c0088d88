package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"scout/pkg/api"
	"scout/pkg/monitor"
	"scout/pkg/utils"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for decoupled UI
	},
}

// SafeConn serializes writes to a websocket connection.
type SafeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *SafeConn) WriteMessage(messageType int, data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.Conn.WriteMessage(messageType, data)
}

// QueryRequest is the payload of POST /api/query and of websocket query
// frames.
type QueryRequest struct {
	Query     string `json:"query"`
	Mode      string `json:"mode"`
	SessionID string `json:"session_id"`
}

// Server exposes the orchestrator over HTTP and WebSocket.
type Server struct {
	orch     api.Orchestrator
	sessions *SessionStore
	stats    *monitor.Stats
	server   *http.Server
	port     int
}

func NewServer(orch api.Orchestrator, stats *monitor.Stats, port int) *Server {
	return &Server{
		orch:     orch,
		sessions: NewSessionStore(),
		stats:    stats,
		port:     port,
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	slog.Info("API listening", "port", s.port)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// runQuery executes one request against the orchestrator and records the
// exchange in the session history.
func (s *Server) runQuery(ctx context.Context, req QueryRequest) (*api.FinalAnswer, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("'query' is required")
	}

	mode, err := api.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	ctx = monitor.WithRequestID(ctx, utils.GenerateID())
	slog.InfoContext(ctx, "Processing query", "session", sessionID, "mode", mode)

	answer := s.orch.Process(ctx, req.Query, mode, s.sessions.History(sessionID))

	s.sessions.Append(sessionID,
		api.HistoryTurn{Role: "user", Content: req.Query},
		api.HistoryTurn{Role: "assistant", Content: answer.Content},
	)

	return answer, nil
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	answer, err := s.runQuery(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// handleWebSocket serves the interactive query channel: each text frame is a
// QueryRequest, each reply an answer or error frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WS upgrade failed", "error", err)
		return
	}

	conn := &SafeConn{Conn: rawConn}
	defer conn.Close()

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req QueryRequest
		if err := json.Unmarshal(msgBytes, &req); err != nil {
			// Fallback: treat the frame as a plain-text query
			req = QueryRequest{Query: string(msgBytes)}
		}
		if req.SessionID == "" {
			req.SessionID = r.RemoteAddr
		}

		answer, err := s.runQuery(r.Context(), req)
		if err != nil {
			s.writeFrame(conn, map[string]any{"type": "error", "error": err.Error()})
			continue
		}
		s.writeFrame(conn, map[string]any{"type": "answer", "data": answer})
	}
}

func (s *Server) writeFrame(conn *SafeConn, frame map[string]any) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error("Failed to marshal WS frame", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WS frame", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
