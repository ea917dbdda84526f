package layoutserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const wsWriteTimeout = 10 * time.Second

// upgrader accepts any origin: the preview socket serves local editor tooling
// and carries no credentials or mutable state.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// previewRequest is one message on the preview socket.
type previewRequest struct {
	StageID string `json:"stage_id"`
	Seed    string `json:"seed"`
}

// previewFrame answers a preview request. Type is "layout" on success and
// "error" otherwise.
type previewFrame struct {
	Type    string            `json:"type"`
	StageID string            `json:"stage_id,omitempty"`
	Seed    string            `json:"seed,omitempty"`
	Result  *generationResult `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// handlePreview runs the request/response loop of one preview connection:
// every {stage_id, seed} message is answered with a generated layout frame.
// The connection closes when the client disconnects or sends a malformed
// message.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("preview socket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.logger.Debug("preview socket opened",
		zap.String("remote", conn.RemoteAddr().String()),
	)
	for {
		var req previewRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("preview socket read failed", zap.Error(err))
			}
			return
		}
		if !s.writeFrame(conn, s.previewFrameFor(req)) {
			return
		}
	}
}

// previewFrameFor resolves one preview request into its response frame.
func (s *Server) previewFrameFor(req previewRequest) previewFrame {
	if req.StageID == "" {
		return previewFrame{Type: "error", Error: "stage_id is required"}
	}
	seed := req.Seed
	if seed == "" {
		seed = s.cfg.Generation.DefaultSeed
	}
	if s.catalog.Stage(req.StageID) == nil {
		return previewFrame{Type: "error", StageID: req.StageID, Error: "unknown stage " + req.StageID}
	}
	res, err := s.generateCached(req.StageID, seed)
	if err != nil {
		s.logger.Error("preview generation failed",
			zap.String("stage", req.StageID),
			zap.String("seed", seed),
			zap.Error(err),
		)
		return previewFrame{Type: "error", StageID: req.StageID, Seed: seed, Error: "generation failed"}
	}
	return previewFrame{Type: "layout", StageID: req.StageID, Seed: seed, Result: res}
}

func (s *Server) writeFrame(conn *websocket.Conn, frame previewFrame) bool {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		s.logger.Debug("preview socket write failed", zap.Error(err))
		return false
	}
	return true
}
