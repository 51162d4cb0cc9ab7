package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
	"github.com/Summus1999/InterviewSpark-sub000/internal/service"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Envelope is the wire frame pushed to subscribers.
type Envelope struct {
	Type string      `json:"type"`
	Ts   int64       `json:"ts"`
	Data interface{} `json:"data"`
}

// Server upgrades HTTP requests and wires the hub to the orchestrator's
// observer list.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer creates the WebSocket server and subscribes the hub to state
// and progress updates.
func NewServer(hub *Hub, svc *service.Service) *Server {
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The UI is a local desktop shell.
				return true
			},
		},
	}

	svc.Subscribe(func(snapshot domain.Snapshot) {
		if err := hub.BroadcastJSON(Envelope{Type: "state", Ts: time.Now().UnixMilli(), Data: snapshot}); err != nil {
			log.Printf("WARN: failed to broadcast state snapshot: %v", err)
		}
	})
	svc.SubscribeProgress(func(progress domain.ReportProgress) {
		if err := hub.BroadcastJSON(Envelope{Type: "report_progress", Ts: time.Now().UnixMilli(), Data: progress}); err != nil {
			log.Printf("WARN: failed to broadcast report progress: %v", err)
		}
	})
	return s
}

// HandleWebSocket handles the upgrade and connection lifecycle.
// GET /ws/state
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("WARN: failed to upgrade websocket: %v", err)
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)

	go s.writePump(conn)
	go s.readPump(conn)
	return nil
}

// readPump drains the socket. Subscribers send nothing meaningful; reads
// exist to detect disconnects and answer pings.
func (s *Server) readPump(conn *Connection) {
	defer func() {
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.Conn.SetReadLimit(1024)
	conn.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: websocket read error: %v", err)
			}
			return
		}
	}
}

func (s *Server) writePump(conn *Connection) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WARN: failed to write websocket message: %v", err)
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
