package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// queueSnapshotInterval is how often the stream re-reads the station queue.
const queueSnapshotInterval = 5 * time.Second

// queueStream pushes station queue snapshots to one connected client.
type queueStream struct {
	conn      *websocket.Conn
	send      chan []byte
	stationID string
	server    *Server
}

// handleQueueStream upgrades the connection and streams the station's queue:
// an immediate snapshot, then one every interval, then one whenever the
// client sends a message.
func (s *Server) handleQueueStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	stream := &queueStream{
		conn:      conn,
		send:      make(chan []byte, 16),
		stationID: c.Param("id"),
		server:    s,
	}

	go stream.writePump()
	go stream.readPump()
	stream.pushSnapshot()
}

// readPump consumes client messages; any message requests a fresh snapshot.
func (q *queueStream) readPump() {
	defer q.conn.Close()

	q.conn.SetReadLimit(4 * 1024)
	q.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	q.conn.SetPongHandler(func(string) error {
		q.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := q.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		q.pushSnapshot()
	}
}

// writePump delivers queued snapshots and keeps the connection alive with
// periodic pings and refreshed snapshots.
func (q *queueStream) writePump() {
	ticker := time.NewTicker(queueSnapshotInterval)
	defer func() {
		ticker.Stop()
		q.conn.Close()
	}()

	for {
		select {
		case message, ok := <-q.send:
			q.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				q.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := q.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			q.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := q.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			q.pushSnapshot()
		}
	}
}

// pushSnapshot reads the current queue and enqueues it for delivery.
func (q *queueStream) pushSnapshot() {
	result, err := q.server.service.Dispatcher.Queue(q.stationID, 0)
	if err != nil {
		log.Printf("Queue snapshot failed for station %s: %v", q.stationID, err)
		return
	}
	envelope := map[string]interface{}{
		"station_id": q.stationID,
		"at":         time.Now().UTC().Format(time.RFC3339),
		"result":     result,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}
	select {
	case q.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping snapshot")
	}
}
