package bookings

import (
	"net/http"
	"sync"

	"reveo/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS serves GET /ws/booking/:venueId. Venue dashboards subscribe here
// and receive a nudge whenever the venue's booking set changes. Browsers
// cannot set headers on a websocket request, so the token may arrive as a
// query parameter instead.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("venueId")

	token := r.Header.Get("Authorization")
	if token == "" {
		token = "Bearer " + r.URL.Query().Get("token")
	}
	if _, err := middleware.ValidateJWT(token); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[venueID] = append(subscribers[venueID], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[venueID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[venueID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastUpdate tells every dashboard watching a venue to refetch. Dead
// connections are dropped as they fail.
func BroadcastUpdate(venueID string) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[venueID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"bookingsChanged"}`)); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[venueID] = newList
}
