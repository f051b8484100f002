package main

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type string          `json:"type"`
	Line int             `json:"line"`
	Data json.RawMessage `json:"data"`
}

type Client struct {
	Conn *websocket.Conn
}

// Listener turns events from a web client into display jobs until the
// client goes away.
func (c *Client) Listener(q *Queue) {
	for {
		var e Event
		err := c.Conn.ReadJSON(&e)
		if err != nil {
			logger.Debugw("client disconnected",
				"err", err)
			q.Do("", func(s *session) {
				s.Clients.Remove(c)
			})
			return
		}

		switch e.Type {
		case "TEXT", "ECHO":
			var text string
			err := json.Unmarshal(e.Data, &text)
			if err != nil {
				logger.Warnw("unable to unmarshal event",
					"err", err)
				continue
			}

			if e.Type == "TEXT" {
				q.Do("websocket", func(s *session) {
					s.Console.Text(text)
				})
			} else {
				q.Do("websocket", func(s *session) {
					s.Console.Echo(text, e.Line)
				})
			}

		case "CLEAR":
			q.Do("websocket", func(s *session) {
				s.Console.Clear()
				s.Panel.Show()
			})

		default:
			logger.Warnw("received unknown event from web client",
				"event", e.Type)
		}
	}
}

// Send writes one frame. Only the queue watcher calls it.
func (c *Client) Send(frame []byte) error {
	return c.Conn.WriteMessage(websocket.BinaryMessage, frame)
}

type clientSet struct {
	m       sync.Mutex
	clients []*Client
}

func (cs *clientSet) Add(c *Client) {
	cs.m.Lock()
	defer cs.m.Unlock()
	cs.clients = append(cs.clients, c)
	metricConnectedClients.Inc()
}

func (cs *clientSet) Remove(c *Client) {
	cs.m.Lock()
	defer cs.m.Unlock()
	for k, v := range cs.clients {
		if v == c {
			cs.clients = append(cs.clients[:k], cs.clients[k+1:]...)
			metricConnectedClients.Dec()
			c.Conn.Close()
			return
		}
	}
}

func (cs *clientSet) Broadcast(frame []byte) {
	if frame == nil {
		return
	}

	cs.m.Lock()
	clients := append([]*Client(nil), cs.clients...)
	cs.m.Unlock()

	for _, c := range clients {
		err := c.Send(frame)
		if err != nil {
			logger.Debugw("unable to send frame",
				"err", err)
			cs.Remove(c)
			continue
		}
		metricFramesTx.Inc()
	}
}

func (cs *clientSet) Len() int {
	cs.m.Lock()
	defer cs.m.Unlock()
	return len(cs.clients)
}
