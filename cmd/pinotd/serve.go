package main

import (
	"image"
	"image/png"
	"io"
	"mime"
	"net/http"

	"github.com/Jeffail/gabs/v2"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type server struct {
	q       *Queue
	charset string
}

func newRouter(q *Queue, charset string) *mux.Router {
	s := &server{q: q, charset: charset}

	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Path("/text").Methods("POST", "OPTIONS").HandlerFunc(s.text)
	r.Path("/echo").Methods("POST", "OPTIONS").HandlerFunc(s.echo)
	r.Path("/clear").Methods("POST", "OPTIONS").HandlerFunc(s.clear)
	r.Path("/banner").Methods("GET").HandlerFunc(s.banner)
	r.Path("/framebuffer.png").Methods("GET").HandlerFunc(s.framebuffer)
	r.Path("/ws").HandlerFunc(s.websocket)
	r.Path("/metrics").Handler(promhttp.Handler())
	return r
}

// text renders a JSON body {"text": ...} or a raw body in the charset given
// by the query, falling back to the configured one.
func (s *server) text(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		http.Error(w, "unable to read body", http.StatusBadRequest)
		return
	}

	var text string
	if isJSON(r) {
		body, err := gabs.ParseJSON(b)
		if err != nil {
			logger.Warnw("unable to parse text request",
				"err", err)
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var ok bool
		text, ok = body.Path("text").Data().(string)
		if !ok {
			http.Error(w, "missing text", http.StatusBadRequest)
			return
		}
	} else {
		charset := r.URL.Query().Get("charset")
		if charset == "" {
			charset = s.charset
		}

		text, err = toUTF8(charset, b)
		if err != nil {
			logger.Warnw("unable to convert text",
				"charset", charset,
				"err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.q.Do("http", func(sess *session) {
		sess.Console.Text(text)
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) echo(w http.ResponseWriter, r *http.Request) {
	body, err := gabs.ParseJSONBuffer(r.Body)
	r.Body.Close()
	if err != nil {
		logger.Warnw("unable to parse echo request",
			"err", err)
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	text, ok := body.Path("text").Data().(string)
	if !ok {
		http.Error(w, "missing text", http.StatusBadRequest)
		return
	}

	// Numbers decode as float64
	line := 0
	if l, ok := body.Path("line").Data().(float64); ok {
		line = int(l)
	}

	s.q.Do("http", func(sess *session) {
		sess.Console.Echo(text, line)
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) clear(w http.ResponseWriter, r *http.Request) {
	s.q.Do("http", func(sess *session) {
		sess.Console.Clear()
		sess.Panel.Show()
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) banner(w http.ResponseWriter, r *http.Request) {
	var banner string
	s.q.Do("", func(sess *session) {
		banner = sess.Console.Banner(r.URL.Query().Get("text"))
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, banner)
}

func (s *server) framebuffer(w http.ResponseWriter, r *http.Request) {
	var img *image.Gray
	s.q.Do("", func(sess *session) {
		img = sess.Panel.Image()
	})
	if img == nil {
		http.Error(w, "display is shutting down", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		logger.Debugw("unable to write framebuffer",
			"err", err)
	}
}

func (s *server) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnw("unable to upgrade websocket",
			"err", err)
		return
	}

	c := &Client{Conn: conn}
	s.q.Do("", func(sess *session) {
		sess.Clients.Add(c)

		// Start the client off with what is on the glass
		if err := c.Send(encodeFrame(sess.Panel.Image())); err != nil {
			logger.Debugw("unable to send first frame",
				"err", err)
		}
	})

	go c.Listener(s.q)
}

func isJSON(r *http.Request) bool {
	t, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && t == "application/json"
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Access-Control-Allow-Origin", "*")
		if r.Method == "OPTIONS" {
			w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
			return
		}

		next.ServeHTTP(w, r)
	})
}
