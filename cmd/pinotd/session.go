package main

import (
	"bytes"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/superkooks/pinot/console"
	"github.com/superkooks/pinot/panel"
)

// session is everything a request may touch on the display. Only the queue's
// watcher goroutine uses it, jobs receive it explicitly.
type session struct {
	Console *console.Console
	Panel   *panel.Framebuffer
	Clients *clientSet
	Charset string
}

type job struct {
	source string
	run    func(s *session)
	done   chan struct{}
}

// Queue serializes every display request onto one goroutine.
type Queue struct {
	session *session
	jobs    chan job
	quit    chan struct{}
	once    sync.Once
}

func NewQueue(s *session) *Queue {
	q := &Queue{
		session: s,
		jobs:    make(chan job, 16),
		quit:    make(chan struct{}),
	}

	// Frames go out from the watcher goroutine, the only writer to clients
	s.Panel.OnShow = func(img *image.Gray) {
		if s.Clients.Len() == 0 {
			return
		}
		s.Clients.Broadcast(encodeFrame(img))
	}

	return q
}

// Do runs fn on the display and waits for it to finish. After Close it
// returns without running fn.
func (q *Queue) Do(source string, fn func(s *session)) {
	done := make(chan struct{})
	select {
	case q.jobs <- job{source: source, run: fn, done: done}:
	case <-q.quit:
		return
	}

	select {
	case <-done:
	case <-q.quit:
	}
}

// Watch carries out jobs until the queue is closed.
func (q *Queue) Watch() {
	for {
		select {
		case j := <-q.jobs:
			start := time.Now()
			j.run(q.session)
			metricJobTime.Observe(time.Since(start).Seconds())
			if j.source != "" {
				metricMessages.WithLabelValues(j.source).Inc()
			}
			close(j.done)

		case <-q.quit:
			return
		}
	}
}

func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.quit)
	})
}

func encodeFrame(img *image.Gray) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logger.DPanicw("unable to encode frame",
			"err", err)
		return nil
	}
	return buf.Bytes()
}
