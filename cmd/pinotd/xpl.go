package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

type xplMessage struct {
	messageType string
	source      string
	target      string
	schema      string
	body        map[string]string
}

const (
	xplSource   = "superkooks-pinotd.default"
	xplHubPort  = 3865
	xplInterval = time.Minute
)

func compileXPL(x xplMessage) string {
	m := fmt.Sprintf(`%v
{
hop=1
source=%v
target=%v
}
%v
{
`, x.messageType, xplSource, x.target, x.schema)

	for k, v := range x.body {
		m += k + "=" + v + "\n"
	}

	return m + "}\n"
}

// parseXPL reads a message of the form
//
//	type { hop, source, target } schema { body }
func parseXPL(msg string) (xplMessage, error) {
	x := xplMessage{body: make(map[string]string)}
	split := strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
	if len(split) < 7 || split[1] != "{" {
		return x, fmt.Errorf("malformed xpl message")
	}

	x.messageType = split[0]
	x.schema = split[6]

	for _, line := range split {
		sub := strings.SplitN(line, "=", 2)
		if len(sub) == 2 {
			x.body[sub[0]] = sub[1]
		}
	}

	x.source = x.body["source"]
	delete(x.body, "source")
	x.target = x.body["target"]
	delete(x.body, "target")
	delete(x.body, "hop")

	return x, nil
}

// osdJob turns an osd.basic command into display work.
func osdJob(x xplMessage) (func(s *session), error) {
	if x.schema != "osd.basic" {
		return nil, fmt.Errorf("unsupported schema %q", x.schema)
	}

	switch x.body["command"] {
	case "clear":
		return func(s *session) {
			s.Console.Clear()
			s.Panel.Show()
		}, nil

	case "", "write", "exclusive":
		raw := x.body["text"]
		// xPL cannot carry newlines, senders use a literal \n
		raw = strings.ReplaceAll(raw, `\n`, "\n")

		row, hasRow := x.body["row"]
		line := 0
		if hasRow {
			var err error
			line, err = strconv.Atoi(row)
			if err != nil {
				return nil, fmt.Errorf("invalid row %q", row)
			}
		}

		return func(s *session) {
			text, err := toUTF8(s.Charset, []byte(raw))
			if err != nil {
				logger.Warnw("unable to convert xpl text",
					"charset", s.Charset,
					"err", err)
				return
			}

			if hasRow {
				s.Console.Echo(text, line)
			} else {
				s.Console.Text(text)
			}
		}, nil

	case "release":
		return func(*session) {}, nil

	default:
		return nil, fmt.Errorf("unknown osd command %q", x.body["command"])
	}
}

type xplNode struct {
	conn *net.UDPConn
	q    *Queue
}

func xplInit(q *Queue) (*xplNode, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return nil, fmt.Errorf("xpl listen: %w", err)
	}

	return &xplNode{conn: conn, q: q}, nil
}

func (n *xplNode) send(m xplMessage) {
	hub := &net.UDPAddr{IP: net.IPv4bcast, Port: xplHubPort}
	_, err := n.conn.WriteToUDP([]byte(compileXPL(m)), hub)
	if err != nil {
		logger.Warnw("unable to send xpl message",
			"schema", m.schema,
			"err", err)
	}
}

func (n *xplNode) Listener() {
	for {
		b := make([]byte, 1500)
		c, _, err := n.conn.ReadFromUDP(b)
		if err != nil {
			logger.Errorw("unable to read xpl packet",
				"err", err)
			return
		}

		x, err := parseXPL(string(b[:c]))
		if err != nil {
			logger.Debugw("dropping xpl packet",
				"err", err)
			continue
		}
		if x.schema != "osd.basic" {
			continue
		}

		fn, err := osdJob(x)
		if err != nil {
			logger.Warnw("unable to handle osd message",
				"source", x.source,
				"err", err)
			continue
		}
		n.q.Do("xpl", fn)
	}
}

func (n *xplNode) Heartbeat() {
	addr := n.conn.LocalAddr().(*net.UDPAddr)

	for {
		n.send(xplMessage{
			messageType: "xpl-stat",
			target:      "*",
			schema:      "hbeat.app",
			body: map[string]string{
				"interval": strconv.Itoa(int(xplInterval / time.Minute)),
				"port":     strconv.Itoa(addr.Port),
			},
		})
		time.Sleep(xplInterval)
	}
}
