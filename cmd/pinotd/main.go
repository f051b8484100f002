package main

import (
	"net/http"

	"github.com/superkooks/pinot/console"
	"github.com/superkooks/pinot/panel"
	"github.com/superkooks/pinot/pnfont"
	"go.uber.org/zap"
)

var logger = zap.NewNop().Sugar()

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

// newSession opens the font and sets up the console on a fresh framebuffer.
func newSession(c Config, base *zap.Logger) (*session, func() error, error) {
	order, err := c.Order()
	if err != nil {
		return nil, nil, err
	}

	store, err := pnfont.Open(c.FontPath,
		pnfont.WithByteOrder(order),
		pnfont.WithLogger(base.Named("font")))
	if err != nil {
		return nil, nil, err
	}

	var font pnfont.Finder = store
	if c.CacheSize > 0 {
		font, err = pnfont.NewCache(store, c.CacheSize)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	fb := panel.NewFramebuffer(c.PanelWidth, c.PanelHeight)
	con, err := console.New(fb, font, console.WithLogger(base.Named("console")))
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	con.Clear()

	return &session{
		Console: con,
		Panel:   fb,
		Clients: new(clientSet),
		Charset: c.Charset,
	}, store.Close, nil
}

func main() {
	boot, _ := zap.NewProduction()
	logger = boot.Sugar()

	c, err := LoadConfig(CONFIG_LOCATION)
	if err != nil {
		logger.Panicw("unable to load config",
			"location", CONFIG_LOCATION,
			"err", err)
	}

	base, err := newLogger(c.LogLevel)
	if err != nil {
		logger.Panicw("unable to build logger",
			"level", c.LogLevel,
			"err", err)
	}
	defer base.Sync()
	logger = base.Sugar()

	sess, closeFont, err := newSession(c, base)
	if err != nil {
		logger.Panicw("unable to set up display",
			"font", c.FontPath,
			"err", err)
	}
	defer closeFont()

	q := NewQueue(sess)
	go q.Watch()

	q.Do("", func(s *session) {
		s.Console.Echo("pinotd", 0)
	})

	if c.XPL {
		node, err := xplInit(q)
		if err != nil {
			logger.Panicw("unable to start xpl",
				"err", err)
		}
		go node.Listener()
		go node.Heartbeat()
	}

	logger.Infow("serving api",
		"listen", c.Listen,
		"panel", [2]int{c.PanelWidth, c.PanelHeight})
	logger.Panic(http.ListenAndServe(c.Listen, newRouter(q, c.Charset)))
}
