package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	FontPath string `json:"fontPath"`
	// "big" or "little", fonts from the MicroPython tools are little-endian
	ByteOrder   string `json:"byteOrder"`
	CacheSize   int    `json:"cacheSize"`
	PanelWidth  int    `json:"panelWidth"`
	PanelHeight int    `json:"panelHeight"`
	Listen      string `json:"listen"`
	XPL         bool   `json:"xpl"`
	// Charset of raw text arriving over xPL or plain HTTP bodies
	Charset  string `json:"charset"`
	LogLevel string `json:"logLevel"`
}

const CONFIG_LOCATION = "pinotd.json"

var defaultConfig = Config{
	FontPath:    "fonts/shnmk14u.pfn",
	ByteOrder:   "big",
	CacheSize:   256,
	PanelWidth:  128,
	PanelHeight: 160,
	Listen:      ":9001",
	XPL:         false,
	Charset:     "utf-8",
	LogLevel:    "info",
}

// LoadConfig reads the config at path, writing the defaults there first if
// there is nothing to read.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		c := defaultConfig
		if err := SaveConfig(path, c); err != nil {
			return c, err
		}
		return c, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c := defaultConfig
	d := json.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse config %v: %w", path, err)
	}

	if c.PanelWidth <= 0 || c.PanelHeight <= 0 {
		return Config{}, fmt.Errorf("invalid panel size %dx%d", c.PanelWidth, c.PanelHeight)
	}
	if _, err := c.Order(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func SaveConfig(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	e := json.NewEncoder(f)
	e.SetIndent("", "  ")
	if err := e.Encode(&c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func (c Config) Order() (binary.ByteOrder, error) {
	switch c.ByteOrder {
	case "", "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", c.ByteOrder)
	}
}
