package pnfont

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pinot_font_lookups_total",
	Help: "The total number of glyph lookups against font files, by result",
}, []string{"result"})

var metricCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pinot_font_cache_hits_total",
	Help: "The total number of glyph lookups answered from the cache",
})
