package scrape

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesScraped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sourcing_scrape_pages_total",
			Help: "Total number of supplier pages processed by outcome",
		},
		[]string{"outcome"},
	)

	suppliersPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sourcing_scrape_suppliers_total",
			Help: "Total number of supplier records persisted by action",
		},
		[]string{"action"},
	)
)
