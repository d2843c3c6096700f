// Package metrics holds the Prometheus registry and the collectors the portal
// exposes at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alumni_portal"

// Registry is the process-wide registry; nothing is registered on the
// prometheus default registry.
var Registry = prometheus.NewRegistry()

// MutationsTotal counts audited writes by resource, action and outcome.
var MutationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of audited create/update/delete operations",
	},
	[]string{"resource", "action", "status"},
)

// LoginsTotal counts login attempts. result: success|failure
var LoginsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts",
	},
	[]string{"result"},
)

// EventListingStatus tracks how many events fell in each status on the most
// recent listing.
var EventListingStatus = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "event_listing_status",
		Help:      "Number of events per derived status in the last listing",
	},
	[]string{"status"},
)

// NotificationsPublished counts event notices handed to the broker.
var NotificationsPublished = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of event notifications published",
	},
	[]string{"kind", "result"},
)

// Init registers the Go runtime and process collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
