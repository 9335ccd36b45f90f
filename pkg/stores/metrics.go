package stores

import "github.com/prometheus/client_golang/prometheus"

var itemsDesc = prometheus.NewDesc(
	"daybook_store_items",
	"Number of entities held in the in-memory store, by kind.",
	[]string{"kind"}, nil,
)

// Collector exposes the item count of every store as a gauge.
type Collector struct {
	r *Registry
}

// Collector returns a prometheus.Collector reporting store sizes at scrape
// time.
func (r *Registry) Collector() *Collector {
	return &Collector{r: r}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- itemsDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, kind := range c.r.Kinds() {
		n, err := c.r.Len(kind)
		if err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(itemsDesc, prometheus.GaugeValue, float64(n), kind)
	}
}
