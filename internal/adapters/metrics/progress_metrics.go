package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// ProgressCollector exposes the tracker's progress as gauges
type ProgressCollector struct {
	levelsCompleted   prometheus.Gauge
	levelsTotal       prometheus.Gauge
	readyUpgrades     prometheus.Gauge
	materialDeficits  prometheus.Gauge
	pieceLevel        *prometheus.GaugeVec
	materialRemaining *prometheus.GaugeVec
	materialInventory *prometheus.GaugeVec
}

// NewProgressCollector creates a new progress metrics collector
func NewProgressCollector() *ProgressCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	gaugeVec := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &ProgressCollector{
		levelsCompleted:   gauge("levels_completed", "Upgrade levels already applied across all pieces"),
		levelsTotal:       gauge("levels_total", "Upgrade levels available across all pieces"),
		readyUpgrades:     gauge("ready_upgrades", "Pieces whose next level is affordable now"),
		materialDeficits:  gauge("material_deficits", "Materials held in smaller quantity than still required"),
		pieceLevel:        gaugeVec("piece_level", "Current upgrade level per armor piece", "piece", "category"),
		materialRemaining: gaugeVec("material_remaining", "Quantity still required to finish every upgrade", "material"),
		materialInventory: gaugeVec("material_inventory", "Quantity held", "material"),
	}
}

// Register registers all progress metrics with the registry
func (c *ProgressCollector) Register(registry prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.levelsCompleted,
		c.levelsTotal,
		c.readyUpgrades,
		c.materialDeficits,
		c.pieceLevel,
		c.materialRemaining,
		c.materialInventory,
	}
	for _, metric := range metrics {
		if err := registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces every gauge with values computed from d and s
func (c *ProgressCollector) Update(d *armor.Dataset, s *progress.State) {
	summary := requirements.Counts(d, s)

	c.levelsCompleted.Set(float64(summary.CompletedLevels))
	c.levelsTotal.Set(float64(summary.TotalLevels))
	c.readyUpgrades.Set(float64(len(requirements.ReadyUpgrades(d, s))))
	c.materialDeficits.Set(float64(requirements.DeficitCount(s, summary.RemainingReq)))

	c.pieceLevel.Reset()
	for _, p := range d.ArmorPieces {
		c.pieceLevel.WithLabelValues(p.ID, p.Category()).Set(float64(s.Level(p.ID)))
	}

	c.materialRemaining.Reset()
	c.materialInventory.Reset()
	for _, m := range d.Materials {
		c.materialRemaining.WithLabelValues(m.ID).Set(float64(summary.RemainingReq[m.ID]))
		c.materialInventory.WithLabelValues(m.ID).Set(float64(s.Held(m.ID)))
	}
}
