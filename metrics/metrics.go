package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/rollover"
)

const namespace = "ksk_helper"

// Recorder collects the outcome of checks and writes it for the node exporter textfile collector.
// Every Recorder has its own registry.
type Recorder struct {
	reg *prometheus.Registry

	buildInfo    *prometheus.GaugeVec
	phase        *prometheus.GaugeVec
	keys         *prometheus.GaugeVec
	parentDS     *prometheus.GaugeVec
	unknownDS    *prometheus.GaugeVec
	instructions *prometheus.GaugeVec
	success      *prometheus.GaugeVec
	lastCheck    *prometheus.GaugeVec

	now func() time.Time
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder(version, buildTime string) *Recorder {
	r := &Recorder{
		reg:          prometheus.NewRegistry(),
		buildInfo:    buildInfoGauge(),
		phase:        phaseGauge(),
		keys:         keysGauge(),
		parentDS:     parentDSGauge(),
		unknownDS:    unknownDSGauge(),
		instructions: instructionsGauge(),
		success:      successGauge(),
		lastCheck:    lastCheckGauge(),
		now:          time.Now,
	}

	r.reg.MustRegister(r.buildInfo, r.phase, r.keys, r.parentDS, r.unknownDS, r.instructions, r.success, r.lastCheck)

	r.buildInfo.WithLabelValues(version, buildTime).Set(1)

	return r
}

// Registry returns the registry the metrics live in
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Record stores the outcome of a check. A failed check keeps what it learned before failing.
func (r *Recorder) Record(res *rollover.Result, err error) {
	if res == nil {
		return
	}

	zone := res.Zone

	r.lastCheck.WithLabelValues(zone).Set(float64(r.now().Unix()))
	r.success.WithLabelValues(zone).Set(boolToFloat(err == nil))

	if res.Keys != nil {
		perState := make(map[model.KeyState]int)
		for _, k := range res.Keys.Keys() {
			perState[k.State]++
		}

		for _, name := range model.KeyStateNames() {
			state, _ := model.ParseKeyState(name)
			r.keys.WithLabelValues(zone, name).Set(float64(perState[state]))
		}
	}

	if res.DS != nil {
		r.parentDS.WithLabelValues(zone).Set(float64(len(res.DS.Records)))
	}

	if res.Evaluation == nil {
		return
	}

	ev := res.Evaluation

	for _, name := range rollover.PhaseNames() {
		r.phase.WithLabelValues(zone, name).Set(boolToFloat(name == ev.Phase.String()))
	}

	r.unknownDS.WithLabelValues(zone).Set(float64(len(ev.UnknownDS)))
	r.instructions.WithLabelValues(zone).Set(float64(len(ev.Instructions)))
}

// WriteTextfile writes all metrics to path in the text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("can't write metrics to '%s': %w", path, err)
	}

	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

func buildInfoGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Version number and build info",
		}, []string{"version", "build_time"},
	)
}

func phaseGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rollover_phase",
			Help:      "Rollover phase of the zone, 1 for the current phase",
		}, []string{"zone", "phase"},
	)
}

func keysGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ksk_keys",
			Help:      "Number of KSKs known to the enforcer per state",
		}, []string{"zone", "state"},
	)
}

func parentDSGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parent_ds_records",
			Help:      "Number of DS records at the parent authority",
		}, []string{"zone"},
	)
}

func unknownDSGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parent_ds_unknown",
			Help:      "Number of DS records at the parent matching no enforcer key",
		}, []string{"zone"},
	)
}

func instructionsGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_instructions",
			Help:      "Number of operator steps needed",
		}, []string{"zone"},
	)
}

func successGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "check_success",
			Help:      "1 if the last check completed",
		}, []string{"zone"},
	)
}

func lastCheckGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_check_timestamp_seconds",
			Help:      "Unix time of the last check",
		}, []string{"zone"},
	)
}
