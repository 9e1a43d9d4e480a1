package promexport_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rapidx-dev/rapidx/stats"
	"github.com/rapidx-dev/rapidx/stats/promexport"
)

func TestUpdateMirrorsContextIntoGauges(t *testing.T) {
	ctx := stats.NewContext()
	ctx.Observe("x", 0.25)
	ctx.Observe("x", 0.75)
	ctx.RecordEvent("discarded")

	exporter := promexport.NewExporter("rapidx_test")
	exporter.Update(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(exporter.Collectors()...)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]bool{}
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "rapidx_test_") {
			continue
		}
		found[f.GetName()] = true
		for _, m := range f.GetMetric() {
			if m.GetGauge() == nil {
				t.Fatalf("expected %s to be a gauge metric", f.GetName())
			}
		}
	}
	for _, name := range []string{
		"rapidx_test_quantifier_index_mean",
		"rapidx_test_quantifier_sample_count",
		"rapidx_test_run_event_count",
	} {
		if !found[name] {
			t.Fatalf("expected registered metric family %q, families seen: %v", name, found)
		}
	}
}
