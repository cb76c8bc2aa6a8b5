package oasis

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/oasisdoc/diarization"
	"github.com/kbukum/oasisdoc/llm"
	"github.com/kbukum/oasisdoc/observability"
	"github.com/kbukum/oasisdoc/provider"
)

func TestRunFailureIsolation(t *testing.T) {
	fake := newScripted(t)
	fake.fail["Element A"] = errUpstream
	fake.replies["Element B"] = `{"value": "b"}`
	fake.replies["Element C"] = `{"value": "c"}`

	r := mustRegistry(t, testElement("A"), testElement("B"), testElement("C", "A", "B"))
	p := NewPipeline(r, NewExtractor(fake.completer(), 0, nil))

	res := p.Run(context.Background(), "Visit notes.")

	wantCtx := map[string]map[string]any{"B": {"value": "b"}}
	if diff := cmp.Diff(wantCtx, fake.contexts["Element C"]); diff != "" {
		t.Errorf("C context mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"A": "Error processing element Element A: upstream unavailable"}, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	wantElements := map[string]map[string]any{
		"A": nil,
		"B": {"value": "b"},
		"C": {"value": "c"},
	}
	if diff := cmp.Diff(wantElements, res.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	wantStatus := map[string]Status{"A": StatusCollaboratorFailed, "B": StatusResolved, "C": StatusResolved}
	if diff := cmp.Diff(wantStatus, res.Status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestRunContextHoldsOnlyResolvedDeclaredDeps(t *testing.T) {
	fake := newScripted(t)
	fake.replies["Element A"] = `{"value": "a"}`
	fake.replies["Element B"] = `{"value": "b"}`
	fake.replies["Element C"] = `{}`
	fake.replies["Element D"] = `not json`

	r := mustRegistry(t,
		testElement("A"),
		testElement("B"),
		testElement("C", "A"),
		testElement("D", "C"),
		testElement("E", "A", "C", "D"),
	)
	p := NewPipeline(r, NewExtractor(fake.completer(), 0, nil))
	res := p.Run(context.Background(), "x")

	want := map[string]map[string]map[string]any{
		"Element A": {},
		"Element B": {},
		"Element C": {"A": {"value": "a"}},
		"Element D": {},
		"Element E": {"A": {"value": "a"}},
	}
	if diff := cmp.Diff(want, fake.contexts); diff != "" {
		t.Errorf("contexts mismatch (-want +got):\n%s", diff)
	}
	if _, ok := res.Errors["C"]; ok {
		t.Error("insufficient element must not record an error")
	}
	if !strings.HasPrefix(res.Errors["D"], "JSON parsing error for Element D") {
		t.Errorf("D error = %q", res.Errors["D"])
	}
	if res.Status["C"] != StatusInsufficient || res.Status["D"] != StatusParseFailed {
		t.Errorf("status = %v", res.Status)
	}
}

func TestRunEmptyTranscript(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	fake := newScripted(t)
	p := NewPipeline(r, NewExtractor(fake.completer(), 0, nil))

	res := p.Run(context.Background(), "")

	if len(res.Elements) != r.Len() {
		t.Fatalf("elements = %d, want %d", len(res.Elements), r.Len())
	}
	for _, id := range r.IDs() {
		v, ok := res.Elements[id]
		if !ok {
			t.Errorf("%s missing from result", id)
		}
		if v != nil {
			t.Errorf("%s = %v, want absent", id, v)
		}
		if res.Status[id] != StatusInsufficient {
			t.Errorf("%s status = %s", id, res.Status[id])
		}
	}
	if len(res.Errors) != 0 {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestRunUsesCombinedTranscript(t *testing.T) {
	var prompts []string
	completer := provider.Func("capture", func(_ context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
		prompts = append(prompts, req.Messages[0].Content)
		return llm.CompletionResponse{Content: "{}"}, nil
	})
	p := NewPipeline(mustRegistry(t, testElement("A")), NewExtractor(completer, 0, nil),
		WithSegmenter(diarization.New(diarization.Config{})))

	p.Run(context.Background(), "Patient says hi. Pulse 70. Lungs clear.")

	want := "Transcript: Pulse 70. Lungs clear. Patient says hi.\n"
	if len(prompts) != 1 || !strings.Contains(prompts[0], want) {
		t.Errorf("prompt does not carry the combined transcript %q:\n%v", want, prompts)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	fake := newScripted(t)
	fake.replies["Risk for Hospitalization"] = `{"risk_factors": ["history of falls"]}`
	fake.replies["Grooming"] = "```json\n{\"grooming_ability\": \"Needs assistance\"}\n```"
	fake.replies["Bathing"] = `not json`
	fake.fail["Vital Signs"] = errUpstream
	fake.replies["Clinical Statement of Summary"] = `{"summary": "Stable"}`

	p := NewPipeline(r, NewExtractor(fake.completer(), 0, nil))
	transcript := "Clinician examined patient. Patient says they feel dizzy."

	first := p.Run(context.Background(), transcript)
	second := p.Run(context.Background(), transcript)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]map[string]any{
		"M1033": {"risk_factors": []any{"history of falls"}},
		"M1800": {"grooming_ability": "Needs assistance"},
	}, fake.contexts["Clinical Statement of Summary"]); diff != "" {
		t.Errorf("summary context mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConcurrent(t *testing.T) {
	fake := newScripted(t)
	fake.replies["Element A"] = `{"value": "a"}`
	p := NewPipeline(mustRegistry(t, testElement("A"), testElement("B", "A")), NewExtractor(fake.completer(), 0, nil))

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Run(context.Background(), "x")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("run %d differs:\n%s", i, diff)
		}
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	fake := newScripted(t)
	fake.replies["Element A"] = `{"value": "a"}`
	fake.fail["Element B"] = errUpstream
	p := NewPipeline(mustRegistry(t, testElement("A"), testElement("B")), NewExtractor(fake.completer(), 0, nil),
		WithMetrics(metrics))
	p.Run(context.Background(), "x")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "extraction.total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				el, _ := dp.Attributes.Value(attribute.Key("element"))
				st, _ := dp.Attributes.Value(attribute.Key("status"))
				got[el.AsString()+"/"+st.AsString()] += dp.Value
			}
		}
	}
	want := map[string]int64{"A/resolved": 1, "B/collaborator_failed": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extraction.total mismatch (-want +got):\n%s", diff)
	}
}
