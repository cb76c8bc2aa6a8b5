package oasis

// Status is the outcome variant of one extraction.
type Status string

const (
	StatusResolved           Status = "resolved"
	StatusInsufficient       Status = "insufficient"
	StatusParseFailed        Status = "parse_failed"
	StatusCollaboratorFailed Status = "collaborator_failed"
)

// Failed reports whether s carries a diagnostic.
func (s Status) Failed() bool {
	return s == StatusParseFailed || s == StatusCollaboratorFailed
}

// Outcome is the result of extracting one element. Fields is set only when
// resolved, Diagnostic only for failures.
type Outcome struct {
	Status     Status
	Fields     map[string]any
	Diagnostic string
}

// Resolved is a successful extraction.
func Resolved(fields map[string]any) Outcome {
	return Outcome{Status: StatusResolved, Fields: fields}
}

// Insufficient means the transcript held nothing for the element.
func Insufficient() Outcome {
	return Outcome{Status: StatusInsufficient}
}

// ParseFailed means the model's reply was not a JSON object.
func ParseFailed(diagnostic string) Outcome {
	return Outcome{Status: StatusParseFailed, Diagnostic: diagnostic}
}

// CollaboratorFailed means the completion call itself failed.
func CollaboratorFailed(diagnostic string) Outcome {
	return Outcome{Status: StatusCollaboratorFailed, Diagnostic: diagnostic}
}

// Result aggregates one run. Elements has an entry for every registry
// element, nil when absent. Errors only holds failed elements.
type Result struct {
	Elements map[string]map[string]any `json:"elements"`
	Errors   map[string]string         `json:"errors"`
	Status   map[string]Status         `json:"status"`
}

func newResult(n int) *Result {
	return &Result{
		Elements: make(map[string]map[string]any, n),
		Errors:   make(map[string]string),
		Status:   make(map[string]Status, n),
	}
}

func (r *Result) record(id string, o Outcome) {
	r.Elements[id] = o.Fields
	r.Status[id] = o.Status
	if o.Status.Failed() {
		r.Errors[id] = o.Diagnostic
	}
}
