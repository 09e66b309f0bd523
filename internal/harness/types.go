package harness

// TraceEvent is one entry in a scenario's execution trace. Operations
// record what was attempted with which (resolved) parameters; outcomes
// record how the engine answered.
type TraceEvent struct {
	Type   string         `json:"type"` // "operation" or "outcome"
	Op     string         `json:"op,omitempty"`
	Params map[string]any `json:"params,omitempty"`
	Status string         `json:"status,omitempty"` // "ok" or a failure code
	Result map[string]any `json:"result,omitempty"`
	Seq    int64          `json:"seq"`
}

// StatusOK marks a successful outcome event.
const StatusOK = "ok"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every step behaved as
	// expected and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains all operations and outcomes in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains step and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// AddOperation appends an operation event to the trace.
func (r *Result) AddOperation(op string, params map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   "operation",
		Op:     op,
		Params: params,
		Seq:    seq,
	})
}

// AddOutcome appends an outcome event to the trace.
func (r *Result) AddOutcome(status string, result map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   "outcome",
		Status: status,
		Result: result,
		Seq:    seq,
	})
}
