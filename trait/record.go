// Package trait defines the canonical record shapes produced by the
// digitization pipeline and the regularization logic that turns raw model
// output into them. It is the single place where "is this response usable?"
// is decided.
package trait

// Record is one characteristic/value pair extracted from a description.
// Name is always lowercase; Value is never empty once regularized.
type Record struct {
	Name  string `json:"characteristic"`
	Value string `json:"value"`
}

// TableRecord is one characteristic row of a multi-sample table. Values maps
// every tabulated sample ID to that sample's value; a sample the description
// does not cover carries an explicit "NA" value, never a missing key.
type TableRecord struct {
	Name   string            `json:"characteristic"`
	Values map[string]string `json:"values"`
}

// Sample is one source text unit to be processed.
type Sample struct {
	ID   string
	Text string
}

// Kind classifies how a generation attempt turned out.
type Kind int

const (
	// KindSuccess means the response decoded into the expected record shape.
	KindSuccess Kind = iota
	// KindBadStructure means the response was valid JSON of the wrong shape.
	KindBadStructure
	// KindInvalidJSON means the response could not be decoded at all.
	KindInvalidJSON
)

// Phase records which generation pass produced an outcome.
type Phase int

const (
	// PhaseInitial is the first generation call for a sample.
	PhaseInitial Phase = iota
	// PhaseFollowup is the corrective second call.
	PhaseFollowup
)

// Status strings as they appear in persisted run summaries.
const (
	StatusSuccess              = "success"
	StatusBadStructure         = "bad_structure"
	StatusInvalidJSON          = "invalid_json"
	StatusBadStructureFollowup = "bad_structure_followup"
	StatusInvalidJSONFollowup  = "invalid_json_followup"
)

// Outcome is the result of regularizing one flat-record response. Exactly one
// of Records/Raw is meaningful, selected by Kind.
type Outcome struct {
	Kind    Kind
	Phase   Phase
	Records []Record
	Raw     string
}

// Success builds a successful outcome carrying regularized records.
func Success(records []Record) Outcome {
	return Outcome{Kind: KindSuccess, Records: records}
}

// BadStructure builds a failed outcome for well-formed JSON of the wrong shape.
func BadStructure(raw string) Outcome {
	return Outcome{Kind: KindBadStructure, Raw: raw}
}

// InvalidJSON builds a failed outcome for undecodable text.
func InvalidJSON(raw string) Outcome {
	return Outcome{Kind: KindInvalidJSON, Raw: raw}
}

// OK reports whether the outcome carries usable records.
func (o Outcome) OK() bool { return o.Kind == KindSuccess }

// InPhase returns a copy of the outcome tagged with the given phase.
func (o Outcome) InPhase(p Phase) Outcome {
	o.Phase = p
	return o
}

// Status renders the kind/phase pair as the persisted status string. A
// successful corrective pass is plain "success"; only failures carry the
// followup suffix, so failure provenance is never ambiguous.
func (o Outcome) Status() string {
	switch o.Kind {
	case KindSuccess:
		return StatusSuccess
	case KindBadStructure:
		if o.Phase == PhaseFollowup {
			return StatusBadStructureFollowup
		}
		return StatusBadStructure
	default:
		if o.Phase == PhaseFollowup {
			return StatusInvalidJSONFollowup
		}
		return StatusInvalidJSON
	}
}

// TableOutcome is the result of regularizing one table-shaped response.
type TableOutcome struct {
	Kind  Kind
	Table []TableRecord
	Raw   string
}

// OK reports whether the table outcome carries usable rows.
func (o TableOutcome) OK() bool { return o.Kind == KindSuccess }

// Status renders the table outcome's status string. Tabulation has no
// corrective pass, so no followup variants appear here.
func (o TableOutcome) Status() string {
	switch o.Kind {
	case KindSuccess:
		return StatusSuccess
	case KindBadStructure:
		return StatusBadStructure
	default:
		return StatusInvalidJSON
	}
}

// SampleResult is the immutable per-sample entry of the run log. Exactly one
// of Records/RawFailure is populated, selected by Status.
type SampleResult struct {
	SampleID     string   `json:"coreid"`
	Status       string   `json:"status"`
	OriginalText string   `json:"original_description"`
	Records      []Record `json:"char_json"`
	RawFailure   *string  `json:"failed_str"`
}

// NewSampleResult builds the log entry for one processed sample.
func NewSampleResult(sampleID, text string, o Outcome) SampleResult {
	res := SampleResult{
		SampleID:     sampleID,
		Status:       o.Status(),
		OriginalText: text,
	}
	if o.OK() {
		res.Records = o.Records
	} else {
		raw := o.Raw
		res.RawFailure = &raw
	}
	return res
}

// Names returns the characteristic names of a record set in order.
func Names(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}
