package report

import (
	"fmt"
	"io"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"
	"github.com/odskit/ksk-helper/rollover"
)

// KeyLine is one KSK of the zone as shown to the operator
type KeyLine struct {
	ListedKey `yaml:",inline"`
	InDS      bool `json:"inDS" yaml:"inDS"`
}

// ListedKey is a key as the enforcer lists it
type ListedKey struct {
	Tag            uint16          `json:"tag" yaml:"tag"`
	State          model.KeyState  `json:"state" yaml:"state"`
	Algorithm      model.Algorithm `json:"algorithm" yaml:"algorithm"`
	Bits           int             `json:"bits" yaml:"bits"`
	NextTransition string          `json:"nextTransition,omitempty" yaml:"nextTransition,omitempty"`
}

// Step is one numbered remediation step
type Step struct {
	Number      int                    `json:"number" yaml:"number"`
	Instruction rollover.InstructionID `json:"instruction" yaml:"instruction"`
	KeyTag      uint16                 `json:"keyTag" yaml:"keyTag"`
	Gate        rollover.Gate          `json:"gate" yaml:"gate"`
	Text        string                 `json:"text" yaml:"text"`
	Commands    []string               `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Report is the rendered outcome of a check
type Report struct {
	Zone      string           `json:"zone" yaml:"zone"`
	Phase     rollover.Phase   `json:"phase" yaml:"phase"`
	Stage     rollover.Stage   `json:"stage" yaml:"stage"`
	Healthy   bool             `json:"healthy" yaml:"healthy"`
	Keys      []KeyLine        `json:"keys" yaml:"keys"`
	Authority string           `json:"authority,omitempty" yaml:"authority,omitempty"`
	Trace     []resolver.Hop   `json:"trace,omitempty" yaml:"trace,omitempty"`
	DSStatus  model.DsStatus   `json:"dsStatus" yaml:"dsStatus"`
	DSReason  string           `json:"dsReason,omitempty" yaml:"dsReason,omitempty"`
	DS        []model.DSRecord `json:"ds" yaml:"ds"`
	UnknownDS []uint16         `json:"unknownDS,omitempty" yaml:"unknownDS,omitempty"`
	Steps     []Step           `json:"steps" yaml:"steps"`
	Analyzer  string           `json:"analyzer,omitempty" yaml:"analyzer,omitempty"`
}

// Options controls what goes into a report
type Options struct {
	// Enforcer is the enforcer command used in the suggested commands
	Enforcer    string
	AnalyzerURL string
	Trace       bool
}

// OptionsFromConfig takes the report options from the configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Enforcer:    cfg.Enforcer.Command,
		AnalyzerURL: cfg.Report.AnalyzerURL,
		Trace:       cfg.Report.Trace,
	}
}

// Build turns a successful check into a report
func Build(res *rollover.Result, opts Options) (*Report, error) {
	if res == nil || res.Keys == nil || res.Evaluation == nil {
		return nil, fmt.Errorf("can't build a report from an incomplete check")
	}

	ev := res.Evaluation

	r := &Report{
		Zone:      res.Zone,
		Phase:     ev.Phase,
		Stage:     ev.Stage,
		Healthy:   ev.IsHealthy(),
		Keys:      KeyLines(res.Keys, res.DS),
		DS:        res.DS.SortedRecords(),
		UnknownDS: ev.UnknownDS,
		Steps:     steps(res.Zone, ev.Instructions, opts.Enforcer),
	}

	if res.DS.IsNoAnswer() {
		r.DSStatus = model.DsStatusNoAnswer
	}

	if res.DS != nil {
		r.DSReason = string(res.DS.Reason)
	}

	if res.Authority != nil {
		r.Authority = res.Authority.String()

		if opts.Trace {
			r.Trace = res.Authority.Hops
		}
	}

	if opts.AnalyzerURL != "" {
		r.Analyzer = fmt.Sprintf(opts.AnalyzerURL, res.Zone)
	}

	return r, nil
}

// KeyLines lists keys ordered by tag and marks the ones in ds
func KeyLines(keys *model.ZoneKeySet, ds *model.DsObservation) []KeyLine {
	listed := ListedKeys(keys)
	res := make([]KeyLine, len(listed))

	for i, k := range listed {
		res[i] = KeyLine{
			ListedKey: k,
			InDS:      !ds.IsNoAnswer() && ds.HasTag(k.Tag),
		}
	}

	return res
}

// ListedKeys lists keys ordered by tag
func ListedKeys(keys *model.ZoneKeySet) []ListedKey {
	all := keys.Keys()
	res := make([]ListedKey, len(all))

	for i, k := range all {
		res[i] = ListedKey{
			Tag:            k.Tag,
			State:          k.State,
			Algorithm:      k.Algorithm,
			Bits:           k.Bits,
			NextTransition: k.NextTransition,
		}
	}

	return res
}

// Renderer writes a document in one output format
type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// NewRenderer returns the renderer of format
func NewRenderer(format config.ReportFormat, color bool) (Renderer, error) {
	switch format {
	case config.ReportFormatText:
		return &TextRenderer{Color: color}, nil
	case config.ReportFormatJSON:
		return &JSONRenderer{}, nil
	case config.ReportFormatYAML:
		return &YAMLRenderer{}, nil
	}

	return nil, model.NewValidationError("unknown report format '%s'", format)
}
