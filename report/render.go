package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ryanuber/columnize"
	"gopkg.in/yaml.v2"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"
	"github.com/odskit/ksk-helper/rollover"
)

const indent = "  "

// Document is something a Renderer can write
type Document interface {
	writeText(b *strings.Builder, t *TextRenderer)
}

// TextRenderer writes human readable output
type TextRenderer struct {
	Color bool
}

// Render implements Renderer
func (t *TextRenderer) Render(w io.Writer, doc Document) error {
	var b strings.Builder

	doc.writeText(&b, t)

	_, err := io.WriteString(w, b.String())

	return err
}

func (r *Report) writeText(b *strings.Builder, t *TextRenderer) {
	fmt.Fprintf(b, "Zone %s: %s\n", r.Zone, t.phase(r))

	if r.Authority != "" {
		fmt.Fprintf(b, "Parent authority: %s\n", r.Authority)
	}

	writeTrace(b, r.Trace)

	b.WriteString("\nKSKs known to the enforcer:\n")
	writeKeys(b, r.Keys)

	b.WriteString("\nDS records at the parent:\n")
	writeDS(b, r.DS, r.DSReason)

	if len(r.UnknownDS) > 0 {
		fmt.Fprintf(b, "%s%s\n", indent, t.paint(color.FgRed,
			fmt.Sprintf("DS for unknown key tag(s) %v, remove them at the registrar", r.UnknownDS)))
	}

	if len(r.Steps) > 0 {
		b.WriteString("\nSteps:\n")

		for _, s := range r.Steps {
			if g := gateText(s.Gate); g != "" {
				fmt.Fprintf(b, "%s%s\n", indent, t.paint(color.FgYellow, g))
			}

			fmt.Fprintf(b, "%s%d. %s\n", indent, s.Number, s.Text)

			for _, c := range s.Commands {
				fmt.Fprintf(b, "%s%s%s\n", indent, indent+indent, c)
			}
		}
	} else {
		b.WriteString("\nNothing to do.\n")
	}

	if r.Analyzer != "" {
		fmt.Fprintf(b, "\nCheck the chain of trust at %s\n", r.Analyzer)
	}
}

func writeTrace(b *strings.Builder, hops []resolver.Hop) {
	if len(hops) == 0 {
		return
	}

	b.WriteString("\nDelegation walk:\n")

	lines := []string{"Query | Server | Rcode | Name servers | Selected"}
	for _, h := range hops {
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %s | %s",
			h.QueryName, h.Server, h.Rcode, strings.Join(h.Nameservers, " "), h.Selected))
	}

	b.WriteString(table(lines))
}

func writeKeys(b *strings.Builder, keys []KeyLine) {
	lines := []string{"Tag | State | Algorithm | Bits | In DS | Next transition"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%d | %s | %s | %d | %s | %s",
			k.Tag, k.State, k.Algorithm, k.Bits, yesNo(k.InDS), k.NextTransition))
	}

	b.WriteString(table(lines))
}

// writeListedKeys leaves out the DS column, nothing was asked at the parent
func writeListedKeys(b *strings.Builder, keys []ListedKey) {
	lines := []string{"Tag | State | Algorithm | Bits | Next transition"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%d | %s | %s | %d | %s",
			k.Tag, k.State, k.Algorithm, k.Bits, k.NextTransition))
	}

	b.WriteString(table(lines))
}

func writeDS(b *strings.Builder, records []model.DSRecord, reason string) {
	if len(records) == 0 {
		if reason == "" {
			reason = string(model.NoAnswerEmpty)
		}

		fmt.Fprintf(b, "%snone (%s)\n", indent, reason)

		return
	}

	lines := []string{"Tag | Algorithm | Digest type | Digest"}
	for _, ds := range records {
		lines = append(lines, fmt.Sprintf("%d | %s | %s | %s", ds.KeyTag, ds.Algorithm, ds.DigestType, ds.Digest))
	}

	b.WriteString(table(lines))
}

func (t *TextRenderer) phase(r *Report) string {
	s := r.Phase.String()
	if r.Stage != rollover.StageNone {
		s += " (" + r.Stage.String() + ")"
	}

	switch {
	case r.Healthy:
		return t.paint(color.FgGreen, s)
	case r.Phase == rollover.PhaseInconsistent || r.Phase == rollover.PhaseNoActiveKey:
		return t.paint(color.FgRed, s)
	default:
		return t.paint(color.FgYellow, s)
	}
}

func (t *TextRenderer) paint(attr color.Attribute, s string) string {
	c := color.New(attr)

	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(s)
}

func gateText(g rollover.Gate) string {
	switch g {
	case rollover.GateAfterNewKey:
		return "The steps above must complete before:"
	case rollover.GateAfterPropagation:
		return "Once the parent change has propagated:"
	case rollover.GateNone:
	}

	return ""
}

func table(lines []string) string {
	cfg := columnize.DefaultConfig()
	cfg.Prefix = indent

	return columnize.Format(lines, cfg) + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// JSONRenderer writes the report as indented JSON
type JSONRenderer struct{}

// Render implements Renderer
func (JSONRenderer) Render(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)

	return enc.Encode(doc)
}

// YAMLRenderer writes the report as YAML
type YAMLRenderer struct{}

// Render implements Renderer
func (YAMLRenderer) Render(w io.Writer, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("can't marshal report: %w", err)
	}

	_, err = w.Write(data)

	return err
}
