package report

import (
	"fmt"
	"strings"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"
)

// Keys is the KSK listing of a zone
type Keys struct {
	Zone string      `json:"zone" yaml:"zone"`
	Keys []ListedKey `json:"keys" yaml:"keys"`
}

// NewKeys lists the keys of set
func NewKeys(set *model.ZoneKeySet) *Keys {
	return &Keys{Zone: set.Zone(), Keys: ListedKeys(set)}
}

func (k *Keys) writeText(b *strings.Builder, _ *TextRenderer) {
	fmt.Fprintf(b, "OpenDNSSEC zone %s:\n", k.Zone)

	for _, l := range k.Keys {
		if l.State == model.KeyStateActive {
			fmt.Fprintf(b, "%sZone has active KSK (%d bits) with tag %d\n", indent, l.Bits, l.Tag)
		}
	}

	b.WriteString("\n")
	writeListedKeys(b, k.Keys)
}

// Delegation is the parent authority of a zone, optionally with the DS records it serves
type Delegation struct {
	Zone      string           `json:"zone" yaml:"zone"`
	Authority string           `json:"authority" yaml:"authority"`
	Trace     []resolver.Hop   `json:"trace,omitempty" yaml:"trace,omitempty"`
	DSStatus  *model.DsStatus  `json:"dsStatus,omitempty" yaml:"dsStatus,omitempty"`
	DSReason  string           `json:"dsReason,omitempty" yaml:"dsReason,omitempty"`
	DS        []model.DSRecord `json:"ds,omitempty" yaml:"ds,omitempty"`
}

// NewDelegation describes authority and, if not nil, the DS observation
func NewDelegation(zone string, authority *resolver.Authority, ds *model.DsObservation, trace bool) *Delegation {
	d := &Delegation{Zone: zone}

	if authority != nil {
		if authority.Address != "" {
			d.Authority = authority.String()
		}

		if trace {
			d.Trace = authority.Hops
		}
	}

	if ds != nil {
		status := ds.Status
		d.DSStatus = &status
		d.DSReason = string(ds.Reason)
		d.DS = ds.SortedRecords()
	}

	return d
}

func (d *Delegation) writeText(b *strings.Builder, _ *TextRenderer) {
	authority := d.Authority
	if authority == "" {
		authority = "not found"
	}

	fmt.Fprintf(b, "Parent authority of %s: %s\n", d.Zone, authority)

	writeTrace(b, d.Trace)

	if d.DSStatus != nil {
		b.WriteString("\nDS records at the parent:\n")
		writeDS(b, d.DS, d.DSReason)
	}
}
