package report

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/rollover"
)

func steps(zone string, instructions []rollover.Instruction, enforcer string) []Step {
	res := make([]Step, len(instructions))

	for i, in := range instructions {
		res[i] = Step{
			Number:      i + 1,
			Instruction: in.ID,
			KeyTag:      in.KeyTag,
			Gate:        in.Gate,
		}

		res[i].Text, res[i].Commands = describe(zone, in, enforcer)
	}

	return res
}

// describe returns the operator text of in and the commands that carry it out
func describe(zone string, in rollover.Instruction, enforcer string) (string, []string) {
	keyCmd := func(sub string) string {
		return fmt.Sprintf("%s key %s --zone %s --keytag %d", enforcer, sub, zone, in.KeyTag)
	}

	switch in.ID {
	case rollover.InstructionSubmit:
		return fmt.Sprintf("Submit KSK %d (%s) for DS publication", in.KeyTag, in.Algorithm),
			[]string{keyCmd("ds-submit")}
	case rollover.InstructionExport:
		return fmt.Sprintf("Export the DS record of KSK %d", in.KeyTag),
			[]string{fmt.Sprintf("%s key export --zone %s --keytag %d --ds", enforcer, zone, in.KeyTag)}
	case rollover.InstructionUpload:
		return fmt.Sprintf("Upload the DS record of KSK %d to the registrar of %s", in.KeyTag, zone),
			presentation(zone, in.DS)
	case rollover.InstructionSeen:
		return fmt.Sprintf("Once the DS of KSK %d is visible at the parent, tell the enforcer", in.KeyTag),
			[]string{keyCmd("ds-seen")}
	case rollover.InstructionRemove:
		return fmt.Sprintf("Remove the DS record of retired KSK %d at the registrar of %s", in.KeyTag, zone),
			presentation(zone, in.DS)
	case rollover.InstructionGone:
		return fmt.Sprintf("Once the DS of KSK %d is gone from the parent, tell the enforcer", in.KeyTag),
			[]string{keyCmd("ds-gone")}
	case rollover.InstructionInvestigate:
		return fmt.Sprintf("Key state of KSK %d does not match the parent, investigate manually", in.KeyTag),
			[]string{fmt.Sprintf("%s key list --verbose --zone %s", enforcer, zone)}
	}

	return string(in.ID), nil
}

// presentation formats records as DS RRs of zone
func presentation(zone string, records []model.DSRecord) []string {
	res := make([]string, 0, len(records))

	for _, r := range records {
		rr := &dns.DS{
			Hdr: dns.RR_Header{
				Name:   dns.Fqdn(zone),
				Rrtype: dns.TypeDS,
				Class:  dns.ClassINET,
				Ttl:    3600,
			},
			KeyTag:     r.KeyTag,
			Algorithm:  uint8(r.Algorithm),
			DigestType: uint8(r.DigestType),
			Digest:     r.Digest,
		}

		res = append(res, rr.String())
	}

	return res
}
