package enforcer

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/util"
)

// number of columns following the next transition text:
// size, algorithm, CKA_ID, repository, key tag
const trailingKeyColumns = 5

// KeyRow is one line of the enforcer key listing
type KeyRow struct {
	Zone           string
	KeyType        string
	State          string
	NextTransition string
	Bits           int
	Algorithm      string
	CKAID          string
	Repository     string
	KeyTag         uint16
}

// DSRow is one DS record of the enforcer key export
type DSRow struct {
	Owner  string
	Record model.DSRecord
}

// parseKeyList reads the verbose key listing. The next transition column is free text, so the
// columns are taken from both ends of a line. Headers and malformed lines are skipped.
func parseKeyList(output string) []KeyRow {
	var rows []KeyRow

	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		n := len(fields)

		if n < 3+trailingKeyColumns {
			continue
		}

		tag, err := strconv.ParseUint(fields[n-1], 10, 16)
		if err != nil {
			continue
		}

		bits, err := strconv.Atoi(fields[n-5])
		if err != nil {
			continue
		}

		rows = append(rows, KeyRow{
			Zone:           util.NormalizeZone(fields[0]),
			KeyType:        fields[1],
			State:          fields[2],
			NextTransition: strings.Join(fields[3:n-trailingKeyColumns], " "),
			Bits:           bits,
			Algorithm:      fields[n-4],
			CKAID:          fields[n-3],
			Repository:     fields[n-2],
			KeyTag:         uint16(tag),
		})
	}

	return rows
}

// parseDSExport reads DS records in presentation format, skipping comments and anything else
func parseDSExport(output string) []DSRow {
	var rows []DSRow

	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		rr, err := dns.NewRR(line)
		if err != nil || rr == nil {
			continue
		}

		ds, ok := rr.(*dns.DS)
		if !ok {
			continue
		}

		rows = append(rows, DSRow{
			Owner: util.NormalizeZone(ds.Hdr.Name),
			Record: model.DSRecord{
				KeyTag:     ds.KeyTag,
				Algorithm:  model.Algorithm(ds.Algorithm),
				DigestType: model.DigestType(ds.DigestType),
				Digest:     strings.ToUpper(ds.Digest),
			},
		})
	}

	return rows
}
