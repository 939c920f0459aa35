package model

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names --nocase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyType is the role of a DNSSEC key ENUM(
// KSK // key signing key, referenced by the parent's DS record
// ZSK // zone signing key
// )
type KeyType int

// KeyState is the enforcer lifecycle state of a key ENUM(
// publish // DNSKEY published, not yet usable
// ready // DNSKEY propagated, waiting for the DS at the parent
// active // key in use, DS expected at the parent
// retire // key on its way out
// )
type KeyState int

// Algorithm is a DNSSEC algorithm number
// (https://www.iana.org/assignments/dns-sec-alg-numbers/dns-sec-alg-numbers.xhtml)
type Algorithm uint8

// nolint:gochecknoglobals
var algorithmNames = map[Algorithm]string{
	0:   "DELETE",
	1:   "RSAMD5",
	2:   "DH",
	3:   "DSA",
	5:   "RSASHA1",
	6:   "DSA-NSEC3-SHA1",
	7:   "RSASHA1-NSEC3-SHA1",
	8:   "RSASHA256",
	10:  "RSASHA512",
	12:  "ECC-GOST",
	13:  "ECDSAP256SHA256",
	14:  "ECDSAP384SHA384",
	15:  "ED25519",
	16:  "ED448",
	252: "INDIRECT",
	253: "PRIVATEDNS",
	254: "PRIVATEOID",
}

// IsKnown returns true if the registry has a mnemonic for a
func (a Algorithm) IsKnown() bool {
	_, ok := algorithmNames[a]

	return ok
}

// String returns the registry mnemonic
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}

	return fmt.Sprintf("ALGORITHM%d", uint8(a))
}

// MarshalText implements `encoding.TextMarshaler`.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// AlgorithmNames returns all mnemonics ordered by algorithm number
func AlgorithmNames() []string {
	numbers := make([]int, 0, len(algorithmNames))
	for a := range algorithmNames {
		numbers = append(numbers, int(a))
	}

	sort.Ints(numbers)

	names := make([]string, len(numbers))
	for i, n := range numbers {
		names[i] = algorithmNames[Algorithm(n)]
	}

	return names
}

// ParseAlgorithm accepts an algorithm number or its mnemonic
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		a := Algorithm(n)
		if !a.IsKnown() {
			return 0, NewValidationError("unknown key algorithm %d", n)
		}

		return a, nil
	}

	for a, name := range algorithmNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}

	return 0, NewValidationError("unknown key algorithm '%s'", s)
}

// DigestType is a DS digest algorithm number
type DigestType uint8

// nolint:gochecknoglobals
var digestTypeNames = map[DigestType]string{
	1: "SHA-1",
	2: "SHA-256",
	3: "GOST R 34.11-94",
	4: "SHA-384",
}

// String returns the digest mnemonic
func (d DigestType) String() string {
	if name, ok := digestTypeNames[d]; ok {
		return name
	}

	return fmt.Sprintf("DIGEST%d", uint8(d))
}

// MarshalText implements `encoding.TextMarshaler`.
func (d DigestType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Key is one DNSSEC key known to the enforcer. Keys are values: once built they never change.
type Key struct {
	Type           KeyType
	Tag            uint16
	State          KeyState
	Algorithm      Algorithm
	Bits           int
	NextTransition string

	dsDigestType *DigestType
}

// KeyParams holds the raw attributes a Key is built from
type KeyParams struct {
	Type           KeyType
	Tag            uint16
	State          KeyState
	Algorithm      Algorithm
	Bits           int
	NextTransition string
	DSDigestType   *DigestType
}

// NewKey validates p and returns the key
func NewKey(p KeyParams) (Key, error) {
	if !p.Type.IsValid() {
		return Key{}, NewValidationError("key %d: type needs to be one of %s", p.Tag, KeyTypeNames())
	}

	if !p.State.IsValid() {
		return Key{}, NewValidationError("key %d: state needs to be one of %s", p.Tag, KeyStateNames())
	}

	if !p.Algorithm.IsKnown() {
		return Key{}, NewValidationError("key %d: unknown key algorithm %d", p.Tag, p.Algorithm)
	}

	if p.Type == KeyTypeZSK && p.DSDigestType != nil {
		return Key{}, NewValidationError("key %d: a ZSK has no DS digest type", p.Tag)
	}

	k := Key{
		Type:           p.Type,
		Tag:            p.Tag,
		State:          p.State,
		Algorithm:      p.Algorithm,
		Bits:           p.Bits,
		NextTransition: p.NextTransition,
	}

	if p.DSDigestType != nil {
		dt := *p.DSDigestType
		k.dsDigestType = &dt
	}

	return k, nil
}

// DSDigestType returns the digest type used when the key is exported as DS
func (k Key) DSDigestType() (DigestType, bool) {
	if k.dsDigestType == nil {
		return 0, false
	}

	return *k.dsDigestType, true
}

// withDSDigestType returns a copy of k carrying dt
func (k Key) withDSDigestType(dt DigestType) Key {
	k.dsDigestType = &dt

	return k
}

func (k Key) String() string {
	return fmt.Sprintf("%s %d (%s, %s, %d bits)", k.Type, k.Tag, k.State, k.Algorithm, k.Bits)
}
