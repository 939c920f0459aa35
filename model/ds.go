package model

import (
	"fmt"
	"sort"
	"strings"
)

// DSRecord is one delegation signer record, as seen at the parent or exported by the enforcer
type DSRecord struct {
	KeyTag     uint16     `json:"keyTag" yaml:"keyTag"`
	Algorithm  Algorithm  `json:"algorithm" yaml:"algorithm"`
	DigestType DigestType `json:"digestType" yaml:"digestType"`
	Digest     string     `json:"digest" yaml:"digest"`
}

func (r DSRecord) String() string {
	return fmt.Sprintf("%d %d %d %s", r.KeyTag, r.Algorithm, r.DigestType, strings.ToUpper(r.Digest))
}

// DsStatus tells whether the parent answered the DS query at all
type DsStatus int

const (
	// DsStatusAnswered the parent returned a DS RRset (possibly empty)
	DsStatusAnswered DsStatus = iota
	// DsStatusNoAnswer nothing usable came back
	DsStatusNoAnswer
)

func (s DsStatus) String() string {
	if s == DsStatusNoAnswer {
		return "no-answer"
	}

	return "answered"
}

// MarshalText implements `encoding.TextMarshaler`.
func (s DsStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NoAnswerReason describes why a DS query produced no answer
type NoAnswerReason string

const (
	NoAnswerNone     NoAnswerReason = ""
	NoAnswerNXDomain NoAnswerReason = "nxdomain"
	NoAnswerTimeout  NoAnswerReason = "timeout"
	NoAnswerEmpty    NoAnswerReason = "empty"
)

// DsObservation is the DS state of a zone as visible at its parent's authoritative server
type DsObservation struct {
	Zone         string
	ResolverUsed string
	Status       DsStatus
	Reason       NoAnswerReason
	Records      map[uint16]DSRecord
}

// NewDsObservation builds an answered observation. When a tag occurs more than once the record
// with the highest digest type wins.
func NewDsObservation(zone, resolverUsed string, records ...DSRecord) *DsObservation {
	o := &DsObservation{
		Zone:         zone,
		ResolverUsed: resolverUsed,
		Status:       DsStatusAnswered,
		Records:      make(map[uint16]DSRecord, len(records)),
	}

	for _, r := range records {
		if existing, ok := o.Records[r.KeyTag]; ok && existing.DigestType >= r.DigestType {
			continue
		}

		o.Records[r.KeyTag] = r
	}

	return o
}

// NewNoAnswer builds an observation for a query that produced nothing
func NewNoAnswer(zone, resolverUsed string, reason NoAnswerReason) *DsObservation {
	return &DsObservation{
		Zone:         zone,
		ResolverUsed: resolverUsed,
		Status:       DsStatusNoAnswer,
		Reason:       reason,
		Records:      map[uint16]DSRecord{},
	}
}

// IsNoAnswer returns true if the parent did not answer
func (o *DsObservation) IsNoAnswer() bool {
	return o == nil || o.Status == DsStatusNoAnswer
}

// HasTag returns true if a DS record for tag was observed
func (o *DsObservation) HasTag(tag uint16) bool {
	if o == nil {
		return false
	}

	_, ok := o.Records[tag]

	return ok
}

// Tags returns the observed key tags in ascending order
func (o *DsObservation) Tags() []uint16 {
	if o == nil {
		return nil
	}

	tags := make([]uint16, 0, len(o.Records))
	for t := range o.Records {
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	return tags
}

// SortedRecords returns the observed records ordered by key tag
func (o *DsObservation) SortedRecords() []DSRecord {
	tags := o.Tags()
	res := make([]DSRecord, len(tags))

	for i, t := range tags {
		res[i] = o.Records[t]
	}

	return res
}
