package util

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/odskit/ksk-helper/log"
)

func qTypeToString() func(uint16) string {
	innerMap := map[uint16]string{
		dns.TypeA:    "A",
		dns.TypeAAAA: "AAAA",
		dns.TypeNS:   "NS",
		dns.TypeSOA:  "SOA",
		dns.TypeDS:   "DS",
	}

	return func(key uint16) string {
		if s, ok := innerMap[key]; ok {
			return s
		}

		return dns.TypeToString[key]
	}
}

// AnswerToString returns a short human readable form of records
func AnswerToString(answer []dns.RR) string {
	answers := make([]string, len(answer))

	for i, record := range answer {
		switch v := record.(type) {
		case *dns.A:
			answers[i] = fmt.Sprintf("A (%s)", v.A)
		case *dns.AAAA:
			answers[i] = fmt.Sprintf("AAAA (%s)", v.AAAA)
		case *dns.NS:
			answers[i] = fmt.Sprintf("NS (%s)", v.Ns)
		case *dns.SOA:
			answers[i] = fmt.Sprintf("SOA (%s)", v.Ns)
		case *dns.DS:
			answers[i] = fmt.Sprintf("DS (%d %d %d)", v.KeyTag, v.Algorithm, v.DigestType)
		default:
			answers[i] = fmt.Sprint(record)
		}
	}

	return strings.Join(answers, ", ")
}

func QuestionToString(questions []dns.Question) string {
	result := make([]string, len(questions))
	for i, question := range questions {
		result[i] = fmt.Sprintf("%s (%s)", qTypeToString()(question.Qtype), question.Name)
	}

	return strings.Join(result, ", ")
}

// NormalizeZone lower cases a domain name and strips the trailing dot
func NormalizeZone(zone string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(zone)), ".")
}

// ValidateZone returns the normalized zone or an error if it is not a syntactically valid domain name
func ValidateZone(zone string) (string, error) {
	z := NormalizeZone(zone)

	if z == "" {
		return "", fmt.Errorf("zone name is empty")
	}

	if _, ok := dns.IsDomainName(z); !ok || strings.Contains(z, "..") {
		return "", fmt.Errorf("'%s' is not a valid domain name", zone)
	}

	return z, nil
}

// NewMsgWithQuestion creates a non recursive query for question
func NewMsgWithQuestion(question string, mType uint16) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(question), mType)
	msg.RecursionDesired = false

	return msg
}

// LogOnError logs the message only if error is not nil
func LogOnError(ctx context.Context, message string, err error) {
	if err != nil {
		log.FromCtx(ctx).Error(message, err)
	}
}

// FatalOnError logs the message and exits if error is not nil
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}
