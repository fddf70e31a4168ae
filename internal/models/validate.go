package models

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

var domainLabel = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
var domainTLD = regexp.MustCompile(`^[a-zA-Z]{2,}$`)

// ValidTargetValue reports whether value is well-formed for the declared
// target type. Only format is checked, never reachability.
func ValidTargetValue(value string, t TargetType) bool {
	if value == "" {
		return false
	}

	switch t {
	case TargetURL:
		u, err := url.Parse(value)
		return err == nil && u.Scheme != "" && u.Host != ""
	case TargetIP:
		return net.ParseIP(value) != nil
	case TargetDomain:
		return validDomain(value)
	}
	return false
}

// validDomain accepts dotted label sequences such as example.com,
// sub.example.co.uk. Labels are 1-63 alphanumeric-or-hyphen characters
// with no hyphen at either end; the last label must be a letters-only TLD.
func validDomain(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for i, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if i == len(labels)-1 {
			if !domainTLD.MatchString(label) {
				return false
			}
			continue
		}
		if !domainLabel.MatchString(label) {
			return false
		}
	}
	return true
}
