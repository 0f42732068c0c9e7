package types

import (
	"net/url"
	"regexp"
	"strings"
)

// Lead is a prospective contact returned by a lead search.
type Lead struct {
	CompanyName string `json:"companyName" validate:"required"`
	ContactInfo string `json:"contactInfo" validate:"required"`
	Notes       string `json:"notes"`
}

// ContactKind decides which outreach action a lead supports.
type ContactKind string

const (
	ContactEmail ContactKind = "email"
	ContactLink  ContactKind = "link"
	ContactNone  ContactKind = "none"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// EmailPolicy decides whether a contact string counts as an outreach email.
// Generic consumer mailboxes are usually personal addresses, so they can be
// excluded; the list is a product decision and comes from configuration.
type EmailPolicy struct {
	DenyGenericDomains bool
	GenericDomains     []string
}

// DefaultGenericEmailDomains is the built-in consumer mailbox deny-list.
func DefaultGenericEmailDomains() []string {
	return []string{
		"gmail.com",
		"yahoo.com",
		"yahoo.com.br",
		"hotmail.com",
		"outlook.com",
		"live.com",
		"icloud.com",
		"aol.com",
		"bol.com.br",
		"uol.com.br",
	}
}

// DefaultEmailPolicy denies the built-in generic domains.
func DefaultEmailPolicy() EmailPolicy {
	return EmailPolicy{DenyGenericDomains: true, GenericDomains: DefaultGenericEmailDomains()}
}

// IsEmail reports whether contact is a well-formed, allowed email address.
func (p EmailPolicy) IsEmail(contact string) bool {
	contact = strings.TrimSpace(contact)
	if !emailPattern.MatchString(contact) {
		return false
	}
	if !p.DenyGenericDomains {
		return true
	}
	domain := strings.ToLower(contact[strings.LastIndex(contact, "@")+1:])
	for _, generic := range p.GenericDomains {
		if domain == strings.ToLower(generic) {
			return false
		}
	}
	return true
}

// ContactKind classifies the lead's contact info under policy.
func (l Lead) ContactKind(policy EmailPolicy) ContactKind {
	contact := strings.TrimSpace(l.ContactInfo)
	if strings.Contains(contact, "@") && !strings.HasPrefix(contact, "http") {
		if policy.IsEmail(contact) {
			return ContactEmail
		}
		return ContactNone
	}
	if LinkURL(contact) != "" {
		return ContactLink
	}
	return ContactNone
}

// LinkURL normalizes a contact into an absolute http(s) URL, or "" when the
// contact does not look like a web address.
func LinkURL(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" || strings.ContainsAny(contact, " \t\n") {
		return ""
	}
	if !strings.HasPrefix(contact, "http://") && !strings.HasPrefix(contact, "https://") {
		if !strings.Contains(contact, ".") || strings.HasPrefix(contact, "#") {
			return ""
		}
		contact = "https://" + contact
	}
	u, err := url.Parse(contact)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return ""
	}
	return u.String()
}
