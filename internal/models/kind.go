package models

// Kind distinguishes the two principal namespaces. Students and companies
// share the same authentication mechanics but never the same secrets,
// cookies, or collections.
type Kind string

const (
	KindStudent Kind = "student"
	KindCompany Kind = "company"
)
