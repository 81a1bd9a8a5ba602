// Package forms decodes and validates the HTML forms of the application.
//
// Every form is a plain struct filled from the request, validated by a
// single routine built out of independent field checks. Messages are
// collected per field in Errors.
package forms

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Field messages shown next to the inputs.
const (
	MsgTitleRequired       = "Enter a title."
	MsgDescriptionRequired = "Enter a description."
	MsgTitleNotUnique      = "Bucket title must be unique."
	MsgInvalidDate         = "Not a valid date value."
)

// MsgMaxLength returns the message for a value longer than n characters.
func MsgMaxLength(n int) string {
	return fmt.Sprintf("No longer than %d characters.", n)
}

// Mode selects the create or update variant of a validation routine.
type Mode int

const (
	Create Mode = iota
	Update
)

func (m Mode) String() string {
	if m == Update {
		return "update"
	}
	return "create"
}

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add appends a message to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Get returns the messages of field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether any field failed.
func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// required fails on empty or whitespace-only values.
func required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// maxLength counts Unicode code points, not bytes.
func maxLength(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

// parseBool treats a missing, empty or "false" value as false.
func parseBool(values url.Values, key string) bool {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return false
	}
	s := strings.TrimSpace(v[0])
	return s != "" && !strings.EqualFold(s, "false")
}
