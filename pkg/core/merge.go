package core

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MergeStrings merges two versions of a text line by line so that no line of
// either version is lost. Lines present in both keep their common order;
// where the versions diverge, the lines of current come first, followed by
// the lines of incoming.
//
// It is used when the backing file changes on disk while the session holds
// unsaved edits.
func MergeStrings(current, incoming string) string {
	if current == incoming {
		return current
	}
	a := strings.Split(current, "\n")
	b := strings.Split(incoming, "\n")

	var out []string
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e', 'd':
			out = append(out, a[op.I1:op.I2]...)
		case 'i':
			out = append(out, b[op.J1:op.J2]...)
		case 'r':
			out = append(out, a[op.I1:op.I2]...)
			out = append(out, b[op.J1:op.J2]...)
		}
	}
	return strings.Join(out, "\n")
}
