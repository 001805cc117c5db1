package hash40

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Labels maps hashes back to the names they were computed from.
// The zero value is an empty table ready for use.
type Labels struct {
	names map[Hash40]string
}

// NewLabels returns a table containing names.
func NewLabels(names ...string) *Labels {
	l := &Labels{}
	for _, name := range names {
		l.Add(name)
	}

	return l
}

// ReadLabels reads a table from CSV records of the form "hash,label" or
// "label". A missing hash is computed from the label. Blank records and
// lines starting with '#' are skipped.
func ReadLabels(r io.Reader) (*Labels, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	l := &Labels{}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return l, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}

		switch len(rec) {
		case 1:
			l.Add(rec[0])

		case 2:
			h, err := Parse(strings.TrimSpace(rec[0]))
			if err != nil {
				return nil, fmt.Errorf("read labels: %w", err)
			}

			l.Set(h, rec[1])

		default:
			line, _ := cr.FieldPos(0)

			return nil, fmt.Errorf("read labels: line %d: %d fields", line, len(rec))
		}
	}
}

// Add records name under its own hash and returns the hash.
func (l *Labels) Add(name string) Hash40 {
	h := FromString(name)
	l.Set(h, name)

	return h
}

// Set records name under h.
func (l *Labels) Set(h Hash40, name string) {
	if l.names == nil {
		l.names = make(map[Hash40]string)
	}

	l.names[h&Mask] = name
}

// Len returns the number of labels.
func (l *Labels) Len() int {
	if l == nil {
		return 0
	}

	return len(l.names)
}

// Lookup returns the label recorded for h.
func (l *Labels) Lookup(h Hash40) (string, bool) {
	if l == nil {
		return "", false
	}

	name, ok := l.names[h]

	return name, ok
}

// Format returns the label of h, or its hex form when h has no label.
// A nil table formats every hash in hex.
func (l *Labels) Format(h Hash40) string {
	if name, ok := l.Lookup(h); ok {
		return name
	}

	return h.String()
}
