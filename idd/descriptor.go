package idd

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrTagNotFound is returned when a tag lookup or raise-mode removal names
// a tag the descriptor does not carry.
var ErrTagNotFound = errors.New("tag not found")

// ErrValueTooLong is returned when a normalized field value exceeds the
// 100-character limit.
var ErrValueTooLong = errors.New("field value exceeds 100 characters")

// ValueError reports a rejected field value, carrying the field name and
// the offending value for diagnostics.
type ValueError struct {
	Field string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q: %v", e.Value, e.Field, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// BasicType is the coarse storage kind of a field.
type BasicType int

const (
	Alphanumeric BasicType = iota + 1 // dictionary code "A"
	Numeric                           // dictionary code "N"
)

// ParseBasicType converts a dictionary type code to a BasicType. Anything
// other than "A" or "N" is a schema misuse error.
func ParseBasicType(code string) (BasicType, error) {
	switch code {
	case "A":
		return Alphanumeric, nil
	case "N":
		return Numeric, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", code)
	}
}

func (b BasicType) String() string {
	switch b {
	case Alphanumeric:
		return "A"
	case Numeric:
		return "N"
	default:
		return fmt.Sprintf("BasicType(%d)", int(b))
	}
}

// DetailedType is the fine-grained semantic kind of a field. It is an open
// string type: an explicit `type` tag passes through lower-cased without
// validation against a closed set, so values outside the named constants
// are possible.
type DetailedType string

const (
	DetailedInteger      DetailedType = "integer"
	DetailedReal         DetailedType = "real"
	DetailedAlpha        DetailedType = "alpha"
	DetailedChoice       DetailedType = "choice"
	DetailedReference    DetailedType = "reference"
	DetailedObjectList   DetailedType = "object-list"
	DetailedExternalList DetailedType = "external-list"
	DetailedNode         DetailedType = "node"
)

// ErrorMode selects how RemoveTag treats a missing tag.
type ErrorMode string

const (
	Raise  ErrorMode = "raise"
	Ignore ErrorMode = "ignore"
)

// TagStore holds a descriptor's annotation tags: tag name to ordered value
// sequence. A name may map to an empty sequence; presence, not
// non-emptiness, is what Has tests. Each descriptor owns its store
// exclusively — Copy produces an independent deep copy.
type TagStore struct {
	entries map[string][]string
}

// Add appends values to the tag's sequence, creating the tag if absent.
// Calling with no values records bare presence.
func (ts *TagStore) Add(ref string, values ...string) {
	if ts.entries == nil {
		ts.entries = map[string][]string{}
	}
	if _, ok := ts.entries[ref]; !ok {
		ts.entries[ref] = []string{}
	}
	ts.entries[ref] = append(ts.entries[ref], values...)
}

// Remove deletes a tag. Raise mode fails with ErrTagNotFound if the tag is
// absent; Ignore mode is a silent no-op; any other mode is a usage error.
func (ts *TagStore) Remove(ref string, mode ErrorMode) error {
	switch mode {
	case Raise:
		if _, ok := ts.entries[ref]; !ok {
			return fmt.Errorf("remove tag %q: %w", ref, ErrTagNotFound)
		}
		delete(ts.entries, ref)
		return nil
	case Ignore:
		delete(ts.entries, ref)
		return nil
	default:
		return fmt.Errorf("invalid error mode %q (want %q or %q)", mode, Raise, Ignore)
	}
}

// Get returns the tag's raw value sequence. The returned slice is the
// stored sequence; callers must not modify it.
func (ts *TagStore) Get(ref string) ([]string, error) {
	values, ok := ts.entries[ref]
	if !ok {
		return nil, fmt.Errorf("get tag %q: %w", ref, ErrTagNotFound)
	}
	return values, nil
}

// Has reports whether the tag is present, regardless of how many values it
// carries.
func (ts *TagStore) Has(ref string) bool {
	_, ok := ts.entries[ref]
	return ok
}

// Names returns the tag names in sorted order.
func (ts *TagStore) Names() []string {
	return slices.Sorted(maps.Keys(ts.entries))
}

// Len returns the number of tags.
func (ts *TagStore) Len() int { return len(ts.entries) }

// Copy returns an independent deep copy of the store.
func (ts *TagStore) Copy() TagStore {
	if ts.entries == nil {
		return TagStore{}
	}
	entries := make(map[string][]string, len(ts.entries))
	for ref, values := range ts.entries {
		entries[ref] = slices.Clone(values)
	}
	return TagStore{entries: entries}
}

// Equal reports key and value-sequence equality, order-independent on keys.
func (ts *TagStore) Equal(other *TagStore) bool {
	return maps.EqualFunc(ts.entries, other.entries, slices.Equal)
}

// FieldDescriptor describes one positional value slot of a record format:
// its storage type, an optional name, and its dictionary tags. The raw
// record text for that slot is validated and parsed through it.
type FieldDescriptor struct {
	basicType BasicType
	name      string
	tags      TagStore

	// detailed caches the resolved detailed type; empty means unresolved.
	// Any tag mutation clears it so a later read never serves a stale
	// resolution.
	detailed DetailedType
}

// New builds a descriptor from a dictionary type code ("A" or "N") and an
// optional name (empty for anonymous fields).
func New(code, name string) (*FieldDescriptor, error) {
	basicType, err := ParseBasicType(code)
	if err != nil {
		return nil, err
	}
	return &FieldDescriptor{basicType: basicType, name: name}, nil
}

// BasicType returns the coarse storage kind.
func (fd *FieldDescriptor) BasicType() BasicType { return fd.basicType }

// Name returns the field name, empty for anonymous fields.
func (fd *FieldDescriptor) Name() string { return fd.name }

// SetName replaces the field name.
func (fd *FieldDescriptor) SetName(name string) { fd.name = name }

// Copy returns an independent descriptor: tag mutations on either side are
// invisible to the other.
func (fd *FieldDescriptor) Copy() *FieldDescriptor {
	return &FieldDescriptor{
		basicType: fd.basicType,
		name:      fd.name,
		tags:      fd.tags.Copy(),
		detailed:  fd.detailed,
	}
}

// Tags returns the tag names in sorted order.
func (fd *FieldDescriptor) Tags() []string { return fd.tags.Names() }

// HasTag reports whether the tag is present.
func (fd *FieldDescriptor) HasTag(ref string) bool { return fd.tags.Has(ref) }

// AddTag appends values to a tag, creating it if absent. With no values it
// records bare presence.
func (fd *FieldDescriptor) AddTag(ref string, values ...string) {
	fd.tags.Add(ref, values...)
	fd.detailed = ""
}

// RemoveTag deletes a tag; see ErrorMode for missing-tag handling.
func (fd *FieldDescriptor) RemoveTag(ref string, mode ErrorMode) error {
	if err := fd.tags.Remove(ref, mode); err != nil {
		return err
	}
	fd.detailed = ""
	return nil
}

// Tag returns the tag's raw value sequence.
func (fd *FieldDescriptor) Tag(ref string) ([]string, error) {
	return fd.tags.Get(ref)
}

// Note returns the `note` tag's fragments joined with single spaces. Notes
// are stored as fragments but consumed as one string.
func (fd *FieldDescriptor) Note() (string, error) {
	fragments, err := fd.tags.Get("note")
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, " "), nil
}

// DetailedType resolves the field's semantic kind; see the package
// documentation for the precedence rules. The result is memoized and
// recomputed after any tag mutation.
func (fd *FieldDescriptor) DetailedType() (DetailedType, error) {
	if fd.detailed != "" {
		return fd.detailed, nil
	}
	detailed, err := fd.resolveDetailedType()
	if err != nil {
		return "", err
	}
	fd.detailed = detailed
	return detailed, nil
}

func (fd *FieldDescriptor) resolveDetailedType() (DetailedType, error) {
	switch {
	case fd.tags.Has("reference"):
		return DetailedReference, nil
	case fd.tags.Has("type"):
		values, err := fd.tags.Get("type")
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			return "", fmt.Errorf("field %q: type tag has no value", fd.name)
		}
		return DetailedType(FoldCase(values[0])), nil
	case fd.tags.Has("key"):
		return DetailedChoice, nil
	case fd.tags.Has("object-list"):
		return DetailedObjectList, nil
	case fd.tags.Has("external-list"):
		return DetailedExternalList, nil
	case fd.basicType == Alphanumeric:
		return DetailedAlpha, nil
	case fd.basicType == Numeric:
		return DetailedReal, nil
	default:
		// unreachable when the descriptor was built through New
		return "", fmt.Errorf("field %q: cannot resolve detailed type", fd.name)
	}
}

// CleanupAndCheckRawValue normalizes a raw token and validates it against
// the descriptor: whitespace runs collapse to single spaces, the text is
// transliterated to ASCII, lower-cased unless the descriptor carries a
// `retaincase` tag, rejected above 100 characters, and — for numeric
// fields — rejected if it parses as neither a number nor a sentinel token.
// Pure: no descriptor state changes. The returned string is normalized but
// not yet typed; that is BasicParse's job.
func (fd *FieldDescriptor) CleanupAndCheckRawValue(raw string) (string, error) {
	value := ToASCII(CollapseSpaces(raw))
	if !fd.tags.Has("retaincase") {
		value = FoldCase(value)
	}
	if len(value) > maxFieldLen {
		return "", &ValueError{Field: fd.name, Value: value, Err: ErrValueTooLong}
	}
	if value != "" && fd.basicType == Numeric {
		if _, err := ToNum(value); err != nil {
			return "", &ValueError{Field: fd.name, Value: value, Err: err}
		}
	}
	return value, nil
}

// BasicParse converts a normalized string to a typed Value: empty input is
// Missing, alphanumeric fields keep the string unchanged, numeric fields
// go through ToNum.
func (fd *FieldDescriptor) BasicParse(raw string) (Value, error) {
	if raw == "" {
		return MissingValue(), nil
	}
	if fd.basicType == Alphanumeric {
		return TextValue(raw), nil
	}
	value, err := ToNum(raw)
	if err != nil {
		return Value{}, &ValueError{Field: fd.name, Value: raw, Err: err}
	}
	return value, nil
}

// ParseValue is the pass-through variant of BasicParse for pipelines that
// may hand back values parsed earlier: anything already typed (or missing)
// returns unchanged, text goes through BasicParse.
func (fd *FieldDescriptor) ParseValue(v Value) (Value, error) {
	if v.Kind() != KindText {
		return v, nil
	}
	return fd.BasicParse(v.Text())
}

// Equal reports whether two descriptors have the same name, basic type and
// tag set.
func (fd *FieldDescriptor) Equal(other *FieldDescriptor) bool {
	if other == nil {
		return false
	}
	return fd.name == other.name &&
		fd.basicType == other.basicType &&
		fd.tags.Equal(&other.tags)
}
