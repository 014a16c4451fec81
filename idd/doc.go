// Package idd models schema entries from an EnergyPlus Input Data
// Dictionary and turns raw field text into typed values.
//
// # Field descriptors
//
// Every positional slot of a record format is described by one
// [FieldDescriptor]: a basic storage type plus an open-ended set of
// annotation tags sourced from the dictionary. The basic type is the
// single-letter code the dictionary uses:
//
//	A → alphanumeric (free text)
//	N → numeric
//
// Tags are named, possibly multi-valued annotations. A tag may exist with
// no values at all; presence alone is meaningful (for example `retaincase`).
// Tags that influence behavior:
//
//	retaincase     presence disables lower-casing during normalization
//	note           free-text fragments, consumed joined as one string
//	reference      detailed type is "reference"
//	type           detailed type is the tag's first value, lower-cased
//	key            detailed type is "choice"
//	object-list    detailed type is "object-list"
//	external-list  detailed type is "external-list"
//
// # Detailed type resolution
//
// The dictionary declares types two ways at once: an explicit `type` tag
// and structural tags (`key`, `object-list`, ...). [FieldDescriptor.DetailedType]
// resolves the conflict with a fixed precedence, first match wins:
//
//	reference > type > key > object-list > external-list > basic type
//
// A `reference` tag always wins because referenced identifiers must be
// unique process-wide regardless of any declared type; an explicit `type`
// wins over structural cues because it is the schema author's statement of
// intent. The dictionary is not rigorous about case, so `type` values pass
// through lower-cased and unvalidated.
//
// # Value normalization
//
// Raw tokens handed over by a record reader go through
// [FieldDescriptor.CleanupAndCheckRawValue]: whitespace runs collapse to
// single spaces, the text is transliterated to its nearest ASCII
// representation, lower-cased unless `retaincase` is present, and rejected
// above 100 characters. Numeric fields additionally reject tokens that are
// neither integers, floats, nor the reserved sentinel keywords
// "autocalculate" and "autosize", which the engine accepts in place of a
// number to mean "compute this automatically".
//
// [FieldDescriptor.BasicParse] then produces a [Value], a closed tagged
// union over Missing/Text/Integer/Real/Sentinel, so consumers handle every
// case explicitly.
//
// Descriptors are not safe for concurrent mutation: finalize the schema,
// then read from as many goroutines as you like.
package idd
