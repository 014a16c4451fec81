// Package mtd reads the meter-details (.mtd) companion file the simulation
// engine writes next to its outputs. The file lists every report variable
// with the meters it feeds, and every meter with the variables it
// aggregates, as blank-line-separated blocks:
//
//	 Meters for 142,LIGHTS 1:Lights Electric Energy [J]
//	  OnMeter=Electricity:Facility [J]
//	  OnMeter=InteriorLights:Electricity [J]
//
//	 For Meter=Electricity:Facility [J], ResourceType=Electricity, contents are:
//	  LIGHTS 1:Lights Electric Energy
package mtd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/joulemill/eplustools/textio"
)

var (
	// variableHeaderRe matches " Meters for <id>,<ref> [<unit>]".
	variableHeaderRe = regexp.MustCompile(`^ Meters for (\d+),([^\[\]]*) \[([\w\d]*)\]$`)

	// meterHeaderRe matches " For Meter=<ref> [<unit>],<attributes...>".
	meterHeaderRe = regexp.MustCompile(`^ For Meter=([^\[\]]*) \[([\w\d]*)\],(.*)$`)

	// onMeterRe matches a variable-block body line "  OnMeter=<ref> [<unit>]".
	onMeterRe = regexp.MustCompile(`^  OnMeter=([^\[\]]*) \[[\w\d]*\]$`)

	// meterVarRe matches a meter-block body line "  <variable ref>".
	meterVarRe = regexp.MustCompile(`^  (.*)$`)
)

// Variable is one report variable and the meters it feeds.
type Variable struct {
	Ref  string
	ID   int
	Unit string

	meters []*Meter
}

// Meters returns the meters this variable feeds, in file order.
func (v *Variable) Meters() []*Meter { return v.meters }

// Meter is one meter, its attributes, and the variables it aggregates.
type Meter struct {
	Ref   string
	Unit  string
	Attrs map[string]string

	variables []*Variable
}

// Variables returns the variables this meter aggregates, in file order.
func (m *Meter) Variables() []*Variable { return m.variables }

// File is a parsed meter-details file.
type File struct {
	variables map[string]*Variable
	meters    map[string]*Meter
}

// HasMeter reports whether a meter with the given ref exists.
func (f *File) HasMeter(ref string) bool {
	_, ok := f.meters[ref]
	return ok
}

// HasVariable reports whether a variable with the given ref exists.
func (f *File) HasVariable(ref string) bool {
	_, ok := f.variables[ref]
	return ok
}

// Meter returns the meter with the given ref.
func (f *File) Meter(ref string) (*Meter, error) {
	m, ok := f.meters[ref]
	if !ok {
		return nil, fmt.Errorf("unknown meter %q", ref)
	}
	return m, nil
}

// Variable returns the variable with the given ref.
func (f *File) Variable(ref string) (*Variable, error) {
	v, ok := f.variables[ref]
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", ref)
	}
	return v, nil
}

// VariableRefs returns the refs of the variables aggregated by the given
// meter, in file order.
func (f *File) VariableRefs(meterRef string) ([]string, error) {
	m, err := f.Meter(meterRef)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(m.variables))
	for _, v := range m.variables {
		refs = append(refs, v.Ref)
	}
	return refs, nil
}

// block is one blank-line-delimited section: a header entity plus its
// body lines, linked in a second pass once every entity is known.
type block struct {
	variable *Variable
	meter    *Meter
	body     []string
}

// Parse reads a meter-details file from src, which takes the forms
// textio.StringBuffer accepts (path with .mtd extension, literal content,
// bytes or reader) in the named encoding. A nil logger discards parse
// diagnostics.
func Parse(src any, encodingName string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r, path, err := textio.StringBuffer(src, "mtd", encodingName)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f := &File{
		variables: map[string]*Variable{},
		meters:    map[string]*Meter{},
	}

	blocks, err := f.scan(r)
	if err != nil {
		return nil, err
	}
	if err := f.link(blocks); err != nil {
		return nil, err
	}

	logger.Debug("parsed meter details",
		"path", path,
		"variables", len(f.variables),
		"meters", len(f.meters),
	)
	return f, nil
}

func (f *File) scan(r io.Reader) ([]block, error) {
	var blocks []block
	var current *block

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}

		if current != nil {
			current.body = append(current.body, line)
			continue
		}

		if m := variableHeaderRe.FindStringSubmatch(line); m != nil {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("variable id in %q: %w", line, err)
			}
			v := &Variable{Ref: m[2], ID: id, Unit: m[3]}
			f.variables[v.Ref] = v
			current = &block{variable: v}
			continue
		}
		if m := meterHeaderRe.FindStringSubmatch(line); m != nil {
			mt := &Meter{Ref: m[1], Unit: m[2], Attrs: parseAttrs(m[3])}
			f.meters[mt.Ref] = mt
			current = &block{meter: mt}
			continue
		}
		return nil, fmt.Errorf("line was not parsed correctly: %q", line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read meter details: %w", err)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks, nil
}

func (f *File) link(blocks []block) error {
	for _, b := range blocks {
		if b.variable != nil {
			for _, line := range b.body {
				m := onMeterRe.FindStringSubmatch(line)
				if m == nil {
					return fmt.Errorf("meter link line was not parsed: %q", line)
				}
				meter, ok := f.meters[m[1]]
				if !ok {
					return fmt.Errorf("variable %q links unknown meter %q", b.variable.Ref, m[1])
				}
				if slices.Contains(b.variable.meters, meter) {
					return fmt.Errorf("meter %q already linked to variable %q", meter.Ref, b.variable.Ref)
				}
				b.variable.meters = append(b.variable.meters, meter)
			}
			continue
		}
		for _, line := range b.body {
			m := meterVarRe.FindStringSubmatch(line)
			if m == nil {
				return fmt.Errorf("variable link line was not parsed: %q", line)
			}
			variable, ok := f.variables[m[1]]
			if !ok {
				return fmt.Errorf("meter %q links unknown variable %q", b.meter.Ref, m[1])
			}
			if slices.Contains(b.meter.variables, variable) {
				return fmt.Errorf("variable %q already linked to meter %q", variable.Ref, b.meter.Ref)
			}
			b.meter.variables = append(b.meter.variables, variable)
		}
	}
	return nil
}

// parseAttrs extracts the k=v pairs from a meter header's trailing
// segment, skipping non-pair text like the closing "contents are:".
func parseAttrs(rest string) map[string]string {
	attrs := map[string]string{}
	for _, part := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		attrs[k] = v
	}
	return attrs
}
