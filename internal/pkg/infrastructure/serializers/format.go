package serializers

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Format string

const (
	RDFXML Format = "RDF/XML"
	Turtle Format = "TURTLE"
	JSONLD Format = "JSON-LD"
	NQuads Format = "N-QUADS"
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported output format")

// FormatInfo describes an output format the way it is announced to clients.
type FormatInfo struct {
	Name        Format `json:"name"`
	MediaType   string `json:"mediaType"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
}

var registry = map[Format]FormatInfo{
	RDFXML: {
		Name:        RDFXML,
		MediaType:   "application/xml",
		Extension:   ".rdf",
		Description: "RDF/XML, the default and the best fit for OAI-PMH harvesting",
	},
	Turtle: {
		Name:        Turtle,
		MediaType:   "text/plain",
		Extension:   ".ttl",
		Description: "Turtle, a human readable text format",
	},
	JSONLD: {
		Name:        JSONLD,
		MediaType:   "application/json",
		Extension:   ".jsonld",
		Description: "JSON-LD, compacted with the profile prefixes as context",
	},
	NQuads: {
		Name:        NQuads,
		MediaType:   "application/n-quads",
		Extension:   ".nq",
		Description: "N-Quads, one statement per line",
	},
}

var aliases = map[string]Format{
	"":        RDFXML,
	"RDF/XML": RDFXML,
	"RDFXML":  RDFXML,
	"XML":     RDFXML,
	"TURTLE":  Turtle,
	"TTL":     Turtle,
	"JSON-LD": JSONLD,
	"JSONLD":  JSONLD,
	"N-QUADS": NQuads,
	"NQUADS":  NQuads,
	"NQ":      NQuads,
}

// ParseFormat resolves a configured output language. Names are case insensitive and an
// empty name selects RDF/XML.
func ParseFormat(name string) (Format, error) {
	f, ok := aliases[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

func Info(f Format) (FormatInfo, bool) {
	info, ok := registry[f]
	return info, ok
}

// Formats returns the supported formats sorted by name.
func Formats() []FormatInfo {
	names := maps.Keys(registry)
	slices.Sort(names)

	infos := make([]FormatInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, registry[name])
	}

	return infos
}

func (f Format) MediaType() string {
	return registry[f].MediaType
}

func (f Format) String() string {
	return string(f)
}
