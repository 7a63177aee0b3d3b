package serializers

import (
	"fmt"
	"io"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
)

// Serializer writes a catalog graph in one RDF syntax.
type Serializer interface {
	Format() Format
	Serialize(w io.Writer, g *graph.Graph) error
}

// For returns the serializer of a supported format.
func For(f Format) (Serializer, error) {
	switch f {
	case RDFXML:
		return &rdfXMLSerializer{}, nil
	case Turtle:
		return &turtleSerializer{}, nil
	case JSONLD:
		return &jsonLDSerializer{}, nil
	case NQuads:
		return &nQuadsSerializer{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}
