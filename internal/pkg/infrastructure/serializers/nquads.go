package serializers

import (
	"fmt"
	"io"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/piprate/json-gold/ld"
)

type nQuadsSerializer struct{}

func (s *nQuadsSerializer) Format() Format {
	return NQuads
}

func (s *nQuadsSerializer) Serialize(w io.Writer, g *graph.Graph) error {
	err := (&ld.NQuadRDFSerializer{}).SerializeTo(w, g.Dataset())
	if err != nil {
		return fmt.Errorf("failed to write n-quads: %w", err)
	}
	return nil
}
