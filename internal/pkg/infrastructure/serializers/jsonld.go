package serializers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/piprate/json-gold/ld"
)

type jsonLDSerializer struct{}

func (s *jsonLDSerializer) Format() Format {
	return JSONLD
}

// Serialize converts the graph to expanded JSON-LD and compacts it against a context
// made of the graph's namespace prefixes.
func (s *jsonLDSerializer) Serialize(w io.Writer, g *graph.Graph) error {
	opts := ld.NewJsonLdOptions("")

	expanded, err := ld.NewJsonLdApi().FromRDF(g.Dataset(), opts)
	if err != nil {
		return fmt.Errorf("failed to convert graph to json-ld: %w", err)
	}

	context := map[string]any{
		"@context": g.Dataset().GetContext(),
	}

	compacted, err := ld.NewJsonLdProcessor().Compact(expanded, context, opts)
	if err != nil {
		return fmt.Errorf("failed to compact json-ld document: %w", err)
	}

	b, err := json.MarshalIndent(compacted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json-ld document: %w", err)
	}

	_, err = w.Write(append(b, '\n'))
	return err
}
