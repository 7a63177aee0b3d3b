package serializers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type turtleSerializer struct{}

func (s *turtleSerializer) Format() Format {
	return Turtle
}

func (s *turtleSerializer) Serialize(w io.Writer, g *graph.Graph) error {
	triples := make([]rdf.Triple, 0, g.Len())

	for _, q := range g.Triples() {
		t, err := toTriple(q)
		if err != nil {
			return err
		}
		triples = append(triples, t)
	}

	enc := rdf.NewTripleEncoder(w, rdf.Turtle)
	enc.Namespaces = turtleNamespaces(g.Namespaces())
	enc.GenerateNamespaces = false

	if err := enc.EncodeAll(triples); err != nil {
		return fmt.Errorf("failed to encode turtle: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush turtle encoder: %w", err)
	}

	return nil
}

// turtleNamespaces inverts a prefix table into the namespace to prefix mapping the
// encoder expects. Where two prefixes share a namespace the first in order wins.
func turtleNamespaces(namespaces map[string]string) map[string]string {
	prefixes := maps.Keys(namespaces)
	slices.Sort(prefixes)

	byNamespace := make(map[string]string, len(namespaces))
	for _, prefix := range prefixes {
		ns := namespaces[prefix]
		if _, exists := byNamespace[ns]; !exists && ns != "" {
			byNamespace[ns] = prefix
		}
	}

	return byNamespace
}

func toTriple(q *ld.Quad) (rdf.Triple, error) {
	subj, err := toTerm(q.Subject)
	if err != nil {
		return rdf.Triple{}, err
	}

	pred, err := rdf.NewIRI(q.Predicate.GetValue())
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("invalid predicate %q: %w", q.Predicate.GetValue(), err)
	}

	obj, err := toTerm(q.Object)
	if err != nil {
		return rdf.Triple{}, err
	}

	subject, ok := subj.(rdf.Subject)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("%s can not be used as a subject", q.Subject.GetValue())
	}

	return rdf.Triple{Subj: subject, Pred: pred, Obj: obj.(rdf.Object)}, nil
}

func toTerm(n ld.Node) (rdf.Term, error) {
	switch v := n.(type) {
	case *ld.IRI:
		iri, err := rdf.NewIRI(v.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid iri %q: %w", v.Value, err)
		}
		return iri, nil
	case *ld.BlankNode:
		return rdf.NewBlank(strings.TrimPrefix(v.Attribute, "_:"))
	case *ld.Literal:
		return toLiteral(v)
	}

	return nil, fmt.Errorf("unexpected node type %T", n)
}

func toLiteral(l *ld.Literal) (rdf.Term, error) {
	if l.Language != "" {
		lit, err := rdf.NewLangLiteral(l.Value, l.Language)
		if err != nil {
			return nil, fmt.Errorf("invalid language tagged literal %q: %w", l.Value, err)
		}
		return lit, nil
	}

	if l.Datatype == "" || l.Datatype == ld.XSDString {
		return rdf.NewLiteral(l.Value)
	}

	datatype, err := rdf.NewIRI(l.Datatype)
	if err != nil {
		return nil, fmt.Errorf("invalid datatype %q: %w", l.Datatype, err)
	}

	return rdf.NewTypedLiteral(l.Value, datatype), nil
}
