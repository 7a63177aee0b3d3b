package graph

import (
	"fmt"

	"github.com/piprate/json-gold/ld"
	"golang.org/x/exp/maps"
)

const defaultGraph string = "@default"

// Graph is a single use builder for the triples of one catalog record. It keeps the
// triples in a json-gold dataset so that the dataset can be handed to the json-gold
// serializers as is.
type Graph struct {
	ds         *ld.RDFDataset
	namespaces map[string]string
	blanks     int
}

// New creates an empty graph that carries the given prefix to namespace table.
func New(namespaces map[string]string) *Graph {
	g := &Graph{
		ds:         ld.NewRDFDataset(),
		namespaces: maps.Clone(namespaces),
	}

	if g.namespaces == nil {
		g.namespaces = map[string]string{}
	}

	for prefix, ns := range g.namespaces {
		g.ds.SetNamespace(prefix, ns)
	}

	return g
}

func (g *Graph) Resource(iri string) ld.Node {
	return ld.NewIRI(iri)
}

// Blank issues a new blank node. Labels are unique within this graph only.
func (g *Graph) Blank() ld.Node {
	n := ld.NewBlankNode(fmt.Sprintf("_:b%d", g.blanks))
	g.blanks++
	return n
}

func (g *Graph) AddResource(subject ld.Node, predicate string, object ld.Node) {
	g.add(subject, predicate, object)
}

func (g *Graph) AddIRI(subject ld.Node, predicate, iri string) {
	g.add(subject, predicate, ld.NewIRI(iri))
}

// AddLiteral adds a plain, xsd:string typed, literal.
func (g *Graph) AddLiteral(subject ld.Node, predicate, value string) {
	g.add(subject, predicate, ld.NewLiteral(value, ld.XSDString, ""))
}

func (g *Graph) AddLangLiteral(subject ld.Node, predicate, value, lang string) {
	g.add(subject, predicate, ld.NewLiteral(value, ld.RDFLangString, lang))
}

func (g *Graph) AddTypedLiteral(subject ld.Node, predicate, value, datatype string) {
	g.add(subject, predicate, ld.NewLiteral(value, datatype, ""))
}

func (g *Graph) add(subject ld.Node, predicate string, object ld.Node) {
	q := ld.NewQuad(subject, ld.NewIRI(predicate), object, defaultGraph)
	g.ds.Graphs[defaultGraph] = append(g.ds.Graphs[defaultGraph], q)
}

// Objects returns the objects of all triples with the given subject and predicate,
// in insertion order.
func (g *Graph) Objects(subject ld.Node, predicate string) []ld.Node {
	objects := []ld.Node{}

	for _, q := range g.Triples() {
		if q.Subject.Equal(subject) && q.Predicate.GetValue() == predicate {
			objects = append(objects, q.Object)
		}
	}

	return objects
}

// Subjects returns every distinct subject in the order it was first used.
func (g *Graph) Subjects() []ld.Node {
	seen := map[string]bool{}
	subjects := []ld.Node{}

	for _, q := range g.Triples() {
		key := nodeKey(q.Subject)
		if !seen[key] {
			seen[key] = true
			subjects = append(subjects, q.Subject)
		}
	}

	return subjects
}

func (g *Graph) Triples() []*ld.Quad {
	return g.ds.Graphs[defaultGraph]
}

func (g *Graph) Len() int {
	return len(g.Triples())
}

func (g *Graph) Dataset() *ld.RDFDataset {
	return g.ds
}

// Namespaces returns a copy of the prefix to namespace table.
func (g *Graph) Namespaces() map[string]string {
	return maps.Clone(g.namespaces)
}

// Canonical returns the URDNA2015 canonical N-Quads form of the graph. Blank node
// labels are replaced by canonical ones, so two graphs that only differ in how their
// blank nodes are labelled have the same canonical form.
func (g *Graph) Canonical() (string, error) {
	opts := ld.NewJsonLdOptions("")
	opts.Algorithm = ld.AlgorithmURDNA2015
	opts.Format = "application/n-quads"

	// normalisation relabels blank nodes in place
	result, err := ld.NewJsonLdApi().Normalize(g.copyDataset(), opts)
	if err != nil {
		return "", fmt.Errorf("failed to normalize graph: %w", err)
	}

	nquads, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected normalization result of type %T", result)
	}

	return nquads, nil
}

// Isomorphic reports whether both graphs hold the same triples once blank node
// labels are disregarded.
func (g *Graph) Isomorphic(other *Graph) (bool, error) {
	this, err := g.Canonical()
	if err != nil {
		return false, err
	}

	that, err := other.Canonical()
	if err != nil {
		return false, err
	}

	return this == that, nil
}

func (g *Graph) copyDataset() *ld.RDFDataset {
	ds := ld.NewRDFDataset()

	for _, q := range g.Triples() {
		ds.Graphs[defaultGraph] = append(
			ds.Graphs[defaultGraph],
			ld.NewQuad(copyNode(q.Subject), copyNode(q.Predicate), copyNode(q.Object), defaultGraph),
		)
	}

	return ds
}

func copyNode(n ld.Node) ld.Node {
	switch v := n.(type) {
	case *ld.IRI:
		return ld.NewIRI(v.Value)
	case *ld.BlankNode:
		return ld.NewBlankNode(v.Attribute)
	case *ld.Literal:
		return &ld.Literal{Value: v.Value, Datatype: v.Datatype, Language: v.Language}
	}

	return n
}

func nodeKey(n ld.Node) string {
	if ld.IsBlankNode(n) {
		return n.GetValue()
	}
	return "<" + n.GetValue() + ">"
}
