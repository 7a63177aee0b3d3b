package serializers

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const rdfNS string = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

var ncName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

var ErrNotRepresentable = fmt.Errorf("predicate can not be written as rdf/xml")

type rdfXMLSerializer struct{}

func (s *rdfXMLSerializer) Format() Format {
	return RDFXML
}

// Serialize writes one rdf:Description per subject, in the order the subjects were added
// to the graph. Predicates are written as prefixed names, using the graph's prefixes
// where possible and generated ones otherwise.
func (s *rdfXMLSerializer) Serialize(w io.Writer, g *graph.Graph) error {
	ns := newPrefixTable(g.Namespaces())

	type property struct {
		name   string
		object ld.Node
	}

	bySubject := map[string][]property{}

	for _, q := range g.Triples() {
		name, err := ns.qname(q.Predicate.GetValue())
		if err != nil {
			return err
		}

		key := subjectKey(q.Subject)
		bySubject[key] = append(bySubject[key], property{name: name, object: q.Object})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "rdf:RDF"}}
	for _, prefix := range ns.prefixes() {
		root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: ns.byPrefix[prefix]})
	}

	tokens := []xml.Token{root}

	for _, subject := range g.Subjects() {
		description := xml.StartElement{
			Name: xml.Name{Local: "rdf:Description"},
			Attr: []xml.Attr{nodeAttr("rdf:about", subject)},
		}
		tokens = append(tokens, description)

		for _, p := range bySubject[subjectKey(subject)] {
			tokens = append(tokens, propertyElement(p.name, p.object)...)
		}

		tokens = append(tokens, description.End())
	}

	tokens = append(tokens, root.End())

	for _, t := range tokens {
		if err := enc.EncodeToken(t); err != nil {
			return fmt.Errorf("failed to encode rdf/xml: %w", err)
		}
	}

	if err := enc.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func propertyElement(name string, object ld.Node) []xml.Token {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	switch o := object.(type) {
	case *ld.Literal:
		if o.Language != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xml:lang"}, Value: o.Language})
		} else if o.Datatype != "" && o.Datatype != ld.XSDString {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "rdf:datatype"}, Value: o.Datatype})
		}
		return []xml.Token{start, xml.CharData(o.Value), start.End()}
	default:
		start.Attr = append(start.Attr, nodeAttr("rdf:resource", object))
		return []xml.Token{start, start.End()}
	}
}

// nodeAttr refers to a node by IRI, or by node id if the node is blank.
func nodeAttr(iriAttr string, n ld.Node) xml.Attr {
	if ld.IsBlankNode(n) {
		return xml.Attr{Name: xml.Name{Local: "rdf:nodeID"}, Value: strings.TrimPrefix(n.GetValue(), "_:")}
	}
	return xml.Attr{Name: xml.Name{Local: iriAttr}, Value: n.GetValue()}
}

func subjectKey(n ld.Node) string {
	if ld.IsBlankNode(n) {
		return n.GetValue()
	}
	return "<" + n.GetValue() + ">"
}

type prefixTable struct {
	byPrefix  map[string]string
	generated int
}

func newPrefixTable(namespaces map[string]string) *prefixTable {
	pt := &prefixTable{byPrefix: map[string]string{"rdf": rdfNS}}

	for prefix, ns := range namespaces {
		if prefix == "rdf" || strings.HasPrefix(strings.ToLower(prefix), "xml") || !ncName.MatchString(prefix) {
			continue
		}
		pt.byPrefix[prefix] = ns
	}

	return pt
}

func (pt *prefixTable) prefixes() []string {
	prefixes := maps.Keys(pt.byPrefix)
	slices.Sort(prefixes)
	return prefixes
}

// qname returns the prefixed name of a predicate IRI. The longest matching namespace
// wins. IRIs outside every known namespace get a generated prefix.
func (pt *prefixTable) qname(iri string) (string, error) {
	best := ""

	for _, prefix := range pt.prefixes() {
		ns := pt.byPrefix[prefix]
		if strings.HasPrefix(iri, ns) && ncName.MatchString(iri[len(ns):]) {
			if best == "" || len(ns) > len(pt.byPrefix[best]) {
				best = prefix
			}
		}
	}

	if best != "" {
		return best + ":" + iri[len(pt.byPrefix[best]):], nil
	}

	i := strings.LastIndexAny(iri, "#/:")
	if i < 0 || !ncName.MatchString(iri[i+1:]) {
		return "", fmt.Errorf("%w: %s", ErrNotRepresentable, iri)
	}

	prefix := fmt.Sprintf("ns%d", pt.generated)
	for pt.byPrefix[prefix] != "" {
		pt.generated++
		prefix = fmt.Sprintf("ns%d", pt.generated)
	}
	pt.generated++

	pt.byPrefix[prefix] = iri[:i+1]

	return prefix + ":" + iri[i+1:], nil
}
