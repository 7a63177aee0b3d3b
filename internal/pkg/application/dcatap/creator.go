package dcatap

import (
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/piprate/json-gold/ld"
)

// mapCreator describes an author as a foaf:Person. Organisations are not told apart
// from persons and author identifiers such as ORCIDs are not carried over.
func (m *Mapper) mapCreator(g *graph.Graph, author domain.CompoundEntry) ld.Node {
	node := g.Blank()

	m.addType(g, node, m.term(FOAF, "Person"))

	if name, ok := author.Value("authorName"); ok {
		m.addText(g, node, m.term(FOAF, "name"), name)
	}

	if affiliation, _ := author.Value("authorAffiliation"); affiliation != "" {
		m.addText(g, node, m.term(VCARD, "organization-name"), affiliation)
	}

	return node
}
