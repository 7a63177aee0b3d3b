package dcatap

import (
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/piprate/json-gold/ld"
)

// mapContactPoint describes the first dataset contact only. The boolean result is false
// when the dataset has no contacts at all.
func (m *Mapper) mapContactPoint(g *graph.Graph, contacts []domain.CompoundEntry) (ld.Node, bool) {
	if len(contacts) == 0 {
		return nil, false
	}

	contact := contacts[0]
	node := g.Blank()

	if name, ok := contact.Value("datasetContactName"); ok {
		m.addText(g, node, m.term(VCARD, "fn"), name)
	}

	if email, _ := contact.Value("datasetContactEmail"); email != "" {
		g.AddIRI(node, m.term(VCARD, "hasEmail"), "mailto:"+escapeIRI(email))
	}

	if affiliation, _ := contact.Value("datasetContactAffiliation"); affiliation != "" {
		m.addText(g, node, m.term(VCARD, "organization-name"), affiliation)
	}

	return node, true
}
