package dcatap

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/piprate/json-gold/ld"
	"github.com/rs/zerolog"
)

const (
	DefaultTitle           string = "no-title"
	DefaultDescription     string = "no-description"
	DefaultPublicationDate string = "no-publication-date"
	DefaultLastUpdateTime  string = "no-last-update-time"

	YearMonthDayISO8601 string = "2006-01-02"
)

var lastUpdateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// Mapper builds the DCAT-AP catalog record of a dataset. A Mapper holds no state
// between calls and may be shared.
type Mapper struct {
	vocab Vocabulary
}

func NewMapper(vocab Vocabulary) *Mapper {
	return &Mapper{vocab: vocab}
}

func (m *Mapper) Vocabulary() Vocabulary {
	return m.vocab
}

// Map never fails. Missing or malformed metadata is replaced by default values.
func (m *Mapper) Map(ctx context.Context, ds *domain.Dataset) *graph.Graph {
	log := logging.GetFromContext(ctx)

	g := graph.New(m.vocab.Namespaces)
	fields := ds.Citation()
	version := ds.DatasetVersion

	var dataset ld.Node
	if ds.PersistentURL != "" {
		dataset = g.Resource(ds.PersistentURL)
	} else {
		dataset = g.Blank()
	}

	m.addType(g, dataset, m.term(DCAT, "Dataset"))

	if ds.PersistentURL != "" {
		g.AddIRI(dataset, m.term(DCAT, "landingPage"), ds.PersistentURL)
	}

	if identifier := firstNonEmpty(ds.PersistentURL, ds.Identifier); identifier != "" {
		g.AddLiteral(dataset, m.term(DCT, "identifier"), identifier)
	}

	g.AddLiteral(dataset, m.term(DCAT, "version"), versionLabel(version.VersionNumber, version.VersionMinorNumber))

	title, ok := fields.PrimitiveValue("title")
	if !ok {
		title = DefaultTitle
	}
	m.addText(g, dataset, m.term(DCT, "title"), title)
	m.addText(g, dataset, m.term(DCT, "description"), description(fields))

	issued := DefaultPublicationDate
	if version.PublicationDate != nil {
		issued = *version.PublicationDate
	}
	g.AddLiteral(dataset, m.term(DCT, "issued"), issued)

	modified := DefaultLastUpdateTime
	if version.LastUpdateTime != nil {
		modified = modificationDate(log, *version.LastUpdateTime)
	}
	g.AddLiteral(dataset, m.term(DCT, "modified"), modified)

	if contact, ok := m.mapContactPoint(g, fields.CompoundValues("datasetContact")); ok {
		g.AddResource(dataset, m.term(DCAT, "contactPoint"), contact)
	}

	for _, author := range fields.CompoundValues("author") {
		g.AddResource(dataset, m.term(DCT, "creator"), m.mapCreator(g, author))
	}

	for _, language := range fields.MultipleValueList("language") {
		m.addText(g, dataset, m.term(DCT, "language"), language)
	}

	for _, keyword := range fields.CompoundValues("keyword") {
		if value, _ := keyword.Value("keywordValue"); value != "" {
			m.addText(g, dataset, m.term(DCAT, "keyword"), value)
		}
	}

	for _, file := range version.Files {
		distribution := m.mapDistribution(g, file, version.License)

		if ds.PersistentURL != "" {
			g.AddIRI(distribution, m.term(DCAT, "accessURL"), ds.PersistentURL)
		}

		g.AddResource(dataset, m.term(DCAT, "distribution"), distribution)
	}

	return g
}

func (m *Mapper) term(prefix, name string) string {
	return m.vocab.Term(prefix, name)
}

func (m *Mapper) addType(g *graph.Graph, subject ld.Node, class string) {
	g.AddIRI(subject, m.vocab.TypePredicate, class)
}

// addText adds a human readable literal tagged with the profile's metadata language.
func (m *Mapper) addText(g *graph.Graph, subject ld.Node, predicate, text string) {
	g.AddLangLiteral(subject, predicate, text, m.vocab.LiteralLanguage)
}

func versionLabel(major, minor int) string {
	return fmt.Sprintf("V%d.%d", major, minor)
}

// description returns the first dsDescriptionValue of the dsDescription entries.
func description(fields domain.Fields) string {
	for _, entry := range fields.CompoundValues("dsDescription") {
		f, ok := entry["dsDescriptionValue"]
		if !ok {
			continue
		}

		if v, ok := f.Value.(domain.Single); ok {
			return string(v)
		}

		return DefaultDescription
	}

	return DefaultDescription
}

func modificationDate(log zerolog.Logger, lastUpdateTime string) string {
	for _, layout := range lastUpdateTimeLayouts {
		if t, err := time.Parse(layout, lastUpdateTime); err == nil {
			return t.Format(YearMonthDayISO8601)
		}
	}

	log.Warn().Str("lastUpdateTime", lastUpdateTime).Msg("failed to parse last update time, using it as is")

	return lastUpdateTime
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
