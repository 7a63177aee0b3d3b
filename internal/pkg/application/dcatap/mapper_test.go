package dcatap

import (
	"context"
	"strings"
	"testing"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/matryer/is"
	"github.com/piprate/json-gold/ld"
	"github.com/rs/zerolog"
)

const persistentURL string = "https://doi.org/10.5072/FK2/ABCDEF"

func TestThatTheDatasetIsDescribed(t *testing.T) {
	is, g, v := testSetup(t, datasetJSON)

	dataset := g.Resource(persistentURL)

	is.Equal(iris(g, dataset, v.TypePredicate), []string{v.Term(DCAT, "Dataset")})
	is.Equal(v.TypePredicate, "http://www.w3.org/2000/01/rdf-schema#type")
	is.Equal(iris(g, dataset, v.Term(DCAT, "landingPage")), []string{persistentURL})
	is.Equal(literals(g, dataset, v.Term(DCT, "identifier")), []string{persistentURL})
	is.Equal(literals(g, dataset, v.Term(DCAT, "version")), []string{"V1.2"})
	is.Equal(literals(g, dataset, v.Term(DCT, "title")), []string{"Cars of the seventies@en"})
	is.Equal(literals(g, dataset, v.Term(DCT, "description")), []string{"All about cars.@en"})
	is.Equal(literals(g, dataset, v.Term(DCT, "issued")), []string{"2024-03-01"})
	is.Equal(literals(g, dataset, v.Term(DCT, "modified")), []string{"2024-03-05"})
	is.Equal(literals(g, dataset, v.Term(DCT, "language")), []string{"English@en", "Dutch@en"})
	is.Equal(literals(g, dataset, v.Term(DCAT, "keyword")), []string{"cars@en", "seventies@en"})
}

func TestThatNeverPopulatedPropertiesAreAbsent(t *testing.T) {
	is, g, v := testSetup(t, datasetJSON)

	dataset := g.Resource(persistentURL)

	for _, p := range []string{
		v.Term(DCT, "accessRights"), v.Term(DCAT, "theme"), v.Term(DCATAP, "applicableLegislation"),
		v.Term(DCT, "publisher"), v.Term(DCT, "provenance"), v.Term(DCT, "subject"),
	} {
		is.Equal(len(g.Objects(dataset, p)), 0) // property must stay absent
	}
}

func TestDefaultsForAMinimalDataset(t *testing.T) {
	is, g, v := testSetup(t, `{"persistentUrl":"`+persistentURL+`","datasetVersion":{}}`)

	dataset := g.Resource(persistentURL)

	is.Equal(literals(g, dataset, v.Term(DCT, "title")), []string{"no-title@en"})
	is.Equal(literals(g, dataset, v.Term(DCT, "description")), []string{"no-description@en"})
	is.Equal(literals(g, dataset, v.Term(DCT, "issued")), []string{"no-publication-date"})
	is.Equal(literals(g, dataset, v.Term(DCT, "modified")), []string{"no-last-update-time"})
	is.Equal(literals(g, dataset, v.Term(DCAT, "version")), []string{"V0.0"})
	is.Equal(len(g.Objects(dataset, v.Term(DCAT, "contactPoint"))), 0)
	is.Equal(len(g.Objects(dataset, v.Term(DCT, "creator"))), 0)
	is.Equal(len(g.Objects(dataset, v.Term(DCAT, "distribution"))), 0)
}

func TestThatUnparseableLastUpdateTimeIsKeptAsIs(t *testing.T) {
	is, g, v := testSetup(t, `{"persistentUrl":"`+persistentURL+`","datasetVersion":{"lastUpdateTime":"yesterday"}}`)
	is.Equal(literals(g, g.Resource(persistentURL), v.Term(DCT, "modified")), []string{"yesterday"})
}

func TestModificationDateLayouts(t *testing.T) {
	is := is.New(t)
	log := zerolog.Nop()

	for input, expected := range map[string]string{
		"2024-03-05T10:15:30":         "2024-03-05",
		"2024-03-05T10:15:30.123":     "2024-03-05",
		"2024-03-05T10:15:30Z":        "2024-03-05",
		"2024-03-05T23:15:30.5-02:00": "2024-03-05",
		"2024-03-05T10:15":            "2024-03-05",
		"2024-03-05":                  "2024-03-05",
		"05/03/2024":                  "05/03/2024",
		"2024-03-05 10:15:30":         "2024-03-05 10:15:30",
	} {
		is.Equal(modificationDate(log, input), expected)
	}
}

func TestDescriptionWithoutValueFallsBackToDefault(t *testing.T) {
	is, g, v := testSetup(t, `{"persistentUrl":"`+persistentURL+`","datasetVersion":{"metadataBlocks":{"citation":{"fields":[
		{"typeName":"dsDescription","multiple":true,"typeClass":"compound","value":[
			{"dsDescriptionDate":{"typeName":"dsDescriptionDate","multiple":false,"typeClass":"primitive","value":"2024"}},
			{"dsDescriptionValue":{"typeName":"dsDescriptionValue","multiple":false,"typeClass":"primitive"}},
			{"dsDescriptionValue":{"typeName":"dsDescriptionValue","multiple":false,"typeClass":"primitive","value":"Second"}}
		]}
	]}}}}`)

	is.Equal(literals(g, g.Resource(persistentURL), v.Term(DCT, "description")), []string{"no-description@en"})
}

func TestContactPointUsesTheFirstContactOnly(t *testing.T) {
	is, g, v := testSetup(t, datasetJSON)

	contacts := g.Objects(g.Resource(persistentURL), v.Term(DCAT, "contactPoint"))
	is.Equal(len(contacts), 1)

	contact := contacts[0]
	is.True(ld.IsBlankNode(contact))
	is.Equal(literals(g, contact, v.Term(VCARD, "fn")), []string{"Admin, Dataverse@en"})
	is.Equal(iris(g, contact, v.Term(VCARD, "hasEmail")), []string{"mailto:admin@example.org"})
	is.Equal(literals(g, contact, v.Term(VCARD, "organization-name")), []string{"Dataverse.org@en"})
}

func TestContactPointSkipsEmptyValues(t *testing.T) {
	is, g, v := testSetup(t, `{"persistentUrl":"`+persistentURL+`","datasetVersion":{"metadataBlocks":{"citation":{"fields":[
		{"typeName":"datasetContact","multiple":true,"typeClass":"compound","value":[{
			"datasetContactName":{"typeName":"datasetContactName","multiple":false,"typeClass":"primitive","value":""},
			"datasetContactEmail":{"typeName":"datasetContactEmail","multiple":false,"typeClass":"primitive","value":""}
		}]}
	]}}}}`)

	contact := g.Objects(g.Resource(persistentURL), v.Term(DCAT, "contactPoint"))[0]

	is.Equal(literals(g, contact, v.Term(VCARD, "fn")), []string{"@en"}) // present name is kept even when empty
	is.Equal(len(g.Objects(contact, v.Term(VCARD, "hasEmail"))), 0)
	is.Equal(len(g.Objects(contact, v.Term(VCARD, "organization-name"))), 0)
}

func TestCreators(t *testing.T) {
	is, g, v := testSetup(t, datasetJSON)

	creators := g.Objects(g.Resource(persistentURL), v.Term(DCT, "creator"))
	is.Equal(len(creators), 2)

	is.Equal(iris(g, creators[0], v.TypePredicate), []string{v.Term(FOAF, "Person")})
	is.Equal(literals(g, creators[0], v.Term(FOAF, "name")), []string{"Doe, Jane@en"})
	is.Equal(literals(g, creators[0], v.Term(VCARD, "organization-name")), []string{"Example University@en"})

	is.Equal(literals(g, creators[1], v.Term(FOAF, "name")), []string{"Roe, Richard@en"})
	is.Equal(len(g.Objects(creators[1], v.Term(VCARD, "organization-name"))), 0)
}

func TestDistributions(t *testing.T) {
	is, g, v := testSetup(t, datasetJSON)

	distributions := g.Objects(g.Resource(persistentURL), v.Term(DCAT, "distribution"))
	is.Equal(len(distributions), 2)

	csv := distributions[0]
	is.Equal(csv.GetValue(), "http://localhost:8080/api/access/datafile/42")
	is.Equal(iris(g, csv, v.TypePredicate), []string{v.Term(DCAT, "Distribution")})
	is.Equal(literals(g, csv, v.Term(DCT, "title")), []string{"cars.csv"})
	is.Equal(iris(g, csv, v.Term(DCT, "rights")), []string{"http://publications.europa.eu/resource/authority/access-right/PUBLIC"})
	is.Equal(iris(g, csv, v.Term(DCAT, "mediaType")), []string{"http://www.iana.org/assignments/media-types/text/csv"})
	is.Equal(literals(g, csv, v.Term(DCT, "description")), []string{"Raw data@en"})
	is.Equal(iris(g, csv, v.Term(DCT, "license")), []string{"http://example.org/lic"})
	is.Equal(iris(g, csv, v.Term(DCAT, "accessURL")), []string{persistentURL})

	size := g.Objects(csv, v.Term(DCAT, "byteSize"))[0].(*ld.Literal)
	is.Equal(size.Value, "12345")
	is.Equal(size.Datatype, ld.XSDInteger)

	checksums := g.Objects(csv, v.Term(SPDX, "checksum"))
	is.Equal(len(checksums), 1)
	is.Equal(iris(g, checksums[0], v.Term(SPDX, "algorithm")), []string{v.Term(SPDX, "checksumAlgorithm_sha256")})
	is.Equal(literals(g, checksums[0], v.Term(SPDX, "checksumValue")), []string{"abc123"})

	restricted := distributions[1]
	is.Equal(iris(g, restricted, v.Term(DCT, "rights")), []string{"http://publications.europa.eu/resource/authority/access-right/RESTRICTED"})
	is.Equal(literals(g, restricted, v.Term(DCT, "title")), []string{"no-filename"})
	is.Equal(iris(g, restricted, v.Term(DCAT, "mediaType")), []string{"http://www.iana.org/assignments/media-types/application/octet-stream"})
	is.Equal(len(g.Objects(restricted, v.Term(DCT, "description"))), 0) // explicitly empty description is omitted
	is.Equal(len(g.Objects(restricted, v.Term(SPDX, "checksum"))), 0)   // unknown algorithm
	is.Equal(g.Objects(restricted, v.Term(DCAT, "byteSize"))[0].GetValue(), "0")
}

func TestThatValuesUsedInIRIsAreEscaped(t *testing.T) {
	withParameters := strings.NewReplacer(
		`"contentType": "text/csv"`, `"contentType": "text/plain; charset=US-ASCII"`,
		`"admin@example.org"`, `"admin @example.org"`,
		`"uri": "http://example.org/lic"`, `"uri": "http://example.org/lic?v=<1>"`,
	).Replace(datasetJSON)

	is, g, v := testSetup(t, withParameters)

	dataset := g.Resource(persistentURL)
	csv := g.Objects(dataset, v.Term(DCAT, "distribution"))[0]
	contact := g.Objects(dataset, v.Term(DCAT, "contactPoint"))[0]

	is.Equal(iris(g, csv, v.Term(DCAT, "mediaType")), []string{"http://www.iana.org/assignments/media-types/text/plain;%20charset=US-ASCII"})
	is.Equal(iris(g, csv, v.Term(DCT, "license")), []string{"http://example.org/lic?v=%3C1%3E"})
	is.Equal(iris(g, contact, v.Term(VCARD, "hasEmail")), []string{"mailto:admin%20@example.org"})
}

func TestEscapeIRI(t *testing.T) {
	is := is.New(t)

	for value, expected := range map[string]string{
		"text/csv":                     "text/csv",
		"text/plain; charset=US-ASCII": "text/plain;%20charset=US-ASCII",
		"a\tb\"c\"":                    "a%09b%22c%22",
		"{x}|^`":                       "%7Bx%7D%7C%5E%60",
		"\\":                           "%5C",
		"résumé@example.org":           "résumé@example.org",
	} {
		is.Equal(escapeIRI(value), expected)
	}
}

func TestThatRightsDependOnlyOnTheRestrictedFlag(t *testing.T) {
	is := is.New(t)
	v := DefaultVocabulary()
	m := NewMapper(v)

	for _, restricted := range []bool{true, false} {
		g := graph.New(v.Namespaces)
		node := m.mapDistribution(g, domain.FileEntry{Restricted: restricted, DataFile: domain.DataFile{ID: 1}}, nil)

		rights := iris(g, node, v.Term(DCT, "rights"))
		is.Equal(len(rights), 1)

		if restricted {
			is.Equal(rights[0], v.AccessRightBase+AccessRightRestricted)
		} else {
			is.Equal(rights[0], v.AccessRightBase+AccessRightPublic)
		}
	}
}

func TestLicenseNameIsUsedWithoutURI(t *testing.T) {
	is := is.New(t)
	v := DefaultVocabulary()
	g := graph.New(v.Namespaces)

	node := NewMapper(v).mapDistribution(g, domain.FileEntry{}, &domain.License{Name: "Example License"})

	is.Equal(literals(g, node, v.Term(DCT, "license")), []string{"Example License@en"})
}

func TestChecksumIsOnlyEmittedForKnownAlgorithms(t *testing.T) {
	is := is.New(t)
	v := DefaultVocabulary()
	m := NewMapper(v)

	checksumType := func(s string) *string { return &s }

	for _, tc := range []struct {
		checksum *domain.Checksum
		emitted  bool
	}{
		{nil, false},
		{&domain.Checksum{Type: checksumType("SHA-1"), Value: "aa"}, true},
		{&domain.Checksum{Type: checksumType("sha-512"), Value: "aa"}, true},
		{&domain.Checksum{Type: nil, Value: "aa"}, true}, // defaults to MD5
		{&domain.Checksum{Type: checksumType("SHA-384"), Value: "aa"}, false},
		{&domain.Checksum{Type: checksumType("UNF"), Value: "aa"}, false},
		{&domain.Checksum{Type: checksumType("MD5"), Value: ""}, false},
	} {
		g := graph.New(v.Namespaces)
		_, emitted := m.mapChecksum(g, tc.checksum)
		is.Equal(emitted, tc.emitted)

		if !emitted {
			is.Equal(g.Len(), 0)
		}
	}
}

func TestChecksumAlgorithm(t *testing.T) {
	is := is.New(t)

	is.Equal(ChecksumAlgorithm("MD5"), "checksumAlgorithm_md5")
	is.Equal(ChecksumAlgorithm("md5"), "checksumAlgorithm_md5")
	is.Equal(ChecksumAlgorithm("SHA-1"), "checksumAlgorithm_sha1")
	is.Equal(ChecksumAlgorithm("Sha-224"), "checksumAlgorithm_sha224")
	is.Equal(ChecksumAlgorithm("SHA-256"), "checksumAlgorithm_sha256")
	is.Equal(ChecksumAlgorithm("SHA-512"), "checksumAlgorithm_sha512")
	is.Equal(ChecksumAlgorithm("SHA256"), "")
	is.Equal(ChecksumAlgorithm(""), "")
}

func TestWithoutPersistentURLTheDatasetIsABlankNode(t *testing.T) {
	is, g, v := testSetup(t, `{"identifier":"FK2/ABCDEF","datasetVersion":{"files":[{"dataFile":{"id":7}}]}}`)

	dataset := g.Subjects()[0]
	is.True(ld.IsBlankNode(dataset))
	is.Equal(len(g.Objects(dataset, v.Term(DCAT, "landingPage"))), 0)
	is.Equal(literals(g, dataset, v.Term(DCT, "identifier")), []string{"FK2/ABCDEF"})

	distribution := g.Objects(dataset, v.Term(DCAT, "distribution"))[0]
	is.Equal(len(g.Objects(distribution, v.Term(DCAT, "accessURL"))), 0)
}

func TestMappingIsIdempotent(t *testing.T) {
	is := is.New(t)

	ds, err := domain.ParseDataset([]byte(datasetJSON))
	is.NoErr(err)

	m := NewMapper(DefaultVocabulary())

	first := m.Map(context.Background(), ds)
	second := m.Map(context.Background(), ds)

	same, err := first.Isomorphic(second)
	is.NoErr(err)
	is.True(same)
}

func TestThatAProfileCanReplaceTheTypePredicate(t *testing.T) {
	is := is.New(t)

	v, err := LoadVocabulary(strings.NewReader(profileYAML))
	is.NoErr(err)

	ds, err := domain.ParseDataset([]byte(datasetJSON))
	is.NoErr(err)

	g := NewMapper(v.WithFileAccessBaseURL("https://demo.dataverse.org/")).Map(context.Background(), ds)
	dataset := g.Resource(persistentURL)

	is.Equal(iris(g, dataset, ld.RDFType), []string{v.Term(DCAT, "Dataset")})
	is.Equal(len(g.Objects(dataset, "http://www.w3.org/2000/01/rdf-schema#type")), 0)
	is.Equal(literals(g, dataset, v.Term(DCT, "title")), []string{"Cars of the seventies@nl"})

	distribution := g.Objects(dataset, v.Term(DCAT, "distribution"))[0]
	is.Equal(distribution.GetValue(), "https://demo.dataverse.org/api/access/datafile/42")
}

func testSetup(t *testing.T, datasetJSON string) (*is.I, *graph.Graph, Vocabulary) {
	is := is.New(t)

	ds, err := domain.ParseDataset([]byte(datasetJSON))
	is.NoErr(err)

	v := DefaultVocabulary()
	g := NewMapper(v).Map(context.Background(), ds)

	return is, g, v
}

func iris(g *graph.Graph, subject ld.Node, predicate string) []string {
	values := []string{}
	for _, o := range g.Objects(subject, predicate) {
		if ld.IsIRI(o) {
			values = append(values, o.GetValue())
		}
	}
	return values
}

// literals renders language tagged literals as value@lang
func literals(g *graph.Graph, subject ld.Node, predicate string) []string {
	values := []string{}
	for _, o := range g.Objects(subject, predicate) {
		if l, ok := o.(*ld.Literal); ok {
			if l.Language != "" {
				values = append(values, l.Value+"@"+l.Language)
			} else {
				values = append(values, l.Value)
			}
		}
	}
	return values
}

const profileYAML string = `
typePredicate: rdf:type
literalLanguage: nl
namespaces:
  adms: http://www.w3.org/ns/adms#
`

const datasetJSON string = `{
	"id": 17,
	"identifier": "FK2/ABCDEF",
	"persistentUrl": "https://doi.org/10.5072/FK2/ABCDEF",
	"protocol": "doi",
	"authority": "10.5072",
	"datasetVersion": {
		"versionNumber": 1,
		"versionMinorNumber": 2,
		"versionState": "RELEASED",
		"publicationDate": "2024-03-01",
		"lastUpdateTime": "2024-03-05T10:15:30",
		"license": {"name": "Example License", "uri": "http://example.org/lic"},
		"metadataBlocks": {
			"citation": {
				"displayName": "Citation Metadata",
				"fields": [
					{"typeName": "title", "multiple": false, "typeClass": "primitive", "value": "Cars of the seventies"},
					{"typeName": "author", "multiple": true, "typeClass": "compound", "value": [
						{
							"authorName": {"typeName": "authorName", "multiple": false, "typeClass": "primitive", "value": "Doe, Jane"},
							"authorAffiliation": {"typeName": "authorAffiliation", "multiple": false, "typeClass": "primitive", "value": "Example University"}
						},
						{
							"authorName": {"typeName": "authorName", "multiple": false, "typeClass": "primitive", "value": "Roe, Richard"},
							"authorAffiliation": {"typeName": "authorAffiliation", "multiple": false, "typeClass": "primitive", "value": ""}
						}
					]},
					{"typeName": "datasetContact", "multiple": true, "typeClass": "compound", "value": [
						{
							"datasetContactName": {"typeName": "datasetContactName", "multiple": false, "typeClass": "primitive", "value": "Admin, Dataverse"},
							"datasetContactAffiliation": {"typeName": "datasetContactAffiliation", "multiple": false, "typeClass": "primitive", "value": "Dataverse.org"},
							"datasetContactEmail": {"typeName": "datasetContactEmail", "multiple": false, "typeClass": "primitive", "value": "admin@example.org"}
						},
						{
							"datasetContactName": {"typeName": "datasetContactName", "multiple": false, "typeClass": "primitive", "value": "Second, Contact"}
						}
					]},
					{"typeName": "dsDescription", "multiple": true, "typeClass": "compound", "value": [
						{"dsDescriptionValue": {"typeName": "dsDescriptionValue", "multiple": false, "typeClass": "primitive", "value": "All about cars."}}
					]},
					{"typeName": "subject", "multiple": true, "typeClass": "controlledVocabulary", "value": ["Engineering"]},
					{"typeName": "keyword", "multiple": true, "typeClass": "compound", "value": [
						{"keywordValue": {"typeName": "keywordValue", "multiple": false, "typeClass": "primitive", "value": "cars"}},
						{"keywordValue": {"typeName": "keywordValue", "multiple": false, "typeClass": "primitive", "value": ""}},
						{"keywordVocabulary": {"typeName": "keywordVocabulary", "multiple": false, "typeClass": "primitive", "value": "LCSH"}},
						{"keywordValue": {"typeName": "keywordValue", "multiple": false, "typeClass": "primitive", "value": "seventies"}}
					]},
					{"typeName": "language", "multiple": true, "typeClass": "controlledVocabulary", "value": ["English", "Dutch"]}
				]
			}
		},
		"files": [
			{
				"label": "cars.csv",
				"restricted": false,
				"dataFile": {
					"id": 42,
					"filename": "cars.csv",
					"contentType": "text/csv",
					"filesize": 12345,
					"description": "Raw data",
					"checksum": {"type": "SHA-256", "value": "abc123"}
				}
			},
			{
				"restricted": true,
				"dataFile": {
					"id": 43,
					"description": "",
					"checksum": {"type": "UNF", "value": "UNF:6:xyz"}
				}
			}
		]
	}
}`
