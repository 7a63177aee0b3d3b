package dcatap

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v2"
)

const (
	DCAT   string = "dcat"
	DCT    string = "dct"
	RDF    string = "rdf"
	RDFS   string = "rdfs"
	DCATAP string = "dcatap"
	VCARD  string = "vcard"
	FOAF   string = "foaf"
	SPDX   string = "spdx"
	XSD    string = "xsd"
)

// Vocabulary is the target profile of the mapping. It is handed to the mapper by value so
// that a stricter national profile can replace the defaults without touching the mapping.
type Vocabulary struct {
	Namespaces map[string]string `yaml:"namespaces"`

	// TypePredicate is the predicate used to type resources. It defaults to rdfs:type,
	// which is what existing Dataverse installations publish. A profile may set it to
	// rdf:type instead.
	TypePredicate string `yaml:"typePredicate"`

	AccessRightBase   string `yaml:"accessRightBase"`
	MediaTypeBase     string `yaml:"mediaTypeBase"`
	FileAccessBaseURL string `yaml:"fileAccessBaseURL"`
	LiteralLanguage   string `yaml:"literalLanguage"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Namespaces: map[string]string{
			DCAT:   "http://www.w3.org/ns/dcat#",
			DCT:    "http://purl.org/dc/terms/",
			RDF:    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
			RDFS:   "http://www.w3.org/2000/01/rdf-schema#",
			DCATAP: "http://data.europa.eu/r5r/",
			VCARD:  "http://www.w3.org/2006/vcard/ns#",
			FOAF:   "http://xmlns.com/foaf/0.1/",
			SPDX:   "http://spdx.org/rdf/terms#",
			XSD:    "http://www.w3.org/2001/XMLSchema#",
		},
		TypePredicate:     "http://www.w3.org/2000/01/rdf-schema#type",
		AccessRightBase:   "http://publications.europa.eu/resource/authority/access-right/",
		MediaTypeBase:     "http://www.iana.org/assignments/media-types/",
		FileAccessBaseURL: "http://localhost:8080",
		LiteralLanguage:   "en",
	}
}

// LoadVocabulary reads a YAML profile and lays it over the default vocabulary. Namespaces
// are merged prefix by prefix, every other non empty setting replaces its default. The
// type predicate may be given as a prefixed name such as "rdf:type".
func LoadVocabulary(r io.Reader) (Vocabulary, error) {
	v := DefaultVocabulary()

	b, err := io.ReadAll(r)
	if err != nil {
		return v, fmt.Errorf("failed to read vocabulary profile: %w", err)
	}

	profile := Vocabulary{}
	if err = yaml.UnmarshalStrict(b, &profile); err != nil {
		return v, fmt.Errorf("failed to parse vocabulary profile: %w", err)
	}

	maps.Copy(v.Namespaces, profile.Namespaces)

	override(&v.TypePredicate, profile.TypePredicate)
	override(&v.AccessRightBase, profile.AccessRightBase)
	override(&v.MediaTypeBase, profile.MediaTypeBase)
	override(&v.FileAccessBaseURL, profile.FileAccessBaseURL)
	override(&v.LiteralLanguage, profile.LiteralLanguage)

	v.TypePredicate = v.Expand(v.TypePredicate)

	return v, nil
}

func override(setting *string, value string) {
	if value != "" {
		*setting = value
	}
}

// WithFileAccessBaseURL returns a copy of the vocabulary that builds distribution IRIs
// from another installation's base URL.
func (v Vocabulary) WithFileAccessBaseURL(baseURL string) Vocabulary {
	if baseURL != "" {
		v.FileAccessBaseURL = baseURL
	}
	return v
}

// Term returns the IRI of a term in one of the profile namespaces.
func (v Vocabulary) Term(prefix, name string) string {
	return v.Namespaces[prefix] + name
}

// Expand turns a prefixed name into an IRI. Values with an unknown prefix, such as
// absolute IRIs, are returned as is.
func (v Vocabulary) Expand(name string) string {
	prefix, local, found := strings.Cut(name, ":")
	if !found || strings.HasPrefix(local, "//") {
		return name
	}

	if ns, ok := v.Namespaces[prefix]; ok {
		return ns + local
	}

	return name
}
