package dcatap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/piprate/json-gold/ld"
)

const (
	DefaultFilename        string = "no-filename"
	DefaultFileDescription string = "No specific description available"
	DefaultContentType     string = "application/octet-stream"
	AccessRightPublic      string = "PUBLIC"
	AccessRightRestricted  string = "RESTRICTED"
	fileAccessPathFormat   string = "%s/api/access/datafile/%d"
)

// DistributionIRI returns the file access endpoint of a data file in the installation
// the vocabulary points at.
func (v Vocabulary) DistributionIRI(fileID int64) string {
	return fmt.Sprintf(fileAccessPathFormat, strings.TrimSuffix(v.FileAccessBaseURL, "/"), fileID)
}

// mapDistribution describes one file. Dataverse only knows licenses at the dataset
// level, so the dataset license is passed on to every distribution.
func (m *Mapper) mapDistribution(g *graph.Graph, file domain.FileEntry, license *domain.License) ld.Node {
	df := file.DataFile
	node := g.Resource(m.vocab.DistributionIRI(df.ID))

	m.addType(g, node, m.term(DCAT, "Distribution"))

	filename := DefaultFilename
	if df.Filename != nil {
		filename = *df.Filename
	}
	g.AddLiteral(node, m.term(DCT, "title"), filename)

	accessRight := AccessRightPublic
	if file.Restricted {
		accessRight = AccessRightRestricted
	}
	g.AddIRI(node, m.term(DCT, "rights"), m.vocab.AccessRightBase+accessRight)

	g.AddTypedLiteral(node, m.term(DCAT, "byteSize"), strconv.FormatInt(df.Filesize, 10), ld.XSDInteger)

	description := DefaultFileDescription
	if df.Description != nil {
		description = *df.Description
	}
	if description != "" {
		m.addText(g, node, m.term(DCT, "description"), description)
	}

	contentType := DefaultContentType
	if df.ContentType != nil {
		contentType = *df.ContentType
	}
	g.AddIRI(node, m.term(DCAT, "mediaType"), m.vocab.MediaTypeBase+escapeIRI(contentType))

	if checksum, ok := m.mapChecksum(g, df.Checksum); ok {
		g.AddResource(node, m.term(SPDX, "checksum"), checksum)
	}

	if license != nil {
		if license.URI != "" {
			g.AddIRI(node, m.term(DCT, "license"), escapeIRI(license.URI))
		} else if license.Name != "" {
			m.addText(g, node, m.term(DCT, "license"), license.Name)
		}
	}

	return node
}
