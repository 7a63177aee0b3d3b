package dcatap

import (
	"strings"

	"github.com/gdcc/exporter-dcatap/internal/pkg/application/graph"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/piprate/json-gold/ld"
)

// DefaultChecksumType is assumed for checksums that do not state their algorithm.
const DefaultChecksumType string = "MD5"

// Dataverse names its supported algorithms with a dash, e.g. SHA-256.
var spdxChecksumAlgorithms = map[string]string{
	"MD5":     "checksumAlgorithm_md5",
	"SHA-1":   "checksumAlgorithm_sha1",
	"SHA-224": "checksumAlgorithm_sha224",
	"SHA-256": "checksumAlgorithm_sha256",
	"SHA-512": "checksumAlgorithm_sha512",
}

// ChecksumAlgorithm returns the local name of the SPDX checksum algorithm for a Dataverse
// checksum type, or an empty string if there is no such algorithm.
func ChecksumAlgorithm(checksumType string) string {
	return spdxChecksumAlgorithms[strings.ToUpper(checksumType)]
}

func (m *Mapper) mapChecksum(g *graph.Graph, checksum *domain.Checksum) (ld.Node, bool) {
	if checksum == nil {
		return nil, false
	}

	checksumType := DefaultChecksumType
	if checksum.Type != nil {
		checksumType = *checksum.Type
	}

	algorithm := ChecksumAlgorithm(checksumType)
	if algorithm == "" || checksum.Value == "" {
		return nil, false
	}

	node := g.Blank()
	g.AddIRI(node, m.term(SPDX, "algorithm"), m.term(SPDX, algorithm))
	g.AddLiteral(node, m.term(SPDX, "checksumValue"), checksum.Value)

	return node, true
}
