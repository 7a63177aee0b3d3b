package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errNotAnObject = errors.New("dataset json is not an object")

// Dataset is the subset of a Dataverse dataset export that is needed to build a catalog record.
type Dataset struct {
	Identifier     string         `json:"identifier"`
	PersistentURL  string         `json:"persistentUrl"`
	Protocol       string         `json:"protocol,omitempty"`
	Authority      string         `json:"authority,omitempty"`
	DatasetVersion DatasetVersion `json:"datasetVersion"`
}

type DatasetVersion struct {
	VersionNumber      int            `json:"versionNumber"`
	VersionMinorNumber int            `json:"versionMinorNumber"`
	VersionState       string         `json:"versionState,omitempty"`
	PublicationDate    *string        `json:"publicationDate,omitempty"`
	LastUpdateTime     *string        `json:"lastUpdateTime,omitempty"`
	MetadataBlocks     MetadataBlocks `json:"metadataBlocks"`
	License            *License       `json:"license,omitempty"`
	Files              []FileEntry    `json:"files"`
}

type MetadataBlocks struct {
	Citation MetadataBlock `json:"citation"`
}

type MetadataBlock struct {
	DisplayName string  `json:"displayName,omitempty"`
	Fields      []Field `json:"fields"`
}

// License is the dataset level license. Dataverse has no per file license.
type License struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts the license object and silently ignores any other shape,
// such as the plain license names written by older installations.
func (l *License) UnmarshalJSON(data []byte) error {
	var obj struct {
		URI  *string `json:"uri"`
		Name *string `json:"name"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}

	if obj.URI != nil {
		l.URI = *obj.URI
	}
	if obj.Name != nil {
		l.Name = *obj.Name
	}

	return nil
}

type FileEntry struct {
	Label      string   `json:"label,omitempty"`
	Restricted bool     `json:"restricted"`
	DataFile   DataFile `json:"dataFile"`
}

type DataFile struct {
	ID                 int64     `json:"id"`
	PersistentID       string    `json:"persistentId,omitempty"`
	Filename           *string   `json:"filename,omitempty"`
	Filesize           int64     `json:"filesize"`
	Description        *string   `json:"description,omitempty"`
	ContentType        *string   `json:"contentType,omitempty"`
	Checksum           *Checksum `json:"checksum,omitempty"`
	StorageIdentifier  string    `json:"storageIdentifier,omitempty"`
	RootDataFileID     int64     `json:"rootDataFileId,omitempty"`
	TabularData        bool      `json:"tabularData,omitempty"`
	OriginalFileFormat string    `json:"originalFileFormat,omitempty"`
}

type Checksum struct {
	Type  *string `json:"type,omitempty"`
	Value string  `json:"value"`
}

// ParseDataset decodes a dataset export document. Only malformed JSON, or a document
// that is not a JSON object, is reported as an error. Properties of an unexpected JSON
// type decode to their zero value, and metadata fields of an unexpected shape decode
// into fields without a value.
func ParseDataset(data []byte) (*Dataset, error) {
	ds := &Dataset{}

	err := json.Unmarshal(data, ds)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset json: %w", err)
	}

	return ds, nil
}

// Citation returns an index over the fields of the citation metadata block.
func (ds *Dataset) Citation() Fields {
	return NewFields(ds.DatasetVersion.MetadataBlocks.Citation.Fields)
}

func (ds *Dataset) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return errNotAnObject
	}

	*ds = Dataset{
		Identifier:    stringValue(obj["identifier"]),
		PersistentURL: stringValue(obj["persistentUrl"]),
		Protocol:      stringValue(obj["protocol"]),
		Authority:     stringValue(obj["authority"]),
	}

	if v, ok := obj["datasetVersion"]; ok {
		ds.DatasetVersion.decode(v)
	}

	return nil
}

// decode never fails. Values of the wrong JSON type are left at their zero value.
func (v *DatasetVersion) decode(data []byte) {
	*v = DatasetVersion{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return
	}

	v.VersionNumber = int(int64Value(obj["versionNumber"]))
	v.VersionMinorNumber = int(int64Value(obj["versionMinorNumber"]))
	v.VersionState = stringValue(obj["versionState"])
	v.PublicationDate = optionalString(obj["publicationDate"])
	v.LastUpdateTime = optionalString(obj["lastUpdateTime"])

	json.Unmarshal(obj["metadataBlocks"], &v.MetadataBlocks)

	var license *License
	if json.Unmarshal(obj["license"], &license) == nil {
		v.License = license
	}

	var files []json.RawMessage
	if json.Unmarshal(obj["files"], &files) == nil {
		for _, raw := range files {
			entry := FileEntry{}
			entry.decode(raw)
			v.Files = append(v.Files, entry)
		}
	}
}

func (f *FileEntry) decode(data []byte) {
	*f = FileEntry{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return
	}

	f.Label = stringValue(obj["label"])
	f.Restricted = boolValue(obj["restricted"])
	f.DataFile.decode(obj["dataFile"])
}

func (df *DataFile) decode(data []byte) {
	*df = DataFile{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return
	}

	df.ID = int64Value(obj["id"])
	df.PersistentID = stringValue(obj["persistentId"])
	df.Filename = optionalString(obj["filename"])
	df.Filesize = int64Value(obj["filesize"])
	df.Description = optionalString(obj["description"])
	df.ContentType = optionalString(obj["contentType"])
	df.StorageIdentifier = stringValue(obj["storageIdentifier"])
	df.RootDataFileID = int64Value(obj["rootDataFileId"])
	df.TabularData = boolValue(obj["tabularData"])
	df.OriginalFileFormat = stringValue(obj["originalFileFormat"])

	var checksum *Checksum
	if json.Unmarshal(obj["checksum"], &checksum) == nil {
		df.Checksum = checksum
	}
}

// The helpers below decode a single scalar and yield the zero value if it is absent
// or of another JSON type.

func stringValue(raw json.RawMessage) string {
	var s string
	json.Unmarshal(raw, &s)
	return s
}

func optionalString(raw json.RawMessage) *string {
	var s *string
	if json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return s
}

func int64Value(raw json.RawMessage) int64 {
	var n int64
	if json.Unmarshal(raw, &n) != nil {
		return 0
	}
	return n
}

func boolValue(raw json.RawMessage) bool {
	var b bool
	json.Unmarshal(raw, &b)
	return b
}
