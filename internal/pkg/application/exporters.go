package application

import (
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/dcatap"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
)

// ExporterSet holds one exporter per supported output format, sharing a single mapper.
type ExporterSet struct {
	byFormat      map[serializers.Format]Exporter
	defaultFormat serializers.Format
}

func NewExporterSet(mapper *dcatap.Mapper, defaultFormat serializers.Format, metrics *Metrics) (*ExporterSet, error) {
	set := &ExporterSet{
		byFormat:      map[serializers.Format]Exporter{},
		defaultFormat: defaultFormat,
	}

	for _, info := range serializers.Formats() {
		e, err := NewExporter(mapper, info.Name, metrics)
		if err != nil {
			return nil, err
		}
		set.byFormat[info.Name] = e
	}

	if _, ok := set.byFormat[defaultFormat]; !ok {
		return nil, serializers.ErrUnsupportedFormat
	}

	return set, nil
}

// For returns the exporter for the named format, or the default exporter if name is empty.
func (s *ExporterSet) For(name string) (Exporter, error) {
	if name == "" {
		return s.byFormat[s.defaultFormat], nil
	}

	f, err := serializers.ParseFormat(name)
	if err != nil {
		return nil, err
	}

	return s.byFormat[f], nil
}

func (s *ExporterSet) DefaultFormat() serializers.Format {
	return s.defaultFormat
}
