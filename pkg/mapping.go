package evtfilter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MappingFile is the on-disk form of the reference tables, YAML or JSON:
//
//	channels:
//	  - {channel: 1, types: [TIME, ENERGY], sm: 0, mm: 3}
type MappingFile struct {
	Channels []MappingFileEntry `yaml:"channels"`
}

type MappingFileEntry struct {
	Channel ChannelID     `yaml:"channel"`
	Types   []ChannelType `yaml:"types"`
	SM      int           `yaml:"sm"`
	MM      int           `yaml:"mm"`
}

func LoadMappingFile(filename string) (Mapping, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Mapping{}, &ErrOpenFile{Filename: filename, Err: err}
	}
	var file MappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Mapping{}, fmt.Errorf("error parsing mapping file %q: %w", filename, err)
	}

	mapping := Mapping{
		ChannelTypes: make(ChannelTypeMap, len(file.Channels)),
		Modules:      make(ModuleMap[ModuleID], len(file.Channels)),
	}
	for _, entry := range file.Channels {
		if _, ok := mapping.ChannelTypes[entry.Channel]; ok {
			return Mapping{}, fmt.Errorf("channel %d defined twice in %q", entry.Channel, filename)
		}
		mapping.ChannelTypes[entry.Channel] = entry.Types
		mapping.Modules[entry.Channel] = ModuleID{SM: entry.SM, MM: entry.MM}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Mapping read from %s: %d channels", filename, len(file.Channels))
		logger.Info(message, "mapping")
	}
	return mapping, nil
}
