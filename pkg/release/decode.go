package release

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeDocument parses a loaded document into ReleaseData and validates the
// required fields. The encoding is chosen from the document location: .yaml
// and .yml decode as YAML, everything else as JSON.
func DecodeDocument(doc Document) (ReleaseData, error) {
	var (
		data ReleaseData
		err  error
	)

	switch strings.ToLower(path.Ext(doc.Location())) {
	case ".yaml", ".yml":
		data, err = DecodeYAML(doc.Raw())
	default:
		data, err = DecodeJSON(doc.Raw())
	}
	if err != nil {
		return ReleaseData{}, err
	}

	if err := data.Validate(); err != nil {
		return ReleaseData{}, err
	}
	return data, nil
}

// DecodeJSON parses a JSON release data payload without validating it.
func DecodeJSON(raw []byte) (ReleaseData, error) {
	var data ReleaseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ReleaseData{}, fmt.Errorf("release: decode JSON document: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML release data payload without validating it.
func DecodeYAML(raw []byte) (ReleaseData, error) {
	var data ReleaseData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return ReleaseData{}, fmt.Errorf("release: decode YAML document: %w", err)
	}
	return data, nil
}
