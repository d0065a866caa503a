package services

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"oruma/models"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// deviceExport is the envelope address-book exports use
type deviceExport struct {
	Contacts []models.DeviceContact `json:"contacts" yaml:"contacts"`
}

// DecodeDeviceContacts reads an address-book export. JSON bodies may be an
// envelope with a contacts list or a bare array; YAML bodies likewise.
// An empty content type is read as JSON.
func DecodeDeviceContacts(contentType string, body []byte) ([]models.DeviceContact, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidImportInput)
	}

	mediaType := "application/json"
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
		}
		mediaType = parsed
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(body)
	case isYAML(mediaType):
		return decodeYAML(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
}

func isYAML(mediaType string) bool {
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

func decodeJSON(body []byte) ([]models.DeviceContact, error) {
	var contacts []models.DeviceContact
	if body[0] == '[' {
		if err := json.Unmarshal(body, &contacts); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImportInput, err)
		}
		return nonNil(contacts), nil
	}

	var export deviceExport
	if err := json.Unmarshal(body, &export); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportInput, err)
	}
	return nonNil(export.Contacts), nil
}

func decodeYAML(body []byte) ([]models.DeviceContact, error) {
	var contacts []models.DeviceContact
	if body[0] == '-' || body[0] == '[' {
		if err := yaml.Unmarshal(body, &contacts); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImportInput, err)
		}
		return nonNil(contacts), nil
	}

	var export deviceExport
	if err := yaml.Unmarshal(body, &export); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportInput, err)
	}
	return nonNil(export.Contacts), nil
}

func nonNil(contacts []models.DeviceContact) []models.DeviceContact {
	if contacts == nil {
		return []models.DeviceContact{}
	}
	return contacts
}
