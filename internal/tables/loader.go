// Package tables loads caller-supplied input tables from a single JSON
// document, the shape the upload layer hands over.
package tables

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/PMithila/Group-PPA/internal/dto"
	"github.com/PMithila/Group-PPA/internal/models"
	appErrors "github.com/PMithila/Group-PPA/pkg/errors"
)

// Set bundles every input table plus an optional grid override.
type Set struct {
	Teachers     []models.Teacher          `json:"teachers"`
	Subjects     []models.Subject          `json:"subjects"`
	Rooms        []models.Room             `json:"rooms"`
	Availability []models.AvailabilitySlot `json:"availability"`
	Config       *dto.TimetableConfig      `json:"config"`
}

// FromJSON reads and decodes a table-set document. Structural problems
// (unreadable file, non-object document) surface as INPUT_SHAPE errors;
// row-level defaulting is left to the engine.
func FromJSON(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Set{}, appErrors.Wrap(err, appErrors.ErrInputShape.Code, appErrors.ErrInputShape.Status, fmt.Sprintf("read tables from %s", path))
	}

	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return Set{}, appErrors.Wrap(err, appErrors.ErrInputShape.Code, appErrors.ErrInputShape.Status, "tables document is not a JSON object")
	}

	var set Set
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &set,
	})
	if err != nil {
		return Set{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build tables decoder")
	}
	if err := decoder.Decode(document); err != nil {
		return Set{}, appErrors.Wrap(err, appErrors.ErrInputShape.Code, appErrors.ErrInputShape.Status, "decode tables document")
	}

	return set, nil
}
