// Package validators holds eager input validation for the upload
// endpoint. Bad input fails here, before any blob is written, never
// deep inside a storage or catalog call.
package validators

import (
	"errors"
	"fmt"

	"bitwise74/ingest-api/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNoTitle       = errors.New("metadata is missing a title")
	ErrBadSchema     = errors.New("unsupported metadata schema version")
	ErrInvalidFields = errors.New("invalid metadata")
)

// The highest metadata schema this build understands. Version 0 is
// treated as 1 so old clients that never set the field keep working
const maxSchemaVersion = 1

var validate = validator.New()

// MetadataValidator checks a parsed metadata blob against the fixed
// schema. Returned errors are safe to show to the client.
func MetadataValidator(m *model.MovieMetadata) error {
	if m.SchemaVersion > maxSchemaVersion {
		return fmt.Errorf("%w, got %d want <= %d", ErrBadSchema, m.SchemaVersion, maxSchemaVersion)
	}

	if m.Title == "" {
		return ErrNoTitle
	}

	if err := validate.Struct(m); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return fmt.Errorf("%w, field %q failed %q", ErrInvalidFields, fields[0].Field(), fields[0].Tag())
		}

		return fmt.Errorf("%w, %s", ErrInvalidFields, err)
	}

	return nil
}
