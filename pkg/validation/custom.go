package validation

import (
	"fmt"
	"time"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

const (
	// CustomEqualOrAfterCollectionDate requires a date on or after the sibling
	// collection_date of the same record.
	CustomEqualOrAfterCollectionDate = "equal_or_after_collection_date"
	// CustomNotInFuture rejects dates after the validator's current day.
	CustomNotInFuture = "not_in_future"

	collectionDateField = "collection_date"
)

// CustomContext is handed to custom rules. Value is trimmed and never empty.
type CustomContext struct {
	Field   schema.Field
	Value   string
	Values  schema.Record
	Catalog *schema.Catalog
	Now     time.Time
}

// CustomRule returns a message describing the violation, or "" when satisfied.
type CustomRule func(ctx CustomContext) string

func builtinCustomRules() map[string]CustomRule {
	return map[string]CustomRule{
		CustomEqualOrAfterCollectionDate: equalOrAfterCollectionDate,
		CustomNotInFuture:                notInFuture,
	}
}

func equalOrAfterCollectionDate(ctx CustomContext) string {
	date, ok := ParseDate(ctx.Value)
	if !ok {
		return ""
	}
	start, ok := ParseDate(normaliseValue(ctx.Values.Get(collectionDateField)))
	if !ok {
		return ""
	}
	if date.Before(start) {
		return fmt.Sprintf("%s must be on or after %s", ctx.Field.Label(), labelOf(ctx.Catalog, collectionDateField))
	}
	return ""
}

func notInFuture(ctx CustomContext) string {
	date, ok := ParseDate(ctx.Value)
	if !ok || ctx.Now.IsZero() {
		return ""
	}
	today := time.Date(ctx.Now.Year(), ctx.Now.Month(), ctx.Now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return fmt.Sprintf("%s must not be in the future", ctx.Field.Label())
	}
	return ""
}

func labelOf(catalog *schema.Catalog, id string) string {
	if field, ok := catalog.Field(id); ok {
		return field.Label()
	}
	return schema.DefaultLabeler(id)
}
