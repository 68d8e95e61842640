package content

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Metadata is the structured record stored alongside each item body.
type Metadata struct {
	Title       string
	Description string
	// Date is the parsed publication date used for sort order and display.
	Date time.Time
	// RawDate preserves the metadata date string for data attributes on cards.
	RawDate string
	Tags    []string
	// Status gates publication; only (case-insensitive) "published" is eligible.
	// Non-string values in the source record coerce to "".
	Status string
	Rating Rating
	Author string
}

// Item is one content folder: a stable id, its metadata record, and its markdown body.
// Never mutated after construction.
type Item struct {
	ID   string
	Meta Metadata
	Body []byte
}

// FailedItem records an item whose load or render failed this run. The id is kept
// so the output synchronizer can distinguish "failed to read" from "no longer exists".
type FailedItem struct {
	ID  string
	Err error
}

// Rating is an optional 0-10 score. Non-numeric or absent source values are
// represented as invalid rather than failing the whole metadata record.
type Rating struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts any JSON value; only numbers produce a valid rating.
// The pointer target distinguishes null (a silent no-op on a plain float64)
// from an actual number.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil || f == nil {
		r.Valid = false
		return nil
	}
	r.Value = *f
	r.Valid = true
	return nil
}

// UnmarshalYAML accepts any YAML node; only numeric scalars produce a valid rating.
func (r *Rating) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		r.Valid = false
		return nil
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		r.Valid = false
		return nil
	}
	r.Value = f
	r.Valid = true
	return nil
}

// metadataDoc is the on-disk shape. Status is typed as any because a non-string
// status must render the item ineligible, not fail the record.
type metadataDoc struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Date        string   `json:"date" yaml:"date"`
	Tags        []string `json:"tags" yaml:"tags"`
	Status      any      `json:"status" yaml:"status"`
	Rating      Rating   `json:"rating" yaml:"rating"`
	Author      string   `json:"author" yaml:"author"`
}

// dateLayouts are tried in order when parsing the metadata date field.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *metadataDoc) toMetadata() (Metadata, error) {
	if d.Date == "" {
		return Metadata{}, fmt.Errorf("%w: date is required", ErrMetadataInvalid)
	}
	var parsed time.Time
	var err error
	for _, layout := range dateLayouts {
		parsed, err = time.Parse(layout, d.Date)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: unparseable date %q", ErrMetadataInvalid, d.Date)
	}

	status := ""
	if s, ok := d.Status.(string); ok {
		status = s
	}

	return Metadata{
		Title:       d.Title,
		Description: d.Description,
		Date:        parsed,
		RawDate:     d.Date,
		Tags:        d.Tags,
		Status:      status,
		Rating:      d.Rating,
		Author:      d.Author,
	}, nil
}
