package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AnnotationType identifies the kind of annotation and the tool that owns it.
type AnnotationType string

const (
	// TypeComment is a point-anchored free-form comment pin.
	TypeComment AnnotationType = "comment"

	// TypeScreenshot is a rectangular region captured from the page raster.
	TypeScreenshot AnnotationType = "screenshot"

	// TypeTextHighlight is a highlighted text selection.
	TypeTextHighlight AnnotationType = "text-highlight"
)

// Valid returns true if the type is one of the known annotation types.
func (t AnnotationType) Valid() bool {
	switch t {
	case TypeComment, TypeScreenshot, TypeTextHighlight:
		return true
	default:
		return false
	}
}

// Annotation is the canonical annotation record.
// Identity is immutable; the payload and comment list are mutable via
// update requests resolved by the persistence collaborator.
type Annotation struct {
	// ID is the opaque unique identifier, assigned by the persistence
	// collaborator. Tools never generate it speculatively.
	ID string

	// Type selects the payload variant and the owning tool.
	Type AnnotationType

	// PageNumber is the 1-based page the annotation is anchored to.
	PageNumber int

	// Data is the type-specific payload.
	Data Payload

	// Comments is the ordered list of sub-comments.
	Comments []Comment

	// CreatedAt is when the annotation was persisted.
	CreatedAt time.Time

	// UpdatedAt is when the annotation was last mutated.
	UpdatedAt time.Time
}

// Comment is a sub-comment attached to an annotation.
type Comment struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// CommentCount returns the number of sub-comments, surfaced on sidebar cards.
func (a *Annotation) CommentCount() int {
	return len(a.Comments)
}

// Validate checks the annotation's structural invariants.
func (a *Annotation) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, a.Type)
	}
	if a.PageNumber < 1 {
		return fmt.Errorf("%w: page number %d", ErrValidation, a.PageNumber)
	}
	if a.Data == nil {
		return fmt.Errorf("%w: missing payload", ErrValidation)
	}
	if a.Data.Type() != a.Type {
		return fmt.Errorf("%w: payload type %q does not match annotation type %q",
			ErrValidation, a.Data.Type(), a.Type)
	}
	return a.Data.Validate()
}

// Payload is the type-specific body of an annotation.
type Payload interface {
	// Type returns the annotation type this payload belongs to.
	Type() AnnotationType

	// Validate checks payload-level invariants.
	Validate() error
}

// CommentData is the payload for comment annotations.
// Position is in page-local pixels, relative to the page container origin.
type CommentData struct {
	Position Point  `json:"position"`
	Content  string `json:"content"`
}

// Type returns TypeComment.
func (d CommentData) Type() AnnotationType { return TypeComment }

// Validate rejects empty or whitespace-only content.
func (d CommentData) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: empty comment content", ErrValidation)
	}
	return nil
}

// ScreenshotData is the payload for screenshot annotations.
// Rect is in page-surface pixels at capture time.
type ScreenshotData struct {
	Rect        Rect   `json:"rect"`
	ImagePath   string `json:"imagePath"`
	ImageHash   string `json:"imageHash"`
	ImageData   []byte `json:"imageData,omitempty"`
	Description string `json:"description,omitempty"`
}

// Type returns TypeScreenshot.
func (d ScreenshotData) Type() AnnotationType { return TypeScreenshot }

// Validate requires a stored image reference and a non-degenerate rect.
func (d ScreenshotData) Validate() error {
	if d.ImagePath == "" {
		return fmt.Errorf("%w: missing image path", ErrValidation)
	}
	if d.ImageHash == "" {
		return fmt.Errorf("%w: missing image hash", ErrValidation)
	}
	if d.Rect.Width <= 0 || d.Rect.Height <= 0 {
		return fmt.Errorf("%w: degenerate capture rect", ErrValidation)
	}
	return nil
}

// TextRange is one serialized selection range within a page's text layer.
type TextRange struct {
	StartNode   int `json:"startNode"`
	StartOffset int `json:"startOffset"`
	EndNode     int `json:"endNode"`
	EndOffset   int `json:"endOffset"`
}

// HighlightData is the payload for text-highlight annotations.
type HighlightData struct {
	SelectedText   string      `json:"selectedText"`
	HighlightColor string      `json:"highlightColor"`
	TextRanges     []TextRange `json:"textRanges"`
	BoundingBox    Rect        `json:"boundingBox"`
	Note           string      `json:"note,omitempty"`
}

// Type returns TypeTextHighlight.
func (d HighlightData) Type() AnnotationType { return TypeTextHighlight }

// Validate requires selected text and at least one range.
func (d HighlightData) Validate() error {
	if d.SelectedText == "" {
		return fmt.Errorf("%w: empty selection", ErrValidation)
	}
	if len(d.TextRanges) == 0 {
		return fmt.Errorf("%w: no text ranges", ErrValidation)
	}
	return nil
}

// annotationWire is the serialized form of an Annotation. The payload is
// carried as raw JSON and decoded according to the type tag.
type annotationWire struct {
	ID         string          `json:"id"`
	Type       AnnotationType  `json:"type"`
	PageNumber int             `json:"pageNumber"`
	Data       json.RawMessage `json:"data"`
	Comments   []Comment       `json:"comments,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// MarshalJSON encodes the annotation with its typed payload inline.
func (a Annotation) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(a.Data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", a.Type, err)
	}
	return json.Marshal(annotationWire{
		ID:         a.ID,
		Type:       a.Type,
		PageNumber: a.PageNumber,
		Data:       data,
		Comments:   a.Comments,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	})
}

// UnmarshalJSON decodes the annotation, dispatching the payload on the
// type tag.
func (a *Annotation) UnmarshalJSON(b []byte) error {
	var w annotationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	data, err := DecodePayload(w.Type, w.Data)
	if err != nil {
		return err
	}
	a.ID = w.ID
	a.Type = w.Type
	a.PageNumber = w.PageNumber
	a.Data = data
	a.Comments = w.Comments
	a.CreatedAt = w.CreatedAt
	a.UpdatedAt = w.UpdatedAt
	return nil
}

// DecodePayload decodes a raw payload according to the annotation type.
func DecodePayload(t AnnotationType, raw []byte) (Payload, error) {
	switch t {
	case TypeComment:
		var d CommentData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding comment payload: %w", err)
		}
		return d, nil
	case TypeScreenshot:
		var d ScreenshotData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding screenshot payload: %w", err)
		}
		return d, nil
	case TypeTextHighlight:
		var d HighlightData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding highlight payload: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
}
