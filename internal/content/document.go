// Package content implements the lesson content pipeline: a block-oriented
// rich-content model that is validated, normalized and rendered to JSON,
// HTML and plain text. The pipeline is pure and synchronous; it performs no
// I/O and never fails on malformed input (see Sanitize).
package content

import (
	"encoding/json"
	"fmt"
)

// DefaultVersion is the schema revision tag stamped on documents that do
// not carry a well-typed version of their own.
const DefaultVersion = "2.28.2"

// Known block type tags. Types outside this set are preserved verbatim as
// opaque blocks, never rejected.
const (
	TypeParagraph = "paragraph"
	TypeHeader    = "header"
	TypeList      = "list"
	TypeChecklist = "checklist"
	TypeCode      = "code"
	TypeQuote     = "quote"
	TypeWarning   = "warning"
	TypeDelimiter = "delimiter"
	TypeTable     = "table"
	TypeImage     = "image"
	TypeVideo     = "video"
	TypeEmbed     = "embed"
	TypeQuiz      = "quiz"
	TypeRaw       = "raw"
)

// Document is the canonical representation of a lesson's body.
// Blocks are ordered; order is display order.
type Document struct {
	Time    int64   `json:"time"`
	Blocks  []Block `json:"blocks"`
	Version string  `json:"version"`
}

// Block is one unit of structured content: a type tag plus type-specific
// data. After normalization Data is never nil and Type is never empty.
type Block struct {
	ID   string
	Type string
	Data BlockData
}

// BlockData is the variant payload of a block. Known kinds get a typed
// struct; unknown kinds are carried as OpaqueData.
type BlockData interface {
	blockData()
}

// ParagraphData is the payload of a paragraph block.
type ParagraphData struct {
	Text string `json:"text"`
}

// HeaderData is the payload of a header block. Level is always in [1,6].
type HeaderData struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// ListItem is a single list entry. Raw input may supply items as bare
// strings; they unmarshal into Content.
type ListItem struct {
	Content string `json:"content"`
	Checked bool   `json:"checked,omitempty"`
}

// UnmarshalJSON accepts both a bare string and a {content, checked} object.
func (it *ListItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		it.Content = s
		it.Checked = false
		return nil
	}
	type alias ListItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*it = ListItem(a)
	return nil
}

// ListData is the payload of a list block. Style is one of ordered,
// unordered or checklist.
type ListData struct {
	Style string     `json:"style"`
	Items []ListItem `json:"items"`
}

// ChecklistData is the payload of a checklist block.
type ChecklistData struct {
	Items []ListItem `json:"items"`
}

// CodeData is the payload of a code block.
type CodeData struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// QuoteData is the payload of a quote block.
type QuoteData struct {
	Text      string `json:"text"`
	Caption   string `json:"caption"`
	Alignment string `json:"alignment"`
}

// WarningData is the payload of a warning block.
type WarningData struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DelimiterData is the (empty) payload of a delimiter block.
type DelimiterData struct{}

// TableData is the payload of a table block. Content is always a 2D array.
type TableData struct {
	WithHeadings bool       `json:"withHeadings"`
	Content      [][]string `json:"content"`
}

// ImageData is the payload of an image block. When the URL fails image
// classification the block is kept with Invalid set instead of dropped.
type ImageData struct {
	URL            string `json:"url"`
	Alt            string `json:"alt,omitempty"`
	Caption        string `json:"caption,omitempty"`
	Stretched      bool   `json:"stretched,omitempty"`
	WithBorder     bool   `json:"withBorder,omitempty"`
	WithBackground bool   `json:"withBackground,omitempty"`
	Invalid        bool   `json:"invalid,omitempty"`
	InvalidReason  string `json:"invalidReason,omitempty"`
}

// EmbedData is the payload of video and embed blocks. Service, Embed,
// Width and Height are derived by the media classifier; VideoID and
// Thumbnail are populated for YouTube.
type EmbedData struct {
	Service       string `json:"service,omitempty"`
	URL           string `json:"url"`
	Embed         string `json:"embed,omitempty"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	Caption       string `json:"caption,omitempty"`
	VideoID       string `json:"videoId,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Invalid       bool   `json:"invalid,omitempty"`
	InvalidReason string `json:"invalidReason,omitempty"`
}

// RawData is the payload of a raw block: verbatim HTML kept for editors
// that support it. It is not rendered by the exporters.
type RawData struct {
	HTML string `json:"html"`
}

// OpaqueData carries the payload of an unknown block type verbatim.
type OpaqueData map[string]any

func (ParagraphData) blockData() {}
func (HeaderData) blockData()    {}
func (ListData) blockData()      {}
func (ChecklistData) blockData() {}
func (CodeData) blockData()      {}
func (QuoteData) blockData()     {}
func (WarningData) blockData()   {}
func (DelimiterData) blockData() {}
func (TableData) blockData()     {}
func (ImageData) blockData()     {}
func (EmbedData) blockData()     {}
func (RawData) blockData()       {}
func (OpaqueData) blockData()    {}

// blockEnvelope is the wire shape of a block.
type blockEnvelope struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON implements json.Marshaler for Block.
func (b Block) MarshalJSON() ([]byte, error) {
	data := b.Data
	if data == nil {
		data = OpaqueData{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s block data: %w", b.Type, err)
	}
	return json.Marshal(blockEnvelope{ID: b.ID, Type: b.Type, Data: raw})
}

// UnmarshalJSON implements json.Unmarshaler for Block. It decodes the data
// payload into the typed variant matching the block's type tag; unknown
// types decode into OpaqueData. It is intended for canonical documents;
// arbitrary editor payloads go through Sanitize instead.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.ID = env.ID
	b.Type = env.Type

	raw := env.Data
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	decode := func(v BlockData) error {
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("decode %s block data: %w", env.Type, err)
		}
		return nil
	}

	switch env.Type {
	case TypeParagraph:
		var d ParagraphData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeHeader:
		var d HeaderData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeList:
		var d ListData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeChecklist:
		var d ChecklistData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeCode:
		var d CodeData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeQuote:
		var d QuoteData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeWarning:
		var d WarningData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeDelimiter:
		b.Data = DelimiterData{}
	case TypeTable:
		var d TableData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeImage:
		var d ImageData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeVideo, TypeEmbed:
		var d EmbedData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	case TypeRaw:
		var d RawData
		if err := decode(&d); err != nil {
			return err
		}
		b.Data = d
	default:
		var d OpaqueData
		if err := decode(&d); err != nil {
			return err
		}
		if d == nil {
			d = OpaqueData{}
		}
		b.Data = d
	}
	return nil
}

// JSON returns the canonical JSON encoding of the document.
func (d Document) JSON() (json.RawMessage, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal content document: %w", err)
	}
	return raw, nil
}
