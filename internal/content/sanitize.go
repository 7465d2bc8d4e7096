package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sanitize turns an arbitrary raw content payload into a canonical
// Document. It never fails: null, non-JSON and non-object inputs yield an
// empty-blocks document with the current timestamp. Structurally invalid
// blocks (non-objects) are dropped; everything else is repaired in place.
// Sanitize is idempotent: feeding its output back in yields an equal
// document.
func Sanitize(raw json.RawMessage) Document {
	doc := Document{
		Time:    time.Now().UTC().UnixMilli(),
		Blocks:  []Block{},
		Version: DefaultVersion,
	}

	var parsed any
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return doc
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return doc
	}

	// Preserve timestamp and version when present and well-typed.
	if t, ok := obj["time"].(float64); ok {
		doc.Time = int64(t)
	}
	if v, ok := obj["version"].(string); ok && v != "" {
		doc.Version = v
	}

	rawBlocks, ok := obj["blocks"].([]any)
	if !ok {
		return doc
	}

	for i, rb := range rawBlocks {
		block := normalizeBlock(rb, i)
		if block == nil {
			slog.Debug("dropped structurally invalid content block", slog.Int("index", i))
			continue
		}
		doc.Blocks = append(doc.Blocks, *block)
	}

	return doc
}

// normalizeBlock produces a canonical block from one raw entry, or nil if
// the entry is not an object. A missing or invalid type tag is repaired to
// paragraph rather than rejected.
func normalizeBlock(raw any, index int) *Block {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	blockType, _ := obj["type"].(string)
	if blockType == "" {
		slog.Debug("repaired block with missing type to paragraph", slog.Int("index", index))
		blockType = TypeParagraph
	}

	id, _ := obj["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	data, ok := obj["data"].(map[string]any)
	if !ok {
		data = map[string]any{}
	}

	block := Block{ID: id, Type: blockType}

	switch blockType {
	case TypeParagraph:
		block.Data = ParagraphData{Text: coerceString(data["text"])}

	case TypeHeader:
		level := coerceInt(data["level"], 2)
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		block.Data = HeaderData{Text: coerceString(data["text"]), Level: level}

	case TypeList:
		style, _ := data["style"].(string)
		switch style {
		case "ordered", "unordered", "checklist":
		default:
			style = "unordered"
		}
		block.Data = ListData{Style: style, Items: coerceItems(data["items"])}

	case TypeChecklist:
		block.Data = ChecklistData{Items: coerceItems(data["items"])}

	case TypeCode:
		language := coerceString(data["language"])
		if language == "" {
			language = "javascript"
		}
		block.Data = CodeData{Code: coerceString(data["code"]), Language: language}

	case TypeQuote:
		alignment, _ := data["alignment"].(string)
		switch alignment {
		case "left", "center", "right":
		default:
			alignment = "left"
		}
		block.Data = QuoteData{
			Text:      coerceString(data["text"]),
			Caption:   coerceString(data["caption"]),
			Alignment: alignment,
		}

	case TypeWarning:
		title := coerceString(data["title"])
		if title == "" {
			title = "Warning"
		}
		block.Data = WarningData{Title: title, Message: coerceString(data["message"])}

	case TypeDelimiter:
		block.Data = DelimiterData{}

	case TypeTable:
		withHeadings, _ := data["withHeadings"].(bool)
		block.Data = TableData{WithHeadings: withHeadings, Content: coerceTable(data["content"])}

	case TypeImage:
		block.Data = normalizeImage(data)

	case TypeVideo, TypeEmbed:
		block.Data = normalizeEmbed(data)

	case TypeRaw:
		block.Data = RawData{HTML: coerceString(data["html"])}

	default:
		// Unknown types pass through verbatim so forward-compatible
		// editor payloads survive a round trip.
		block.Data = OpaqueData(data)
	}

	return &block
}

// normalizeImage classifies the image URL and either populates the
// canonical image fields or keeps the block flagged invalid.
func normalizeImage(data map[string]any) ImageData {
	url := coerceString(data["url"])
	if url == "" {
		// editor payloads also carry the URL under file.url
		if file, ok := data["file"].(map[string]any); ok {
			url = coerceString(file["url"])
		}
	}

	img := ImageData{
		URL:            url,
		Alt:            coerceString(data["alt"]),
		Caption:        coerceString(data["caption"]),
		Stretched:      coerceBool(data["stretched"]),
		WithBorder:     coerceBool(data["withBorder"]),
		WithBackground: coerceBool(data["withBackground"]),
	}

	result := ClassifyImage(url)
	if !result.IsValid {
		img.Invalid = true
		img.InvalidReason = result.Message
		slog.Debug("image block failed classification",
			slog.String("url", url),
			slog.String("reason", result.Message))
	}
	return img
}

// normalizeEmbed classifies the embed URL and either populates the derived
// service metadata or keeps the block flagged invalid.
func normalizeEmbed(data map[string]any) EmbedData {
	url := coerceString(data["url"])
	if url == "" {
		url = coerceString(data["source"])
	}

	embed := EmbedData{
		URL:     url,
		Caption: coerceString(data["caption"]),
	}

	result := ClassifyEmbed(url)
	if !result.IsValid {
		embed.Invalid = true
		embed.InvalidReason = result.Message
		slog.Debug("embed block failed classification",
			slog.String("url", url),
			slog.String("reason", result.Message))
		return embed
	}

	embed.Service = result.Service
	embed.Embed = result.EmbedURL
	embed.Width = result.Width
	embed.Height = result.Height
	embed.VideoID = result.VideoID
	embed.Thumbnail = result.ThumbnailURL
	return embed
}

// coerceString returns v as a string: strings verbatim, numbers and bools
// formatted, everything else empty.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		return fmt.Sprintf("%t", s)
	default:
		return ""
	}
}

// coerceInt returns v as an int, or def if v is not numeric.
func coerceInt(v any, def int) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return def
}

// coerceBool returns v as a bool, defaulting to false.
func coerceBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// coerceItems forces a raw items value into a list of canonical items.
// Entries may be bare strings or objects carrying content/text and checked
// fields; anything else is dropped.
func coerceItems(v any) []ListItem {
	items := []ListItem{}
	arr, ok := v.([]any)
	if !ok {
		return items
	}
	for _, entry := range arr {
		switch e := entry.(type) {
		case string:
			items = append(items, ListItem{Content: e})
		case map[string]any:
			item := ListItem{
				Content: coerceString(e["content"]),
				Checked: coerceBool(e["checked"]),
			}
			if item.Content == "" {
				item.Content = coerceString(e["text"])
			}
			items = append(items, item)
		}
	}
	return items
}

// coerceTable forces a raw table content value into a 2D string array,
// defaulting to a single empty cell.
func coerceTable(v any) [][]string {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return [][]string{{""}}
	}
	rows := [][]string{}
	for _, rawRow := range arr {
		cells, ok := rawRow.([]any)
		if !ok {
			continue
		}
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, coerceString(cell))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return [][]string{{""}}
	}
	return rows
}
