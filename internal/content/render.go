package content

import (
	"fmt"
	"html"
	"strings"
)

// LessonMeta carries the lesson fields the exporters print alongside the
// document body.
type LessonMeta struct {
	Title    string
	Duration int // minutes
}

// RenderHTML renders a canonical document as an HTML fragment. It is a
// pure function, total over all canonical block types; unknown and invalid
// blocks are silently skipped. Output follows block order.
func RenderHTML(doc Document, meta LessonMeta) string {
	var b strings.Builder

	b.WriteString(`<article class="lesson">` + "\n")
	if meta.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(meta.Title))
	}

	for _, block := range doc.Blocks {
		if fragment := renderBlockHTML(block); fragment != "" {
			b.WriteString(fragment)
			b.WriteString("\n")
		}
	}

	b.WriteString("</article>")
	return b.String()
}

func renderBlockHTML(block Block) string {
	switch data := block.Data.(type) {
	case ParagraphData:
		return fmt.Sprintf("<p>%s</p>", html.EscapeString(data.Text))

	case HeaderData:
		return fmt.Sprintf("<h%d>%s</h%d>", data.Level, html.EscapeString(data.Text), data.Level)

	case ListData:
		tag := "ul"
		if data.Style == "ordered" {
			tag = "ol"
		}
		var b strings.Builder
		if data.Style == "checklist" {
			b.WriteString(`<ul class="checklist">`)
		} else {
			fmt.Fprintf(&b, "<%s>", tag)
		}
		for _, item := range data.Items {
			if data.Style == "checklist" && item.Checked {
				fmt.Fprintf(&b, `<li class="checked">%s</li>`, html.EscapeString(item.Content))
			} else {
				fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(item.Content))
			}
		}
		if data.Style == "checklist" {
			b.WriteString("</ul>")
		} else {
			fmt.Fprintf(&b, "</%s>", tag)
		}
		return b.String()

	case ChecklistData:
		var b strings.Builder
		b.WriteString(`<ul class="checklist">`)
		for _, item := range data.Items {
			class := ""
			if item.Checked {
				class = ` class="checked"`
			}
			fmt.Fprintf(&b, "<li%s>%s</li>", class, html.EscapeString(item.Content))
		}
		b.WriteString("</ul>")
		return b.String()

	case CodeData:
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
			html.EscapeString(data.Language), html.EscapeString(data.Code))

	case QuoteData:
		if data.Caption != "" {
			return fmt.Sprintf("<blockquote>%s<cite>%s</cite></blockquote>",
				html.EscapeString(data.Text), html.EscapeString(data.Caption))
		}
		return fmt.Sprintf("<blockquote>%s</blockquote>", html.EscapeString(data.Text))

	case WarningData:
		return fmt.Sprintf(`<div class="warning"><strong>%s</strong> %s</div>`,
			html.EscapeString(data.Title), html.EscapeString(data.Message))

	case ImageData:
		if data.Invalid {
			return ""
		}
		var b strings.Builder
		b.WriteString("<figure>")
		fmt.Fprintf(&b, `<img src="%s" alt="%s">`,
			html.EscapeString(data.URL), html.EscapeString(data.Alt))
		if data.Caption != "" {
			fmt.Fprintf(&b, "<figcaption>%s</figcaption>", html.EscapeString(data.Caption))
		}
		b.WriteString("</figure>")
		return b.String()

	case EmbedData:
		if data.Invalid {
			return ""
		}
		var b strings.Builder
		// Fixed-aspect-ratio wrapper so embeds scale with the page.
		fmt.Fprintf(&b, `<figure class="embed"><div class="embed-frame" style="aspect-ratio: %d / %d">`,
			data.Width, data.Height)
		fmt.Fprintf(&b, `<iframe src="%s" width="%d" height="%d" frameborder="0" allowfullscreen></iframe>`,
			html.EscapeString(data.Embed), data.Width, data.Height)
		b.WriteString("</div>")
		if data.Caption != "" {
			fmt.Fprintf(&b, "<figcaption>%s</figcaption>", html.EscapeString(data.Caption))
		}
		b.WriteString("</figure>")
		return b.String()

	case DelimiterData:
		return "<hr>"

	case TableData:
		var b strings.Builder
		b.WriteString("<table>")
		for i, row := range data.Content {
			b.WriteString("<tr>")
			cell := "td"
			if data.WithHeadings && i == 0 {
				cell = "th"
			}
			for _, c := range row {
				fmt.Fprintf(&b, "<%s>%s</%s>", cell, html.EscapeString(c), cell)
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</table>")
		return b.String()

	default:
		// raw, quiz and opaque blocks have no export representation
		return ""
	}
}

// RenderText renders a canonical document as plain text, mirroring
// RenderHTML block for block. Unknown and invalid blocks are skipped.
func RenderText(doc Document, meta LessonMeta) string {
	var parts []string

	if meta.Title != "" {
		header := meta.Title + "\n" + strings.Repeat("=", len(meta.Title))
		if meta.Duration > 0 {
			header += fmt.Sprintf("\nDuration: %d min", meta.Duration)
		}
		parts = append(parts, header)
	}

	for _, block := range doc.Blocks {
		if fragment := renderBlockText(block); fragment != "" {
			parts = append(parts, fragment)
		}
	}

	return strings.Join(parts, "\n\n")
}

func renderBlockText(block Block) string {
	switch data := block.Data.(type) {
	case ParagraphData:
		return data.Text

	case HeaderData:
		return strings.Repeat("#", data.Level) + " " + data.Text

	case ListData:
		var lines []string
		for i, item := range data.Items {
			switch data.Style {
			case "ordered":
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Content))
			case "checklist":
				lines = append(lines, checklistLine(item))
			default:
				lines = append(lines, "• "+item.Content)
			}
		}
		return strings.Join(lines, "\n")

	case ChecklistData:
		var lines []string
		for _, item := range data.Items {
			lines = append(lines, checklistLine(item))
		}
		return strings.Join(lines, "\n")

	case CodeData:
		return fmt.Sprintf("```%s\n%s\n```", data.Language, data.Code)

	case QuoteData:
		text := "> " + data.Text
		if data.Caption != "" {
			text += "\n> -- " + data.Caption
		}
		return text

	case WarningData:
		return fmt.Sprintf("[%s] %s", data.Title, data.Message)

	case ImageData:
		if data.Invalid {
			return ""
		}
		label := data.Caption
		if label == "" {
			label = data.Alt
		}
		if label == "" {
			label = "Image"
		}
		return fmt.Sprintf("[Image: %s] (%s)", label, data.URL)

	case EmbedData:
		if data.Invalid {
			return ""
		}
		label := data.Caption
		if label == "" {
			label = data.Service
		}
		return fmt.Sprintf("[Embed: %s] (%s)", label, data.URL)

	case DelimiterData:
		return "---"

	case TableData:
		var lines []string
		for _, row := range data.Content {
			lines = append(lines, strings.Join(row, " | "))
		}
		return strings.Join(lines, "\n")

	default:
		return ""
	}
}

func checklistLine(item ListItem) string {
	if item.Checked {
		return "[x] " + item.Content
	}
	return "[ ] " + item.Content
}
