// Package formatter composes chat block-kit payloads from primitive
// building blocks and renders the timezone-binned heatmap as SVG text. It
// is pure: no network calls, no clock reads.
package formatter

// TextObject is a typed text fragment, mirroring the block-kit text
// object shape used inside sections, fields, and context elements.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func plainText(s string) TextObject {
	return TextObject{Type: "plain_text", Text: s}
}

func mrkdwnText(s string) TextObject {
	return TextObject{Type: "mrkdwn", Text: s}
}

// SlackFileRef references an already-uploaded file by id or permalink,
// used as an alternate image source to a bare URL.
type SlackFileRef struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// Block is a single block-kit element. Only the fields relevant to its
// Type are populated; the rest are omitted from JSON.
type Block struct {
	Type      string        `json:"type"`
	Text      *TextObject   `json:"text,omitempty"`
	Fields    []TextObject  `json:"fields,omitempty"`
	Elements  []TextObject  `json:"elements,omitempty"`
	ImageURL  string        `json:"image_url,omitempty"`
	AltText   string        `json:"alt_text,omitempty"`
	SlackFile *SlackFileRef `json:"slack_file,omitempty"`
}

// Header builds a header block. Text is limited to plain_text.
func Header(text string) Block {
	t := plainText(text)
	return Block{Type: "header", Text: &t}
}

// Section builds a section block with a single mrkdwn text body.
func Section(text string) Block {
	t := mrkdwnText(text)
	return Block{Type: "section", Text: &t}
}

// SectionFields builds a section block with a fields list (1-10 items)
// instead of a text body.
func SectionFields(fields ...string) Block {
	items := make([]TextObject, len(fields))
	for i, f := range fields {
		items[i] = mrkdwnText(f)
	}
	return Block{Type: "section", Fields: items}
}

// Divider builds a divider block.
func Divider() Block {
	return Block{Type: "divider"}
}

// Context builds a context block with a single mrkdwn element.
func Context(text string) Block {
	return Block{Type: "context", Elements: []TextObject{mrkdwnText(text)}}
}

// Image builds an image block from a bare URL.
func Image(altText, imageURL string) Block {
	return Block{Type: "image", AltText: altText, ImageURL: imageURL}
}

// ImageFromSlackFile builds an image block sourced from an uploaded file
// reference instead of a bare URL.
func ImageFromSlackFile(altText string, file SlackFileRef) Block {
	return Block{Type: "image", AltText: altText, SlackFile: &file}
}
