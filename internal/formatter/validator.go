package formatter

import (
	"fmt"
	"regexp"
)

const (
	maxBlocksPerMessage = 50
	maxSectionFields     = 10
	maxFieldChars        = 2000
	maxSectionTextChars  = 3000
	maxHeaderTextChars   = 150
	maxImageAltChars     = 2000
	maxImageURLChars     = 3000
)

var imageURLPattern = regexp.MustCompile(`^https?://`)

// Validate checks a block tree against platform constraints and returns
// one violation message per problem found. An empty slice means the
// message is safe to transmit.
func Validate(blocks []Block) []string {
	var violations []string

	if len(blocks) > maxBlocksPerMessage {
		violations = append(violations, fmt.Sprintf("message has %d blocks, exceeds limit of %d", len(blocks), maxBlocksPerMessage))
	}

	for i, b := range blocks {
		switch b.Type {
		case "header":
			if b.Text == nil || len(b.Text.Text) > maxHeaderTextChars {
				violations = append(violations, fmt.Sprintf("block %d: header.text exceeds %d characters", i, maxHeaderTextChars))
			}
		case "section":
			if b.Fields != nil {
				if len(b.Fields) == 0 || len(b.Fields) > maxSectionFields {
					violations = append(violations, fmt.Sprintf("block %d: section.fields has %d items, must be 1-%d", i, len(b.Fields), maxSectionFields))
				}
				for j, f := range b.Fields {
					if len(f.Text) > maxFieldChars {
						violations = append(violations, fmt.Sprintf("block %d: field %d exceeds %d characters", i, j, maxFieldChars))
					}
				}
				if len(b.Fields)%2 != 0 {
					violations = append(violations, fmt.Sprintf("block %d: section.fields has an odd count, even is preferred for two-column layout (warning)", i))
				}
			}
			if b.Text != nil && len(b.Text.Text) > maxSectionTextChars {
				violations = append(violations, fmt.Sprintf("block %d: section.text exceeds %d characters", i, maxSectionTextChars))
			}
		case "image":
			if len(b.AltText) > maxImageAltChars {
				violations = append(violations, fmt.Sprintf("block %d: image.alt_text exceeds %d characters", i, maxImageAltChars))
			}
			hasURL := b.ImageURL != ""
			hasFile := b.SlackFile != nil
			if hasURL == hasFile {
				violations = append(violations, fmt.Sprintf("block %d: image must carry exactly one of image_url or slack_file", i))
			}
			if hasURL {
				if len(b.ImageURL) > maxImageURLChars {
					violations = append(violations, fmt.Sprintf("block %d: image.image_url exceeds %d characters", i, maxImageURLChars))
				}
				if !imageURLPattern.MatchString(b.ImageURL) {
					violations = append(violations, fmt.Sprintf("block %d: image.image_url must match https?://", i))
				}
			}
		}
	}

	return violations
}

// isWarningOnly reports whether a violation message is advisory rather
// than a hard send-blocking failure (currently only the odd-field-count
// two-column preference).
func isWarningOnly(violation string) bool {
	return regexp.MustCompile(`\(warning\)$`).MatchString(violation)
}

// Fatal filters violations down to the ones that must block transmission.
func Fatal(violations []string) []string {
	var fatal []string
	for _, v := range violations {
		if !isWarningOnly(v) {
			fatal = append(fatal, v)
		}
	}
	return fatal
}
