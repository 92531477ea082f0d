package composer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// dataURIRegex matches base64 image data URIs in img src attributes
var dataURIRegex = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,(.+)$`)

// inlineDataURIImages rewrites every base64 data-URI <img> into a cid:
// reference backed by an embedded inline part. Per-image decode failures
// leave that image untouched; a parse failure of the whole document
// abandons the optimization and returns the original HTML.
func inlineDataURIImages(msg *mail.Msg, html string) (string, int, []string) {
	var warnings []string

	if !strings.Contains(html, "data:image/") {
		return html, 0, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("HTML parse failed, images left as data URIs: %v", err))
		return html, 0, warnings
	}

	count := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok {
			return
		}

		m := dataURIRegex.FindStringSubmatch(src)
		if m == nil {
			return
		}
		subtype, payload := m[1], m[2]

		content, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("inline image %d left untouched: invalid base64", count+1))
			return
		}

		cid := uuid.New().String()
		fileName := fmt.Sprintf("image_%s.%s", cid[:8], subtype)
		contentType := mail.ContentType("image/" + subtype)

		if err := msg.EmbedReader(fileName, bytes.NewReader(content),
			mail.WithFileContentID(cid),
			mail.WithFileContentType(contentType),
		); err != nil {
			warnings = append(warnings, fmt.Sprintf("inline image %d left untouched: %v", count+1, err))
			return
		}

		sel.SetAttr("src", "cid:"+cid)
		count++
	})

	if count == 0 {
		return html, 0, warnings
	}

	rendered, err := doc.Html()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("HTML render failed, images left as data URIs: %v", err))
		return html, 0, warnings
	}

	return rendered, count, warnings
}
