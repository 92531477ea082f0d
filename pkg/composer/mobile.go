package composer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const bodyBaseStyle = "font-family:Arial,Helvetica,sans-serif;margin:0;padding:0;"

const imgResponsiveStyle = "max-width:100%;height:auto;display:block;"

// optimizeForMobile applies the best-effort accessibility and mobile
// rendering pass: viewport and charset metas, responsive images, alt text
// and base body styling.
func optimizeForMobile(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	head := doc.Find("head").First()
	if head.Length() > 0 {
		if head.Find(`meta[name="viewport"]`).Length() == 0 {
			head.PrependHtml(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		}
		if head.Find("meta[charset]").Length() == 0 {
			head.PrependHtml(`<meta charset="UTF-8">`)
		}
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("alt"); !ok {
			sel.SetAttr("alt", "Image")
		}
		if _, hasWidth := sel.Attr("width"); hasWidth {
			return
		}
		style, _ := sel.Attr("style")
		if !strings.Contains(style, "max-width") {
			sel.SetAttr("style", mergeStyle(style, imgResponsiveStyle))
		}
	})

	body := doc.Find("body").First()
	if body.Length() > 0 {
		style, _ := body.Attr("style")
		if !strings.Contains(style, "font-family") {
			body.SetAttr("style", mergeStyle(style, bodyBaseStyle))
		}
	}

	return doc.Html()
}

// mergeStyle appends extra declarations to an existing style attribute
func mergeStyle(existing, extra string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return extra
	}
	if !strings.HasSuffix(existing, ";") {
		existing += ";"
	}
	return existing + extra
}
