package composer

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *Result) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := r.Msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestCompose_PlainText(t *testing.T) {
	c := New("noreply@example.com", "Mailroom", "Mailroom")

	result, err := c.Compose(&Request{
		To:      "a@x.io",
		Subject: "hi",
		Body:    "hello",
		IsHTML:  false,
	})
	require.NoError(t, err)

	out := render(t, result)
	assert.Contains(t, out, "Subject: hi")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "From: \"Mailroom\" <noreply@example.com>")
	assert.Contains(t, out, "To: <a@x.io>")
	assert.Contains(t, out, "X-Mailer: Mailroom")
	assert.Contains(t, out, "@example.com>") // Message-ID carries the sender domain
	assert.Contains(t, out, "text/plain")
}

func TestCompose_RecipientNormalization(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	t.Run("splits on comma and semicolon", func(t *testing.T) {
		result, err := c.Compose(&Request{
			To:      " a@x.io ; b@x.io, c@x.io ",
			Subject: "hi",
			Body:    "hello",
		})
		require.NoError(t, err)

		out := render(t, result)
		assert.Contains(t, out, "a@x.io")
		assert.Contains(t, out, "b@x.io")
		assert.Contains(t, out, "c@x.io")
	})

	t.Run("drops invalid addresses with warning", func(t *testing.T) {
		result, err := c.Compose(&Request{
			To:      "a@x.io, not-an-email",
			Subject: "hi",
			Body:    "hello",
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "not-an-email")
	})

	t.Run("fails when every recipient is invalid", func(t *testing.T) {
		_, err := c.Compose(&Request{
			To:      "nope; also-nope",
			Subject: "hi",
			Body:    "hello",
		})
		assert.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("fails on empty recipient list", func(t *testing.T) {
		_, err := c.Compose(&Request{Subject: "hi", Body: "hello"})
		assert.ErrorIs(t, err, ErrNoRecipients)
	})
}

func TestCompose_DefaultSubject(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	result, err := c.Compose(&Request{To: "a@x.io", Body: "hello"})
	require.NoError(t, err)

	out := render(t, result)
	assert.Contains(t, out, "Subject: No Subject")
	assert.NotEmpty(t, result.Warnings)
}

func TestCompose_ReplyToFallback(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	result, err := c.Compose(&Request{
		To:      "a@x.io",
		ReplyTo: "broken@@address",
		Subject: "hi",
		Body:    "hello",
	})
	require.NoError(t, err)

	out := render(t, result)
	assert.Contains(t, out, "Reply-To: <noreply@example.com>")
}

func TestCompose_ReceiptHeaders(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	result, err := c.Compose(&Request{
		To:                          "a@x.io",
		Subject:                     "hi",
		Body:                        "hello",
		RequestDeliveryNotification: true,
		RequestReadReceipt:          true,
	})
	require.NoError(t, err)

	out := render(t, result)
	assert.Contains(t, out, "Return-Receipt-To: noreply@example.com")
	assert.Contains(t, out, "Disposition-Notification-To: noreply@example.com")
}

func TestCompose_PriorityHeaders(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	result, err := c.Compose(&Request{
		To:       "a@x.io",
		Subject:  "hi",
		Body:     "hello",
		Priority: "high",
	})
	require.NoError(t, err)

	out := render(t, result)
	assert.Contains(t, out, "X-Priority:")
	assert.Contains(t, out, "Importance: urgent")
}

func TestCompose_CustomHeaders(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	result, err := c.Compose(&Request{
		To:      "a@x.io",
		Subject: "hi",
		Body:    "hello",
		Headers: map[string]string{
			"X-Campaign": "spring",
			"  ":         "dropped",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, render(t, result), "X-Campaign: spring")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "empty name")
}

func TestCompose_Attachments(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	t.Run("regular attachment yields multipart mixed", func(t *testing.T) {
		result, err := c.Compose(&Request{
			To:      "a@x.io",
			Subject: "hi",
			Body:    "hello",
			Attachments: []Attachment{
				{FileName: "doc.txt", ContentType: "text/plain", Content: "aGVsbG8="},
			},
		})
		require.NoError(t, err)

		out := render(t, result)
		assert.Contains(t, out, "multipart/mixed")
		assert.Contains(t, out, `filename="doc.txt"`)
	})

	t.Run("invalid base64 dropped with warning", func(t *testing.T) {
		result, err := c.Compose(&Request{
			To:      "a@x.io",
			Subject: "hi",
			Body:    "hello",
			Attachments: []Attachment{
				{FileName: "bad.bin", Content: "%%%not-base64%%%"},
			},
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "invalid base64")
		assert.NotContains(t, render(t, result), "bad.bin")
	})

	t.Run("empty content dropped with warning", func(t *testing.T) {
		result, err := c.Compose(&Request{
			To:          "a@x.io",
			Subject:     "hi",
			Body:        "hello",
			Attachments: []Attachment{{FileName: "empty.bin"}},
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "empty content")
	})
}

func TestCompose_CIDInlining(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	// 8-byte PNG signature
	body := `<html><body><img src="data:image/png;base64,iVBORw0KGgo="></body></html>`

	result, err := c.Compose(&Request{
		To:      "a@x.io",
		Subject: "hi",
		Body:    body,
		IsHTML:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.InlineImageCount)

	out := render(t, result)
	assert.Contains(t, out, "multipart/related")
	assert.Contains(t, out, "Content-Type: image/png")

	// the html references the same cid the image part declares
	cidRef := regexp.MustCompile(`cid:([0-9a-f-]{36})`).FindStringSubmatch(out)
	require.NotNil(t, cidRef, "html part must reference a cid")
	assert.Contains(t, out, "<"+cidRef[1]+">")

	// the embedded part carries the original bytes
	assert.Contains(t, out, "iVBORw0KGgo")
	assert.NotContains(t, out, "data:image/png")
}

func TestCompose_CIDInlining_BadPayloadLeftUntouched(t *testing.T) {
	c := New("noreply@example.com", "", "Mailroom")

	body := `<html><body><img src="data:image/png;base64,%%%bad%%%"></body></html>`

	result, err := c.Compose(&Request{
		To:      "a@x.io",
		Subject: "hi",
		Body:    body,
		IsHTML:  true,
	})
	require.NoError(t, err)
	assert.Zero(t, result.InlineImageCount)
	assert.NotEmpty(t, result.Warnings)
}

func TestSplitAddresses(t *testing.T) {
	var warnings []string
	assert.Nil(t, splitAddresses("", &warnings))
	assert.Nil(t, splitAddresses("  ;, ", &warnings))

	out := splitAddresses("a@x.io;b@x.io", &warnings)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, out)
	assert.Empty(t, warnings)
}

func TestOptimizeForMobile(t *testing.T) {
	t.Run("adds metas and image attributes", func(t *testing.T) {
		html := `<html><head></head><body><img src="x.png"><p>hi</p></body></html>`
		out, err := optimizeForMobile(html)
		require.NoError(t, err)

		assert.Contains(t, out, `name="viewport"`)
		assert.Contains(t, out, `charset="UTF-8"`)
		assert.Contains(t, out, `alt="Image"`)
		assert.Contains(t, out, "max-width:100%")
		assert.Contains(t, out, "font-family:Arial")
	})

	t.Run("respects explicit width and alt", func(t *testing.T) {
		html := `<html><head></head><body><img src="x.png" width="300" alt="logo"></body></html>`
		out, err := optimizeForMobile(html)
		require.NoError(t, err)

		assert.Contains(t, out, `alt="logo"`)
		assert.NotContains(t, out, "max-width:100%")
	})

	t.Run("keeps existing metas", func(t *testing.T) {
		html := `<html><head><meta charset="UTF-8"><meta name="viewport" content="width=600"></head><body></body></html>`
		out, err := optimizeForMobile(html)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(out, "viewport"))
		assert.Equal(t, 1, strings.Count(out, "charset"))
	})
}

func TestMergeStyle(t *testing.T) {
	assert.Equal(t, "a:b;", mergeStyle("", "a:b;"))
	assert.Equal(t, "c:d;a:b;", mergeStyle("c:d", "a:b;"))
	assert.Equal(t, "c:d;a:b;", mergeStyle("c:d;", "a:b;"))
}
