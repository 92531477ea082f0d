// Package composer turns a normalized send request into a single MIME
// message ready for transport. Pure CPU: it never touches the network.
package composer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// ErrNoRecipients is returned when the recipient list is empty after
// normalization. Deterministic: never retried.
var ErrNoRecipients = errors.New("recipient list is empty after normalization")

// Attachment is one attachment of a compose request
type Attachment struct {
	FileName    string
	ContentType string
	ContentID   string
	IsInline    bool
	Content     string // base64 encoded
	FilePath    string
}

// Request is the normalized input of Compose
type Request struct {
	To      string
	CC      string
	BCC     string
	ReplyTo string
	Subject string
	Body    string
	IsHTML  bool

	Attachments []Attachment
	Headers     map[string]string

	RequestDeliveryNotification bool
	RequestReadReceipt          bool

	// Priority is "high", "normal" or "low"
	Priority string
}

// Result carries the composed message and the non-fatal findings
type Result struct {
	Msg      *mail.Msg
	Warnings []string

	// InlineImageCount counts CID parts created from data URIs
	InlineImageCount int
}

// Composer builds MIME messages with the configured sender identity
type Composer struct {
	senderEmail  string
	senderName   string
	senderDomain string
	xMailer      string
}

// New creates a Composer. The sender domain (for Message-ID generation) is
// taken from the part of senderEmail after '@'.
func New(senderEmail, senderName, xMailer string) *Composer {
	domain := "localhost"
	if i := strings.LastIndex(senderEmail, "@"); i >= 0 && i < len(senderEmail)-1 {
		domain = senderEmail[i+1:]
	}
	if xMailer == "" {
		xMailer = "Mailroom"
	}
	return &Composer{
		senderEmail:  senderEmail,
		senderName:   senderName,
		senderDomain: domain,
		xMailer:      xMailer,
	}
}

// Compose builds the MIME message. Per-attachment problems are warnings; the
// only hard failures are an empty recipient list and sender address errors.
func (c *Composer) Compose(req *Request) (*Result, error) {
	result := &Result{}

	to := splitAddresses(req.To, &result.Warnings)
	cc := splitAddresses(req.CC, &result.Warnings)
	bcc := splitAddresses(req.BCC, &result.Warnings)
	if len(to) == 0 && len(cc) == 0 && len(bcc) == 0 {
		return nil, ErrNoRecipients
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "No Subject"
		result.Warnings = append(result.Warnings, "empty subject replaced with default")
	}

	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if c.senderName != "" {
		if err := msg.FromFormat(c.senderName, c.senderEmail); err != nil {
			return nil, fmt.Errorf("failed to set sender: %w", err)
		}
	} else {
		if err := msg.From(c.senderEmail); err != nil {
			return nil, fmt.Errorf("failed to set sender: %w", err)
		}
	}

	if len(to) > 0 {
		if err := msg.To(to...); err != nil {
			return nil, fmt.Errorf("failed to set recipients: %w", err)
		}
	}
	if len(cc) > 0 {
		if err := msg.Cc(cc...); err != nil {
			return nil, fmt.Errorf("failed to set cc recipients: %w", err)
		}
	}
	if len(bcc) > 0 {
		if err := msg.Bcc(bcc...); err != nil {
			return nil, fmt.Errorf("failed to set bcc recipients: %w", err)
		}
	}

	replyTo := strings.TrimSpace(req.ReplyTo)
	if replyTo == "" || !govalidator.IsEmail(replyTo) {
		if replyTo != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid reply-to %q replaced with sender", replyTo))
		}
		replyTo = c.senderEmail
	}
	if err := msg.ReplyTo(replyTo); err != nil {
		return nil, fmt.Errorf("failed to set reply-to: %w", err)
	}

	msg.Subject(subject)
	msg.SetMessageIDWithValue(fmt.Sprintf("%s@%s", uuid.New().String(), c.senderDomain))
	msg.SetGenHeader("X-Mailer", c.xMailer)

	c.applyPriority(msg, req.Priority)
	c.applyCustomHeaders(msg, req.Headers, &result.Warnings)

	if req.RequestDeliveryNotification {
		msg.SetGenHeader("Return-Receipt-To", c.senderEmail)
	}
	if req.RequestReadReceipt {
		msg.SetGenHeader("Disposition-Notification-To", c.senderEmail)
	}

	body := req.Body
	if req.IsHTML {
		// inline data-URI images first, then the mobile/accessibility pass
		inlined, count, warnings := inlineDataURIImages(msg, body)
		result.Warnings = append(result.Warnings, warnings...)
		result.InlineImageCount = count

		optimized, err := optimizeForMobile(inlined)
		if err != nil {
			// the optimization is best-effort; ship the inlined HTML as-is
			result.Warnings = append(result.Warnings, fmt.Sprintf("mobile optimization skipped: %v", err))
			optimized = inlined
		}
		msg.SetBodyString(mail.TypeTextHTML, optimized)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, body)
	}

	c.applyAttachments(msg, req.Attachments, &result.Warnings)

	result.Msg = msg
	return result, nil
}

// applyPriority maps the queue priority to message headers
func (c *Composer) applyPriority(msg *mail.Msg, priority string) {
	switch strings.ToLower(priority) {
	case "high":
		msg.SetImportance(mail.ImportanceUrgent)
	case "low":
		msg.SetImportance(mail.ImportanceNonUrgent)
	}
}

// applyCustomHeaders appends request headers verbatim; empty keys are dropped
func (c *Composer) applyCustomHeaders(msg *mail.Msg, headers map[string]string, warnings *[]string) {
	for k, v := range headers {
		key := strings.TrimSpace(k)
		if key == "" {
			*warnings = append(*warnings, "custom header with empty name dropped")
			continue
		}
		msg.SetGenHeader(mail.Header(key), v)
	}
}

// applyAttachments adds the non-inline attachments. Inline-flagged entries
// become embedded parts referenced by their content id.
func (c *Composer) applyAttachments(msg *mail.Msg, attachments []Attachment, warnings *[]string) {
	for i := range attachments {
		a := attachments[i]
		if a.FileName == "" {
			a.FileName = "attachment"
		}
		if a.ContentType == "" {
			a.ContentType = "application/octet-stream"
		}

		if a.FilePath != "" {
			opts := []mail.FileOption{mail.WithFileContentType(mail.ContentType(a.ContentType))}
			if a.IsInline {
				cid := a.ContentID
				if cid == "" {
					cid = uuid.New().String()
				}
				msg.EmbedFile(a.FilePath, append(opts, mail.WithFileContentID(cid))...)
			} else {
				msg.AttachFile(a.FilePath, opts...)
			}
			continue
		}

		if a.Content == "" {
			*warnings = append(*warnings, fmt.Sprintf("attachment %q dropped: empty content", a.FileName))
			continue
		}
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("attachment %q dropped: invalid base64", a.FileName))
			continue
		}

		opts := []mail.FileOption{mail.WithFileContentType(mail.ContentType(a.ContentType))}
		if a.IsInline {
			cid := a.ContentID
			if cid == "" {
				cid = uuid.New().String()
			}
			msg.EmbedReader(a.FileName, bytes.NewReader(content), append(opts, mail.WithFileContentID(cid))...)
		} else {
			msg.AttachReader(a.FileName, bytes.NewReader(content), opts...)
		}
	}
}

// splitAddresses splits on ',' and ';', trims, and drops invalid addresses
func splitAddresses(list string, warnings *[]string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var out []string
	for _, f := range fields {
		addr := strings.TrimSpace(f)
		if addr == "" {
			continue
		}
		if !govalidator.IsEmail(addr) {
			*warnings = append(*warnings, fmt.Sprintf("invalid address %q dropped", addr))
			continue
		}
		out = append(out, addr)
	}
	return out
}
