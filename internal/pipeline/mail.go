package pipeline

import (
	"bytes"
	"errors"
	"strings"

	"github.com/jhillyerd/enmime"

	"wareneingang/internal"
)

var ErrNoParseableContent = errors.New("no parseable content in mail")

// SourcedDocument is one parsed document plus where inside the mail it came
// from, so review output can point back at the body or a named attachment.
type SourcedDocument struct {
	Source   internal.DocumentSource
	Origin   string
	Document internal.ParsedDocument
}

// MailContent is the decoded envelope split into the parts the pipeline
// cares about.
type MailContent struct {
	Subject         string
	Text            string
	HTML            string
	AttachmentNames []string
}

// ExtractDocumentsFromMailRaw decodes a raw RFC 5322 message and parses every
// part that can carry supplier positions: the text body (receipt grammar or
// delimited table, decided by looksDelimited), HTML tables, and XLSX/PDF
// attachments. Parts that yield no items are dropped; a mail where nothing
// parses returns an empty slice, not an error.
func ExtractDocumentsFromMailRaw(raw []byte) ([]SourcedDocument, MailContent, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, MailContent{}, err
	}

	content := MailContent{
		Subject: env.GetHeader("Subject"),
		Text:    env.Text,
		HTML:    env.HTML,
	}

	docs := []SourcedDocument{}
	if strings.TrimSpace(env.Text) != "" {
		parsed := false
		if looksDelimited(env.Text) {
			doc := ParseSupplierTable(env.Text, "")
			if len(doc.Items) > 0 {
				docs = appendParsed(docs, internal.SourceCSV, "body", doc)
				parsed = true
			}
		}
		if !parsed {
			doc := ParseReceiptText(env.Text)
			docs = appendParsed(docs, internal.SourceMailText, "body", doc)
		}
	}
	if strings.TrimSpace(env.HTML) != "" {
		doc := ParseHTMLTables(env.HTML, "")
		docs = appendParsed(docs, internal.SourceMailHTMLTable, "body", doc)
	}

	for _, att := range env.Attachments {
		name := strings.TrimSpace(att.FileName)
		if name == "" {
			name = "attachment"
		}
		content.AttachmentNames = append(content.AttachmentNames, name)
		lower := strings.ToLower(name)

		switch {
		case strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls"):
			if doc, err := ParseXLSX(att.Content, ""); err == nil {
				docs = appendParsed(docs, internal.SourceXLSX, name, doc)
			}
		case strings.HasSuffix(lower, ".pdf"):
			if doc, err := ParsePDF(att.Content); err == nil {
				docs = appendParsed(docs, internal.SourcePDF, name, doc)
			}
		case strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".txt"):
			doc := ParseSupplierTable(string(att.Content), "")
			docs = appendParsed(docs, internal.SourceCSV, name, doc)
		}
	}

	return docs, content, nil
}

func appendParsed(docs []SourcedDocument, source internal.DocumentSource, origin string, doc internal.ParsedDocument) []SourcedDocument {
	if len(doc.Items) == 0 {
		return docs
	}
	return append(docs, SourcedDocument{Source: source, Origin: origin, Document: doc})
}

// looksDelimited decides whether a text body is a pasted delimited export
// rather than receipt prose: most non-empty lines must carry the same
// delimiter the header line would select.
func looksDelimited(text string) bool {
	lines := splitLines(text)
	if len(lines) < 2 {
		return false
	}
	delim := detectDelimiter(lines[0])
	if strings.Count(lines[0], string(delim)) == 0 {
		return false
	}
	hits := 0
	for _, line := range lines {
		if strings.ContainsRune(line, delim) {
			hits++
		}
	}
	return hits >= 2 && hits*2 >= len(lines)
}
