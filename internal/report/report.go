// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a typed document into a Markdown or HTML report.
// A render failure in one entity replaces that entity with a placeholder
// and logs a warning; it never aborts the run.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// field is one key/value line of an entity body. Empty values are skipped.
type field struct {
	key   string
	value string
}

// Markdown renders the document as a Markdown report. Per-entity render
// failures write a placeholder into the report and a warning line to warn.
func Markdown(doc *types.Document, warn io.Writer) string {
	var sb strings.Builder

	sb.WriteString("# GEDCOM Header\n\n")
	hdrBody, err := fieldLines([]field{
		{"Source Software", doc.Header.SourceSoftware},
		{"Source Version", doc.Header.SourceVersion},
		{"Date", doc.Header.Date},
		{"Character Set", doc.Header.Charset},
		{"GEDCOM Version", doc.Header.GedcomVersion},
	})
	writeEntity(&sb, warn, "Header", "", hdrBody, err)

	sb.WriteString("# Individuals\n\n")
	for _, id := range doc.IndividualIDs {
		fmt.Fprintf(&sb, "## Individual %s\n\n", id)
		body, err := individualBody(doc.Individuals[id], doc.Relations[id])
		writeEntity(&sb, warn, "Individual", id, body, err)
	}

	sb.WriteString("# Families\n\n")
	for _, id := range doc.FamilyIDs {
		fmt.Fprintf(&sb, "## Family %s\n\n", id)
		body, err := familyBody(doc.Families[id])
		writeEntity(&sb, warn, "Family", id, body, err)
	}

	if len(doc.Events) > 0 {
		sb.WriteString("# Events\n\n")
		sb.WriteString("| Record ID | Record Type | Event Type | Date | Place | Cause | Notes | Source IDs |\n")
		sb.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, ev := range doc.Events {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				cell(ev.OwnerID), cell(ev.OwnerType), cell(ev.Type), cell(ev.Date),
				cell(ev.Place), cell(ev.Cause), cell(ev.Notes), cell(ev.SourceIDs))
		}
		sb.WriteString("\n")
	}

	if len(doc.SourceIDs) > 0 {
		sb.WriteString("# Sources\n\n")
		for _, id := range doc.SourceIDs {
			fmt.Fprintf(&sb, "## Source %s\n\n", id)
			src := doc.Sources[id]
			body, err := fieldLines([]field{
				{"Title", src.Title},
				{"Author", src.Author},
				{"Publication", src.Publication},
				{"Page", src.Page},
				{"Repository", src.Repository},
				{"Data", src.Data},
				{"Notes", strings.Join(src.Notes, "; ")},
			})
			writeEntity(&sb, warn, "Source", id, body, err)
		}
	}

	if len(doc.NoteIDs) > 0 {
		sb.WriteString("# Notes\n\n")
		for _, id := range doc.NoteIDs {
			fmt.Fprintf(&sb, "## Note %s\n\n", id)
			body, err := fieldLines([]field{{"Text", doc.Notes[id].Text}})
			writeEntity(&sb, warn, "Note", id, body, err)
		}
	}

	if len(doc.ObjectIDs) > 0 {
		sb.WriteString("# Multimedia\n\n")
		for _, id := range doc.ObjectIDs {
			fmt.Fprintf(&sb, "## Object %s\n\n", id)
			obj := doc.Objects[id]
			body, err := fieldLines([]field{
				{"File", obj.File},
				{"Format", obj.Format},
				{"Title", obj.Title},
				{"Notes", strings.Join(obj.Notes, "; ")},
			})
			writeEntity(&sb, warn, "Object", id, body, err)
		}
	}

	if len(doc.Associations) > 0 {
		sb.WriteString("# Associations\n\n")
		sb.WriteString("| Individual ID | Associated ID | Relationship | Notes |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, a := range doc.Associations {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				cell(a.OwnerID), cell(a.AssociatedID), cell(a.Relationship),
				cell(strings.Join(a.Notes, "; ")))
		}
		sb.WriteString("\n")
	}

	if len(doc.SubmitterIDs) > 0 {
		sb.WriteString("# Submitter\n\n")
		for _, id := range doc.SubmitterIDs {
			fmt.Fprintf(&sb, "## Submitter %s\n\n", id)
			sub := doc.Submitters[id]
			body, err := fieldLines([]field{
				{"Name", sub.Name},
				{"Address", sub.Address},
				{"Phone", sub.Phone},
				{"Email", sub.Email},
			})
			writeEntity(&sb, warn, "Submitter", id, body, err)
		}
	}

	return sb.String()
}

// HTML renders the document as an HTML page by converting the Markdown
// report through goldmark with table support.
func HTML(doc *types.Document, warn io.Writer) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(doc, warn)), &body); err != nil {
		return nil, fmt.Errorf("converting report to HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>GEDCOM Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Write renders the document in the configured format and writes it to
// cfg.OutputPath, or stdout when the path is empty.
func Write(doc *types.Document, cfg types.ReportConfig, warn io.Writer) error {
	var data []byte
	switch cfg.Format {
	case types.OutputHTML:
		b, err := HTML(doc, warn)
		if err != nil {
			return err
		}
		data = b
	case types.OutputMarkdown, "":
		data = []byte(Markdown(doc, warn))
	default:
		return fmt.Errorf("unsupported format %q: use markdown or html", cfg.Format)
	}

	if cfg.OutputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func individualBody(ind *types.Individual, rel types.Relations) (string, error) {
	return fieldLines([]field{
		{"Name", ind.Name},
		{"Gender", ind.Gender},
		{"Birth Date", ind.BirthDate},
		{"Birth Place", ind.BirthPlace},
		{"Death Date", ind.DeathDate},
		{"Death Place", ind.DeathPlace},
		{"Cause of Death", ind.DeathCause},
		{"Occupation", ind.Occupation},
		{"Education", ind.Education},
		{"Religion", ind.Religion},
		{"Nationality", ind.Nationality},
		{"Physical Description", ind.Description},
		{"SSN", ind.SSN},
		{"Title", ind.Title},
		{"Residence", ind.Residence},
		{"Change Date", ind.ChangeDate},
		{"Change Time", ind.ChangeTime},
		{"Father ID", rel.FatherID},
		{"Father Name", rel.FatherName},
		{"Mother ID", rel.MotherID},
		{"Mother Name", rel.MotherName},
		{"Spouse ID", rel.SpouseIDs},
		{"Spouse Name", rel.SpouseNames},
		{"Children IDs", rel.ChildIDs},
		{"Children Names", rel.ChildNames},
		{"Notes", strings.Join(ind.Notes, "; ")},
	})
}

func familyBody(fam *types.Family) (string, error) {
	return fieldLines([]field{
		{"Husband ID", fam.HusbandID},
		{"Husband Name", fam.HusbandName},
		{"Wife ID", fam.WifeID},
		{"Wife Name", fam.WifeName},
		{"Marriage Date", fam.Marriage.Date},
		{"Marriage Place", fam.Marriage.Place},
		{"Divorce Date", fam.Divorce.Date},
		{"Divorce Place", fam.Divorce.Place},
		{"Engagement Date", fam.Engagement.Date},
		{"Engagement Place", fam.Engagement.Place},
		{"Marriage Contract Date", fam.MarriageContract.Date},
		{"Marriage Contract Place", fam.MarriageContract.Place},
		{"Marriage Settlement Date", fam.MarriageSettlement.Date},
		{"Marriage Settlement Place", fam.MarriageSettlement.Place},
		{"Children IDs", strings.Join(fam.ChildIDs, ", ")},
		{"Children Names", strings.Join(fam.ChildNames, ", ")},
		{"Change Date", fam.ChangeDate},
		{"Change Time", fam.ChangeTime},
		{"Notes", strings.Join(fam.Notes, "; ")},
	})
}

// fieldLines renders the non-empty fields as a bullet list. A value that
// is not valid UTF-8 cannot be placed into the report and fails the whole
// entity.
func fieldLines(fields []field) (string, error) {
	var sb strings.Builder
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !utf8.ValidString(f.value) {
			return "", fmt.Errorf("field %s holds invalid UTF-8", f.key)
		}
		fmt.Fprintf(&sb, "- %s: %s\n", f.key, f.value)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

// writeEntity appends the entity body, or a placeholder plus a warning
// when rendering the entity failed.
func writeEntity(sb *strings.Builder, warn io.Writer, kind, id string, body string, err error) {
	if err != nil {
		fmt.Fprintf(warn, "warning: %s %s: %v\n", kind, id, err)
		if id != "" {
			fmt.Fprintf(sb, "Error in %s %s - see log\n\n", kind, id)
		} else {
			fmt.Fprintf(sb, "Error in %s - see log\n\n", kind)
		}
		return
	}
	sb.WriteString(body)
}

// cell escapes pipes so a value cannot break out of its table cell.
func cell(v string) string {
	return strings.ReplaceAll(v, "|", "\\|")
}
