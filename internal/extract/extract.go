// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract classifies parsed records into typed entities by tag and
// sub-tag. Extractor functions are independent and composable: each takes
// the immutable record forest (and, where names must resolve, the completed
// name index) and returns its own entity mapping.
//
// Unrecognized sub-tags are ignored so newer producer software does not
// break extraction. Every string value is sanitized exactly once, here.
package extract

import (
	"strings"

	"github.com/pdiddy/gedcom-engine/internal/sanitize"
	"github.com/pdiddy/gedcom-engine/pkg/types"
)

// NameIndex maps individual id to sanitized display name. It is complete
// once ExtractIndividuals returns and must be treated as read-only after.
type NameIndex map[string]string

// Resolve returns the display name for id. An unresolvable pointer
// degrades to the empty string, never an error.
func (n NameIndex) Resolve(id string) string {
	return n[id]
}

// eventTags are the individual sub-tags that produce a derived Event.
var eventTags = map[string]bool{
	"BAPM": true, "CHR": true, "BURI": true, "CREM": true, "ADOP": true,
	"GRAD": true, "RETI": true, "NATU": true, "EMIG": true, "IMMI": true,
	"CENS": true, "WILL": true, "PROB": true, "CONF": true, "FCOM": true,
	"BARM": true, "BASM": true, "BAPL": true, "ENDL": true, "SLGC": true,
	"SLGS": true,
}

// Individuals is the output of the individual extraction pass.
type Individuals struct {
	// ByID maps individual id to the extracted entity.
	ByID map[string]*types.Individual

	// IDs lists individual ids in source order.
	IDs []string

	// Names is the document-wide id-to-name index, complete on return.
	Names NameIndex

	// Events are the derived life events, in encounter order.
	Events []types.Event
}

// ExtractIndividuals extracts every INDI record, populates the name index,
// and derives life events inline. It must run before ExtractFamilies so
// husband and wife names resolve against a complete index.
func ExtractIndividuals(records []*types.Record) Individuals {
	out := Individuals{
		ByID:  make(map[string]*types.Individual),
		Names: make(NameIndex),
	}

	for _, rec := range records {
		if rec.Tag != "INDI" || rec.Pointer == "" {
			continue
		}

		ind := &types.Individual{ID: rec.Pointer, Name: "Unknown"}

		for _, child := range rec.Children {
			switch child.Tag {
			case "NAME":
				ind.Name = sanitize.Clean(displayName(child.Value))
			case "SEX":
				ind.Gender = sanitize.Clean(child.Value)
			case "BIRT":
				ind.BirthDate = sanitize.Clean(child.ChildValue("DATE"))
				ind.BirthPlace = sanitize.Clean(child.ChildValue("PLAC"))
			case "DEAT":
				ind.DeathDate = sanitize.Clean(child.ChildValue("DATE"))
				ind.DeathPlace = sanitize.Clean(child.ChildValue("PLAC"))
				ind.DeathCause = sanitize.Clean(child.ChildValue("CAUS"))
			case "OCCU":
				ind.Occupation = sanitize.Clean(child.Value)
			case "EDUC":
				ind.Education = sanitize.Clean(child.Value)
			case "RELI":
				ind.Religion = sanitize.Clean(child.Value)
			case "NATI":
				ind.Nationality = sanitize.Clean(child.Value)
			case "DSCR":
				ind.Description = sanitize.Clean(child.Value)
			case "SSN":
				ind.SSN = sanitize.Clean(child.Value)
			case "TITL":
				ind.Title = sanitize.Clean(child.Value)
			case "RESI":
				ind.Residence = sanitize.Clean(child.Value)
			case "NOTE":
				ind.Notes = append(ind.Notes, sanitize.Clean(child.Value))
			case "CHAN":
				ind.ChangeDate = sanitize.Clean(child.ChildValue("DATE"))
				ind.ChangeTime = sanitize.Clean(child.ChildValue("TIME"))
			default:
				if eventTags[child.Tag] {
					out.Events = append(out.Events, extractEvent(rec.Pointer, child))
				}
			}
		}

		out.ByID[ind.ID] = ind
		out.IDs = append(out.IDs, ind.ID)
		out.Names[ind.ID] = ind.Name
	}

	return out
}

// extractEvent builds one derived Event from a qualifying life-event
// sub-record. Source ids are comma-joined in encounter order.
func extractEvent(ownerID string, rec *types.Record) types.Event {
	ev := types.Event{
		OwnerID:   ownerID,
		OwnerType: "INDI",
		Type:      rec.Tag,
	}
	var sources []string
	for _, sub := range rec.Children {
		switch sub.Tag {
		case "DATE":
			ev.Date = sanitize.Clean(sub.Value)
		case "PLAC":
			ev.Place = sanitize.Clean(sub.Value)
		case "CAUS":
			ev.Cause = sanitize.Clean(sub.Value)
		case "NOTE":
			ev.Notes = sanitize.Clean(sub.Value)
		case "SOUR":
			sources = append(sources, sanitize.Clean(sub.Value))
		}
	}
	ev.SourceIDs = strings.Join(sources, ", ")
	return ev
}

// displayName turns a NAME value of the form "Given /Surname/" into
// "Given Surname". Missing pieces degrade to whatever is present.
func displayName(value string) string {
	given, rest, found := strings.Cut(value, "/")
	surname := ""
	if found {
		surname, _, _ = strings.Cut(rest, "/")
	}
	name := strings.TrimSpace(strings.TrimSpace(given) + " " + strings.TrimSpace(surname))
	if name == "" {
		return "Unknown"
	}
	return name
}

// Families is the output of the family extraction pass.
type Families struct {
	// ByID maps family id to the extracted entity.
	ByID map[string]*types.Family

	// IDs lists family ids in source order.
	IDs []string
}

// ExtractFamilies extracts every FAM record, resolving husband, wife, and
// child names against the completed name index.
func ExtractFamilies(records []*types.Record, names NameIndex) Families {
	out := Families{ByID: make(map[string]*types.Family)}

	for _, rec := range records {
		if rec.Tag != "FAM" || rec.Pointer == "" {
			continue
		}

		fam := &types.Family{ID: rec.Pointer}

		for _, child := range rec.Children {
			switch child.Tag {
			case "HUSB":
				fam.HusbandID = sanitize.Clean(child.Value)
				fam.HusbandName = names.Resolve(fam.HusbandID)
			case "WIFE":
				fam.WifeID = sanitize.Clean(child.Value)
				fam.WifeName = names.Resolve(fam.WifeID)
			case "CHIL":
				id := sanitize.Clean(child.Value)
				fam.ChildIDs = append(fam.ChildIDs, id)
				fam.ChildNames = append(fam.ChildNames, names.Resolve(id))
			case "MARR":
				fam.Marriage = familyEvent(child)
			case "DIV":
				fam.Divorce = familyEvent(child)
			case "ENGA":
				fam.Engagement = familyEvent(child)
			case "MARC":
				fam.MarriageContract = familyEvent(child)
			case "MARS":
				fam.MarriageSettlement = familyEvent(child)
			case "NOTE":
				fam.Notes = append(fam.Notes, sanitize.Clean(child.Value))
			case "CHAN":
				fam.ChangeDate = sanitize.Clean(child.ChildValue("DATE"))
				fam.ChangeTime = sanitize.Clean(child.ChildValue("TIME"))
			}
		}

		out.ByID[fam.ID] = fam
		out.IDs = append(out.IDs, fam.ID)
	}

	return out
}

func familyEvent(rec *types.Record) types.FamilyEvent {
	return types.FamilyEvent{
		Date:  sanitize.Clean(rec.ChildValue("DATE")),
		Place: sanitize.Clean(rec.ChildValue("PLAC")),
	}
}

// ExtractSources extracts every pointered SOUR record.
func ExtractSources(records []*types.Record) (map[string]*types.Source, []string) {
	byID := make(map[string]*types.Source)
	var ids []string

	for _, rec := range records {
		if rec.Tag != "SOUR" || rec.Pointer == "" {
			continue
		}
		src := &types.Source{ID: rec.Pointer}
		for _, child := range rec.Children {
			switch child.Tag {
			case "TITL":
				src.Title = sanitize.Clean(child.Value)
			case "AUTH":
				src.Author = sanitize.Clean(child.Value)
			case "PUBL":
				src.Publication = sanitize.Clean(child.Value)
			case "PAGE":
				src.Page = sanitize.Clean(child.Value)
			case "REPO":
				src.Repository = sanitize.Clean(child.Value)
			case "DATA":
				src.Data = sanitize.Clean(child.Value)
			case "NOTE":
				src.Notes = append(src.Notes, sanitize.Clean(child.Value))
			}
		}
		byID[src.ID] = src
		ids = append(ids, src.ID)
	}
	return byID, ids
}

// ExtractNotes extracts every pointered top-level NOTE record.
func ExtractNotes(records []*types.Record) (map[string]*types.Note, []string) {
	byID := make(map[string]*types.Note)
	var ids []string

	for _, rec := range records {
		if rec.Tag != "NOTE" || rec.Pointer == "" {
			continue
		}
		byID[rec.Pointer] = &types.Note{ID: rec.Pointer, Text: sanitize.Clean(rec.Value)}
		ids = append(ids, rec.Pointer)
	}
	return byID, ids
}

// ExtractObjects extracts every pointered OBJE record.
func ExtractObjects(records []*types.Record) (map[string]*types.MediaObject, []string) {
	byID := make(map[string]*types.MediaObject)
	var ids []string

	for _, rec := range records {
		if rec.Tag != "OBJE" || rec.Pointer == "" {
			continue
		}
		obj := &types.MediaObject{ID: rec.Pointer}
		for _, child := range rec.Children {
			switch child.Tag {
			case "FILE":
				obj.File = sanitize.Clean(child.Value)
			case "FORM":
				obj.Format = sanitize.Clean(child.Value)
			case "TITL":
				obj.Title = sanitize.Clean(child.Value)
			case "NOTE":
				obj.Notes = append(obj.Notes, sanitize.Clean(child.Value))
			}
		}
		byID[obj.ID] = obj
		ids = append(ids, obj.ID)
	}
	return byID, ids
}

// ExtractAssociations collects ASSO sub-records under individuals as
// directed edges from the owning individual to the associated one.
func ExtractAssociations(records []*types.Record) []types.Association {
	var out []types.Association

	for _, rec := range records {
		if rec.Tag != "INDI" || rec.Pointer == "" {
			continue
		}
		for _, child := range rec.Children {
			if child.Tag != "ASSO" {
				continue
			}
			assoc := types.Association{
				OwnerID:      rec.Pointer,
				AssociatedID: sanitize.Clean(child.Value),
			}
			for _, sub := range child.Children {
				switch sub.Tag {
				case "RELA":
					assoc.Relationship = sanitize.Clean(sub.Value)
				case "NOTE":
					assoc.Notes = append(assoc.Notes, sanitize.Clean(sub.Value))
				}
			}
			out = append(out, assoc)
		}
	}
	return out
}

// ExtractSubmitters extracts every pointered SUBM record.
func ExtractSubmitters(records []*types.Record) (map[string]*types.Submitter, []string) {
	byID := make(map[string]*types.Submitter)
	var ids []string

	for _, rec := range records {
		if rec.Tag != "SUBM" || rec.Pointer == "" {
			continue
		}
		subm := &types.Submitter{ID: rec.Pointer}
		for _, child := range rec.Children {
			switch child.Tag {
			case "NAME":
				subm.Name = sanitize.Clean(child.Value)
			case "ADDR":
				subm.Address = sanitize.Clean(child.Value)
			case "PHON":
				subm.Phone = sanitize.Clean(child.Value)
			case "EMAIL":
				subm.Email = sanitize.Clean(child.Value)
			}
		}
		byID[subm.ID] = subm
		ids = append(ids, subm.ID)
	}
	return byID, ids
}

// ExtractHeader extracts the HEAD singleton. A document without a header
// yields the zero value.
func ExtractHeader(records []*types.Record) types.Header {
	var hdr types.Header

	for _, rec := range records {
		if rec.Tag != "HEAD" {
			continue
		}
		for _, child := range rec.Children {
			switch child.Tag {
			case "SOUR":
				hdr.SourceSoftware = sanitize.Clean(child.Value)
				hdr.SourceVersion = sanitize.Clean(child.ChildValue("VERS"))
			case "DATE":
				hdr.Date = sanitize.Clean(child.Value)
			case "CHAR":
				hdr.Charset = sanitize.Clean(child.Value)
			case "GEDC":
				hdr.GedcomVersion = sanitize.Clean(child.ChildValue("VERS"))
			}
		}
	}
	return hdr
}
