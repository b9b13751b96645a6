// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Line is one repaired structural line of a GEDCOM document. Lines are
// produced by the normalizer and consumed immediately by the tree builder;
// they are never persisted.
type Line struct {
	// Depth is the corrected nesting level, never negative and never more
	// than one deeper than the preceding line.
	Depth int

	// Tag is the short uppercase record code (e.g. "INDI", "NAME", "BIRT").
	Tag string

	// Pointer is the cross-reference id when the line declares one
	// (e.g. "@I1@"). Empty otherwise.
	Pointer string

	// Value is the remainder of the line after the tag. Empty when the
	// line carries no payload.
	Value string
}

// Record is a node in the reconstructed hierarchical record tree. A Record
// owns its children exclusively; the tree has no sharing and no cycles.
type Record struct {
	Tag     string
	Pointer string
	Value   string

	// Depth is the corrected level the record was parsed at.
	Depth int

	// Children preserve source order. Ordering is meaningful: repeated
	// tags (notes, multiple events of one type) keep their input sequence.
	Children []*Record
}

// Child returns the first child with the given tag, or nil.
func (r *Record) Child(tag string) *Record {
	for _, c := range r.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the value of the first child with the given tag, or "".
func (r *Record) ChildValue(tag string) string {
	if c := r.Child(tag); c != nil {
		return c.Value
	}
	return ""
}

// Individual holds the fields extracted from an INDI record. All string
// fields are sanitized at extraction time. Relationship data lives in a
// separate Relations projection; Individual itself never changes after
// extraction.
type Individual struct {
	// ID is the cross-reference id (e.g. "@I1@").
	ID string `json:"id" yaml:"id"`

	// Name is the display name derived from the NAME value
	// ("Given /Surname/" becomes "Given Surname").
	Name string `json:"name" yaml:"name"`

	Gender string `json:"gender,omitempty" yaml:"gender,omitempty"`

	BirthDate  string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty" yaml:"birth_place,omitempty"`
	DeathDate  string `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	DeathPlace string `json:"death_place,omitempty" yaml:"death_place,omitempty"`
	DeathCause string `json:"death_cause,omitempty" yaml:"death_cause,omitempty"`

	Occupation  string `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	Education   string `json:"education,omitempty" yaml:"education,omitempty"`
	Religion    string `json:"religion,omitempty" yaml:"religion,omitempty"`
	Nationality string `json:"nationality,omitempty" yaml:"nationality,omitempty"`

	// Description is the physical description (DSCR).
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// SSN is the social security / identification number (SSN).
	SSN string `json:"ssn,omitempty" yaml:"ssn,omitempty"`

	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Residence string `json:"residence,omitempty" yaml:"residence,omitempty"`

	// Notes accumulate in source order.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// ChangeDate and ChangeTime come from the CHAN sub-record.
	ChangeDate string `json:"change_date,omitempty" yaml:"change_date,omitempty"`
	ChangeTime string `json:"change_time,omitempty" yaml:"change_time,omitempty"`
}

// Relations is the derived relationship projection for one individual,
// produced by the graph builder after all families are extracted. Ids and
// names of multi-valued fields are comma-joined in family processing order.
type Relations struct {
	FatherID   string `json:"father_id,omitempty" yaml:"father_id,omitempty"`
	FatherName string `json:"father_name,omitempty" yaml:"father_name,omitempty"`
	MotherID   string `json:"mother_id,omitempty" yaml:"mother_id,omitempty"`
	MotherName string `json:"mother_name,omitempty" yaml:"mother_name,omitempty"`

	// SpouseIDs may repeat an id: sequential or polygamous marriages are
	// never deduplicated.
	SpouseIDs   string `json:"spouse_ids,omitempty" yaml:"spouse_ids,omitempty"`
	SpouseNames string `json:"spouse_names,omitempty" yaml:"spouse_names,omitempty"`

	ChildIDs   string `json:"child_ids,omitempty" yaml:"child_ids,omitempty"`
	ChildNames string `json:"child_names,omitempty" yaml:"child_names,omitempty"`
}

// FamilyEvent is a dated, placed event under a family record (marriage,
// divorce, engagement, marriage contract, marriage settlement).
type FamilyEvent struct {
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
	Place string `json:"place,omitempty" yaml:"place,omitempty"`
}

// IsZero reports whether the event carries no data.
func (e FamilyEvent) IsZero() bool {
	return e.Date == "" && e.Place == ""
}

// Family holds the fields extracted from a FAM record. Husband and wife
// names are resolved against the completed individual name index.
type Family struct {
	ID string `json:"id" yaml:"id"`

	HusbandID   string `json:"husband_id,omitempty" yaml:"husband_id,omitempty"`
	HusbandName string `json:"husband_name,omitempty" yaml:"husband_name,omitempty"`
	WifeID      string `json:"wife_id,omitempty" yaml:"wife_id,omitempty"`
	WifeName    string `json:"wife_name,omitempty" yaml:"wife_name,omitempty"`

	Marriage           FamilyEvent `json:"marriage,omitempty" yaml:"marriage,omitempty"`
	Divorce            FamilyEvent `json:"divorce,omitempty" yaml:"divorce,omitempty"`
	Engagement         FamilyEvent `json:"engagement,omitempty" yaml:"engagement,omitempty"`
	MarriageContract   FamilyEvent `json:"marriage_contract,omitempty" yaml:"marriage_contract,omitempty"`
	MarriageSettlement FamilyEvent `json:"marriage_settlement,omitempty" yaml:"marriage_settlement,omitempty"`

	// ChildIDs preserve source order; ChildNames align index-for-index.
	ChildIDs   []string `json:"child_ids,omitempty" yaml:"child_ids,omitempty"`
	ChildNames []string `json:"child_names,omitempty" yaml:"child_names,omitempty"`

	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	ChangeDate string `json:"change_date,omitempty" yaml:"change_date,omitempty"`
	ChangeTime string `json:"change_time,omitempty" yaml:"change_time,omitempty"`
}

// Event is a life event derived from a qualifying tag nested under an
// individual (baptism, burial, census, emigration, and so on).
type Event struct {
	// OwnerID is the id of the individual the event belongs to.
	OwnerID string `json:"owner_id" yaml:"owner_id"`

	// OwnerType is the record type of the owner ("INDI").
	OwnerType string `json:"owner_type" yaml:"owner_type"`

	// Type is the event tag (e.g. "BAPM", "BURI").
	Type string `json:"type" yaml:"type"`

	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
	Place string `json:"place,omitempty" yaml:"place,omitempty"`
	Cause string `json:"cause,omitempty" yaml:"cause,omitempty"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// SourceIDs is a comma-joined list of source record ids in encounter order.
	SourceIDs string `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`
}

// Source holds the fields extracted from a SOUR record.
type Source struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Publication string   `json:"publication,omitempty" yaml:"publication,omitempty"`
	Page        string   `json:"page,omitempty" yaml:"page,omitempty"`
	Repository  string   `json:"repository,omitempty" yaml:"repository,omitempty"`
	Data        string   `json:"data,omitempty" yaml:"data,omitempty"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Note holds a top-level NOTE record.
type Note struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// MediaObject holds the fields extracted from an OBJE record.
type MediaObject struct {
	ID     string   `json:"id" yaml:"id"`
	File   string   `json:"file,omitempty" yaml:"file,omitempty"`
	Format string   `json:"format,omitempty" yaml:"format,omitempty"`
	Title  string   `json:"title,omitempty" yaml:"title,omitempty"`
	Notes  []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Association is a directed edge from an individual to an associated
// individual, taken from an ASSO sub-record.
type Association struct {
	OwnerID      string   `json:"owner_id" yaml:"owner_id"`
	AssociatedID string   `json:"associated_id" yaml:"associated_id"`
	Relationship string   `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	Notes        []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Submitter holds the fields extracted from a SUBM record.
type Submitter struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Header is the document-level HEAD singleton.
type Header struct {
	SourceSoftware string `json:"source_software,omitempty" yaml:"source_software,omitempty"`
	SourceVersion  string `json:"source_version,omitempty" yaml:"source_version,omitempty"`
	Date           string `json:"date,omitempty" yaml:"date,omitempty"`
	Charset        string `json:"charset,omitempty" yaml:"charset,omitempty"`
	GedcomVersion  string `json:"gedcom_version,omitempty" yaml:"gedcom_version,omitempty"`
}

// Document is the full typed output of one pipeline run. Maps hold the
// entities keyed by id; the parallel id slices preserve source order for
// deterministic iteration.
type Document struct {
	Header Header `json:"header" yaml:"header"`

	Individuals   map[string]*Individual `json:"individuals" yaml:"individuals"`
	IndividualIDs []string               `json:"individual_ids" yaml:"individual_ids"`

	Families  map[string]*Family `json:"families" yaml:"families"`
	FamilyIDs []string           `json:"family_ids" yaml:"family_ids"`

	Events []Event `json:"events,omitempty" yaml:"events,omitempty"`

	Sources   map[string]*Source `json:"sources,omitempty" yaml:"sources,omitempty"`
	SourceIDs []string           `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`

	Notes   map[string]*Note `json:"notes,omitempty" yaml:"notes,omitempty"`
	NoteIDs []string         `json:"note_ids,omitempty" yaml:"note_ids,omitempty"`

	Objects   map[string]*MediaObject `json:"objects,omitempty" yaml:"objects,omitempty"`
	ObjectIDs []string                `json:"object_ids,omitempty" yaml:"object_ids,omitempty"`

	Associations []Association `json:"associations,omitempty" yaml:"associations,omitempty"`

	Submitters   map[string]*Submitter `json:"submitters,omitempty" yaml:"submitters,omitempty"`
	SubmitterIDs []string              `json:"submitter_ids,omitempty" yaml:"submitter_ids,omitempty"`

	// Names maps individual id to display name, complete after the
	// individual pass.
	Names map[string]string `json:"-" yaml:"-"`

	// Relations maps individual id to the derived relationship projection.
	// An id absent from the map has no known relationships.
	Relations map[string]Relations `json:"relations,omitempty" yaml:"relations,omitempty"`
}
