package webanno

// Placeholder marks a column with no value in a WebAnno TSV row.
const Placeholder = "_"

// FieldCount is the number of positional columns read from each token row.
const FieldCount = 10

// Document is a parsed WebAnno TSV export.
type Document struct {
	Title    string    `json:"title"`            // From filename or upload metadata
	Format   string    `json:"format,omitempty"` // e.g. "WebAnno TSV 3.3"
	Layers   []Layer   `json:"layers,omitempty"` // Preamble layer declarations
	Sections []Section `json:"sections"`
}

// Layer is a "#T_SP=", "#T_CH=" or "#T_RL=" declaration from the preamble.
type Layer struct {
	Kind     string   `json:"kind"` // SP, CH or RL
	Name     string   `json:"name"`
	Features []string `json:"features,omitempty"`
}

// Section is one reference passage and its token annotations in source order.
type Section struct {
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is a single token row.
type Annotation struct {
	ID              string `json:"id"`
	Span            string `json:"span"`
	Token           string `json:"token"`
	NamedEntityInfo string `json:"namedEntityInfo"`
	NamedEntityType string `json:"namedEntityType"`
	SemArgInfo      string `json:"semArgInfo"`
	SemArgType      string `json:"semArgType"`
	SemPredInfo     string `json:"semPredInfo"`
	SemPredType     string `json:"semPredType"`
	RelationType    string `json:"relationType"`
}

// FromFields maps exactly FieldCount columns onto an Annotation.
func FromFields(f [FieldCount]string) Annotation {
	return Annotation{
		ID:              f[0],
		Span:            f[1],
		Token:           f[2],
		NamedEntityInfo: f[3],
		NamedEntityType: f[4],
		SemArgInfo:      f[5],
		SemArgType:      f[6],
		SemPredInfo:     f[7],
		SemPredType:     f[8],
		RelationType:    f[9],
	}
}

// Fields returns the columns in source order.
func (a Annotation) Fields() [FieldCount]string {
	return [FieldCount]string{
		a.ID, a.Span, a.Token,
		a.NamedEntityInfo, a.NamedEntityType,
		a.SemArgInfo, a.SemArgType,
		a.SemPredInfo, a.SemPredType,
		a.RelationType,
	}
}

// Value returns v, or "" when v is the placeholder.
func Value(v string) string {
	if v == Placeholder {
		return ""
	}
	return v
}

// AnnotationCount totals the annotations across all sections.
func (d *Document) AnnotationCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Annotations)
	}
	return n
}
