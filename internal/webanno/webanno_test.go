package webanno

import "testing"

func TestFromFields_Positional(t *testing.T) {
	f := [FieldCount]string{"1-1", "0-5", "Hello", "a", "PER_NAME", "b", "c", "d", "Giving", "evokes"}
	a := FromFields(f)
	if a.Token != "Hello" || a.NamedEntityType != "PER_NAME" || a.SemPredType != "Giving" || a.RelationType != "evokes" {
		t.Fatalf("unexpected mapping: %+v", a)
	}
	if a.Fields() != f {
		t.Errorf("expected Fields to return source order, got %v", a.Fields())
	}
}

func TestValue_Placeholder(t *testing.T) {
	if Value(Placeholder) != "" {
		t.Errorf("expected placeholder to map to empty string")
	}
	if Value("DATE") != "DATE" {
		t.Errorf("expected %q, got %q", "DATE", Value("DATE"))
	}
}

func TestDocument_AnnotationCount(t *testing.T) {
	d := &Document{Sections: []Section{
		{Annotations: make([]Annotation, 2)},
		{},
		{Annotations: make([]Annotation, 3)},
	}}
	if d.AnnotationCount() != 5 {
		t.Errorf("expected 5, got %d", d.AnnotationCount())
	}
}
