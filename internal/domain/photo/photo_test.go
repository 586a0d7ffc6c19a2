package photo

import (
	"reflect"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	p, err := New("album-bucket", "2024/beach.jpg", []string{"Beach", "Sea"}, "summer trip", 1700000000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Bucket() != "album-bucket" {
		t.Errorf("Bucket() = %q", p.Bucket())
	}
	if p.ObjectKey() != "2024/beach.jpg" {
		t.Errorf("ObjectKey() = %q", p.ObjectKey())
	}
	if p.Caption() != "summer trip" {
		t.Errorf("Caption() = %q", p.Caption())
	}
	if p.CreatedAt() != 1700000000000 {
		t.Errorf("CreatedAt() = %d", p.CreatedAt())
	}
}

func TestNew_EmptyObjectKey(t *testing.T) {
	if _, err := New("bucket", "", nil, "", 0); err == nil {
		t.Fatal("expected error for empty object key")
	}
}

func TestNew_EmptyBucket(t *testing.T) {
	if _, err := New("", "key.jpg", nil, "", 0); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}

func TestNew_DeduplicatesLabels(t *testing.T) {
	p, err := New("bucket", "key.jpg", []string{"Dog", "Cat", "Dog", ""}, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Dog", "Cat"}
	if !reflect.DeepEqual(p.Labels(), want) {
		t.Errorf("Labels() = %v, want %v", p.Labels(), want)
	}
}

func TestNew_NoLabelsIsValid(t *testing.T) {
	p, err := New("bucket", "key.jpg", nil, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Labels()) != 0 {
		t.Errorf("Labels() = %v, want empty", p.Labels())
	}
}
