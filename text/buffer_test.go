package text

import (
	"testing"
)

func TestBuffer_Basic(t *testing.T) {
	b := New("hello")

	if b.String() != "hello" {
		t.Fatalf("expected %q, got %q", "hello", b.String())
	}
	if b.Len() != 5 {
		t.Fatalf("expected length 5, got %d", b.Len())
	}

	b.Append(", world")
	if b.String() != "hello, world" {
		t.Fatalf("unexpected content %q", b.String())
	}

	b.Set("reset")
	if b.String() != "reset" {
		t.Fatalf("unexpected content %q", b.String())
	}
}

func TestBuffer_Drop(t *testing.T) {
	b := New("doomed")
	if b.Dead() {
		t.Fatal("fresh buffer should be alive")
	}

	b.Drop()
	if !b.Dead() {
		t.Fatal("dropped buffer should be dead")
	}
}

func TestBuffer_UseAfterDropPanics(t *testing.T) {
	b := New("gone")
	b.Drop()

	defer func() {
		if recover() == nil {
			t.Fatal("use of destroyed buffer should panic")
		}
	}()
	_ = b.String()
}

func TestBuffer_DoubleDropPanics(t *testing.T) {
	b := New("once")
	b.Drop()

	defer func() {
		if recover() == nil {
			t.Fatal("double drop should panic")
		}
	}()
	b.Drop()
}
