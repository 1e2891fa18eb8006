package forms

import (
	"strings"
	"testing"
)

func TestPostFormRequiresText(t *testing.T) {
	f := PostForm{Text: "   "}
	res := f.Validate()
	if res.Valid() {
		t.Fatal("expected blank text to fail")
	}
	if _, ok := res.Errors["text"]; !ok {
		t.Fatalf("expected a text error, got %v", res.Errors)
	}
}

func TestPostFormTrimsText(t *testing.T) {
	f := PostForm{Text: "  hello  "}
	res := f.Validate()
	if !res.Valid() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if f.Text != "hello" {
		t.Fatalf("text not trimmed: %q", f.Text)
	}
}

func TestCommentFormLength(t *testing.T) {
	f := CommentForm{Text: strings.Repeat("a", CommentMaxLen)}
	if res := f.Validate(); !res.Valid() {
		t.Fatalf("200 chars should pass: %v", res.Errors)
	}

	f = CommentForm{Text: strings.Repeat("a", CommentMaxLen+1)}
	res := f.Validate()
	if res.Valid() {
		t.Fatal("201 chars should fail")
	}
	if res.Errors["text"] == "" {
		t.Fatalf("expected a text error, got %v", res.Errors)
	}
}

func TestCommentFormCountsRunes(t *testing.T) {
	// multibyte characters count once each
	f := CommentForm{Text: strings.Repeat("й", CommentMaxLen)}
	if res := f.Validate(); !res.Valid() {
		t.Fatalf("200 runes should pass: %v", res.Errors)
	}
}

func TestFailKeepsFirstMessage(t *testing.T) {
	var res Result
	res.Fail("text", "first")
	res.Fail("text", "second")
	if res.Errors["text"] != "first" {
		t.Fatalf("expected first message kept, got %q", res.Errors["text"])
	}
}
