// Package forms validates user-submitted fields before anything is persisted.
// Every create/edit handler runs a form through Validate and re-renders the
// page with the Errors map when the result is invalid.
package forms

import (
	"strings"
	"unicode/utf8"
)

const CommentMaxLen = 200

// Errors maps a field name to its validation message.
type Errors map[string]string

type Result struct {
	Errors Errors
}

func (r *Result) Fail(field, msg string) {
	if r.Errors == nil {
		r.Errors = Errors{}
	}
	if _, dup := r.Errors[field]; !dup {
		r.Errors[field] = msg
	}
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// PostForm carries the mutable fields of a post. Author and pub_date are never
// read from the form; the handler derives them.
type PostForm struct {
	Text    string
	GroupID *int64
	Image   string
}

func (f *PostForm) Validate() Result {
	var res Result
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		res.Fail("text", "Text is required")
	}
	return res
}

type CommentForm struct {
	Text string
}

func (f *CommentForm) Validate() Result {
	var res Result
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		res.Fail("text", "Text is required")
	}
	if utf8.RuneCountInString(f.Text) > CommentMaxLen {
		res.Fail("text", "Comment must be at most 200 characters")
	}
	return res
}
