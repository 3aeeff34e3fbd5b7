package ghb

import (
	"errors"
	"strings"
	"testing"
)

// ===== Decode Tests =====

func TestDecode_TitleAuthorPages(t *testing.T) {
	lines := []string{"title:My Book", "author:Jane", "Page one.##", ">>>>", "Page two."}

	doc, err := NewDecoder().Decode(lines)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Title != "My Book" {
		t.Errorf("Title = %q, want %q", doc.Title, "My Book")
	}
	if doc.Author != "Jane" {
		t.Errorf("Author = %q, want %q", doc.Author, "Jane")
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2 (pages %q)", doc.PageCount(), doc.Pages)
	}
	if !strings.HasPrefix(doc.Pages[0], "Page one.") {
		t.Errorf("Pages[0] = %q, want prefix %q", doc.Pages[0], "Page one.")
	}
	if !strings.HasPrefix(doc.Pages[1], "Page two.") {
		t.Errorf("Pages[1] = %q, want prefix %q", doc.Pages[1], "Page two.")
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := NewDecoder().Decode(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestDecode_NoContent(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{"", "// only a comment", "  "})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", doc.PageCount())
	}
}

func TestDecode_Escapes(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{`a \## b \>>>> c`})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1 (pages %q)", doc.PageCount(), doc.Pages)
	}
	if doc.Pages[0] != "a ## b >>>> c" {
		t.Errorf("Pages[0] = %q, want %q", doc.Pages[0], "a ## b >>>> c")
	}
}

func TestDecode_EscapesOnlyInSource(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"space before linebreak", []string{`a\ ##b`}, []string{"a\\\nb"}},
		{"newline before linebreak", []string{`a\`, "##b"}, []string{"a\\\nb"}},
		{"comment before linebreak", []string{`a\/* c */##b`}, []string{"a\\\nb"}},
		{"space before pagebreak", []string{`a\ >>>>b`}, []string{`a\`, "b"}},
		{"double backslash", []string{`a\\##b`}, []string{`a\##b`}},
		{"escaped token in comment", []string{`a /* \## */##b`}, []string{"a\nb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDecoder().Decode(tt.lines)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if len(doc.Pages) != len(tt.want) {
				t.Fatalf("Pages = %q, want %q", doc.Pages, tt.want)
			}
			for i := range tt.want {
				if doc.Pages[i] != tt.want[i] {
					t.Errorf("Pages[%d] = %q, want %q", i, doc.Pages[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecode_BlankPages(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"middle", []string{"one##", ">>>>", "##", ">>>>", "three##"}, []string{"one", "", "three"}},
		{"only", []string{"##"}, []string{""}},
		{"last", []string{"one##", ">>>>", "##"}, []string{"one", ""}},
		{"spaces only", []string{"one##", ">>>>", "   "}, []string{"one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDecoder().Decode(tt.lines)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if len(doc.Pages) != len(tt.want) {
				t.Fatalf("Pages = %q, want %q", doc.Pages, tt.want)
			}
			for i := range tt.want {
				if doc.Pages[i] != tt.want[i] {
					t.Errorf("Pages[%d] = %q, want %q", i, doc.Pages[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecode_HeaderPrecedence(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{"title:First", "title:Second", "body"})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Title != "First" {
		t.Errorf("Title = %q, want %q", doc.Title, "First")
	}
	if doc.PageCount() != 1 || !strings.Contains(doc.Pages[0], "title:Second") {
		t.Errorf("Pages = %q, want the second title line as body text", doc.Pages)
	}
}

func TestDecode_TitleTruncation(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{"title:A very long book title", "x"})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Title != "A very long bo.." {
		t.Errorf("Title = %q, want %q", doc.Title, "A very long bo..")
	}
}

func TestDecode_HeaderComments(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{
		"title:  Book /* hidden",
		"secret",
		"*/ visible",
		"author:Ann // the author",
	})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Title != "Book" {
		t.Errorf("Title = %q, want %q", doc.Title, "Book")
	}
	if doc.Author != "Ann" {
		t.Errorf("Author = %q, want %q", doc.Author, "Ann")
	}
	if doc.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1 (pages %q)", doc.PageCount(), doc.Pages)
	}
	if strings.Contains(doc.Pages[0], "secret") || !strings.Contains(doc.Pages[0], "visible") {
		t.Errorf("Pages[0] = %q, want the commented text hidden", doc.Pages[0])
	}
}

func TestDecode_RepeatedTokens(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{"a##", "##", "b##", ">>>>", "  >>>>", "c"})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	want := []string{"a\n\nb", "c"}
	if len(doc.Pages) != len(want) {
		t.Fatalf("Pages = %q, want %q", doc.Pages, want)
	}
	for i := range want {
		if doc.Pages[i] != want[i] {
			t.Errorf("Pages[%d] = %q, want %q", i, doc.Pages[i], want[i])
		}
	}
}

func TestDecode_CaseInsensitiveDirectives(t *testing.T) {
	doc, err := NewDecoder().Decode([]string{"TITLE:Loud", "Author:Quiet", "text"})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Title != "Loud" || doc.Author != "Quiet" {
		t.Errorf("Title, Author = %q, %q; want Loud, Quiet", doc.Title, doc.Author)
	}
}

// ===== Pass Tests =====

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no comments", "plain text", "plain text"},
		{"line comment", "a // c\nb", "a \nb"},
		{"line comment at end", "a // c", "a "},
		{"block comment", "a /* x */ b", "a  b"},
		{"multi-line block", "a /* x\ny */ b", "a  b"},
		{"unterminated block", "a /* open", "a "},
		{"dangling close", "x\ny */ z", " z"},
		{"stray close after block", "/* a */ b */ c", " b  c"},
		{"opener inside line comment", "a // x /* y\nb", "a \nb"},
		{"single slash", "a/b", "a/b"},
		{"line comment hides block close", "a /* x\n// y */ b", "a "},
		{"line comment inside block", "/* a // b */ c\nd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripComments(tt.in); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripComments_Idempotent(t *testing.T) {
	inputs := []string{
		"a // c\nb",
		"x */ y /* z",
		"a/* x *//b",
		"*/*/",
		"/*/ a */ b",
		"a /* b */ */ c // d\n/* e",
		"title:x\n//======\nPage##",
	}
	for _, in := range inputs {
		once := StripComments(in)
		if twice := StripComments(once); twice != once {
			t.Errorf("StripComments(%q): once = %q, twice = %q", in, once, twice)
		}
	}
}

func TestTrimBeforeTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a  \t##b", "a##b"},
		{"a \n>>>>b", "a>>>>b"},
		{`c \##`, `c \##`},
		{`a\ ##b`, `a\##b`},
		{"a ## b", "a## b"},
		{"no tokens ", "no tokens "},
	}

	for _, tt := range tests {
		if got := TrimBeforeTokens(tt.in); got != tt.want {
			t.Errorf("TrimBeforeTokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseNewlines(t *testing.T) {
	if got := CollapseNewlines("a\r\nb\nc\rd"); got != "abcd" {
		t.Errorf("CollapseNewlines() = %q, want %q", got, "abcd")
	}
}

func TestSubstituteLinebreaks(t *testing.T) {
	if got := SubstituteLinebreaks("a##b"); got != "a\nb" {
		t.Errorf("SubstituteLinebreaks() = %q, want %q", got, "a\nb")
	}
	if got := RestoreEscapes(SubstituteLinebreaks(MarkEscapes(`a##b\##c`))); got != "a\nb##c" {
		t.Errorf("SubstituteLinebreaks() with escapes = %q, want %q", got, "a\nb##c")
	}
	if got := SubstituteLinebreaks(`a\##b`); got != "a\\\nb" {
		t.Errorf("SubstituteLinebreaks() unmarked = %q, want %q", got, "a\\\nb")
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a>>>>b", []string{"a", "b"}},
		{`a>>>>b\>>>>c`, []string{"a", "b>>>>c"}},
		{`a\##`, []string{"a##"}},
		{">>>>", []string{"", ""}},
	}

	for _, tt := range tests {
		got := SplitPages(MarkEscapes(tt.in))
		if len(got) != len(tt.want) {
			t.Errorf("SplitPages(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitPages(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestExtractHeader(t *testing.T) {
	h := ExtractHeader([]string{"first", "title: The Title ", "author:", "author:Second"})
	if h.Title != "The Title" {
		t.Errorf("Title = %q, want %q", h.Title, "The Title")
	}
	if h.Author != "" {
		t.Errorf("Author = %q, want empty", h.Author)
	}
	if h.Body != "first\nauthor:Second\n" {
		t.Errorf("Body = %q, want %q", h.Body, "first\nauthor:Second\n")
	}
}

func TestEscapeTokens(t *testing.T) {
	in := "x##y>>>>z"
	escaped := EscapeTokens(in)
	if escaped != `x\##y\>>>>z` {
		t.Errorf("EscapeTokens(%q) = %q, want %q", in, escaped, `x\##y\>>>>z`)
	}
	if got := Unescape(escaped); got != in {
		t.Errorf("Unescape(%q) = %q, want %q", escaped, got, in)
	}
	if got := Unescape(`a\\##`); got != `a\##` {
		t.Errorf("Unescape() = %q, want %q", got, `a\##`)
	}
}
