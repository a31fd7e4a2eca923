package translate

import (
	"bytes"
	stderrors "errors"
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/klang-lang/klang/internal/errors"
	"github.com/klang-lang/klang/internal/keywords"
)

func TestTranslate_Forward(t *testing.T) {
	tr := NewDefault(Forward)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"printf call", `printf("hello\n");`, `cha'("hello\n");`},
		{"line comment", "// printf test", "// printf test"},
		{"line comment ends at newline", "// printf test\nprintf();", "// printf test\ncha'();"},
		{"keyword inside identifier", "int internal; int differs;", "mI' internal; mI' differs;"},
		{"string body", `char *s = "if while";`, `QIch *s = "if while";`},
		{"char literal", "char c = 'x'; if (c) return;", "QIch c = 'x'; chugh (c) chegh;"},
		{"block comment", "/* int */ int", "/* int */ mI'"},
		{"escaped quotes", `"say \"if\"" if`, `"say \"if\"" chugh`},
		{"adjacent tokens", "sizeof(long)", "tIq(tIq)"},
		{"two keywords", "unsigned int", "HoSghaj mI'"},
		{"main", "main(void){return 0;}", "wa'DIch(pagh){chegh 0;}"},
		{"underscore joins identifier", "if_ _if if", "if_ _if chugh"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		got, err := tr.TranslateString(tt.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got=%q want=%q", tt.name, got, tt.want)
		}
	}
}

func TestTranslate_Reverse(t *testing.T) {
	tr := NewDefault(Reverse)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"printf call", `cha'("hello\n");`, `printf("hello\n");`},
		{"mid-identifier apostrophe", "x'y", "x_y"},
		{"char literal after keyword", "mI' x = 'a';", "int x = 'a';"},
		{"trailing apostrophe keyword", "qaSpa' {", "else {"},
		{"leading char literal", "'a'", "'a'"},
		{"line comment", "// cha' test", "// cha' test"},
		{"apostrophe in string", `"Qapla'!"`, `"Qapla'!"`},
		{"trailing apostrophe at end of input", "foo'", "foo'"},
		{"trailing apostrophe before punctuation", "val';", "val_;"},
		{"double apostrophe", "x''", "x''"},
		{"keywords in parens", "tIq(mI')", "sizeof(int)"},
		{"longer token sharing a prefix", "mI'ghach", "signed"},
		{"duplicate token resolves to first", "tIq", "sizeof"},
		{"block comment", "/* mI' */ mI'", "/* mI' */ int"},
	}

	for _, tt := range tests {
		got, err := tr.TranslateString(tt.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got=%q want=%q", tt.name, got, tt.want)
		}
	}
}

// An identifier immediately followed by a char literal is read as an
// identifier apostrophe, then the closing quote is taken as a trailing one.
func TestTranslate_ReverseAmbiguousCharLiteral(t *testing.T) {
	got, err := NewDefault(Reverse).TranslateString("f'x'")
	if err != nil {
		t.Fatal(err)
	}
	if got != "f_x'" {
		t.Fatalf("got=%q want=%q", got, "f_x'")
	}
}

// A comment opener inside the other kind of comment opens it too; each
// kind closes only on its own terminator. Quotes inside comments are text.
func TestTranslate_CommentDelimitersInsideComments(t *testing.T) {
	tr := NewDefault(Forward)
	tests := []struct {
		input string
		want  string
		state ScanState
	}{
		{"/* http://x */ int y;", "/* http://x */ int y;", StateLineComment},
		{"/* // x */ int\nint", "/* // x */ int\nmI'", StateNormal},
		{"// see /* x\nint y;", "// see /* x\nint y;", StateBlockComment},
		{"// see /* x\nint y; */ int", "// see /* x\nint y; */ mI'", StateNormal},
		{"/* a // b */ c", "/* a // b */ c", StateLineComment},
		{"// a /* b", "// a /* b", StateBlockLineComment},
		{"/* \"if */ if", "/* \"if */ chugh", StateNormal},
		{"/* 'if */ if", "/* 'if */ chugh", StateNormal},
	}
	for i, tt := range tests {
		out, state, err := tr.TranslateWithState([]byte(tt.input))
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tt.want || state != tt.state {
			t.Fatalf("tests[%d] - got=(%q, %s) want=(%q, %s)", i, out, state, tt.want, tt.state)
		}
	}

	got, err := NewDefault(Reverse).TranslateString("/* // x */ mI'\nmI' y;")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/* // x */ mI'\nint y;"; got != want {
		t.Fatalf("reverse got=%q want=%q", got, want)
	}
}

func TestTranslateWithState_Unterminated(t *testing.T) {
	tr := NewDefault(Forward)
	tests := []struct {
		input string
		want  string
		state ScanState
	}{
		{`"if`, `"if`, StateString},
		{"'if", "'if", StateChar},
		{"/* if", "/* if", StateBlockComment},
		{"// if", "// if", StateLineComment},
		{"if", "chugh", StateNormal},
	}
	for i, tt := range tests {
		out, state, err := tr.TranslateWithState([]byte(tt.input))
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tt.want || state != tt.state {
			t.Fatalf("tests[%d] - got=(%q, %s) want=(%q, %s)", i, out, state, tt.want, tt.state)
		}
	}
	if !Unterminated(StateString) || !Unterminated(StateBlockLineComment) ||
		Unterminated(StateLineComment) || Unterminated(StateNormal) {
		t.Fatal("Unterminated classification wrong")
	}
}

func TestRoundTrip_SampleProgram(t *testing.T) {
	src, err := os.ReadFile("testdata/test_c2k.c")
	if err != nil {
		t.Fatal(err)
	}
	k, err := NewDefault(Forward).Translate(src)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(k, []byte("printf(")) {
		t.Fatal("forward output still contains printf")
	}
	if !bytes.Contains(k, []byte(`"Qapla'!"`)) {
		t.Fatal("string literal was altered")
	}
	back, err := NewDefault(Reverse).Translate(k)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, src) {
		t.Fatalf("round trip changed the program:\n%s", back)
	}
}

// The reverse pass is lossy: apostrophes in user identifiers become
// underscores and cannot be recovered, and tokens that share a K spelling
// collapse to the first C token.
func TestRoundTrip_Asymmetry(t *testing.T) {
	fwd, rev := NewDefault(Forward), NewDefault(Reverse)

	c, _ := rev.TranslateString("mI' wa'ghach = 0;")
	if c != "int wa_ghach = 0;" {
		t.Fatalf("reverse got=%q", c)
	}
	k, _ := fwd.TranslateString(c)
	if k != "mI' wa_ghach = 0;" {
		t.Fatalf("forward got=%q", k)
	}

	k, _ = fwd.TranslateString("long n;")
	c, _ = rev.TranslateString(k)
	if c != "sizeof n;" {
		t.Fatalf("long should come back as sizeof, got=%q", c)
	}
}

func randomProgram(rng *rand.Rand, pool []string, n int) string {
	seps := []string{" ", "(", ")", ";", "\n", "*", ", ", "{", "}"}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(pool[rng.Intn(len(pool))])
		sb.WriteString(seps[rng.Intn(len(seps))])
	}
	return sb.String()
}

func identifiers(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r > 0x7f || !IsIdentifierChar(byte(r))
	})
}

func TestTranslate_NoEligibleTokenSurvives(t *testing.T) {
	d := keywords.Default()
	rng := rand.New(rand.NewSource(7))

	for _, dir := range []Direction{Forward, Reverse} {
		table := d.Forward()
		if dir == Reverse {
			table = d.Reverse()
		}
		sources := make(map[string]bool, len(table))
		pool := []string{"x", "internal", "differs", "n_1", "buf", "42"}
		for _, e := range table {
			sources[e.Source] = true
			pool = append(pool, e.Source)
		}

		tr, err := New(table, dir, Options{})
		if err != nil {
			t.Fatal(err)
		}
		for round := 0; round < 50; round++ {
			in := randomProgram(rng, pool, 200)
			out, err := tr.TranslateString(in)
			if err != nil {
				t.Fatal(err)
			}
			for _, word := range identifiers(out) {
				if sources[word] {
					t.Fatalf("%s: token %q survived in %q", dir, word, out)
				}
			}
		}
	}
}

func TestTranslate_GrowthPreservesOutput(t *testing.T) {
	in := strings.Repeat("sprintf ", 5000)
	want := strings.Repeat("cha'tlhegh ", 5000)

	tr, err := New(keywords.Default().Forward(), Forward, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := tr.TranslateString(in)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("output corrupted after growth: len got=%d want=%d", len(got), len(want))
	}
}

func TestTranslate_OutputLimit(t *testing.T) {
	tr, err := New(keywords.Default().Forward(), Forward, Options{MaxOutput: 10})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.TranslateString("int if"); err != nil {
		t.Fatalf("small output should fit: %v", err)
	}
	out, err := tr.Translate([]byte("sprintf sprintf"))
	if !stderrors.Is(err, errors.ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if out != nil {
		t.Fatalf("no partial result expected, got %q", out)
	}

	if _, err := New(keywords.Default().Forward(), Forward, Options{MaxOutput: -1}); err == nil {
		t.Fatal("negative limit should be rejected")
	}
}

func TestNew_RejectsEmptyToken(t *testing.T) {
	_, err := New(keywords.Table{{Source: "", Mapped: "x"}}, Forward, Options{})
	if !stderrors.Is(err, errors.ErrDictionary) {
		t.Fatalf("expected ErrDictionary, got %v", err)
	}
}

func TestTranslate_CustomTable(t *testing.T) {
	table := keywords.Table{
		{Source: "begin", Mapped: "{"},
		{Source: "end", Mapped: "}"},
	}
	tr, err := New(table, Forward, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := tr.TranslateString(`begin "end" ending end`)
	if got != `{ "end" ending }` {
		t.Fatalf("got=%q", got)
	}
}

func TestTranslate_Concurrent(t *testing.T) {
	tr := NewDefault(Forward)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := tr.TranslateString("int main(void) { return 0; }")
				if err != nil || got != "mI' wa'DIch(pagh) { chegh 0; }" {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent translation got=%q", got)
	}
}

func TestDirection_String(t *testing.T) {
	if Forward.String() != "forward" || Reverse.String() != "reverse" {
		t.Fatalf("String() = %q, %q", Forward.String(), Reverse.String())
	}
	if Direction(9).String() != "Direction(9)" {
		t.Fatalf("String()=%q", Direction(9).String())
	}
}
