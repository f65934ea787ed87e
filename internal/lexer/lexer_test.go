package lexer

import (
	"testing"

	"github.com/cwbudde/xd/internal/xderrors"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lexer error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == ETX {
			return toks
		}
	}
}

func TestValueDeclarationTokenStream(t *testing.T) {
	toks := allTokens(t, "value x = 10")
	want := []TokenType{VALUE, IDENTIFIER, EQUAL, INT_CONST, ETX}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
	if toks[1].Literal != "x" {
		t.Errorf("identifier literal = %q, want x", toks[1].Literal)
	}
	if toks[3].IntVal != 10 {
		t.Errorf("int literal = %d, want 10", toks[3].IntVal)
	}

	// Positions: "value x = 10"
	//             123456789012
	wantPos := []Position{{1, 1}, {1, 7}, {1, 9}, {1, 11}, {1, 13}}
	for i, wp := range wantPos {
		if toks[i].Pos != wp {
			t.Errorf("token %d pos = %+v, want %+v", i, toks[i].Pos, wp)
		}
	}
}

func TestIdentifierLengthLimit(t *testing.T) {
	ok := make([]byte, maxIdentifierLength)
	for i := range ok {
		ok[i] = 'a'
	}
	l := New(string(ok))
	if _, err := l.NextToken(); err != nil {
		t.Fatalf("100-char identifier should lex: %v", err)
	}

	tooLong := make([]byte, maxIdentifierLength+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	l2 := New(string(tooLong))
	_, err := l2.NextToken()
	if err == nil || err.Kind != xderrors.KindIdentifierTooLong {
		t.Fatalf("101-char identifier should fail with IdentifierTooLong, got %v", err)
	}
}

func TestIntegerOverflow(t *testing.T) {
	l := New("9223372036854775807") // 2**63 - 1
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("max int64 literal should lex: %v", err)
	}
	if tok.IntVal != 9223372036854775807 {
		t.Fatalf("got %d", tok.IntVal)
	}

	l2 := New("92233720368547758070")
	_, err2 := l2.NextToken()
	if err2 == nil || err2.Kind != xderrors.KindIntegerOverflow {
		t.Fatalf("appending a digit should overflow, got %v", err2)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb"`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != STRING || tok.Literal != "a\nb" {
		t.Fatalf("got %q", tok.Literal)
	}
	if len(tok.Literal) != 3 {
		t.Fatalf("expected 3 characters including LF, got %d", len(tok.Literal))
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"foo`)
	_, err := l.NextToken()
	if err == nil || err.Kind != xderrors.KindUnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", err)
	}
}

func TestInvalidEscape(t *testing.T) {
	l := New(`"a\qb"`)
	_, err := l.NextToken()
	if err == nil || err.Kind != xderrors.KindInvalidEscape {
		t.Fatalf("expected InvalidEscape, got %v", err)
	}
}

func TestFloatLiteralEmptyFraction(t *testing.T) {
	l := New("3.")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != FLOAT_CONST || tok.FloatVal != 3.0 {
		t.Fatalf("got type=%v val=%v", tok.Type, tok.FloatVal)
	}
}

func TestNumberDotChainDisambiguation(t *testing.T) {
	// "42.toUpper()" must tokenize as INT_CONST DOT IDENTIFIER ( ), not as a
	// float literal "42." followed by a bare identifier — otherwise
	// "42.toUpper()" could never parse far enough to raise UnexpectedMethod.
	toks := allTokens(t, "42.toUpper()")
	want := []TokenType{INT_CONST, DOT, IDENTIFIER, LPAREN, RPAREN, ETX}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
	if toks[0].IntVal != 42 {
		t.Errorf("int literal = %d, want 42", toks[0].IntVal)
	}
}

func TestMalformedAndOr(t *testing.T) {
	l := New("&x")
	_, err := l.NextToken()
	if err == nil || err.Kind != xderrors.KindMalformedOperator {
		t.Fatalf("expected MalformedOperator for lone '&', got %v", err)
	}

	l2 := New("|x")
	_, err2 := l2.NextToken()
	if err2 == nil || err2.Kind != xderrors.KindMalformedOperator {
		t.Fatalf("expected MalformedOperator for lone '|', got %v", err2)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := allTokens(t, "# a comment\nvalue x")
	want := []TokenType{VALUE, IDENTIFIER, ETX}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		src  string
		want TokenType
	}{
		{"==", EQ}, {"!=", NOT_EQ}, {"<=", LESS_EQ}, {">=", GREATER_EQ},
		{"<", LESS}, {">", GREATER}, {"=", EQUAL}, {"!", NOT},
		{"&&", AND}, {"||", OR},
	}
	for _, c := range cases {
		l := New(c.src)
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.src, err)
		}
		if tok.Type != c.want {
			t.Errorf("%q: got %s, want %s", c.src, tok.Type, c.want)
		}
	}
}

func TestUnknownToken(t *testing.T) {
	l := New("@")
	_, err := l.NextToken()
	if err == nil || err.Kind != xderrors.KindUnknownToken {
		t.Fatalf("expected UnknownToken, got %v", err)
	}
}

func TestMultilinePositions(t *testing.T) {
	toks := allTokens(t, "value\nx")
	if toks[0].Pos != (Position{1, 1}) {
		t.Errorf("value at %+v", toks[0].Pos)
	}
	if toks[1].Pos != (Position{2, 1}) {
		t.Errorf("x at %+v, want line 2 col 1", toks[1].Pos)
	}
}
