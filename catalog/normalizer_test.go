package catalog

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "두통, 치통", "두통, 치통"},
		{"tilde and deleted span", "1~2정씩 <del>과거정보</del>복용", "1\\~2정씩 복용"},
		{"strike-through span", "성인 <s>1회 3정</s>1회 2정", "성인 1회 2정"},
		{"span across lines", "앞<del>첫 줄\n둘째 줄</del>뒤", "앞뒤"},
		{"multiple spans", "a<del>x</del>b<del>y</del>c<s>z</s>d", "abcd"},
		{"spans are non-greedy", "<del>1</del>keep<del>2</del>", "keep"},
		{"tags unwrapped", "<p>두통</p><br/>발열", "두통발열"},
		{"only markup", "<del>전부 삭제</del><br>", ""},
		{"whitespace trimmed", "  \n 감기 \t", "감기"},
		{"unmatched open delete", "a <del>b", "a b"},
		{"stray angle bracket", "3 < 5 정", "3 < 5 정"},
		{"tilde inside deleted span", "<del>1~2</del>3~4", "3\\~4"},
		{"consecutive tildes", "~~", "\\~\\~"},
		{"already escaped", "1\\~2", "1\\~2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanRemovesDeletedContent(t *testing.T) {
	inputs := []string{
		"효능 <del>SECRET</del> 효과",
		"<s>SECRET</s>",
		"a<del>\nSECRET\n</del>b<s>SECRET</s>c",
		"<del><b>SECRET</b></del>남김",
	}

	for _, input := range inputs {
		if got := Clean(input); strings.Contains(got, "SECRET") {
			t.Errorf("Clean(%q) = %q still contains deleted content", input, got)
		}
	}
}

func TestCleanEscapesEveryTilde(t *testing.T) {
	inputs := []string{
		"~", "~a~", "1~2~3", "\\~~", "<b>~</b>", "a ~ b", "~~~",
	}

	for _, input := range inputs {
		got := Clean(input)
		for i, r := range got {
			if r == '~' && (i == 0 || got[i-1] != '\\') {
				t.Errorf("Clean(%q) = %q has an unescaped tilde at %d", input, got, i)
			}
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"1~2정씩 복용",
		"~~",
		"  앞뒤 공백  ",
		"1\\~2",
		"두통, 치통, 생리통",
		"",
	}

	for _, input := range inputs {
		once := Clean(input)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}
