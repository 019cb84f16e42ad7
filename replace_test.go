package regexp

import "testing"

func TestReplace(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		repl    Replacer
		want    string
	}{
		{"first", `\d`, "age: 26", Template("Z"), "age: Z6"},
		{"plus", `\d+`, "age: 26", Template("Z"), "age: Z"},
		{"groups", `(\S+)\s+(\S+)`, "w1 w2", Template("$2 $1"), "w2 w1"},
		{"double dollar", `(\S+)\s+(\S+)`, "w1 w2", Template("$2 $$1"), "w2 $1"},
		{"no expand", `(\S+)\s+(\S+)`, "w1 w2", NoExpand("$2 $1"), "$2 $1"},
		{"no match", `\d`, "no digits", Template("Z"), "no digits"},
		{"func", `([^,\s]+),\s+(\S+)`, "Springsteen, Bruce",
			ReplacerFunc(func(caps *Captures) string {
				return caps.At(2) + " " + caps.At(1)
			}), "Bruce Springsteen"},
		{"named", `(?P<last>[^,\s]+),\s+(?P<first>\S+)`, "Springsteen, Bruce",
			Template("$first $last"), "Bruce Springsteen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.Replace(tt.text, tt.repl); got != tt.want {
				t.Errorf("Replace = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		repl    Replacer
		want    string
	}{
		{"all digits", `\d`, "age: 26", Template("Z"), "age: ZZ"},
		{"delete", "[^01]+", "1078910", Template(""), "1010"},
		{"named pairs", `(?P<first>\S+)\s+(?P<last>\S+)(?P<space>\s*)`,
			"w1 w2 w3 w4", Template("$last $first$space"), "w2 w1 w4 w3"},
		{"trim", "^[ \t]+|[ \t]+$", " \t  trim me\t   \t", Template(""), "trim me"},
		{"empty matches", "a*", "bb", Template("X"), "XbXbX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.ReplaceAll(tt.text, tt.repl); got != tt.want {
				t.Errorf("ReplaceAll = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceN(t *testing.T) {
	re := MustCompile(`\d`)
	if got := re.ReplaceN("1 2 3", 2, Template("X")); got != "X X 3" {
		t.Errorf("ReplaceN(2) = %q, want %q", got, "X X 3")
	}
	if got := re.ReplaceN("1 2 3", 0, Template("X")); got != "1 2 3" {
		t.Errorf("ReplaceN(0) = %q, want unchanged", got)
	}
	if got := re.ReplaceN("1 2 3", -1, Template("X")); got != "X X X" {
		t.Errorf("ReplaceN(-1) = %q, want %q", got, "X X X")
	}
}

// TestReplaceAllIdentity: replacing every match with $0 reproduces the
// input.
func TestReplaceAllIdentity(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
	}{
		{`\d+`, "a1b22c333"},
		{`\w+`, "Hey! How are you?"},
		{"a*", "abaab"},
		{".", "日本語"},
	}
	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.ReplaceAll(tt.text, Template("$0")); got != tt.text {
			t.Errorf("ReplaceAll(%q, %q, $0) = %q, want input unchanged",
				tt.pattern, tt.text, got)
		}
	}
}

func TestReplaceDateFormat(t *testing.T) {
	re := MustCompile(`(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})`)
	got := re.ReplaceAll("2012-03-14, 2013-01-01 and 2014-07-05", Template("$m/$d/$y"))
	want := "03/14/2012, 01/01/2013 and 07/05/2014"
	if got != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestExpand(t *testing.T) {
	re := MustCompile(`(?P<a>\w)(\d)`)
	caps := re.Captures([]byte("x7"))
	if caps == nil {
		t.Fatal("no match")
	}
	tests := []struct {
		template string
		want     string
	}{
		{"$a$2", "x7"},
		{"$0", "x7"},
		{"$1-$2", "x-7"},
		{"$$1", "$1"},
		{"$unknown", ""},
		{"$9", ""},
		{"lone $ sign", "lone $ sign"},
		{"no refs", "no refs"},
	}
	for _, tt := range tests {
		if got := caps.Expand(tt.template); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}
