package shell

import "testing"

func TestLookup(t *testing.T) {
	for _, test := range []struct {
		line             string
		expectedName     string
		expectedArgument string
	}{
		{"hello", "hello", ""},
		{"exit", "exit", ""},
		{"ls", "ls", ""},
		{"readf a.txt", "readf", "a.txt"},
		{"readf my file", "readf", "my file"},
		{"readf ", "readf", ""},
		{"readf  x", "readf", " x"},
		{"addf new.txt", "addf", "new.txt"},
		{"writef a.txt", "writef", "a.txt"},
		{"writef readf x", "writef", "readf x"},
	} {
		r, argument, ok := lookup(test.line)
		if !ok {
			t.Errorf("lookup(%q) found nothing, want %v", test.line, test.expectedName)
			continue
		}
		if r.name() != test.expectedName {
			t.Errorf("lookup(%q).name=%v, want %v", test.line, r.name(), test.expectedName)
		}
		if argument != test.expectedArgument {
			t.Errorf("lookup(%q).argument=%q, want %q", test.line, argument, test.expectedArgument)
		}
	}
}

func TestLookupNoMatch(t *testing.T) {
	for _, line := range []string{"", "foobar", "hello!", "exit 0", "ls -l", "readf", "readfx", "addf", "writef", "HELLO"} {
		if r, _, ok := lookup(line); ok {
			t.Errorf("lookup(%q)=%v, want no match", line, r.name())
		}
	}
}

func TestRulesDisjoint(t *testing.T) {
	for i, r := range rules {
		matches := 0
		for _, other := range rules {
			if _, ok := other.match(r.keyword + "x"); ok && r.prefix {
				matches++
			}
			if _, ok := other.match(r.keyword); ok && !r.prefix {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("rules[%v] (%q) matched by %v rules, want 1", i, r.keyword, matches)
		}
	}
}

func TestRuleOrder(t *testing.T) {
	expectedKeywords := []string{"hello", "exit", "ls", "readf ", "addf ", "writef "}
	if len(rules) != len(expectedKeywords) {
		t.Fatalf("len(rules)=%v, want %v", len(rules), len(expectedKeywords))
	}
	for i, r := range rules {
		if r.keyword != expectedKeywords[i] {
			t.Errorf("rules[%v].keyword=%q, want %q", i, r.keyword, expectedKeywords[i])
		}
		if r.prefix != (r.keyword[len(r.keyword)-1] == ' ') {
			t.Errorf("rules[%v].prefix=%v for keyword %q", i, r.prefix, r.keyword)
		}
	}
}
