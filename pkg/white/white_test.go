package white_test

import (
	"testing"

	. "github.com/andrew-torda/geneconv/pkg/white"
)

// TestRemove
func TestRemove(t *testing.T) {
	ss := []string{
		"abcdefghijk",
		" a b c d e f g h i j k",
		"a b c de fgh ijk",
		"   abcdefghijk    ",
		"a   b      cdefghijk\n ",
		"a  b  c  d   e    f     ghijk",
		"a bcdefghij   k\r\n",
		"abcdefghij\nk",
	}
	for _, s := range ss {
		b := []byte(s)
		Remove(&b)
		if string(b) != "abcdefghijk" {
			t.Fatalf("white remove broke on \"%s\" got \"%s\"", s, b)
		}
	}
	var empty []byte
	Remove(&empty)
	if len(empty) != 0 {
		t.Fatal("empty slice grew")
	}
}
