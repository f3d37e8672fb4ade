// 1 Aug 2020

// Package white removes white space from byte slices. Sequence lines
// come to us with newlines, carriage returns and sometimes spaces.
package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// Remove acts on a byte slice, in place and removes all the white
// space. The length is adjusted, but the capacity is unchanged.
func Remove(sIn *[]byte) {
	s := *sIn
	n := 0
	for _, c := range s {
		if !asciiSpace[c] {
			s[n] = c
			n++
		}
	}
	*sIn = s[:n]
}

// IsWhite says whether c is a white space character.
func IsWhite(c byte) bool { return asciiSpace[c] }
