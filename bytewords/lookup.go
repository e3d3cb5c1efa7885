package bytewords

import "fmt"

var (
	wordToIndex    map[string]byte
	minimalToIndex map[string]byte
)

func init() {
	wordToIndex = make(map[string]byte, len(words))
	minimalToIndex = make(map[string]byte, len(words))
	for i, w := range words {
		if len(w) != 4 {
			panic(fmt.Sprintf("bytewords: word %d (%q) is not 4 letters", i, w))
		}
		if _, dup := wordToIndex[w]; dup {
			panic(fmt.Sprintf("bytewords: duplicate word %q", w))
		}
		wordToIndex[w] = byte(i)
		m := string([]byte{w[0], w[3]})
		if _, dup := minimalToIndex[m]; dup {
			panic(fmt.Sprintf("bytewords: minimal code %q is not unique (word %q)", m, w))
		}
		minimalToIndex[m] = byte(i)
	}
}
