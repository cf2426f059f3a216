// Package trie compiles fixed word lists into compact regular expression
// alternations.
//
// The words are planted in a prefix trie and the trie is rendered back into a
// pattern, so that a list of N words becomes a pattern whose alternations
// branch only where the words actually differ. The output uses the .NET/PCRE
// dialect understood by github.com/dlclark/regexp2: atomic groups are written
// as (?>...).
package trie

import (
	"slices"
	"strings"
)

// node is a trie node. end marks that a word terminates here.
type node struct {
	children map[rune]*node
	end      bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// plant builds a trie out of words. Duplicate words are ignored.
func plant(words []string) *node {
	root := newNode()
	for _, word := range words {
		current := root
		for _, char := range word {
			child, ok := current.children[char]
			if !ok {
				child = newNode()
				current.children[char] = child
			}
			current = child
		}
		current.end = true
	}
	return root
}

// Pattern returns a regular expression that matches any of words.
// The result is deterministic for a given set of words, regardless of order.
// An empty list yields an empty pattern.
func Pattern(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return render(plant(words))
}

func render(n *node) string {
	if len(n.children) == 0 {
		return ""
	}
	optional := n.end

	// Group sibling characters by the subpattern that follows them.
	bySubpattern := make(map[string][]rune)
	for char, child := range n.children {
		sub := render(child)
		bySubpattern[sub] = append(bySubpattern[sub], char)
	}

	alts := make([]string, 0, len(bySubpattern))
	for sub, chars := range bySubpattern {
		if len(chars) == 1 {
			alts = append(alts, quote(chars[0])+sub)
			continue
		}
		slices.Sort(chars)
		alts = append(alts, classOf(chars)+sub)
	}

	if len(alts) == 1 {
		result := alts[0]
		if !optional {
			return result
		}
		if isSingleAtom(result) {
			return result + "?"
		}
		return "(?:" + result + ")?"
	}

	// Reverse order keeps longer alternatives sharing a first character ahead
	// of shorter ones, and makes the output stable.
	slices.Sort(alts)
	slices.Reverse(alts)
	result := "(?>" + strings.Join(alts, "|") + ")"
	if optional {
		result += "?"
	}
	return result
}

// isSingleAtom reports whether s is one literal or one character class.
func isSingleAtom(s string) bool {
	switch {
	case len([]rune(s)) == 1:
		return true
	case len(s) == 2 && s[0] == '\\':
		return true
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") && strings.Count(s, "]") == 1:
		return true
	default:
		return false
	}
}

const metaChars = `\.+*?()|[]{}^$#`

func quote(char rune) string {
	if strings.ContainsRune(metaChars, char) || char == ' ' {
		return `\` + string(char)
	}
	return string(char)
}

func classOf(chars []rune) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, char := range chars {
		if strings.ContainsRune(`\]^-[`, char) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(char)
	}
	sb.WriteByte(']')
	return sb.String()
}
