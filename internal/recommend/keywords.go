package recommend

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	meatKeywords = []string{
		"chicken", "beef", "fish", "salmon", "pepperoni", "meat", "bacon",
		"ham", "pork", "mutton", "prawn", "shrimp",
	}
	dairyKeywords = []string{
		"cheese", "milk", "yogurt", "cream", "butter", "carbonara", "egg",
		"custard", "donut", "cake", "paneer", "ghee",
	}
	lowGIKeywords = []string{"quinoa", "oats", "lentils", "broccoli", "almonds"}

	// wordStartKeywords only match at the start of a word: "Veggie" is not
	// "egg" and "Chamomile" is not "ham".
	wordStartKeywords = map[string]bool{"egg": true, "ham": true}

	// plantBased names are removed before diet matching.
	plantBased = []string{
		"eggplant", "peanut butter", "almond butter", "cocoa butter", "butternut",
		"coconut milk", "almond milk", "soy milk", "oat milk", "coconut cream",
	}
)

// dietKeyword returns the first keyword found in name. Keywords match as
// substrings so compound names such as "Meatball" or "Cheeseburger" are caught.
func dietKeyword(name string, keywords []string) (string, bool) {
	n := strings.ToLower(name)
	for _, p := range plantBased {
		n = strings.ReplaceAll(n, p, " ")
	}
	for _, k := range keywords {
		if wordStartKeywords[k] {
			if containsAtWordStart(n, k) {
				return k, true
			}
			continue
		}
		if strings.Contains(n, k) {
			return k, true
		}
	}
	return "", false
}

func containsAtWordStart(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			return false
		}
		at := i + j
		if prev, _ := utf8.DecodeLastRuneInString(s[:at]); at == 0 || !unicode.IsLetter(prev) {
			return true
		}
		i = at + 1
	}
	return false
}

func containsAny(name string, keywords []string) bool {
	n := strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// allergenStem lowercases an allergy name and strips one trailing "s".
func allergenStem(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) > 1 && strings.HasSuffix(n, "s") {
		return n[:len(n)-1]
	}
	return n
}
