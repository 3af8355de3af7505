package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/yadavanujkumar/reagent"
)

// NewWordCounter creates a tool that counts whitespace-separated words.
func NewWordCounter() *reagent.ToolFunc {
	return reagent.NewToolFunc(
		"WordCounter",
		"Useful for counting the number of words in a text. Input should be "+
			"the text to count words in.",
		func(_ context.Context, input string) (string, error) {
			return fmt.Sprintf("The text contains %d words",
				len(strings.Fields(input))), nil
		},
	)
}

// NewTextReverser creates a tool that reverses its input rune by rune.
func NewTextReverser() *reagent.ToolFunc {
	return reagent.NewToolFunc(
		"TextReverser",
		"Useful for reversing a string. Input should be the text to reverse.",
		func(_ context.Context, input string) (string, error) {
			runes := []rune(input)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return "Reversed text: " + string(runes), nil
		},
	)
}
