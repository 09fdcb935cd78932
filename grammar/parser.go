package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var toyParser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(ToyLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build toy-language parser: %w", err))
	}
	return p
}

// ParseFile reads and parses the toy-language source at path.
func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source, attributing positions to sourceName.
func ParseSource(sourceName string, source string) (*Program, error) {
	return toyParser.ParseString(sourceName, source)
}
