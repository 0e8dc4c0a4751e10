package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Буквы команд консоли.
const (
	Help  = 'h'
	Chat  = 'c'
	Image = 'i'
	Quiz  = 'z'
	Speak = 's'
	Reset = 'r'
	Quit  = 'q'
)

// Полные имена, которые тоже принимаются вместо буквы.
var aliases = map[string]rune{
	"help":  Help,
	"chat":  Chat,
	"image": Image,
	"quiz":  Quiz,
	"speak": Speak,
	"reset": Reset,
	"quit":  Quit,
	"exit":  Quit,
}

// Command — разобранная строка ввода: буква команды и необязательный аргумент.
type Command struct {
	Name rune
	Arg  string
}

// Parse отделяет букву команды от аргумента. Никогда не падает:
// пустая строка даёт Name == 0, неизвестное слово тоже.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}
	}

	word, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, arg = line[:i], strings.TrimSpace(line[i:])
	}
	word = strings.ToLower(word)

	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return Command{Name: unicode.ToLower(r), Arg: arg}
	}
	if r, ok := aliases[word]; ok {
		return Command{Name: r, Arg: arg}
	}
	return Command{Arg: arg}
}

// HelpText — баннер со списком команд.
func HelpText() string {
	return `
Available commands:
h - print this
c - chat (c <text> to skip the question)
i - create an image (i <prompt>)
z - make a quiz from text (z <text>)
s - speak the last chat reply
r - reset the chat history
q - quit
`
}
