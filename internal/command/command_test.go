package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{}},
		{"   ", Command{}},
		{"h", Command{Name: Help}},
		{"  Q  ", Command{Name: Quit}},
		{"c hello there ", Command{Name: Chat, Arg: "hello there"}},
		{"I a red fox", Command{Name: Image, Arg: "a red fox"}},
		{"c\thello", Command{Name: Chat, Arg: "hello"}},
		{"quiz\t text ", Command{Name: Quiz, Arg: "text"}},
		{"chat why is the sky blue?", Command{Name: Chat, Arg: "why is the sky blue?"}},
		{"exit", Command{Name: Quit}},
		{"quiz", Command{Name: Quiz}},
		{"hello", Command{}},
		{"x", Command{Name: 'x'}},
		{"ж", Command{Name: 'ж'}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	help := HelpText()
	for _, r := range []rune{Help, Chat, Image, Quiz, Speak, Reset, Quit} {
		assert.Contains(t, help, string(r)+" - ")
	}
}
