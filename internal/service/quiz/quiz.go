package quiz

import (
	"OpenAIConsole/internal/ai"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrEmptyText   = errors.New("empty quiz text")
	ErrNoQuestions = errors.New("no valid questions in quiz")
)

const instructionsTemplate = `You write multiple-choice quizzes.
Use only facts stated in the text provided by the user.
Write %d questions, each with exactly 4 options and exactly one correct option.
Reply with JSON only, no Markdown, in this shape:
{"title": "<short title>", "questions": [{"question": "<text>", "options": ["<a>", "<b>", "<c>", "<d>"], "answer": <0-based index of the correct option>}]}`

type Question struct {
	Text    string
	Options []string
	Answer  int // индекс правильного варианта, с нуля
}

type Quiz struct {
	Title     string
	Questions []Question
}

type Result struct {
	Correct int
	Total   int
}

// Generator строит викторину по тексту пользователя.
type Generator struct {
	client    ai.Requester
	questions int
}

func NewGenerator(client ai.Requester, questions int) *Generator {
	return &Generator{client: client, questions: max(1, questions)}
}

func (g *Generator) Generate(ctx context.Context, text string) (*Quiz, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	raw, err := g.client.SendRequest(ctx, fmt.Sprintf(instructionsTemplate, g.questions), text)
	if err != nil {
		return nil, err
	}
	q, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	// Модель иногда пишет больше, чем просили
	if len(q.Questions) > g.questions {
		q.Questions = q.Questions[:g.questions]
	}
	return q, nil
}

// Parse разбирает ответ модели. Терпит Markdown-ограждения и текст вокруг JSON.
// Вопросы без вариантов или с неверным индексом ответа отбрасываются.
func Parse(raw string) (*Quiz, error) {
	body := extractObject(raw)
	if body == "" || !gjson.Valid(body) {
		return nil, fmt.Errorf("quiz: response is not a JSON object: %.80q", strings.TrimSpace(raw))
	}

	res := gjson.Parse(body)
	q := &Quiz{Title: strings.TrimSpace(res.Get("title").String())}
	res.Get("questions").ForEach(func(_, item gjson.Result) bool {
		text := strings.TrimSpace(item.Get("question").String())
		var options []string
		item.Get("options").ForEach(func(_, o gjson.Result) bool {
			if s := strings.TrimSpace(o.String()); s != "" {
				options = append(options, s)
			}
			return true
		})
		answer := item.Get("answer")
		if text == "" || len(options) < 2 || answer.Type != gjson.Number || answer.Num != math.Trunc(answer.Num) {
			return true
		}
		idx := int(answer.Int())
		if idx < 0 || idx >= len(options) {
			return true
		}
		q.Questions = append(q.Questions, Question{Text: text, Options: options, Answer: idx})
		return true
	})
	if len(q.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return q, nil
}

// extractObject вырезает самый внешний JSON-объект из ответа.
func extractObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return ""
	}
	return raw[start : end+1]
}

// Grade считает правильные ответы. Отсутствующие ответы считаются неверными.
func (q *Quiz) Grade(answers []int) Result {
	r := Result{Total: len(q.Questions)}
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.Answer {
			r.Correct++
		}
	}
	return r
}

// OptionLabel буква варианта: 0 -> a.
func OptionLabel(i int) string {
	return string(rune('a' + i))
}

// ParseAnswer принимает букву варианта или номер с единицы.
func ParseAnswer(input string, options int) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= options {
			return n - 1, true
		}
		return 0, false
	}
	if len(s) == 1 && s[0] >= 'a' && int(s[0]-'a') < options {
		return int(s[0] - 'a'), true
	}
	return 0, false
}
