package console

import (
	"OpenAIConsole/internal/ai"
	"OpenAIConsole/internal/command"
	"OpenAIConsole/internal/service/image"
	"OpenAIConsole/internal/service/quiz"
	"OpenAIConsole/internal/service/tts"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

const maxLineBytes = 1 << 20

// errInputClosed оборачивает ошибку чтения: ввод закончился, спрашивать больше нечего.
var errInputClosed = errors.New("input closed")

var (
	replyPrefix = color.New(color.FgGreen, color.Bold)
	errorPrefix = color.New(color.FgRed, color.Bold)
	infoText    = color.New(color.FgCyan)
)

type ImageCreator interface {
	Create(ctx context.Context, prompt string) ([]image.SavedImage, error)
}

type QuizMaker interface {
	Generate(ctx context.Context, text string) (*quiz.Quiz, error)
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Notifier interface {
	PlayReply(ctx context.Context) error
}

// Deps — всё, что нужно консоли. Nil-зависимость означает, что команда недоступна.
type Deps struct {
	Chat     ai.Chatter
	Images   ImageCreator
	Quiz     QuizMaker
	Speaker  Speaker
	Notifier Notifier
}

// Console — интерактивный цикл: прочитать команду, выполнить, напечатать результат.
type Console struct {
	deps    Deps
	timeout time.Duration
	logger  *zap.SugaredLogger
	out     io.Writer

	lines     chan string
	readErr   chan error
	done      chan struct{} // закрывается, когда Run завершён
	stopped   chan struct{} // закрывается, когда горутина чтения вышла
	inputErr  error // запоминается после конца ввода
	lastReply string
}

func New(deps Deps, timeout time.Duration, in io.Reader, out io.Writer, logger *zap.SugaredLogger) *Console {
	c := &Console{
		deps:    deps,
		timeout: timeout,
		logger:  logger,
		out:     out,
		lines:   make(chan string),
		readErr: make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go c.scan(in)
	return c
}

// scan читает ввод в отдельной горутине, чтобы ожидание строки можно было прервать контекстом.
func (c *Console) scan(in io.Reader) {
	defer close(c.stopped)
	defer close(c.lines)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		select {
		case c.lines <- sc.Text():
		case <-c.done:
			return
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	c.readErr <- err
}

// ask печатает вопрос и ждёт строку ответа.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	if c.inputErr != nil {
		return "", fmt.Errorf("%w: %w", errInputClosed, c.inputErr)
	}
	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", context.Cause(ctx)
	case line, ok := <-c.lines:
		if !ok {
			if c.inputErr == nil {
				c.inputErr = <-c.readErr
			}
			return "", fmt.Errorf("%w: %w", errInputClosed, c.inputErr)
		}
		return line, nil
	}
}

// Run печатает справку и обрабатывает команды до q, конца ввода или отмены контекста.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, command.HelpText())
	defer fmt.Fprintln(c.out, "Goodbye!")
	defer close(c.done)

	for {
		line, err := c.ask(ctx, "What do you want to do? ")
		if err != nil {
			fmt.Fprintln(c.out)
			return c.stopErr(ctx, err)
		}

		cmd := command.Parse(line)
		if cmd.Name == command.Quit {
			return nil
		}
		if err := c.dispatch(ctx, cmd); err != nil {
			// Ошибки запросов (в том числе обрыв соединения с io.EOF внутри)
			// печатаются, выходим только по концу ввода или отмене
			if errors.Is(err, errInputClosed) || ctx.Err() != nil {
				fmt.Fprintln(c.out)
				return c.stopErr(ctx, err)
			}
			c.logger.Errorw("Command failed", "command", string(cmd.Name), "error", err)
			errorPrefix.Fprint(c.out, "Error: ")
			fmt.Fprintln(c.out, err)
		}
	}
}

// stopErr: конец ввода и отмена контекста — штатный выход, ошибка сканера — нет.
func (c *Console) stopErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(c.inputErr, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) dispatch(ctx context.Context, cmd command.Command) error {
	switch cmd.Name {
	case command.Help:
		fmt.Fprintln(c.out, command.HelpText())
		return nil
	case command.Chat:
		return c.chat(ctx, cmd.Arg)
	case command.Image:
		return c.image(ctx, cmd.Arg)
	case command.Quiz:
		return c.quiz(ctx, cmd.Arg)
	case command.Speak:
		return c.speak(ctx)
	case command.Reset:
		return c.reset()
	default:
		fmt.Fprintln(c.out, "Unknown command. Type h for help.")
		return nil
	}
}

// argOrAsk возвращает аргумент команды, а если его нет — спрашивает пользователя.
func (c *Console) argOrAsk(ctx context.Context, arg string, prompt string) (string, error) {
	if arg = strings.TrimSpace(arg); arg != "" {
		return arg, nil
	}
	line, err := c.ask(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, c.timeout, errors.New("request timeout"))
}

func (c *Console) chat(ctx context.Context, arg string) error {
	if c.deps.Chat == nil {
		return errors.New("chat is not configured")
	}
	text, err := c.argOrAsk(ctx, arg, "What do you want to say? ")
	if err != nil || text == "" {
		return err
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	start := time.Now()
	reply, err := c.deps.Chat.Send(reqCtx, text)
	if err != nil {
		return err
	}
	c.logger.Debugw("Chat reply received", "duration", time.Since(start).String())

	c.lastReply = reply
	replyPrefix.Fprint(c.out, "OpenAI: ")
	fmt.Fprintln(c.out, reply)
	c.notify(ctx)
	return nil
}

func (c *Console) image(ctx context.Context, arg string) error {
	if c.deps.Images == nil {
		return errors.New("image generation is not configured")
	}
	prompt, err := c.argOrAsk(ctx, arg, "What do you want to see? ")
	if err != nil || prompt == "" {
		return err
	}

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	infoText.Fprintln(c.out, "Generating...")
	saved, err := c.deps.Images.Create(reqCtx, prompt)
	if err != nil {
		return err
	}
	for _, img := range saved {
		fmt.Fprintf(c.out, "Image saved to %s (%dx%d)\n", img.Path, img.Width, img.Height)
	}
	c.notify(ctx)
	return nil
}

func (c *Console) quiz(ctx context.Context, arg string) error {
	if c.deps.Quiz == nil {
		return errors.New("quiz is not configured")
	}
	text := strings.TrimSpace(arg)
	if text == "" {
		var err error
		if text, err = c.askText(ctx); err != nil || text == "" {
			return err
		}
	}

	reqCtx, cancel := c.withTimeout(ctx)
	infoText.Fprintln(c.out, "Preparing the quiz...")
	q, err := c.deps.Quiz.Generate(reqCtx, text)
	cancel()
	if err != nil {
		return err
	}
	c.notify(ctx)

	if q.Title != "" {
		infoText.Fprintln(c.out, q.Title)
	}
	answers := make([]int, 0, len(q.Questions))
	for i, question := range q.Questions {
		fmt.Fprintf(c.out, "\n%d. %s\n", i+1, question.Text)
		for j, opt := range question.Options {
			fmt.Fprintf(c.out, "   %s) %s\n", quiz.OptionLabel(j), opt)
		}
		answer, err := c.askAnswer(ctx, len(question.Options))
		if err != nil {
			return err
		}
		answers = append(answers, answer)
		if answer == question.Answer {
			fmt.Fprintln(c.out, "Correct!")
		} else {
			fmt.Fprintf(c.out, "Wrong, the answer is %s) %s\n", quiz.OptionLabel(question.Answer), question.Options[question.Answer])
		}
	}

	res := q.Grade(answers)
	fmt.Fprintf(c.out, "\nScore: %d/%d\n", res.Correct, res.Total)
	return nil
}

// askText читает текст для викторины до пустой строки.
func (c *Console) askText(ctx context.Context) (string, error) {
	prompt := "Paste the text for the quiz (finish with an empty line):\n"
	var parts []string
	for {
		line, err := c.ask(ctx, prompt)
		if err != nil {
			// Конец ввода завершает текст, если что-то уже набрано
			if errors.Is(err, errInputClosed) && len(parts) > 0 {
				break
			}
			return "", err
		}
		prompt = ""
		if strings.TrimSpace(line) == "" {
			break
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// askAnswer повторяет вопрос, пока не получит допустимый вариант.
func (c *Console) askAnswer(ctx context.Context, options int) (int, error) {
	last := quiz.OptionLabel(options - 1)
	for {
		line, err := c.ask(ctx, "Your answer: ")
		if err != nil {
			return 0, err
		}
		if idx, ok := quiz.ParseAnswer(line, options); ok {
			return idx, nil
		}
		fmt.Fprintf(c.out, "Please answer with a letter a-%s or a number 1-%d.\n", last, options)
	}
}

func (c *Console) speak(ctx context.Context) error {
	if c.lastReply == "" {
		fmt.Fprintln(c.out, "Nothing to speak yet.")
		return nil
	}
	if c.deps.Speaker == nil {
		return tts.ErrDisabled
	}
	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.deps.Speaker.Speak(reqCtx, c.lastReply)
}

func (c *Console) reset() error {
	if c.deps.Chat != nil {
		c.deps.Chat.Reset()
	}
	c.lastReply = ""
	fmt.Fprintln(c.out, "Chat history cleared.")
	return nil
}

func (c *Console) notify(ctx context.Context) {
	if c.deps.Notifier == nil {
		return
	}
	if err := c.deps.Notifier.PlayReply(ctx); err != nil {
		c.logger.Debugw("Notification sound skipped", "error", err)
	}
}
