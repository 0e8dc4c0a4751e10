package image

import (
	"context"
	"os/exec"
	"runtime"
)

// Viewer открывает файл системным просмотрщиком и не ждёт его закрытия.
type Viewer struct {
	enabled bool
	command func(path string) *exec.Cmd
}

func NewViewer(enabled bool) *Viewer {
	return &Viewer{enabled: enabled, command: viewerCommand}
}

func (v *Viewer) Open(_ context.Context, path string) error {
	if !v.enabled {
		return nil
	}
	cmd := v.command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Забираем процесс, чтобы не оставлять зомби
	go func() { _ = cmd.Wait() }()
	return nil
}

// Процесс просмотрщика не привязан к контексту команды.
func viewerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
