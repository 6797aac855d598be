package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/filex"
)

// loadCandidate reads a file from disk and derives its MIME type from the
// extension, the same way the server does when the upload carries no type.
func loadCandidate(path string) (name, mimeType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, err
	}
	name = filex.SafeBaseName(path)
	return name, common.MIMEFromFilename(name), data, nil
}

// Pick selects a resume through the "file picker": a path typed at the prompt
// or given as an argument.
func (a *App) Pick(ctx context.Context, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		path, err = GetSimpleText(a.reader, "Enter file path", os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
	}

	name, mimeType, data, err := loadCandidate(path)
	if err != nil {
		log.Printf("Could not read file: %s", err.Error())
		return
	}
	if err := a.controller.Pick(name, mimeType, data); err != nil {
		a.reportAcquireError(err)
		return
	}
	fmt.Printf("Selected %s (%s, %d bytes)\n", name, mimeType, len(data))
}

// Drop selects a resume via the drag-and-drop source. Terminals have no drop
// target, so the dropped path is read the same way as a picked one; it still
// flows through the controller's drop input.
func (a *App) Drop(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: drop <path>")
		return
	}

	name, mimeType, data, err := loadCandidate(args[0])
	if err != nil {
		log.Printf("Could not read file: %s", err.Error())
		return
	}
	if err := a.controller.Drop(name, mimeType, data); err != nil {
		a.reportAcquireError(err)
		return
	}
	fmt.Printf("Selected %s (%s, %d bytes)\n", name, mimeType, len(data))
}

func (a *App) OpenCamera(ctx context.Context) {
	if err := a.controller.OpenCamera(ctx); err != nil {
		log.Printf("Camera unavailable: %s", err.Error())
		return
	}
	fmt.Println("Camera open. Type 'capture' to take a snapshot or 'closecam' to cancel.")
}

func (a *App) Capture(ctx context.Context) {
	if err := a.controller.Capture(ctx); err != nil {
		a.reportAcquireError(err)
		return
	}
	file, err := a.controller.Selected()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	fmt.Printf("Captured %s (%d bytes)\n", file.Name, len(file.Data))
}

func (a *App) CloseCamera(ctx context.Context) {
	a.controller.CloseCamera()
	fmt.Println("Camera closed")
}

func (a *App) ClearSelection(ctx context.Context) {
	a.controller.Clear()
	fmt.Println("Selection cleared")
}

func (a *App) Status(ctx context.Context) {
	fmt.Printf("State: %s\n", a.controller.State())
	if file, err := a.controller.Selected(); err == nil {
		fmt.Printf("Selected: %s (%s, %d bytes)\n", file.Name, file.MimeType, len(file.Data))
	}
}

func (a *App) reportAcquireError(err error) {
	switch {
	case errors.Is(err, common.ErrUnsupportedFileType):
		log.Printf("Unsupported file type. Allowed: pdf, docx, doc, txt, jpg, png. Selection cleared.")
	case errors.Is(err, common.ErrMediaAccess):
		log.Printf("Camera access denied or unavailable")
	default:
		log.Printf("error: %v", err)
	}
}
