package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// Content is what a pane displays. Panes hand it the inner size of their box
// on every render.
type Content interface {
	View(width, height int) string
}

// textContent renders fixed text through a viewport so long bodies are
// clipped to the pane instead of spilling into neighbours.
type textContent struct {
	vp     viewport.Model
	source string
}

func newTextContent(text string) *textContent {
	vp := viewport.New(0, 0)
	vp.SetContent(text)
	return &textContent{vp: vp}
}

// setText replaces the body.
func (c *textContent) setText(text string) {
	c.vp.SetContent(text)
}

func (c *textContent) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	c.vp.Width = width
	c.vp.Height = height
	return c.vp.View()
}

// Close releases the content. The host calls it when the engine unmounts
// the pane; closed content no longer follows its compose file.
func (c *textContent) Close() error {
	c.source = ""
	c.vp.SetContent("")
	return nil
}

// composeContent shows a docker compose file. Read errors are rendered in
// place of the file body.
func composeContent(path string, read func(string) ([]byte, error)) (string, Content) {
	data, err := read(path)
	c := newTextContent(composeBody(path, data, err))
	c.source = path
	return composeTitle(path), c
}

func composeBody(path string, data []byte, err error) string {
	if err != nil {
		return fmt.Sprintf("unable to read %s:\n%v", path, err)
	}
	return strings.TrimRight(string(data), "\n")
}

// composeTitle names a compose project after the directory holding its file,
// falling back to the file name.
func composeTitle(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	if dir == "." || dir == string(filepath.Separator) || dir == "" {
		return filepath.Base(path)
	}
	return dir + "/" + filepath.Base(path)
}

func placeholderContent(n int) Content {
	return newTextContent(fmt.Sprintf("pane %d\n\nf2/f3 choose the split axis\nx closes the selected pane", n))
}

var readFile = os.ReadFile
