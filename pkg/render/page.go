package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/showcase/pkg/vdom"
)

// DefaultClientScript is the path of the thin client served by pkg/server.
const DefaultClientScript = "/_showcase/client.js"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Path is the location the body was rendered for. The thin client
	// reads it from the mount element to resume the live channel.
	Path string

	// Styles contains inline CSS styles
	Styles []string

	// ClientScript is the path to the thin client JavaScript.
	// Defaults to DefaultClientScript. Set NoClient to omit it.
	ClientScript string
	NoClient     bool

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
// The body is wrapped in <div id="app">, the element the thin client swaps.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "<body>\n"+`<div id="app" data-path="%s">`, escapeAttr(page.Path)); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>\n</body>\n</html>\n"); err != nil {
		return err
	}
	return nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	if !page.NoClient {
		src := page.ClientScript
		if src == "" {
			src = DefaultClientScript
		}
		if _, err := fmt.Fprintf(w, `  <script src="%s" defer></script>`+"\n", escapeAttr(src)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}
