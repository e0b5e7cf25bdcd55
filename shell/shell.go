// Package shell is an ishell-based driver for an editing session, used
// for manual testing and scripted demos: it simulates the pointer events
// a host UI would deliver.
package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/export"
	"github.com/pagemark/pagemark/geom"
	"github.com/pagemark/pagemark/session"
	"github.com/pagemark/pagemark/util"
)

// Run starts the interactive shell over an open session and blocks until
// the user exits.
func Run(s *session.Session) {
	sh := ishell.New()
	sh.Println("pagemark - interactive annotation session")
	sh.Printf("document has %d page(s); active tool: %s\n", s.Document().PageCount(), s.ActiveTool())

	sh.AddCmd(&ishell.Cmd{
		Name: "tool",
		Help: "tool <freehand|rectangle|circle|line|highlighter|text|eraser|select>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: tool <name>")
				return
			}
			if err := s.SelectTool(c.Args[0]); err != nil {
				c.Println(err)
				return
			}
			c.Println("active tool:", s.ActiveTool())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "page",
		Help: "page <n> - switch the page pointer events apply to",
		Func: func(c *ishell.Context) {
			n, err := argInt(c.Args, 0)
			if err != nil {
				c.Println("usage: page <n>")
				return
			}
			if err := s.SetPage(n); err != nil {
				c.Println(err)
				return
			}
			c.Println("page:", s.Page())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "zoom",
		Help: "zoom <factor> - set the viewport zoom",
		Func: func(c *ishell.Context) {
			z, err := argFloat(c.Args, 0)
			if err != nil || z <= 0 {
				c.Println("usage: zoom <factor>")
				return
			}
			s.SetZoom(z)
			c.Printf("zoom: %.2f\n", s.Zoom())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "drag",
		Help: "drag <x1> <y1> <x2> <y2> - run a down/move/up cycle with the active tool",
		Func: func(c *ishell.Context) {
			pts, err := argFloats(c.Args, 4)
			if err != nil {
				c.Println("usage: drag <x1> <y1> <x2> <y2>")
				return
			}
			start := geom.Point{X: pts[0], Y: pts[1]}
			end := geom.Point{X: pts[2], Y: pts[3]}
			s.MouseDown(start)
			s.MouseMove(geom.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2})
			s.MouseMove(end)
			s.MouseUp(end)
			c.Printf("%d annotation(s) on page %d\n", len(s.Annotations(s.Page())), s.Page())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "click",
		Help: "click <x> <y> - single click with the active tool",
		Func: func(c *ishell.Context) {
			pts, err := argFloats(c.Args, 2)
			if err != nil {
				c.Println("usage: click <x> <y>")
				return
			}
			s.Click(geom.Point{X: pts[0], Y: pts[1]})
			c.Printf("%d annotation(s) on page %d\n", len(s.Annotations(s.Page())), s.Page())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "text",
		Help: "text <x> <y> <content...> - place a text annotation",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Println("usage: text <x> <y> <content...>")
				return
			}
			pts, err := argFloats(c.Args[:2], 2)
			if err != nil {
				c.Println("usage: text <x> <y> <content...>")
				return
			}
			prev := s.ActiveTool()
			if err := s.SelectTool("text"); err != nil {
				c.Println(err)
				return
			}
			s.SetTextInput(strings.Join(c.Args[2:], " "))
			s.Click(geom.Point{X: pts[0], Y: pts[1]})
			_ = s.SelectTool(prev)
			c.Printf("%d annotation(s) on page %d\n", len(s.Annotations(s.Page())), s.Page())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "list",
		Help: "list [page] - list annotations",
		Func: func(c *ishell.Context) {
			page := s.Page()
			if n, err := argInt(c.Args, 0); err == nil {
				page = n
			}
			anns := s.Annotations(page)
			if len(anns) == 0 {
				c.Printf("page %d: no annotations\n", page)
				return
			}
			for i, a := range anns {
				c.Println(describe(i, a))
			}
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "undo",
		Help: "undo the last committed edit",
		Func: func(c *ishell.Context) {
			if !s.Undo() {
				c.Println("nothing to undo")
				return
			}
			c.Printf("undone; %d annotation(s) remain\n", s.AnnotationCount())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "redo",
		Help: "redo the last undone edit",
		Func: func(c *ishell.Context) {
			if !s.Redo() {
				c.Println("nothing to redo")
				return
			}
			c.Printf("redone; %d annotation(s) live\n", s.AnnotationCount())
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "clear",
		Help: "clear [page] - remove all annotations on a page",
		Func: func(c *ishell.Context) {
			page := s.Page()
			if n, err := argInt(c.Args, 0); err == nil {
				page = n
			}
			c.Printf("removed %d annotation(s) from page %d\n", s.ClearPage(page), page)
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "probe",
		Help: "probe <x> <y> - show the typography under a point",
		Func: func(c *ishell.Context) {
			pts, err := argFloats(c.Args, 2)
			if err != nil {
				c.Println("usage: probe <x> <y>")
				return
			}
			rs, ok := s.Index().StyleAt(s.Page(), geom.Point{X: pts[0], Y: pts[1]})
			if !ok {
				c.Println("no text run at that point (or layout not analyzed yet)")
				return
			}
			c.Printf("%s %.0fpt bold=%v italic=%v\n", rs.Family, rs.Size, rs.Bold, rs.Italic)
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "warm",
		Help: "warm - analyze the document's text layout for the probe",
		Func: func(c *ishell.Context) {
			if err := s.WarmLayout(context.Background()); err != nil {
				c.Println(err)
				return
			}
			c.Println("layout cache warmed")
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "export",
		Help: "export <out.pdf> [thumb.jpg] - write the annotated document",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Println("usage: export <out.pdf> [thumb.jpg]")
				return
			}
			out := util.EnsurePdfExt(c.Args[0])
			var opts export.Options
			if len(c.Args) > 1 {
				opts.ThumbnailPath = c.Args[1]
			}
			if err := s.Export(out, opts); err != nil {
				c.Println("export failed:", err)
				return
			}
			c.Println("exported", out)
		},
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "style",
		Help: "style [color <#hex>] [width <pt>] [font <family> <size>] [bold|italic on|off]",
		Func: func(c *ishell.Context) {
			st := s.Style()
			if len(c.Args) == 0 {
				c.Printf("color=%s width=%.1f font=%s %.0fpt bold=%v italic=%v\n",
					st.Color, st.StrokeWidth, st.FontFamily, st.FontSize, st.Bold, st.Italic)
				return
			}
			if err := applyStyleArgs(&st, c.Args); err != nil {
				c.Println(err)
				return
			}
			s.SetStyle(st)
			c.Println("style updated")
		},
	})

	sh.Run()
}

func describe(i int, a *annotation.Annotation) string {
	b := a.Bounds()
	desc := fmt.Sprintf("%2d %-11s (%.1f,%.1f) %.1fx%.1f", i, a.Type, b.X, b.Y, b.W, b.H)
	if a.Type == annotation.TypeText {
		desc += fmt.Sprintf(" %q %s %.0fpt", a.Text, a.Style.FontFamily, a.Style.FontSize)
	}
	return desc
}

func applyStyleArgs(st *annotation.Style, args []string) error {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "color":
			if i+1 >= len(args) {
				return fmt.Errorf("color needs a value")
			}
			i++
			st.Color = args[i]
		case "width":
			if i+1 >= len(args) {
				return fmt.Errorf("width needs a value")
			}
			i++
			w, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return fmt.Errorf("bad width %q", args[i])
			}
			st.StrokeWidth = w
		case "font":
			if i+2 >= len(args) {
				return fmt.Errorf("font needs a family and size")
			}
			st.FontFamily = args[i+1]
			sz, err := strconv.ParseFloat(args[i+2], 64)
			if err != nil {
				return fmt.Errorf("bad font size %q", args[i+2])
			}
			st.FontSize = sz
			i += 2
		case "bold", "italic":
			if i+1 >= len(args) {
				return fmt.Errorf("%s needs on|off", args[i])
			}
			on := args[i+1] == "on"
			if args[i] == "bold" {
				st.Bold = on
			} else {
				st.Italic = on
			}
			i++
		default:
			return fmt.Errorf("unknown style field %q", args[i])
		}
	}
	return nil
}

func argInt(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(args[i])
}

func argFloat(args []string, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.ParseFloat(args[i], 64)
}

func argFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d numbers", n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", args[i])
		}
		out[i] = f
	}
	return out, nil
}
