// Command rasterly renders a JSON node tree to a PNG image.
package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/render"
	"github.com/rasterly/rasterly/resources"
	"github.com/rasterly/rasterly/text"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type renderFlags struct {
	in       string
	out      string
	width    int
	height   int
	fontSize float32
	dpr      float32
	fonts    []string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rasterly",
		Short:         "Render styled node trees to images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newTasksCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a JSON node tree to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(f)
		},
	}
	cmd.Flags().StringVar(&f.in, "in", "", "input node tree (JSON file, - for stdin)")
	cmd.Flags().StringVar(&f.out, "out", "out.png", "output PNG file")
	cmd.Flags().IntVar(&f.width, "width", 1200, "viewport width in CSS pixels")
	cmd.Flags().IntVar(&f.height, "height", 630, "viewport height in CSS pixels")
	cmd.Flags().Float32Var(&f.fontSize, "font-size", rasterly.DefaultFontSize, "root font size")
	cmd.Flags().Float32Var(&f.dpr, "dpr", 1.0, "device pixel ratio")
	cmd.Flags().StringSliceVar(&f.fonts, "font", nil, "font file to register (repeatable; first is the fallback)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log render diagnostics")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newTasksCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the resource URLs a node tree references",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTree(in)
			if err != nil {
				return err
			}
			for _, url := range layout.CollectTasks(root) {
				fmt.Fprintln(cmd.OutOrStdout(), url)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input node tree (JSON file, - for stdin)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRender(f renderFlags) error {
	root, err := loadTree(f.in)
	if err != nil {
		return err
	}

	opts := []render.Option{}
	for _, path := range f.fonts {
		src, err := text.NewSourceFromFile(path)
		if err != nil {
			return fmt.Errorf("load font %s: %w", path, err)
		}
		opts = append(opts, render.WithFontSource(src))
	}
	if f.verbose {
		rasterly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	images, err := loadResources(root, resources.NewStore(0))
	if err != nil {
		return err
	}
	if len(images) > 0 {
		opts = append(opts, render.WithResources(images))
	}

	vp := rasterly.NewViewport(f.width, f.height).
		WithFontSize(f.fontSize).
		WithDevicePixelRatio(f.dpr)

	img, err := render.New(opts...).Render(root, vp)
	if err != nil {
		return err
	}
	return writePNG(f.out, img)
}

func loadTree(path string) (layout.Node, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return layout.UnmarshalNode(data)
}

// loadResources resolves file-path resource references through a decoded
// image store. Remote URLs are the host's job to fetch; unreadable paths
// are skipped.
func loadResources(root layout.Node, store *resources.Store) (resources.Map, error) {
	urls := layout.CollectTasks(root)
	for _, url := range urls {
		data, err := os.ReadFile(url)
		if err != nil {
			continue
		}
		_, err = store.GetOrLoad(url, func() (image.Image, error) {
			img, _, err := image.Decode(bytes.NewReader(data))
			return img, err
		})
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}
	}
	return store.Snapshot(urls), nil
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
