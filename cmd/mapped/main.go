package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bodgit/mapped"
	"github.com/bodgit/mapped/geometry"
	"github.com/bodgit/mapped/mapdata"
	"github.com/bodgit/mapped/palette"
	"github.com/bodgit/mapped/quant"
	"github.com/urfave/cli/v2"
)

const defaultPalette = "palette.csv"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadPalette prefers an explicit palette file, fetching it if it's missing
// and a URL was given, then a palette.csv in the working directory and
// finally the built-in palette
func loadPalette(ctx context.Context, c *cli.Context) (*palette.Palette, error) {
	path, url := c.String("palette"), c.String("palette-url")
	switch {
	case path != "":
		return palette.Cached{Path: path, URL: url}.Palette(ctx)
	case url != "":
		return palette.Cached{Path: defaultPalette, URL: url}.Palette(ctx)
	}

	p, err := palette.File{Path: defaultPalette}.Palette(ctx)
	if errors.Is(err, os.ErrNotExist) {
		return palette.Builtin{}.Palette(ctx)
	}
	return p, err
}

func openManifest(c *cli.Context) (*mapped.Manifest, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return mapped.NewManifest(c.String("db"))
}

func options(c *cli.Context) (mapped.Options, error) {
	opts := mapped.DefaultOptions()

	opts.Scale = geometry.Scale{Columns: c.Int("columns"), Rows: c.Int("rows")}
	opts.Fit = c.Int("fit")
	opts.AlphaThreshold = c.Int("alpha-threshold")
	opts.Dither = !c.Bool("no-dither")

	var err error
	if opts.Method, err = quant.ParseMethod(c.String("method")); err != nil {
		return opts, err
	}
	if opts.Resampling, err = geometry.ParseResampling(c.String("resample")); err != nil {
		return opts, err
	}
	if s := c.String("transparent-color"); s != "" {
		if opts.Transparent, err = palette.ParseColor(s); err != nil {
			return opts, err
		}
	}

	return opts, nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(c)

	opts, err := options(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := loadPalette(ctx, c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	db, err := openManifest(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if db != nil {
		defer db.Close()
	}

	first := c.Int("num")
	if !c.IsSet("num") && db != nil {
		if first, err = db.NextMap(); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	m, err := mapped.New(p, db, logger, opts)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	convertFunc := m.ConvertFile
	if info, err := os.Stat(c.Args().First()); err == nil && info.IsDir() {
		convertFunc = m.ConvertDir
	}

	next, err := convertFunc(ctx, c.Args().First(), first, mapdata.Dir{Path: c.String("dir")})
	if next > first {
		fmt.Fprintf(c.App.Writer, "Wrote %s to %s\n", mapdata.Filename(first), mapdata.Filename(next-1))
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "mapped"
	app.Usage = "Convert images into map item data"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MAPPED_DB"},
			Usage:   "path to manifest database",
		},
		&cli.StringFlag{
			Name:    "palette",
			Aliases: []string{"p"},
			EnvVars: []string{"MAPPED_PALETTE"},
			Usage:   "path to palette file",
		},
		&cli.StringFlag{
			Name:    "palette-url",
			EnvVars: []string{"MAPPED_PALETTE_URL"},
			Usage:   "fetch the palette from `URL` if there is no local copy",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image, or a directory of images, into map files",
			Description: "Each frame of the image is split into tiles and every tile is written as map_<n>.dat, numbered from --num",
			ArgsUsage:   "IMAGE|DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "num",
					Aliases: []string{"n"},
					Usage:   "first map number, defaults to the next unused number in the manifest or 0",
				},
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Value:   ".",
					Usage:   "directory to write map files to",
				},
				&cli.IntFlag{
					Name:    "columns",
					Aliases: []string{"x"},
					Value:   1,
					Usage:   "number of horizontal maps, 0 to compute from the aspect ratio",
				},
				&cli.IntFlag{
					Name:    "rows",
					Aliases: []string{"y"},
					Value:   1,
					Usage:   "number of vertical maps, 0 to compute from the aspect ratio",
				},
				&cli.IntFlag{
					Name:    "fit",
					Aliases: []string{"f"},
					Usage:   "scale the shorter side to `N` maps, overriding --columns and --rows",
				},
				&cli.IntFlag{
					Name:    "alpha-threshold",
					Aliases: []string{"a"},
					Value:   128,
					EnvVars: []string{"MAPPED_ALPHA_THRESHOLD"},
					Usage:   "minimum alpha for a pixel to be opaque",
				},
				&cli.StringFlag{
					Name:    "method",
					Aliases: []string{"m"},
					Value:   quant.MedianCut.String(),
					EnvVars: []string{"MAPPED_METHOD"},
					Usage:   "quantize method: off, median-cut, max-coverage, fast-octree or libimagequant",
				},
				&cli.BoolFlag{
					Name:  "no-dither",
					Usage: "disable dithering",
				},
				&cli.StringFlag{
					Name:    "transparent-color",
					Aliases: []string{"t"},
					Usage:   "use the nearest map color to `COLOR` (#rrggbb or r,g,b) instead of transparency",
				},
				&cli.StringFlag{
					Name:    "resample",
					Aliases: []string{"r"},
					Value:   geometry.Cubic.String(),
					EnvVars: []string{"MAPPED_RESAMPLE"},
					Usage:   "resize filter: nearest, box, linear, cubic or lanczos",
				},
			},
			Action: convert,
		},
		{
			Name:      "inspect",
			Usage:     "Print the contents of a map file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				r, err := mapdata.Read(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				used := make(map[uint8]int)
				for _, i := range r.Colors {
					used[i]++
				}

				fmt.Fprintf(c.App.Writer, "scale: %d\ndimension: %d\nlocked: %t\ntrackingPosition: %t\n", r.Scale, r.Dimension, r.Locked, r.TrackingPosition)
				fmt.Fprintf(c.App.Writer, "center: %d,%d\nsize: %dx%d\ncolors used: %d\ntransparent pixels: %d\n", r.XCenter, r.ZCenter, r.Width, r.Height, len(used), used[palette.Transparent])

				return nil
			},
		},
		{
			Name:      "list",
			Usage:     "List the maps previously written for an image",
			ArgsUsage: "IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openManifest(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if db == nil {
					return cli.NewExitError("no manifest database, use --db", 1)
				}
				defer db.Close()

				sha, err := mapped.HashFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				maps, err := db.Maps(sha)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, m := range maps {
					fmt.Fprintf(c.App.Writer, "%s\tframe %d\ttile %d,%d\n", mapdata.Filename(m.Map), m.Frame, m.Column, m.Row)
				}

				return nil
			},
		},
		{
			Name:      "palette",
			Usage:     "Write the palette in use as CSV",
			ArgsUsage: "[FILE]",
			Action: func(c *cli.Context) error {
				p, err := loadPalette(context.Background(), c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := c.App.Writer
				if c.NArg() > 0 {
					f, err := os.Create(c.Args().First())
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer f.Close()
					w = f
				}

				if err := p.WriteCSV(w); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
