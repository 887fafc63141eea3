package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tentacle-scylla/sqlcontext/pkg/complete"
	"github.com/tentacle-scylla/sqlcontext/pkg/schema"
	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
)

func main() {
	app := &cli.App{
		Name:    "sqlcontext",
		Usage:   "Classify the cursor position in a SQL buffer for completion",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug information to stderr",
				EnvVars: []string{"SQLCONTEXT_VERBOSE"},
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			contextCmd(),
			tokensCmd(),
			wordCmd(),
			completeCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read SQL from file",
		},
	}
}

func cursorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "offset",
			Aliases: []string{"o"},
			Usage:   "Cursor offset (default: end of input)",
		},
		&cli.IntFlag{
			Name:  "line",
			Usage: "Cursor line, 1-based (overrides --offset)",
		},
		&cli.IntFlag{
			Name:  "col",
			Usage: "Cursor column, 0-based, used with --line",
		},
		&cli.BoolFlag{
			Name:  "utf16",
			Usage: "Interpret --offset and --col as UTF-16 code units",
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output as JSON",
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, g := range groups {
		result = append(result, g...)
	}
	return result
}

func contextCmd() *cli.Command {
	return &cli.Command{
		Name:    "context",
		Aliases: []string{"ctx"},
		Usage:   "Print what the cursor position expects",
		Flags:   flags(inputFlags(), cursorFlags(), []cli.Flag{jsonFlag()}),
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}

			cursor := cursorFromFlags(c, input)
			detected := complete.Detect(input, cursor)
			slog.Debug("resolved context",
				"cursor", cursor,
				"kind", detected.Context.Kind,
				"prefix", detected.Prefix,
				"statement", detected.Statement)

			if c.Bool("json") {
				return printJSON(detected)
			}
			fmt.Println(detected.Context)
			return nil
		},
	}
}

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:    "tokens",
		Aliases: []string{"tok"},
		Usage:   "Print the tokens of the input",
		Flags: flags(inputFlags(), []cli.Flag{
			&cli.BoolFlag{
				Name:    "significant",
				Aliases: []string{"s"},
				Usage:   "Drop comments, strings, and whitespace",
			},
			jsonFlag(),
		}),
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}

			toks := tokenize.Tokenize(input)
			if c.Bool("significant") {
				toks = tokenize.Significant(toks)
			}
			slog.Debug("tokenized", "bytes", len(input), "tokens", len(toks))

			if c.Bool("json") {
				return printJSON(toks)
			}
			for _, tok := range toks {
				fmt.Printf("%5d  %-12s %q\n", tok.Offset, tok.Kind, tok.Text)
			}
			return nil
		},
	}
}

func wordCmd() *cli.Command {
	return &cli.Command{
		Name:  "word",
		Usage: "Print the partial identifier at the cursor",
		Flags: flags(inputFlags(), cursorFlags()),
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}
			fmt.Println(complete.WordAtCursor(input, cursorFromFlags(c, input)))
			return nil
		},
	}
}

func completeCmd() *cli.Command {
	return &cli.Command{
		Name:    "complete",
		Aliases: []string{"c"},
		Usage:   "Print completion suggestions for the cursor position",
		Flags: flags(inputFlags(), cursorFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Usage:   "Schema metadata file (JSON or YAML)",
				EnvVars: []string{"SQLCONTEXT_SCHEMA"},
			},
			&cli.IntFlag{
				Name:  "max",
				Value: complete.DefaultOptions().MaxItems,
				Usage: "Maximum number of suggestions (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "no-keywords",
				Usage: "Do not suggest keywords when the context is unknown",
			},
			jsonFlag(),
		}),
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}

			var md *schema.Metadata
			if path := c.String("schema"); path != "" {
				md, err = schema.Load(path)
				if err != nil {
					return fmt.Errorf("loading schema: %w", err)
				}
				slog.Debug("loaded schema", "path", path, "tables", len(md.Tables))
			} else {
				slog.Warn("no schema given, only keywords can be suggested")
			}

			result := complete.GetCompletionsResultWithOptions(&complete.CompletionContext{
				Query:    input,
				Position: cursorFromFlags(c, input),
				Metadata: md,
			}, &complete.CompletionOptions{
				MaxItems:        c.Int("max"),
				IncludeKeywords: !c.Bool("no-keywords"),
			})
			slog.Debug("completions", "context", result.Context, "prefix", result.Prefix, "items", len(result.Items))

			if c.Bool("json") {
				return printJSON(result)
			}
			for _, item := range result.Items {
				line := item.GetInsertText()
				if item.Detail != "" {
					line += "\t" + item.Detail
				}
				fmt.Println(strings.TrimSpace(line))
			}
			return nil
		},
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
