package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v2"

	"marketagents/internal/classifier"
	"marketagents/internal/config"
	"marketagents/internal/domain"
	"marketagents/internal/llm"
	"marketagents/internal/logging"
	"marketagents/internal/pricing"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.App {
	app := &cli.App{
		Name:   "agents",
		Usage:  "run the marketplace agents once and print the verdict",
		Writer: w,
	}

	app.Commands = []*cli.Command{
		moderateCmd,
		priceCmd,
		fraudCmd,
		negotiateCmd,
	}

	return app
}

var productFlags = []cli.Flag{
	&cli.StringFlag{Name: "title"},
	&cli.StringFlag{Name: "category", Usage: "Mobile, Laptop, Furniture, Electronics, Fashion, Camera"},
	&cli.StringFlag{Name: "brand"},
	&cli.StringFlag{Name: "condition", Usage: `"Like New", Good or Fair`},
	&cli.IntFlag{Name: "age", Usage: "age in months"},
	&cli.Float64Flag{Name: "price", Usage: "asking price", Required: true},
	&cli.StringFlag{Name: "location"},
}

var moderateCmd = &cli.Command{
	Name:      "moderate",
	Usage:     "classify a chat message",
	ArgsUsage: "<text>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() == 0 {
			return fmt.Errorf("message text required")
		}
		return printJSON(cctx, classifier.Moderate(strings.Join(cctx.Args().Slice(), " ")))
	},
}

var priceCmd = &cli.Command{
	Name:  "price",
	Usage: "suggest a fair price range",
	Flags: productFlags,
	Action: func(cctx *cli.Context) error {
		p, err := productFromFlags(cctx)
		if err != nil {
			return err
		}

		_ = godotenv.Load()
		cfg, err := config.Load(config.Path())
		if err != nil {
			return err
		}
		logger := logging.New(cfg.Log.Level, cfg.Log.Format)

		gen, err := llm.New(cfg.LLM.Client(logger))
		if err != nil {
			logger.Warn("llm disabled", "err", err)
			gen = llm.Disabled{}
		}

		agent := pricing.NewAgent(gen,
			pricing.WithTimeout(cfg.LLM.Timeout),
			pricing.WithLogger(logger),
			pricing.WithLLMRequested(cfg.LLM.Enabled),
		)
		return printJSON(cctx, agent.Suggest(cctx.Context, p))
	},
}

var fraudCmd = &cli.Command{
	Name:  "fraud",
	Usage: "check whether a listing price looks fraudulent",
	Flags: productFlags,
	Action: func(cctx *cli.Context) error {
		p, err := productFromFlags(cctx)
		if err != nil {
			return err
		}
		return printJSON(cctx, pricing.DetectFraud(p))
	},
}

var negotiateCmd = &cli.Command{
	Name:  "negotiate",
	Usage: "simulate one round of buyer/seller negotiation",
	Flags: productFlags,
	Action: func(cctx *cli.Context) error {
		p, err := productFromFlags(cctx)
		if err != nil {
			return err
		}
		d := pricing.Negotiate(p)
		if err := d.Validate(); err != nil {
			return err
		}
		return printJSON(cctx, d)
	},
}

func productFromFlags(cctx *cli.Context) (domain.Product, error) {
	p := domain.Product{
		Title:       cctx.String("title"),
		Category:    cctx.String("category"),
		Brand:       cctx.String("brand"),
		Condition:   cctx.String("condition"),
		AgeMonths:   cctx.Int("age"),
		AskingPrice: cctx.Float64("price"),
		Location:    cctx.String("location"),
	}
	if p.AgeMonths < 0 || p.AskingPrice < 0 {
		return p, fmt.Errorf("age and price must not be negative")
	}
	if p.AskingPrice > domain.MaxAskingPrice {
		return p, fmt.Errorf("price must not exceed %g", domain.MaxAskingPrice)
	}
	return p, nil
}

func printJSON(cctx *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cctx.App.Writer, string(b))
	return err
}
