package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"panorama/align"
	"panorama/article"
	"panorama/config"
	"panorama/discover"
	"panorama/fetcher"
	"panorama/lang"
	"panorama/prompt"
	"panorama/render"
	"panorama/sites"
)

var errNoSelection = errors.New("none of the requested languages is available")

// app holds everything one run needs. Article text goes to out; prompts,
// notices and progress go to errOut.
type app struct {
	cfg         *config.Config
	log         *slog.Logger
	fetcher     discover.Fetcher
	profile     *sites.Site
	interactive bool
	prompter    *prompt.Prompter
	spinner     *render.Spinner
	out         io.Writer
	errOut      io.Writer
	width       int
}

func newApp(cfg *config.Config, logger *slog.Logger, in *os.File, out, errOut io.Writer) (*app, error) {
	profile, err := cfg.SiteProfile()
	if err != nil {
		return nil, fmt.Errorf("site profile: %w", err)
	}
	if profile != sites.Panorama {
		sites.Register(profile)
	}

	a := &app{
		cfg: cfg,
		log: logger,
		fetcher: fetcher.New(fetcher.Options{
			UserAgent:           cfg.Fetcher.UserAgent,
			TimeoutSeconds:      cfg.Fetcher.TimeoutSeconds,
			ProbeTimeoutSeconds: cfg.Fetcher.ProbeTimeoutSeconds,
			ChromePath:          cfg.Fetcher.ChromePath,
			BrowserFallback:     cfg.Fetcher.BrowserFallback,
		}),
		profile:     profile,
		interactive: render.IsTerminal(in),
		prompter:    prompt.New(in, errOut, cfg.RenderLabels()),
		out:         out,
		errOut:      errOut,
		width:       outputWidth(cfg.Output.Width, out),
	}
	if f, ok := errOut.(*os.File); ok && render.IsTerminal(f) {
		a.spinner = render.NewSpinner(errOut)
	}
	return a, nil
}

// outputWidth resolves the wrap width against out. A terminal width is only
// available when out is a terminal; otherwise -1 means no wrapping.
func outputWidth(configured int, out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		return render.WrapWidth(configured, f)
	}
	return max(configured, 0)
}

func (a *app) progress(message string) {
	if a.spinner != nil {
		a.spinner.Start(message)
	}
}

func (a *app) done() {
	if a.spinner != nil {
		a.spinner.Stop()
	}
}

// siteFor picks the registered site for seed, or the configured profile.
func (a *app) siteFor(seed string) *sites.Site {
	if s := sites.ForURL(seed); s != nil {
		return s
	}
	return a.profile
}

// run discovers the editions of seed and prints the selected ones. langs
// is the --langs flag; empty means ask (or all, when not interactive).
func (a *app) run(ctx context.Context, seed, langs string) error {
	if seed == "" {
		var err error
		if seed, err = a.prompter.URL(); err != nil {
			return err
		}
	}
	if err := discover.ValidateSeed(seed); err != nil {
		return err
	}

	site := a.siteFor(seed)
	log := a.log.With("site", site.Name)
	log.Debug("site profiles", "registered", sites.Names())

	a.progress("Discovering language editions")
	d := &discover.Discoverer{
		Fetcher:     a.fetcher,
		Site:        site,
		Concurrency: a.cfg.Pipeline.Concurrency,
		Logger:      log,
	}
	res, err := d.Discover(ctx, seed)
	a.done()
	if err != nil {
		return err
	}
	available := res.Codes()
	log.Info("editions found", "langs", available)

	mode, err := a.mode()
	if err != nil {
		return err
	}

	loader := &article.Loader{
		Fetcher:     a.fetcher,
		Site:        site,
		Concurrency: a.cfg.Pipeline.Concurrency,
		Logger:      log,
	}
	variants := make(map[lang.Code]*article.Variant, len(available))
	renderer := render.New(a.out, a.cfg.RenderLabels(), a.width)

	if mode == config.ModeParagraph {
		a.load(ctx, loader, res.URLs, available, variants)
		selection, err := a.paragraphSelection(langs, variants)
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			fmt.Fprint(a.errOut, "\nCanceled paragraph-by-paragraph mode.\n\n")
			return err
		case errors.Is(err, align.ErrNoGroups):
			fmt.Fprint(a.errOut, "\nSwitching to full-article mode since no interleavable languages are available.\n\n")
		case errors.Is(err, align.ErrIncompatible):
			fmt.Fprint(a.errOut, "\nSelected languages are not compatible for paragraph-by-paragraph. Switching to full-article mode.\n\n")
		case err != nil:
			return err
		default:
			return renderer.Interleaved(selection, article.TabMap(variants))
		}
	}

	selection, err := a.fullSelection(langs, available)
	if err != nil {
		return err
	}
	a.load(ctx, loader, res.URLs, selection, variants)
	for _, code := range selection {
		v := variants[code]
		if err := renderer.Full(code, v.Title, v.Body()); err != nil {
			return err
		}
	}
	return nil
}

// mode returns the configured mode, asking when none is set and stdin is a
// terminal.
func (a *app) mode() (string, error) {
	if a.cfg.Output.Mode != "" {
		return a.cfg.Output.Mode, nil
	}
	if a.interactive {
		return a.prompter.Mode()
	}
	return config.ModeFull, nil
}

// load fetches the codes not yet in variants.
func (a *app) load(ctx context.Context, loader *article.Loader, urls map[lang.Code]string, codes []lang.Code, variants map[lang.Code]*article.Variant) {
	pending := make(map[lang.Code]string)
	for _, code := range codes {
		if _, ok := variants[code]; !ok {
			pending[code] = urls[code]
		}
	}
	if len(pending) == 0 {
		return
	}

	a.progress(fmt.Sprintf("Loading %d editions", len(pending)))
	defer a.done()
	for code, v := range loader.Load(ctx, pending) {
		variants[code] = v
	}
}

// paragraphSelection picks the languages to interleave.
func (a *app) paragraphSelection(langs string, variants map[lang.Code]*article.Variant) ([]lang.Code, error) {
	tabs := article.TabMap(variants)
	groups := align.Groups(tabs)

	var (
		selection []lang.Code
		err       error
	)
	switch {
	case langs != "":
		selection, err = align.Select(lang.ParseList(langs), groups)
	case a.interactive:
		selection, err = a.prompter.ParagraphLanguages(groups)
	default:
		selection, err = align.Select(nil, groups)
	}
	if err != nil {
		return nil, err
	}
	if !align.Compatible(selection, tabs) {
		return nil, align.ErrIncompatibleSelection
	}
	return selection, nil
}

// fullSelection picks the languages to print in full.
func (a *app) fullSelection(langs string, available []lang.Code) ([]lang.Code, error) {
	switch {
	case langs != "":
		selection := prompt.Pick(lang.ParseList(langs), available)
		if len(selection) == 0 {
			return nil, fmt.Errorf("%w: asked for %q, found %v", errNoSelection, langs, available)
		}
		return selection, nil
	case a.interactive:
		return a.prompter.FullLanguages(available)
	default:
		return available, nil
	}
}
