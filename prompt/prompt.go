// Package prompt asks the user for the seed URL, the reading mode and the
// languages to print when they were not given on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"panorama/align"
	"panorama/config"
	"panorama/lang"
	"panorama/render"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	labels render.Labels
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer, labels render.Labels) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, labels: labels}
}

// readLine reads one trimmed answer. A final line without a newline counts.
func (p *Prompter) readLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// URL asks for the seed URL. Validation is left to the caller.
func (p *Prompter) URL() (string, error) {
	fmt.Fprintln(p.out, "=== Taiwan Panorama Multi-language Article Tool ===")
	fmt.Fprintln(p.out, "Paste the URL of any Taiwan Panorama story below.")
	fmt.Fprintln(p.out)
	return p.readLine("URL -> ")
}

// Mode asks for the reading mode until the answer is recognised.
func (p *Prompter) Mode() (string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "=== Reading Mode Selection ===")
	fmt.Fprintln(p.out, "1) full-article mode: each language edition in one piece.")
	fmt.Fprintln(p.out, "2) paragraph-by-paragraph mode: sections of several languages interleaved.")

	for {
		answer, err := p.readLine("Enter 1 or 2 -> ")
		if err != nil {
			return "", err
		}
		switch strings.ToLower(answer) {
		case "1", "full", "full-article", "full article":
			return config.ModeFull, nil
		case "2", "paragraph", "paragraph-by-paragraph", "paragraph by paragraph":
			return config.ModeParagraph, nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please type 1 or 2.")
	}
}

// FullLanguages asks which of the available languages to print in full.
// An empty answer or "all" selects every language in canonical order;
// otherwise the known codes are kept in the order typed.
func (p *Prompter) FullLanguages(available []lang.Code) ([]lang.Code, error) {
	available = lang.Sort(available)
	labels := make([]string, len(available))
	codes := make([]string, len(available))
	for i, c := range available {
		codes[i] = string(c)
		labels[i] = p.labels.Label(c)
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Available language versions:")
	fmt.Fprintln(p.out, "Codes :", strings.Join(codes, " "))
	fmt.Fprintln(p.out, "Labels:", strings.Join(labels, " / "))
	fmt.Fprintln(p.out, "Enter language codes to output, or press Enter for ALL.")

	for {
		answer, err := p.readLine("Languages -> ")
		if err != nil {
			return nil, err
		}
		if answer == "" || strings.EqualFold(answer, "all") {
			return available, nil
		}
		if selected := Pick(lang.ParseList(answer), available); len(selected) > 0 {
			return selected, nil
		}
		fmt.Fprintln(p.out, "No valid language codes. Try again.")
	}
}

// ParagraphLanguages shows the interleavable groups, without their tab
// counts, and asks for a selection from exactly one of them. An empty
// answer picks the first group; "q" returns ErrCancelled.
func (p *Prompter) ParagraphLanguages(groups []align.Group) ([]lang.Code, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Available combinations for interleaving paragraphs:")
	if len(groups) == 0 {
		fmt.Fprintln(p.out, "None. No languages have compatible segmentation.")
		return nil, align.ErrNoGroups
	}
	for _, g := range groups {
		codes := make([]string, len(g.Codes))
		for i, c := range g.Codes {
			codes[i] = string(c)
		}
		fmt.Fprintf(p.out, "- %s\n", strings.Join(codes, " "))
	}
	fmt.Fprintln(p.out, "Your selection must come entirely from a single group above.")
	fmt.Fprintln(p.out, "Type 'q' to cancel.")

	for {
		answer, err := p.readLine("Languages -> ")
		if err != nil {
			return nil, err
		}
		answer = strings.ToLower(answer)
		if answer == "q" {
			return nil, ErrCancelled
		}

		requested := lang.ParseList(answer)
		if answer != "" && len(requested) == 0 {
			fmt.Fprintln(p.out, "Invalid selection. Choose languages from exactly one group above.")
			continue
		}
		selected, err := align.Select(requested, groups)
		if err == nil {
			return selected, nil
		}
		fmt.Fprintln(p.out, "Invalid selection. Choose languages from exactly one group above.")
	}
}

// Pick keeps the requested codes that are available, in request order and
// without duplicates.
func Pick(requested, available []lang.Code) []lang.Code {
	var out []lang.Code
	for _, c := range requested {
		if slices.Contains(available, c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
