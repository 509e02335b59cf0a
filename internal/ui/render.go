// Package ui renders results for the terminal: styled verse lists,
// ranked search output, and a scrollable pager for longer passages.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/errors"
	"github.com/jmhobbs/concord/internal/result"
)

// Renderer writes formatted results to one destination.
type Renderer struct {
	out    io.Writer
	styles Styles
	// ShowScores appends BM25 scores to ranked results.
	ShowScores bool
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, styles Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

// Verses renders a result set. Lookups print one verse per line in
// canonical order; ranked sets are numbered.
func (r *Renderer) Verses(set *result.Set) {
	if len(set.Verses) == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("no results"))
		return
	}

	if set.Ranked {
		r.ranked(set)
		return
	}
	for _, v := range set.Verses {
		fmt.Fprintf(r.out, "%s  %s\n",
			r.styles.Reference.Render(v.Ref.String()),
			r.styles.Text.Render(v.Text))
	}
}

func (r *Renderer) ranked(set *result.Set) {
	width := len(fmt.Sprintf("%d", len(set.Verses)))
	for _, v := range set.Verses {
		rank := fmt.Sprintf("%*d.", width, v.Rank)
		line := fmt.Sprintf("%s %s  %s",
			r.styles.Rank.Render(rank),
			r.styles.Reference.Render(v.Ref.String()),
			r.styles.Text.Render(v.Text))
		if r.ShowScores {
			line += " " + r.styles.Score.Render(fmt.Sprintf("(%.3f)", v.Score))
		}
		fmt.Fprintln(r.out, line)
	}
}

// Books renders the book table with canonical names and abbreviations.
func (r *Renderer) Books(books []canon.Book) {
	for _, b := range books {
		fmt.Fprintf(r.out, "%s  %s\n",
			r.styles.Translation.Render(fmt.Sprintf("%-4s", canon.Abbreviation(b))),
			r.styles.Text.Render(b.String()))
	}
}

// Error renders a failure in user-facing form. Validation errors get a
// plain message; everything else keeps its code for bug reports.
func (r *Renderer) Error(err error) {
	var sb strings.Builder
	if errors.IsValidation(err) {
		if e, ok := err.(*errors.Error); ok {
			sb.WriteString(e.Message)
			if candidates, ok := e.Details["candidates"]; ok {
				sb.WriteString("\n")
				sb.WriteString(r.styles.Dim.Render("matches: " + candidates))
			}
		} else {
			sb.WriteString(err.Error())
		}
	} else {
		sb.WriteString(err.Error())
	}
	fmt.Fprintln(r.out, r.styles.Error.Render(sb.String()))
}
