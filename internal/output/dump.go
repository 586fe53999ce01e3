package output

import (
	"encoding/json"
	"fmt"
	"io"

	"reform/internal/chunk"
	"reform/internal/state"
)

// ChunkRecord is one line of the parsed dump.
type ChunkRecord struct {
	Index      uint32 `json:"index"`
	Kind       string `json:"kind"`
	Parent     string `json:"parent,omitempty"`
	OrigLine   uint32 `json:"orig_line"`
	OrigCol    uint32 `json:"orig_col"`
	Column     int    `json:"column"`
	Level      int    `json:"level"`
	BraceLevel int    `json:"brace_level"`
	ParenLevel int    `json:"paren_level"`
	PPLevel    int    `json:"pp_level"`
	NlBefore   int    `json:"nl_before"`
	Align      string `json:"align,omitempty"`
	Flags      string `json:"flags,omitempty"`
	Text       string `json:"text"`
}

// DumpOutput is the root of the JSON dump.
type DumpOutput struct {
	File   string        `json:"file,omitempty"`
	Lang   string        `json:"lang"`
	Stats  state.Stats   `json:"stats"`
	Chunks []ChunkRecord `json:"chunks"`
}

// DumpParsed writes every chunk with the annotations the stages gave it.
// format is "text" or "json"; an empty format means text.
func DumpParsed(ctx *state.Ctx, w io.Writer, format string) error {
	switch format {
	case "", "text":
		return dumpText(ctx, w)
	case "json":
		return dumpJSON(ctx, w)
	}
	return fmt.Errorf("unknown dump format %q", format)
}

func records(l *chunk.List) []ChunkRecord {
	out := make([]ChunkRecord, 0, l.Len())
	for c := range l.All() {
		r := ChunkRecord{
			Index:      uint32(c.ID),
			Kind:       c.Kind.String(),
			OrigLine:   c.OrigLine,
			OrigCol:    c.OrigCol,
			Column:     c.Column,
			Level:      c.Level,
			BraceLevel: c.BraceLevel,
			ParenLevel: c.ParenLevel,
			PPLevel:    c.PPLevel,
			NlBefore:   c.NlBefore,
			Align:      c.AlignClass.String(),
			Flags:      c.Flags.String(),
			Text:       c.Text,
		}
		if c.Parent != 0 {
			r.Parent = c.Parent.String()
		}
		out = append(out, r)
	}
	return out
}

func dumpName(ctx *state.Ctx) string {
	if ctx.File == nil {
		return ""
	}
	return ctx.File.Path
}

func dumpJSON(ctx *state.Ctx, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(DumpOutput{
		File:   dumpName(ctx),
		Lang:   ctx.Lang.String(),
		Stats:  ctx.Stats,
		Chunks: records(ctx.List),
	})
}

func dumpText(ctx *state.Ctx, w io.Writer) error {
	s := ctx.Stats
	if _, err := fmt.Fprintf(w, "# %s lang=%s chunks=%d vbraces=%d braces+%d braces-%d retyped=%d aligned=%d warnings=%d\n",
		dumpName(ctx), ctx.Lang, ctx.List.Len(), s.VBraces, s.BracesAdded, s.BracesRemoved,
		s.Retyped, s.AlignedGroups, s.Warnings); err != nil {
		return err
	}
	// # idx kind parent line:col col lvl/brace/paren/pp nl flags text
	for _, r := range records(ctx.List) {
		text := r.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		_, err := fmt.Fprintf(w, "%5d %-16s %-14s %4d:%-3d col=%-3d lvl=%d/%d/%d/%d nl=%d %s %q\n",
			r.Index, r.Kind, r.Parent, r.OrigLine, r.OrigCol, r.Column,
			r.Level, r.BraceLevel, r.ParenLevel, r.PPLevel, r.NlBefore, r.Flags, text)
		if err != nil {
			return err
		}
	}
	return nil
}
