package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/backmassage/brdecode/internal/check"
	"github.com/backmassage/brdecode/internal/display"
	"github.com/backmassage/brdecode/internal/pipeline"
	"github.com/backmassage/brdecode/internal/term"
)

const prompt = "brdecode> "

// Shell reads commands from r until EOF, "quit", or ctx is cancelled, and
// reports on log. Prompts and help go to w. Command errors are logged and
// the shell keeps reading.
func (s *Session) Shell(ctx context.Context, r io.Reader, w io.Writer, log check.Logger) error {
	sc := bufio.NewScanner(r)
	printHelp(w)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(w, term.Paint(term.Magenta, prompt))
		if !sc.Scan() {
			fmt.Fprintln(w)
			return sc.Err()
		}
		fields, err := splitArgs(sc.Text())
		if err != nil {
			log.Error("%v", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			printHelp(w)
		case "inspect", "check":
			if len(args) != 1 {
				log.Error("usage: inspect <path>")
				continue
			}
			rep, err := s.Inspect(args[0])
			if err != nil {
				log.Error("%v", err)
				continue
			}
			check.LogReport(false, log, rep)
		case "decode":
			if len(args) < 1 || len(args) > 2 {
				log.Error("usage: decode <src> [dst]")
				continue
			}
			dst := ""
			if len(args) == 2 {
				dst = args[1]
			}
			o, err := s.Decode(ctx, args[0], dst)
			if err != nil {
				log.Error("%v", err)
				continue
			}
			logDecode(log, o)
		default:
			log.Error("unknown command %q (try \"help\")", cmd)
		}
	}
}

// splitArgs splits line on whitespace. Single or double quotes group
// words, so paths containing spaces can be passed as one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		inArg bool
		quote rune
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}

func logDecode(log check.Logger, o pipeline.Outcome) {
	switch o.State {
	case pipeline.StateSkipped:
		log.Warn("Output exists, skipped: %s", o.Destination)
	case pipeline.StateCopied:
		if o.Written {
			log.Warn("Not encoded, copied unchanged -> %s", o.Destination)
		} else {
			log.Warn("Not encoded [DRY] would copy -> %s", o.Destination)
		}
	case pipeline.StateDecoded:
		if o.Written {
			log.Success("Decoded -> %s (%s)", o.Destination, display.FormatBytes(o.Size))
		} else {
			log.Success("[DRY] Would decode -> %s (%s)", o.Destination, display.FormatBytes(o.Size))
		}
		if v := o.Verdict; v != nil && !v.Plausible {
			log.Warn("Decoded content does not look like BRD (sections: %s)", display.FormatList(v.Keywords))
		}
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  inspect <path>       Show signature, sections and printable ratio
                       (quote paths that contain spaces)
  decode <src> [dst]   Decode one file (dst defaults to <stem><suffix><ext>)
  help                 Show this help
  quit                 Leave the shell
`)
}
