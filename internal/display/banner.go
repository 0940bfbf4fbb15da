package display

import (
	"fmt"
	"io"

	"github.com/backmassage/brdecode/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, ` _              _                    _
| |__  _ __ __| | ___  ___ ___   __| | ___
| '_ \| '__/ _`+"`"+` |/ _ \/ __/ _ \ / _`+"`"+` |/ _ \
| |_) | | | (_| |  __/ (_| (_) | (_| |  __/
|_.__/|_|  \__,_|\___|\___\___/ \__,_|\___|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
