package shell

import (
	"io"
)

const usageText = `ferryman interactive shell

  solve [M C]                    run the search from the given counts,
                                 or from the current position
  set <M> <C>                    set the current starting counts
  show                           display the current position
  moves [LM LC RM RC l|r]        list the legal crossings from a
                                 position (current one by default)
  safe <LM> <LC> <RM> <RC> <l|r> check whether a position is safe
  levels                         histogram of expanded positions per
                                 crossing depth, from the last solve
  log <path>                     write a YAML log of each expansion
  log off                        stop logging
  help                           show this text
  exit                           leave the shell
`

func usage(w io.Writer) {
	io.WriteString(w, usageText)
}
