package shell

import (
	"fmt"
	"strings"

	"github.com/fakeyudi/pathwise/internal/store"
)

// MaxJumps is the number of wjN aliases the plugin manages.
const MaxJumps = 10

// JumpAliases renders `alias wjN='cd …'` lines for the ranked paths. Slots
// past the end of paths are unaliased so stale shortcuts disappear.
func JumpAliases(paths []string, home string) string {
	var sb strings.Builder
	for i := 1; i <= MaxJumps; i++ {
		if i <= len(paths) {
			target := `cd ` + quote(store.ExpandPath(paths[i-1], home))
			fmt.Fprintf(&sb, "alias wj%d=%s\n", i, quote(target))
			continue
		}
		fmt.Fprintf(&sb, "unalias wj%d 2>/dev/null\n", i)
	}
	return sb.String()
}

// quote single-quotes v for a POSIX shell.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
