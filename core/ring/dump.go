// File: core/ring/dump.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Human-readable slot dump for interactive debugging. Not a stable format.

package ring

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes every slot to w, marking the read cursor. caller tags each line.
func (r *RingBuffer[T]) Dump(w io.Writer, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bw := bufio.NewWriter(w)
	prefix := fmt.Sprintf("[Dump] [%s] ", caller)

	fmt.Fprintf(bw, "%s---data start---\n", prefix)
	for i, v := range r.data {
		fmt.Fprintf(bw, "%s%d: '%v'", prefix, i, v)
		if i == r.head {
			bw.WriteString("  <--- Head")
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "%s---data end---\n", prefix)
	return bw.Flush()
}
