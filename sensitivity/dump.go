package sensitivity

import (
	"bufio"
	"fmt"
	"os"

	"github.com/acse-bn20/PHiLiP/utils"
)

// WriteDense writes the matrix to path in dense row major layout, one row
// per line, five significant digits per entry.
func WriteDense(path string, m utils.CSR) (err error) {
	var (
		file   *os.File
		nr, nc = m.Dims()
	)
	if file, err = os.Create(path); err != nil {
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if _, err = fmt.Fprintf(w, "%12.4e ", m.At(i, j)); err != nil {
				return
			}
		}
		if _, err = fmt.Fprintln(w); err != nil {
			return
		}
	}
	return w.Flush()
}
