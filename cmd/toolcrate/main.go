// Command toolcrate provisions third-party developer tools into a
// portable vendor tree.
package main

import (
	"os"
)

func main() {
	os.Exit(Execute())
}
