// audiomark hides a text message in a WAV file with a spread-spectrum
// watermark and recovers it again given the original file and the key.
//
// Usage:
//
//	audiomark generate-wav -d 5 --channels 1 -n container.wav
//	audiomark encrypt -c container.wav -m message.txt -s stegacontainer.wav
//	audiomark decrypt -c container.wav -s stegacontainer.wav -k key.csv -b 8 -l 5
package main

import (
	"fmt"
	"os"

	"github.com/yyyoichi/audiomark/cmd/audiomark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
