package main

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/zinets/zinets"
)

// DemoNetwork is parsed when no file is given.
const DemoNetwork = `藻
        - 艹
        - 澡(氵+喿)
            - 氵
            - 喿(品+木)
                - 品(口+口+口)
                        - 口
                        - 口
                        - 口
                - 木
`

// readOutline returns the network text named by file: the demo network for
// "", stdin for "-", otherwise the file's contents.
func readOutline(deps *Dependencies, file string) (string, error) {
	var data []byte
	var err error
	switch file {
	case "":
		return DemoNetwork, nil
	case "-":
		if deps.Stdin == nil {
			return "", zinets.Errorf(zinets.EINVALID, "no stdin available")
		}
		data, err = io.ReadAll(deps.Stdin)
	default:
		data, err = os.ReadFile(file)
		if os.IsNotExist(err) {
			return "", zinets.Errorf(zinets.ENOTFOUND, "file %q not found", file)
		}
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", zinets.Errorf(zinets.EINVALID, "%s is not valid UTF-8", displayName(file))
	}
	return string(data), nil
}

func displayName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return file
}
