// Package toolutil provides shared terminal output and flag helpers for
// the regkit tools.
package toolutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Content types used by rendering and export helpers.
const (
	CTJSON = "application/json"
	CTCBOR = "application/cbor"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgBlue, color.Bold)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Logger returns the shared structured logger for diagnostics.
func Logger() *slog.Logger {
	return logger
}

// PrintSuccess prints a green success line.
func PrintSuccess(format string, a ...any) {
	_, _ = successColor.Printf("✔ "+format+"\n", a...)
}

// PrintError prints a red error line to stderr.
func PrintError(format string, a ...any) {
	_, _ = errorColor.Fprintf(os.Stderr, "✖ "+format+"\n", a...)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(format string, a ...any) {
	_, _ = warningColor.Printf("⚠ "+format+"\n", a...)
}

// PrintInfo prints a cyan informational line.
func PrintInfo(format string, a ...any) {
	_, _ = infoColor.Printf(format+"\n", a...)
}

// PrintKeyValue prints a key with its value.
func PrintKeyValue(key string, value any) {
	_, _ = keyColor.Printf("%s: ", key)
	fmt.Printf("%v\n", value)
}

// PrintSeparator prints a visual separator between operations.
func PrintSeparator() {
	fmt.Println("\n--------------------------")
}

// KV is a key/value item of a message section.
type KV struct {
	Key   string
	Value string
}

// MessageSection groups related key/value items under a title.
type MessageSection struct {
	Title string
	Items []KV
}

// PrintColoredMessage renders a titled message with its sections and an
// optional body, pretty printed when the MIME type is JSON.
func PrintColoredMessage(title string, sections []MessageSection, body []byte, mime string) {
	_, _ = titleColor.Printf("== %s ==\n", title)
	for _, section := range sections {
		if section.Title != "" {
			_, _ = infoColor.Printf("%s:\n", section.Title)
		}
		for _, item := range section.Items {
			_, _ = keyColor.Printf("  %s: ", item.Key)
			fmt.Println(item.Value)
		}
	}
	if len(body) == 0 {
		return
	}
	if mime == CTJSON {
		fmt.Println(PrettyJSON(body))
		return
	}
	fmt.Println(string(body))
}

// PrettyJSON colorizes and indents a JSON document, returning the input
// unchanged when it does not parse.
func PrettyJSON(body []byte) string {
	var obj any
	if err := json.Unmarshal(body, &obj); err != nil {
		return string(body)
	}
	f := colorjson.NewFormatter()
	f.Indent = 2
	out, err := f.Marshal(obj)
	if err != nil {
		return string(body)
	}
	return string(out)
}

// AddConfigFlag registers the shared connection file flag.
func AddConfigFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "config", "mongoConn.txt", "Path to the connection file (single line with the MongoDB URI)")
}
