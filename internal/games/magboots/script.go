package magboots

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/magboots/internal/core"
)

// maxRepeat bounds a single script token so a typo cannot allocate forever.
const maxRepeat = 1 << 20

// ParseScript turns an input script into one frame per tick.
//
// A script is a list of tokens separated by spaces or commas. Each token is
// one or more action names joined by '+', optionally followed by '*N' to
// repeat it for N ticks. "Idle" is a tick with no input:
//
//	Right*30 Right+Jump Idle*10 ToggleBoots Left*5
func ParseScript(script string) ([]core.InputFrame, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var frames []core.InputFrame
	for _, tok := range fields {
		body, count, err := splitRepeat(tok)
		if err != nil {
			return nil, fmt.Errorf("script: token %q: %w", tok, err)
		}

		frame := core.NewInputFrame()
		if body != "Idle" {
			for _, name := range strings.Split(body, "+") {
				a, ok := core.ParseAction(name)
				if !ok {
					return nil, fmt.Errorf("script: token %q: unknown action %q", tok, name)
				}
				frame.Set(a)
			}
		}
		for range count {
			frames = append(frames, frame.Clone())
		}
	}
	return frames, nil
}

func splitRepeat(tok string) (string, int, error) {
	body, rep, found := strings.Cut(tok, "*")
	if !found {
		return body, 1, nil
	}
	n, err := strconv.Atoi(rep)
	if err != nil {
		return "", 0, fmt.Errorf("bad repeat count: %w", err)
	}
	if n < 1 || n > maxRepeat {
		return "", 0, fmt.Errorf("repeat count %d out of range", n)
	}
	return body, n, nil
}
