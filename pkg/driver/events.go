package driver

import "strings"

// ParseEventProp recognizes a prop key as an event listener per spec.md
// §6's name-suffix convention (onClickCapture, onClickOnce,
// onClickPassive, combinable) and splits it into a base event name plus
// modifier flags. ok is false for any key that isn't an "on*" prop.
//
// Suffix parsing keeps the core's contract to "what string did the prop
// key carry" rather than a client-side wrapper object -- capture/once/
// passive semantics are the adapter's job to apply (spec.md §6).
func ParseEventProp(key string) (event string, capture, once, passive bool, ok bool) {
	if len(key) < 3 || key[0] != 'o' || key[1] != 'n' {
		return "", false, false, false, false
	}
	rest := key[2:]
	if rest == "" || rest[0] < 'A' || rest[0] > 'Z' {
		return "", false, false, false, false
	}

	for {
		switch {
		case strings.HasSuffix(rest, "Capture"):
			capture = true
			rest = rest[:len(rest)-len("Capture")]
		case strings.HasSuffix(rest, "Once"):
			once = true
			rest = rest[:len(rest)-len("Once")]
		case strings.HasSuffix(rest, "Passive"):
			passive = true
			rest = rest[:len(rest)-len("Passive")]
		default:
			event = strings.ToLower(rest)
			return event, capture, once, passive, true
		}
	}
}
