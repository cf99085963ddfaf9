package presence

import "strings"

const sharePrefix = "$share/"

// Match reports whether an MQTT topic filter matches topic. "+" matches
// exactly one level, a trailing "#" matches the parent level and any number
// of levels below it. Wildcards in the first level never match topics
// starting with "$". Shared subscriptions ("$share/<group>/<filter>") are
// matched on their filter part.
func Match(filter, topic string) bool {
	if strings.HasPrefix(filter, sharePrefix) {
		rest := strings.TrimPrefix(filter, sharePrefix)
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			return false
		}
		filter = rest[i+1:]
	}
	if filter == "" || topic == "" {
		return false
	}

	fl := strings.Split(filter, "/")
	tl := strings.Split(topic, "/")

	if strings.HasPrefix(topic, "$") && (fl[0] == "+" || fl[0] == "#") {
		return false
	}

	for i, f := range fl {
		if f == "#" {
			return i == len(fl)-1
		}
		if i >= len(tl) {
			return false
		}
		if f != "+" && f != tl[i] {
			return false
		}
	}
	return len(fl) == len(tl)
}
