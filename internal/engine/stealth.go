package engine

import stealth "github.com/anatolykoptev/go-stealth"

// User-Agent strings used across HTTP clients. Timedtext and Innertube
// endpoints accept anything; the watch page wants a real browser agent.
const (
	UserAgentBot    = "CheffyBot/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// RandomUserAgent returns a rotating realistic browser User-Agent.
func RandomUserAgent() string { return stealth.RandomUserAgent() }
