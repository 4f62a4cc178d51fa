package fetcher

import (
	"fmt"
	"net/url"
)

// Marketplaces serve an interstitial to clients that look like bots; the
// Accept headers below match what a real browser sends for a page load.
var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
}

// DirectChannel requests the target URL as-is.
func DirectChannel() ChannelSpec {
	return ChannelSpec{
		Name:    "direct",
		Build:   func(target string) string { return target },
		Headers: browserHeaders,
	}
}

// LocalProxyChannel routes through the local reverse proxy, which forwards
// server-side and so is not subject to browser CORS rules.
func LocalProxyChannel(baseURL string) ChannelSpec {
	return ChannelSpec{
		Name: "local-proxy",
		Build: func(target string) string {
			return fmt.Sprintf("%s/proxy?url=%s", baseURL, url.QueryEscape(target))
		},
	}
}

// RelayChannel routes through a public CORS relay. The template must contain
// exactly one %s, replaced with the encoded target URL.
func RelayChannel(name, template string) ChannelSpec {
	return ChannelSpec{
		Name: name,
		Build: func(target string) string {
			return fmt.Sprintf(template, url.QueryEscape(target))
		},
	}
}

// DefaultChannels builds the standard chain: direct first, then the local
// proxy when configured, then each public relay in the order given.
func DefaultChannels(localProxyBase string, relays map[string]string, relayOrder []string) []ChannelSpec {
	channels := []ChannelSpec{DirectChannel()}

	if localProxyBase != "" {
		channels = append(channels, LocalProxyChannel(localProxyBase))
	}

	for _, name := range relayOrder {
		if template, ok := relays[name]; ok {
			channels = append(channels, RelayChannel(name, template))
		}
	}

	return channels
}

// DefaultRelays are the public CORS relays known to pass marketplace pages
// through. Keyed by channel name; values are request URL templates.
func DefaultRelays() (map[string]string, []string) {
	relays := map[string]string{
		"allorigins": "https://api.allorigins.win/raw?url=%s",
		"codetabs":   "https://api.codetabs.com/v1/proxy?quest=%s",
	}
	return relays, []string{"allorigins", "codetabs"}
}
